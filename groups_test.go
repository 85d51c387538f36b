package tsmedit

import (
	"errors"
	"strings"
	"testing"
)

func TestAddGroupsCreatesParentsBeforeChildren(t *testing.T) {
	s := tempStore(t, legacyDoc())

	res, err := s.AddGroups([]GroupPath{gp("A|B|C")}, Options{})
	if err != nil {
		t.Fatalf("AddGroups: %v (errors %v)", err, res.Errors)
	}
	if res.Added != 3 {
		t.Fatalf("result = %+v", res)
	}
	if len(res.GroupsAdded) != 3 ||
		res.GroupsAdded[0] != gp("A") ||
		res.GroupsAdded[1] != gp("A|B") ||
		res.GroupsAdded[2] != gp("A|B|C") {
		t.Fatalf("creation order = %v", res.GroupsAdded)
	}

	text := readStore(t, s)
	idx := indexRegions(text)
	groups, ok := idx.authoritative(KindGroupsTable)
	if !ok {
		t.Fatalf("no groups region after edit")
	}
	for _, p := range []GroupPath{gp("A"), gp("A|B"), gp("A|B|C")} {
		if !groupDefinedIn(groups.Contents(text), p) {
			t.Fatalf("missing definition for %q", p)
		}
		key := `["` + TreeStatusKey(p) + `"] = true`
		if !strings.Contains(text, key) {
			t.Fatalf("missing tree-status entry %q", key)
		}
	}
}

func TestAddGroupsTreeStatusKeysAreCumulative(t *testing.T) {
	s := tempStore(t, legacyDoc())
	if _, err := s.AddGroups([]GroupPath{gp("A|B|C")}, Options{}); err != nil {
		t.Fatalf("AddGroups: %v", err)
	}
	text := readStore(t, s)
	for _, want := range []string{"1 A", "1 A A|B", "1 A A|B A|B|C"} {
		key := `["` + string(gp(want)) + `"] = true`
		if !strings.Contains(text, key) {
			t.Fatalf("missing cumulative key %q", key)
		}
	}
}

func TestAddGroupsIsIdempotent(t *testing.T) {
	s := tempStore(t, legacyDoc())
	paths := []GroupPath{gp("A|B")}

	first, err := s.AddGroups(paths, Options{})
	if err != nil {
		t.Fatalf("first AddGroups: %v", err)
	}
	if first.Added != 2 {
		t.Fatalf("first = %+v", first)
	}
	second, err := s.AddGroups(paths, Options{})
	if err != nil {
		t.Fatalf("second AddGroups: %v", err)
	}
	if second.Added != 0 || second.Skipped != 2 {
		t.Fatalf("second = %+v", second)
	}
}

func TestAddGroupsSkipsExisting(t *testing.T) {
	s := tempStore(t, legacyDoc())
	res, err := s.AddGroups([]GroupPath{gp("Transmog|Swords")}, Options{})
	if err != nil {
		t.Fatalf("AddGroups: %v", err)
	}
	if res.Added != 0 || res.Skipped != 2 {
		t.Fatalf("result = %+v", res)
	}
}

func TestAddGroupsFlatLayout(t *testing.T) {
	s := tempStore(t, flatDoc())
	res, err := s.AddGroups([]GroupPath{gp("Armor|Cloth")}, Options{})
	if err != nil {
		t.Fatalf("AddGroups: %v (errors %v)", err, res.Errors)
	}
	if res.Added != 2 {
		t.Fatalf("result = %+v", res)
	}
	text := readStore(t, s)
	for _, p := range []GroupPath{gp("Armor"), gp("Armor|Cloth")} {
		if !groupDefinedIn(text, p) {
			t.Fatalf("missing definition for %q", p)
		}
	}
	if !strings.Contains(text, `"#Default"`) {
		t.Fatalf("flat skeleton missing #Default operations")
	}
}

func TestAddGroupsUnknownLayoutFails(t *testing.T) {
	s := tempStore(t, "who knows = {}\n")
	_, err := s.AddGroups([]GroupPath{gp("A")}, Options{})
	if !errors.Is(err, ErrUnsupportedSchema) {
		t.Fatalf("err = %v, want ErrUnsupportedSchema", err)
	}
}

func TestAddGroupsSeedsGroupsTableOnFreshProfile(t *testing.T) {
	text := strings.ReplaceAll(`
AscensionTSMDB = {
	["profiles"] = {
		["Default"] = {
			["operations"] = {
			},
		},
	},
}
`, "|", PathSeparator)
	s := tempStore(t, text)

	res, err := s.AddGroups([]GroupPath{gp("A")}, Options{})
	if err != nil {
		t.Fatalf("AddGroups: %v (errors %v)", err, res.Errors)
	}
	out := readStore(t, s)
	idx := indexRegions(out)
	groups, ok := idx.authoritative(KindGroupsTable)
	if !ok {
		t.Fatalf("groups table not created:\n%s", out)
	}
	if !groupDefinedIn(groups.Contents(out), gp("A")) {
		t.Fatalf("group A not inside created table:\n%s", out)
	}
	for _, r := range findRegions(out, "groups") {
		if !r.Balanced {
			t.Fatalf("created table unbalanced:\n%s", out)
		}
	}
}

func TestRenameGroupCountsAndCompleteness(t *testing.T) {
	text := strings.ReplaceAll(`
AscensionTSMDB = {
	["groups"] = {
		["X"] = {
		},
		["X|Z"] = {
		},
	},
	["items"] = {
		["item:1:0:0:0:0:0:0"] = "X",
		["item:2:0:0:0:0:0:0"] = "X",
		["item:3:0:0:0:0:0:0"] = "X|Z",
	},
}
`, "|", PathSeparator)
	s := tempStore(t, text)

	res, err := s.RenameGroup(gp("X"), gp("Y"), Options{})
	if err != nil {
		t.Fatalf("RenameGroup: %v", err)
	}
	if !res.Renamed || res.GroupsUpdated != 5 || res.ItemsUpdated != 3 {
		t.Fatalf("result = %+v", res)
	}

	out := readStore(t, s)
	if strings.Contains(out, `"X"`) || strings.Contains(out, `"X`+PathSeparator) {
		t.Fatalf("old path survives:\n%s", out)
	}
}

func TestRenameGroupMissingTargetFails(t *testing.T) {
	s := tempStore(t, legacyDoc())
	res, err := s.RenameGroup(gp("Nope"), gp("Still Nope"), Options{})
	if !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("err = %v, want ErrEntityNotFound", err)
	}
	if len(res.Errors) == 0 {
		t.Fatalf("missing explicit error in result")
	}
}

func TestDeleteGroupCascades(t *testing.T) {
	text := strings.ReplaceAll(`
AscensionTSMDB = {
	["groupTreeStatus"] = {
		["groups"] = {
			["1 A"] = true,
			["1 A A|B"] = true,
			["1 A A|B A|B|C"] = true,
			["1 A A|D"] = true,
		},
	},
	["groups"] = {
		["A"] = {
			["Mailing"] = {
				"", -- [1]
			},
		},
		["A|B"] = {
			["Mailing"] = {
				"", -- [1]
			},
		},
		["A|B|C"] = {
			["Mailing"] = {
				"", -- [1]
			},
		},
		["A|D"] = {
			["Mailing"] = {
				"", -- [1]
			},
		},
	},
	["items"] = {
		["item:10:0:0:0:0:0:0"] = "A|B|C",
		["item:11:0:0:0:0:0:0"] = "A|D",
	},
}
`, "|", PathSeparator)
	s := tempStore(t, text)

	res, err := s.DeleteGroup(gp("A|B"), true, Options{})
	if err != nil {
		t.Fatalf("DeleteGroup: %v (errors %v)", err, res.Errors)
	}
	if !res.Deleted || res.SubgroupsRemoved != 1 || res.ItemsRemoved != 1 {
		t.Fatalf("result = %+v", res)
	}

	out := readStore(t, s)
	for _, gone := range []string{
		`["` + string(gp("A|B")) + `"] = {`,
		`["` + string(gp("A|B|C")) + `"] = {`,
		"item:10",
	} {
		if strings.Contains(out, gone) {
			t.Fatalf("%q survives deletion:\n%s", gone, out)
		}
	}
	for _, kept := range []string{
		`["` + string(gp("A|D")) + `"] = {`,
		"item:11",
		`["A"] = {`,
	} {
		if !strings.Contains(out, kept) {
			t.Fatalf("%q was wrongly removed:\n%s", kept, out)
		}
	}

	// UI-state lines for the subtree must be gone, siblings kept.
	if strings.Contains(out, string(gp(`["1 A A|B"]`))) || strings.Contains(out, string(gp(`["1 A A|B A|B|C"]`))) {
		t.Fatalf("tree-status references survive:\n%s", out)
	}
	if !strings.Contains(out, string(gp(`["1 A A|D"]`))) {
		t.Fatalf("sibling tree-status reference removed:\n%s", out)
	}

	for _, r := range findRegions(out, "groups") {
		if !r.Balanced {
			t.Fatalf("groups region unbalanced after deletion:\n%s", out)
		}
	}
}

func TestDeleteGroupWithoutCascadeKeepsItems(t *testing.T) {
	s := tempStore(t, legacyDoc())

	res, err := s.DeleteGroup(gp("Transmog|Swords|One Hand"), false, Options{})
	if err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	if !res.Deleted || res.ItemsRemoved != 0 {
		t.Fatalf("result = %+v", res)
	}
	out := readStore(t, s)
	if !strings.Contains(out, "item:12976") {
		t.Fatalf("item assignment removed without cascade")
	}
	if groupDefinedIn(out, gp("Transmog|Swords|One Hand")) {
		t.Fatalf("group definition survives")
	}
}

func TestDeleteGroupMissingTargetFails(t *testing.T) {
	s := tempStore(t, legacyDoc())
	_, err := s.DeleteGroup(gp("Nope"), true, Options{})
	if !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("err = %v, want ErrEntityNotFound", err)
	}
}

func TestDeleteGroupResetsCollapsedStatus(t *testing.T) {
	s := tempStore(t, legacyDoc())
	if _, err := s.DeleteGroup(gp("Transmog|Swords"), true, Options{}); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	if !strings.Contains(readStore(t, s), `["groupTreeCollapsedStatus"] = {}`) {
		t.Fatalf("collapsed-status table not reset")
	}
}

func TestRenameGroupDryRunProducesDiffOnly(t *testing.T) {
	s := tempStore(t, legacyDoc())

	res, err := s.RenameGroup(gp("Transmog"), gp("Appearance"), Options{DryRun: true})
	if err != nil {
		t.Fatalf("RenameGroup: %v", err)
	}
	if res.Diff == "" || !strings.Contains(res.Diff, "Appearance") {
		t.Fatalf("diff missing: %+v", res)
	}
	if readStore(t, s) != legacyDoc() {
		t.Fatalf("dry run modified the file")
	}
}
