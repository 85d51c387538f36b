package tsmedit

import (
	"strings"
	"testing"
)

func TestApplyEditsDescendingOffsets(t *testing.T) {
	text := "abcdef"
	got := applyEdits(text, []edit{
		{start: 1, end: 2, repl: "BB"},
		{start: 4, end: 5, repl: ""},
	})
	if got != "aBBcdf" {
		t.Fatalf("applyEdits = %q", got)
	}
}

func TestInsertAtRegionEndEmptyTable(t *testing.T) {
	text := "x = {\n\t[\"operations\"] = {\n\t},\n}\n"
	r := findRegions(text, "operations")[0]
	got := insertAtRegionEnd(text, r, "\t\t[\"A\"] = true")

	want := "x = {\n\t[\"operations\"] = {\n\t\t[\"A\"] = true,\n\t},\n}\n"
	if got != want {
		t.Fatalf("unexpected splice:\n%s", diffStrings(t, want, got))
	}
}

func TestInsertAtRegionEndAfterExistingEntry(t *testing.T) {
	text := "x = {\n\t[\"ops\"] = {\n\t\t[\"A\"] = true,\n\t},\n}\n"
	r := findRegions(text, "ops")[0]
	got := insertAtRegionEnd(text, r, "\t\t[\"B\"] = true")

	want := "x = {\n\t[\"ops\"] = {\n\t\t[\"A\"] = true,\n\t\t[\"B\"] = true,\n\t},\n}\n"
	if got != want {
		t.Fatalf("unexpected splice:\n%s", diffStrings(t, want, got))
	}
}

func TestInsertAtRegionEndAddsMissingComma(t *testing.T) {
	text := "x = {\n\t[\"ops\"] = {\n\t\t[\"A\"] = true\n\t},\n}\n"
	r := findRegions(text, "ops")[0]
	got := insertAtRegionEnd(text, r, "\t\t[\"B\"] = true")

	if !strings.Contains(got, "[\"A\"] = true,\n\t\t[\"B\"] = true,\n") {
		t.Fatalf("missing comma not repaired:\n%s", got)
	}
}

func TestInsertNeverProducesAdjacentClosers(t *testing.T) {
	// Repeated insertion re-derives the splice point from the live
	// closing brace each time; the "},\n}" corruption class would show up
	// as a closing brace directly following another without a key line.
	text := legacyDoc()
	for _, name := range []string{"G1", "G2", "G3"} {
		idx := indexRegions(text)
		r, ok := idx.authoritative(KindGroupsTable)
		if !ok {
			t.Fatalf("no groups region")
		}
		text = insertAtRegionEnd(text, r, legacyGroupSkeleton(GroupPath(name), siblingIndent(text, r)))
	}
	for _, r := range findRegions(text, "groups") {
		if !r.Balanced {
			t.Fatalf("groups region unbalanced after inserts")
		}
	}
	if strings.Contains(text, "}}") || strings.Contains(text, "},}") {
		t.Fatalf("adjacent closing delimiters introduced:\n%s", text)
	}
	for _, name := range []string{"G1", "G2", "G3"} {
		if !strings.Contains(text, `["`+name+`"] = {`) {
			t.Fatalf("group %s not inserted", name)
		}
	}
}

func TestSiblingIndentFromFirstEntry(t *testing.T) {
	text := legacyDoc()
	idx := indexRegions(text)
	r, _ := idx.authoritative(KindItemsTable)
	if got := siblingIndent(text, r); got != "\t\t\t\t" {
		t.Fatalf("siblingIndent = %q", got)
	}
}

func TestSiblingIndentEmptyRegionFallsBackToMarker(t *testing.T) {
	text := "\t\t\t[\"operations\"] = {\n\t\t\t}\n"
	r := findRegions(text, "operations")[0]
	if got := siblingIndent(text, r); got != "\t\t\t\t" {
		t.Fatalf("siblingIndent = %q", got)
	}
}

func TestDeleteRegionLinesRemovesWholeDefinition(t *testing.T) {
	text := legacyDoc()
	re := findRegions(text, "groupTreeStatus")[0]
	got := deleteRegionLines(text, re)

	if strings.Contains(got, "groupTreeStatus") {
		t.Fatalf("marker survived deletion")
	}
	if strings.Contains(got, string(gp(`["1 Transmog Transmog|Swords"] = true`))) {
		t.Fatalf("region contents survived deletion")
	}
	// The sibling real groups table must be untouched.
	if !strings.Contains(got, `["`+string(gp("Transmog|Swords"))+`"] = {`) {
		t.Fatalf("sibling table damaged")
	}
}

func TestRenameValueOccurrencesCountsExactAndPrefix(t *testing.T) {
	text := strings.ReplaceAll(`
["X"] = {
},
["X|Z"] = {
},
["item:1:0:0:0:0:0:0"] = "X",
["item:2:0:0:0:0:0:0"] = "X",
["item:3:0:0:0:0:0:0"] = "X|Z",
`, "|", PathSeparator)

	got, exact, prefix := renameValueOccurrences(text, gp("X"), gp("Y"))
	if exact != 3 || prefix != 2 {
		t.Fatalf("counts = exact %d prefix %d, want 3 and 2", exact, prefix)
	}
	if strings.Contains(got, `"X"`) || strings.Contains(got, `"X`+PathSeparator) {
		t.Fatalf("old path survives rename:\n%s", got)
	}
	if strings.Count(got, `"Y"`) != 3 || strings.Count(got, `"Y`+PathSeparator) != 2 {
		t.Fatalf("new path counts wrong:\n%s", got)
	}

	// A path that is merely a string prefix must not be touched.
	text = `["item:9:0:0:0:0:0:0"] = "XRay",`
	got, exact, prefix = renameValueOccurrences(text, gp("X"), gp("Y"))
	if exact != 0 || prefix != 0 || got != text {
		t.Fatalf("prefix-only similarity renamed: %q", got)
	}
}

func TestNormalizeCollapsesBlankRuns(t *testing.T) {
	in := "a\n\n\n\n\nb\n"
	if got := normalize(in); got != "a\n\nb\n" {
		t.Fatalf("normalize = %q", got)
	}
}

func TestNormalizeStripsBlanksInsideFreshBraces(t *testing.T) {
	in := "[\"items\"] = {\n\n\n\t\t\t}\n"
	got := normalize(in)
	if strings.Contains(got, "{\n\n") {
		t.Fatalf("blank line left inside delimiters: %q", got)
	}
}

func TestResetCollapsedStatus(t *testing.T) {
	got := resetCollapsedStatus(legacyDoc())
	if !strings.Contains(got, `["groupTreeCollapsedStatus"] = {}`) {
		t.Fatalf("collapsed-status table not emptied")
	}
	// The expansion-state table must be left alone.
	if !strings.Contains(got, `["1 Transmog"] = true`) {
		t.Fatalf("groupTreeStatus contents were wiped")
	}
}

func TestDeleteWholeLines(t *testing.T) {
	in := "keep\ndrop me\nkeep too\n"
	got, n := deleteWholeLines(in, func(line string) bool { return strings.Contains(line, "drop") })
	if n != 1 || got != "keep\nkeep too\n" {
		t.Fatalf("deleteWholeLines = %q (n=%d)", got, n)
	}
}
