package tsmedit

import (
	"strings"
	"testing"
)

func TestFindRegionsBalanceInvariant(t *testing.T) {
	text := legacyDoc()
	for _, name := range []string{"groups", "items", "groupTreeStatus", "operations"} {
		for _, r := range findRegions(text, name) {
			if !r.Balanced {
				t.Fatalf("%s region at %d not balanced", name, r.MarkerStart)
			}
			contents := r.Contents(text)
			if opens, closes := strings.Count(contents, "{"), strings.Count(contents, "}"); opens != closes {
				t.Fatalf("%s region at %d: %d opens vs %d closes", name, r.MarkerStart, opens, closes)
			}
			if text[r.Open] != '{' || text[r.End] != '}' {
				t.Fatalf("%s region at %d: span not delimiter-bounded", name, r.MarkerStart)
			}
		}
	}
}

func TestFindRegionsReturnsEveryOccurrence(t *testing.T) {
	// "groups" appears twice: the UI-state decoy and the real table.
	regions := findRegions(legacyDoc(), "groups")
	if len(regions) != 2 {
		t.Fatalf("found %d groups regions, want 2", len(regions))
	}
	if regions[0].MarkerStart >= regions[1].MarkerStart {
		t.Fatalf("regions not in document order")
	}
}

func TestWalkBalancedMalformedConsumesToEnd(t *testing.T) {
	text := `["groups"] = { ["A"] = { }` // never closed
	regions := findRegions(text, "groups")
	if len(regions) != 1 {
		t.Fatalf("found %d regions, want 1", len(regions))
	}
	if regions[0].Balanced {
		t.Fatalf("unbalanced region reported as balanced")
	}
	if regions[0].End != len(text) {
		t.Fatalf("End = %d, want end-of-text %d", regions[0].End, len(text))
	}
}

func TestIndexClassifiesDecoyByContainment(t *testing.T) {
	idx := indexRegions(legacyDoc())

	var groups []Region
	for _, r := range idx.regions {
		if r.Kind == KindGroupsTable {
			groups = append(groups, r)
		}
	}
	if len(groups) != 2 {
		t.Fatalf("indexed %d groups regions, want 2", len(groups))
	}
	if !groups[0].decoy {
		t.Fatalf("groupTreeStatus-nested groups table not marked decoy")
	}
	if groups[1].decoy {
		t.Fatalf("real groups table marked decoy")
	}
}

func TestIndexClassifiesDecoyByContentShape(t *testing.T) {
	// A same-named table holding bare boolean flags outside any
	// groupTreeStatus container is still a decoy.
	text := `
AscensionTSMDB = {
	["groups"] = {
		["1 Transmog"] = true,
	},
	["groups"] = {
		["Transmog"] = {
		},
	},
}
`

	idx := indexRegions(text)
	r, ok := idx.authoritative(KindGroupsTable)
	if !ok {
		t.Fatalf("no authoritative groups table found")
	}
	if !strings.Contains(r.Contents(text), `["Transmog"]`) {
		t.Fatalf("selected the boolean-flag decoy")
	}
	if len(idx.warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", idx.warnings)
	}
}

func TestAuthoritativeNoneWhenAllDecoys(t *testing.T) {
	text := `
AscensionTSMDB = {
	["groupTreeStatus"] = {
		["items"] = {
			["1"] = true,
		},
	},
}
`
	idx := indexRegions(text)
	if _, ok := idx.authoritative(KindItemsTable); ok {
		t.Fatalf("authoritative items table found inside groupTreeStatus")
	}
}

func TestAuthoritativeTieBreakWarns(t *testing.T) {
	text := `
AscensionTSMDB = {
	["items"] = {
		["item:1:0:0:0:0:0:0"] = "A",
	},
	["items"] = {
		["item:2:0:0:0:0:0:0"] = "B",
	},
}
`
	idx := indexRegions(text)
	r, ok := idx.authoritative(KindItemsTable)
	if !ok {
		t.Fatalf("no authoritative items table")
	}
	if !strings.Contains(r.Contents(text), "item:1") {
		t.Fatalf("tie-break did not keep the first region by document order")
	}
	if len(idx.warnings) != 1 || !strings.Contains(idx.warnings[0], "ambiguous") {
		t.Fatalf("expected one ambiguity warning, got %v", idx.warnings)
	}
}

func TestUnbalancedRegionNeverAuthoritative(t *testing.T) {
	text := `AscensionTSMDB = {
	["items"] = {
		["item:1:0:0:0:0:0:0"] = "A",
`
	idx := indexRegions(text)
	if _, ok := idx.authoritative(KindItemsTable); ok {
		t.Fatalf("unbalanced region selected as authoritative")
	}
}
