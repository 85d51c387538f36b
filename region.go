package tsmedit

import (
	"fmt"
	"regexp"
	"strings"
)

// RegionKind tags what a region is semantically, not just what its marker
// says. The "groups" and "items" markers are reused by the UI-state
// bookkeeping tables, so the marker name alone is never enough.
type RegionKind int

const (
	KindOther RegionKind = iota
	KindItemsTable
	KindGroupsTable
	KindGroupTreeStatusTable
	KindOperationsTable
)

func (k RegionKind) String() string {
	switch k {
	case KindItemsTable:
		return "items"
	case KindGroupsTable:
		return "groups"
	case KindGroupTreeStatusTable:
		return "groupTreeStatus"
	case KindOperationsTable:
		return "operations"
	default:
		return "other"
	}
}

// Region is the balanced byte span of one table. Start/End bound the
// contents exclusive of the outer braces; MarkerStart is the first byte of
// the ["name"] key and Open the offset of the opening brace. Regions are
// derived fresh from the text on every operation, never cached across
// mutations.
type Region struct {
	Kind        RegionKind
	Name        string
	MarkerStart int
	Open        int
	Start       int
	End         int
	Balanced    bool

	decoy bool
}

func (r Region) Contents(text string) string { return text[r.Start:r.End] }

// contains reports whether offset lies inside the region's contents.
func (r Region) contains(offset int) bool { return offset >= r.Start && offset < r.End }

// walkBalanced walks forward from the opening brace at open, counting
// nested braces until the count returns to zero. It returns the offset of
// the matching closing brace. A malformed document consumes to
// end-of-text and reports balanced=false; callers must treat such a span
// as unusable.
func walkBalanced(text string, open int) (end int, balanced bool) {
	depth := 1
	for i := open + 1; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return len(text), false
}

// findRegions locates every `["name"] = {` occurrence and computes its
// balanced span. The same marker may appear many times for unrelated
// logical tables; classification is the index's job, not the matcher's.
func findRegions(text, name string) []Region {
	re := regexp.MustCompile(`\["` + regexp.QuoteMeta(name) + `"\]\s*=\s*\{`)
	var out []Region
	for _, loc := range re.FindAllStringIndex(text, -1) {
		open := loc[1] - 1
		end, balanced := walkBalanced(text, open)
		out = append(out, Region{
			Name:        name,
			MarkerStart: loc[0],
			Open:        open,
			Start:       open + 1,
			End:         end,
			Balanced:    balanced,
		})
	}
	return out
}

// booleanFlagShape reports whether table contents look like the UI-state
// decoy: bare boolean flags instead of nested sub-tables.
func booleanFlagShape(contents string) bool {
	return strings.Contains(contents, "= true") || strings.Contains(contents, "true,") ||
		strings.Contains(contents, "= false")
}

// regionIndex is the classified table index for one operation, built in a
// single structural pass. It lives only as long as the text it was built
// from.
type regionIndex struct {
	regions  []Region
	warnings []string
}

// indexRegions scans the document once and tags every interesting table.
// Classification applies two rules in order: a region nested inside a
// groupTreeStatus span is UI bookkeeping no matter its marker, and a
// region whose contents are bare boolean flags is a decoy even outside
// one.
func indexRegions(text string) *regionIndex {
	idx := &regionIndex{}

	status := findRegions(text, "groupTreeStatus")
	for i := range status {
		status[i].Kind = KindGroupTreeStatusTable
	}
	idx.regions = append(idx.regions, status...)

	classify := func(name string, kind RegionKind) {
		for _, r := range findRegions(text, name) {
			r.Kind = kind
			for _, s := range status {
				if s.Balanced && s.contains(r.MarkerStart) {
					r.decoy = true
					break
				}
			}
			if !r.decoy && kind != KindOperationsTable && booleanFlagShape(r.Contents(text)) {
				r.decoy = true
			}
			idx.regions = append(idx.regions, r)
		}
	}
	classify("groups", KindGroupsTable)
	classify("items", KindItemsTable)
	classify("operations", KindOperationsTable)

	return idx
}

// authoritative selects the one real table of the given kind. With zero
// candidates it returns false and the caller creates the table fresh. With
// more than one it keeps the first by document order and records a warning,
// since that tie-break is a heuristic guess.
func (idx *regionIndex) authoritative(kind RegionKind) (Region, bool) {
	var candidates []Region
	for _, r := range idx.regions {
		if r.Kind == kind && !r.decoy && r.Balanced {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return Region{}, false
	}
	if len(candidates) > 1 {
		idx.warnings = append(idx.warnings, fmt.Sprintf(
			"ambiguous %s table: %d non-decoy candidates, using the first by document order",
			kind, len(candidates)))
	}
	return candidates[0], true
}
