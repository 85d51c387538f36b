// Package tsmedit edits TradeSkillMaster SavedVariables files in place.
//
// A SavedVariables file is one big serialized Lua table. The package never
// parses it with a full grammar; instead it locates the tables it cares
// about with marker scanning and brace counting, then splices minimal,
// localized edits into the original text so that everything outside the
// edited spans survives byte for byte (whitespace, comments and line
// endings included).
package tsmedit

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// SchemaVariant is the document layout the engine detected. The two live
// layouts use incompatible item key encodings and store groups in
// different places, so every operation branches on this exactly once.
type SchemaVariant int

const (
	VariantUnknown SchemaVariant = iota

	// VariantLegacyNested is the TSM 2.x layout used by 3.3.5a clients:
	// everything lives under AscensionTSMDB.profiles.<name>, items are
	// keyed with the verbose "item:<id>:0:0:0:0:0:0" encoding.
	VariantLegacyNested

	// VariantFlatTopLevel is the retail layout: groups are top-level keys
	// of TradeSkillMasterDB and items use the short "i:<id>" encoding.
	VariantFlatTopLevel
)

func (v SchemaVariant) String() string {
	switch v {
	case VariantLegacyNested:
		return "legacy-nested"
	case VariantFlatTopLevel:
		return "flat-top-level"
	default:
		return "unknown"
	}
}

// DetectVariant classifies the document. Unknown is a valid outcome, not an
// error; mutating operations refuse to touch an Unknown document.
func DetectVariant(text string) SchemaVariant {
	if strings.Contains(text, "AscensionTSMDB") {
		return VariantLegacyNested
	}
	if strings.Contains(text, "TradeSkillMasterDB") &&
		!strings.Contains(text, "TradeSkillMasterDB = nil") {
		return VariantFlatTopLevel
	}
	return VariantUnknown
}

// Document is a full text buffer plus its detected variant. Operations
// never mutate it in place; they produce a complete replacement buffer or
// fail, leaving the original untouched.
type Document struct {
	Text    string
	Variant SchemaVariant
}

func Parse(data []byte) *Document {
	text := string(data)
	return &Document{Text: text, Variant: DetectVariant(text)}
}

func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tsmedit: read document: %w", err)
	}
	return Parse(data), nil
}

// ItemEntry is one decoded item-to-group assignment.
type ItemEntry struct {
	Key   ItemKey
	Group GroupPath
}

var (
	legacyItemRe = regexp.MustCompile(`\["(item:\d+(?::\d+)*)"\]\s*=\s*"([^"]+)"`)
	shortItemRe  = regexp.MustCompile(`\["(i:\d+[\d:]*)"\]\s*=\s*"([^"]+)"`)

	// A quoted key containing the path separator followed by an opening
	// brace is a group definition in either variant.
	pathGroupDefRe = regexp.MustCompile(`\["([^"]*` + PathSeparator + `[^"]+)"\]\s*=\s*\{`)

	groupDefWithin = regexp.MustCompile(`\["([^"]+)"\]\s*=\s*\{`)
)

// operationNames are the per-group operation sub-tables; their keys look
// like group names inside a group definition and must be skipped when
// collecting groups.
var operationNames = map[string]bool{
	"Mailing":     true,
	"Auctioning":  true,
	"Crafting":    true,
	"Shopping":    true,
	"Warehousing": true,
	"Vendoring":   true,
}

// Items decodes every item assignment in the document, in document order.
// At most one live entry exists per numeric ID; later duplicates are
// dropped.
func (d *Document) Items() []ItemEntry {
	var out []ItemEntry
	seen := map[int]bool{}
	for _, re := range []*regexp.Regexp{legacyItemRe, shortItemRe} {
		for _, m := range re.FindAllStringSubmatch(d.Text, -1) {
			key, ok := DecodeItemKey(strings.TrimRight(m[1], ":"))
			if !ok || seen[key.ID] {
				continue
			}
			seen[key.ID] = true
			out = append(out, ItemEntry{Key: key, Group: GroupPath(m[2])})
		}
	}
	return out
}

// ItemIDs returns the set of item IDs with a live entry anywhere in the
// document, regardless of encoding.
func (d *Document) ItemIDs() map[int]bool {
	ids := map[int]bool{}
	for _, e := range d.Items() {
		ids[e.Key.ID] = true
	}
	return ids
}

// Groups collects every group path the document mentions: definitions in
// the authoritative groups table, multi-segment definitions anywhere, and
// paths referenced by item assignments. Sorted ascending.
func (d *Document) Groups() []GroupPath {
	set := map[GroupPath]bool{}
	for _, e := range d.Items() {
		set[e.Group] = true
	}
	for _, m := range pathGroupDefRe.FindAllStringSubmatch(d.Text, -1) {
		set[GroupPath(m[1])] = true
	}
	if d.Variant == VariantLegacyNested {
		idx := indexRegions(d.Text)
		if r, ok := idx.authoritative(KindGroupsTable); ok {
			for _, m := range groupDefWithin.FindAllStringSubmatch(r.Contents(d.Text), -1) {
				if !operationNames[m[1]] {
					set[GroupPath(m[1])] = true
				}
			}
		}
	}
	out := make([]GroupPath, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ItemsByGroup returns the entries assigned exactly to g.
func (d *Document) ItemsByGroup(g GroupPath) []ItemEntry {
	var out []ItemEntry
	for _, e := range d.Items() {
		if e.Group == g {
			out = append(out, e)
		}
	}
	return out
}

// Hierarchy maps each parent path ("" for the root) to its direct
// children, both sorted.
func (d *Document) Hierarchy() map[GroupPath][]GroupPath {
	h := map[GroupPath][]GroupPath{}
	seen := map[GroupPath]bool{}
	for _, g := range d.Groups() {
		for _, pre := range g.Prefixes() {
			if seen[pre] {
				continue
			}
			seen[pre] = true
			parent, ok := pre.Parent()
			if !ok {
				parent = ""
			}
			h[parent] = append(h[parent], pre)
		}
	}
	for k := range h {
		sort.Slice(h[k], func(i, j int) bool { return h[k][i] < h[k][j] })
	}
	return h
}
