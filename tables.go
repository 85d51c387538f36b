package tsmedit

import (
	"regexp"
	"strings"
)

// legacyOperationNames are the operation sub-tables a freshly created group
// carries in the legacy layout; the flat layout additionally references a
// shared "#Default" operation per module.
var legacyOperationNames = []string{"Mailing", "Auctioning", "Crafting", "Shopping", "Warehousing"}

var flatOperationNames = []string{"Mailing", "Auctioning", "Crafting", "Warehousing", "Vendoring", "Shopping"}

// legacyGroupSkeleton serializes a new group definition with its default
// operation skeletons, indented for insertion at indent.
func legacyGroupSkeleton(path GroupPath, indent string) string {
	var b strings.Builder
	b.WriteString(indent + `["` + string(path) + `"] = {`)
	for _, op := range legacyOperationNames {
		b.WriteString("\n" + indent + "\t[\"" + op + "\"] = {")
		b.WriteString("\n" + indent + "\t\t\"\", -- [1]")
		b.WriteString("\n" + indent + "\t},")
	}
	b.WriteString("\n" + indent + "}")
	return b.String()
}

// flatGroupSkeleton is the retail shape: every operation module points at
// the shared #Default operation.
func flatGroupSkeleton(path GroupPath) string {
	var b strings.Builder
	b.WriteString(`["` + string(path) + `"] = {`)
	for _, op := range flatOperationNames {
		b.WriteString("\n[\"" + op + "\"] = {")
		b.WriteString("\n\"#Default\",")
		b.WriteString("\n},")
	}
	b.WriteString("\n},")
	return b.String()
}

var (
	operationsMarkerRe = regexp.MustCompile(`\["operations"\]\s*=\s*\{`)
	defaultProfileRe   = regexp.MustCompile(`\["Default"\]\s*=\s*\{`)
	flatDBOpenRe       = regexp.MustCompile(`TradeSkillMasterDB\s*=\s*\{`)
)

// ensureItemsTable guarantees an authoritative items table exists in a
// legacy-nested document, creating it when missing. New tables go
// immediately after the real groups table when one exists; on a fresh
// profile both tables are seeded before the operations table, which the
// host application always writes; the nearest profile container is the
// last resort.
func ensureItemsTable(text string, idx *regionIndex) (string, bool) {
	if _, ok := idx.authoritative(KindItemsTable); ok {
		return text, true
	}

	if groups, ok := idx.authoritative(KindGroupsTable); ok {
		insert := groups.End + 1
		for insert < len(text) && (text[insert] == ' ' || text[insert] == '\t' || text[insert] == '\r' || text[insert] == '\n') {
			insert++
		}
		if insert < len(text) && text[insert] == ',' {
			insert++
		}
		indent := lineIndent(text, groups.MarkerStart)
		block := "\n" + indent + `["items"] = {` + "\n" + indent + "},"
		return applyEdits(text, []edit{{start: insert, end: insert, repl: block}}), true
	}

	if loc := operationsMarkerRe.FindStringIndex(text); loc != nil {
		indent := lineIndent(text, loc[0])
		block := `["groups"] = {` + "\n" + indent + "},\n" +
			indent + `["items"] = {` + "\n" + indent + "},\n" + indent
		return applyEdits(text, []edit{{start: loc[0], end: loc[0], repl: block}}), true
	}

	if loc := defaultProfileRe.FindStringIndex(text); loc != nil {
		block := "\n\t\t\t[\"groups\"] = {\n\t\t\t},\n\t\t\t[\"items\"] = {\n\t\t\t},"
		return applyEdits(text, []edit{{start: loc[1], end: loc[1], repl: block}}), true
	}

	return text, false
}

// ensureLegacyGroup makes sure path has a definition in the authoritative
// groups table, creating the table itself when the profile has none.
// Reports whether the text changed and whether a usable location existed.
func ensureLegacyGroup(text string, path GroupPath) (string, bool, bool) {
	idx := indexRegions(text)
	if r, ok := idx.authoritative(KindGroupsTable); ok {
		if groupDefinedIn(r.Contents(text), path) {
			return text, false, true
		}
		entryIndent := siblingIndent(text, r)
		return insertAtRegionEnd(text, r, legacyGroupSkeleton(path, entryIndent)), true, true
	}

	// No groups table anywhere: seed one holding the new group next to the
	// operations table.
	if loc := operationsMarkerRe.FindStringIndex(text); loc != nil {
		indent := lineIndent(text, loc[0])
		block := `["groups"] = {` + "\n" +
			legacyGroupSkeleton(path, indent+"\t") + ",\n" +
			indent + "},\n" + indent
		return applyEdits(text, []edit{{start: loc[0], end: loc[0], repl: block}}), true, true
	}
	return text, false, false
}

// ensureFlatGroup adds a top-level group definition in the flat layout,
// immediately after the database's opening brace.
func ensureFlatGroup(text string, path GroupPath) (string, bool, bool) {
	if groupDefinedIn(text, path) {
		return text, false, true
	}
	loc := flatDBOpenRe.FindStringIndex(text)
	if loc == nil {
		return text, false, false
	}
	block := "\n" + flatGroupSkeleton(path)
	return applyEdits(text, []edit{{start: loc[1], end: loc[1], repl: block}}), true, true
}

// groupDefinedIn reports whether contents holds a definition for exactly
// path.
func groupDefinedIn(contents string, path GroupPath) bool {
	re := regexp.MustCompile(`\["` + regexp.QuoteMeta(string(path)) + `"\]\s*=\s*\{`)
	return re.MatchString(contents)
}

// ensureTreeStatusEntry records the UI expansion bookkeeping for path in
// the groups table nested inside groupTreeStatus. Missing bookkeeping
// tables are tolerated; the entry is never the source of truth for group
// existence.
func ensureTreeStatusEntry(text string, path GroupPath) (string, bool) {
	var inner *Region
	for _, status := range findRegions(text, "groupTreeStatus") {
		if !status.Balanced {
			continue
		}
		for _, g := range findRegions(text[status.Start:status.End], "groups") {
			if g.Balanced {
				r := g
				r.MarkerStart += status.Start
				r.Open += status.Start
				r.Start += status.Start
				r.End += status.Start
				inner = &r
				break
			}
		}
		if inner != nil {
			break
		}
	}
	if inner == nil {
		return text, false
	}

	key := TreeStatusKey(path)
	if strings.Contains(inner.Contents(text), `["`+key+`"] = true`) {
		return text, false
	}
	indent := siblingIndent(text, *inner)
	return insertAtRegionEnd(text, *inner, indent+`["`+key+`"] = true`), true
}
