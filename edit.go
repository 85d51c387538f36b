package tsmedit

import (
	"regexp"
	"sort"
	"strings"
)

// edit replaces the byte span [start, end) with repl.
type edit struct {
	start, end int
	repl       string
}

// applyEdits splices a set of non-overlapping edits into text in one pass,
// applied by descending start offset so earlier spans stay valid.
func applyEdits(text string, edits []edit) string {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	for _, e := range edits {
		text = text[:e.start] + e.repl + text[e.end:]
	}
	return text
}

// lineStart returns the offset of the first byte of the line containing
// offset.
func lineStart(text string, offset int) int {
	i := strings.LastIndexByte(text[:offset], '\n')
	return i + 1
}

// lineIndent returns the leading whitespace of the line containing offset.
func lineIndent(text string, offset int) string {
	ls := lineStart(text, offset)
	i := ls
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return text[ls:i]
}

// siblingIndent infers the indentation for new entries in a region from
// its first non-blank content line, falling back to the marker line's
// indent plus one tab for an empty region.
func siblingIndent(text string, r Region) string {
	for _, line := range strings.Split(r.Contents(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	}
	return lineIndent(text, r.MarkerStart) + "\t"
}

// prevNonSpace returns the offset of the last non-whitespace byte before
// offset, or -1.
func prevNonSpace(text string, offset int) int {
	for i := offset - 1; i >= 0; i-- {
		switch text[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return i
		}
	}
	return -1
}

// insertAtRegionStart places lines (already indented, newline separated,
// no leading or trailing newline) immediately after the region's opening
// brace. Used for item entries, which TSM keeps in no particular order.
func insertAtRegionStart(text string, r Region, lines string) string {
	return applyEdits(text, []edit{{start: r.Start, end: r.Start, repl: "\n" + lines}})
}

// insertAtRegionEnd places entry just before the region's closing brace,
// fixing up the separator on both sides. The insertion point is re-derived
// from the live closing brace rather than any cached offset so the splice
// can never leave two adjacent closing braces without a key between them.
func insertAtRegionEnd(text string, r Region, entry string) string {
	closeIndent := lineIndent(text, r.End)
	prev := prevNonSpace(text, r.End)

	// A previous entry already terminated by a comma, or the opening brace
	// of an empty table, needs no extra separator. Anything else gets one.
	sep := ","
	if prev >= r.Open && (text[prev] == '{' || text[prev] == ',') {
		sep = ""
	}

	// Replace everything between the last significant byte and the closing
	// brace so the boundary whitespace ends up in a known-good shape.
	repl := sep + "\n" + entry + ",\n" + closeIndent
	return applyEdits(text, []edit{{start: prev + 1, end: r.End, repl: repl}})
}

// deleteWholeLines removes every line for which match returns true and
// reports how many were removed.
func deleteWholeLines(text string, match func(line string) bool) (string, int) {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	removed := 0
	for _, line := range lines {
		if match(line) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), removed
}

// deleteRegionLines removes a whole table definition: the line holding its
// marker through the line holding its balanced closing brace. Spans are
// bounded by the same brace walk the matcher uses.
func deleteRegionLines(text string, r Region) string {
	start := lineStart(text, r.MarkerStart)
	end := r.End + 1
	// Swallow a trailing comma and the rest of the line.
	for end < len(text) && (text[end] == ',' || text[end] == ' ' || text[end] == '\t' || text[end] == '\r') {
		end++
	}
	if end < len(text) && text[end] == '\n' {
		end++
	}
	return applyEdits(text, []edit{{start: start, end: end, repl: ""}})
}

// renameValueOccurrences substitutes a group path used as a quoted value or
// as a quoted key prefix. The path is treated as an opaque token bounded by
// its quotes; both the exact form ("old") and the parent form ("old`) are
// updated. Returns the new text plus the exact and prefix occurrence
// counts of the old path before substitution.
func renameValueOccurrences(text string, old, new GroupPath) (string, int, int) {
	exactOld := `"` + string(old) + `"`
	prefixOld := `"` + string(old) + PathSeparator

	exact := strings.Count(text, exactOld)
	prefix := strings.Count(text, prefixOld)

	text = strings.ReplaceAll(text, exactOld, `"`+string(new)+`"`)
	text = strings.ReplaceAll(text, prefixOld, `"`+string(new)+PathSeparator)
	return text, exact, prefix
}

var (
	blankRunRe       = regexp.MustCompile(`\n[ \t]*\n[ \t]*\n+`)
	blankAfterOpenRe = regexp.MustCompile(`(\{[ \t]*)\n(?:[ \t]*\n)+(\s*[\[}])`)
)

// normalize is the cosmetic cleanup applied after every mutating
// operation: runs of three or more consecutive blank-ish lines collapse to
// a single blank line, and blank lines pressed against a region's braces
// are dropped entirely.
func normalize(text string) string {
	for {
		next := blankRunRe.ReplaceAllString(text, "\n\n")
		if next == text {
			break
		}
		text = next
	}
	text = blankAfterOpenRe.ReplaceAllString(text, "$1\n$2")
	return text
}

// resetCollapsedStatus empties every groupTreeCollapsedStatus table so the
// host application re-derives its tree view after our edits. The expanded
// state table (groupTreeStatus) is deliberately left alone; we maintain it
// entry by entry instead.
func resetCollapsedStatus(text string) string {
	var edits []edit
	for _, r := range findRegions(text, "groupTreeCollapsedStatus") {
		if !r.Balanced || r.Start == r.End {
			continue
		}
		edits = append(edits, edit{start: r.Start, end: r.End, repl: ""})
	}
	return applyEdits(text, edits)
}
