package tsmedit

import (
	"regexp"
	"sort"
	"strings"
)

// AddGroupsResult reports one AddGroups call.
type AddGroupsResult struct {
	OpResult
	Added       int
	Skipped     int
	GroupsAdded []GroupPath
}

// AddGroups ensures every requested path and all of its ancestors exist.
// Paths are created parents first: a child's tree-status key encodes every
// ancestor, so the ancestors must exist before or alongside it. On the
// legacy layout each group also gets its UI expansion bookkeeping entry.
func (s *Store) AddGroups(paths []GroupPath, opts Options) (*AddGroupsResult, error) {
	res := &AddGroupsResult{}

	doc, err := s.load()
	if err != nil {
		res.addError("%v", err)
		return res, err
	}
	if doc.Variant == VariantUnknown {
		res.addError("cannot add groups to an unrecognized layout")
		return res, ErrUnsupportedSchema
	}

	if doc.Variant == VariantLegacyNested {
		idx := indexRegions(doc.Text)
		idx.authoritative(KindGroupsTable)
		res.Warnings = append(res.Warnings, idx.warnings...)
	}

	expanded := map[GroupPath]bool{}
	for _, p := range paths {
		for _, pre := range p.Prefixes() {
			expanded[pre] = true
		}
	}
	ordered := make([]GroupPath, 0, len(expanded))
	for p := range expanded {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if d1, d2 := ordered[i].Depth(), ordered[j].Depth(); d1 != d2 {
			return d1 < d2
		}
		return ordered[i] < ordered[j]
	})

	text := doc.Text
	for _, path := range ordered {
		var changed, located bool
		switch doc.Variant {
		case VariantLegacyNested:
			text, changed, located = ensureLegacyGroup(text, path)
			if located {
				var statusChanged bool
				text, statusChanged = ensureTreeStatusEntry(text, path)
				changed = changed || statusChanged
			}
		case VariantFlatTopLevel:
			text, changed, located = ensureFlatGroup(text, path)
		}
		switch {
		case !located:
			res.addError("no usable location for group %q", path)
		case changed:
			res.Added++
			res.GroupsAdded = append(res.GroupsAdded, path)
		default:
			res.Skipped++
		}
	}

	if res.Added == 0 && len(res.Errors) == 0 {
		return res, nil
	}
	if res.Added == 0 {
		return res, ErrRegionNotFound
	}

	text = resetCollapsedStatus(text)
	text = normalize(text)

	if err := s.persist(&res.OpResult, doc.Text, text, opts); err != nil {
		return res, err
	}
	return res, nil
}

// RenameGroupResult reports one RenameGroup call. GroupsUpdated counts
// every substituted occurrence (exact and subgroup-prefix forms);
// ItemsUpdated counts the exact-form occurrences, which is how item
// assignments reference a group.
type RenameGroupResult struct {
	OpResult
	Renamed       bool
	GroupsUpdated int
	ItemsUpdated  int
}

// RenameGroup renames old to new everywhere the path occurs as a quoted
// value or key prefix: the group definition, subgroup definitions, item
// assignments and UI bookkeeping. Zero occurrences is an explicit
// ErrEntityNotFound, never silently ignored.
func (s *Store) RenameGroup(old, new GroupPath, opts Options) (*RenameGroupResult, error) {
	res := &RenameGroupResult{}

	doc, err := s.load()
	if err != nil {
		res.addError("%v", err)
		return res, err
	}

	text, exact, prefix := renameValueOccurrences(doc.Text, old, new)
	if exact == 0 && prefix == 0 {
		res.addError("group not found: %s", old)
		return res, ErrEntityNotFound
	}
	res.Renamed = true
	res.GroupsUpdated = exact + prefix
	res.ItemsUpdated = exact

	text = resetCollapsedStatus(text)
	text = normalize(text)

	if err := s.persist(&res.OpResult, doc.Text, text, opts); err != nil {
		return res, err
	}
	return res, nil
}

// DeleteGroupResult reports one DeleteGroup call.
type DeleteGroupResult struct {
	OpResult
	Deleted          bool
	SubgroupsRemoved int
	ItemsRemoved     int
	UIRefsRemoved    int
}

// DeleteGroup removes the group's definition, every descendant definition,
// optionally the item assignments under the subtree, and all UI-state
// lines that reference it. Definitions are deleted as balanced regions;
// UI-state references are line-scoped because their key shapes are too
// irregular for brace-based deletion.
func (s *Store) DeleteGroup(path GroupPath, cascadeItems bool, opts Options) (*DeleteGroupResult, error) {
	res := &DeleteGroupResult{}

	doc, err := s.load()
	if err != nil {
		res.addError("%v", err)
		return res, err
	}
	text := doc.Text

	// Group and subgroup definitions, deepest first so ancestor spans stay
	// valid while descendants are cut out of them.
	defRe := regexp.MustCompile(`\["(` + regexp.QuoteMeta(string(path)) + `(?:` + PathSeparator + `[^"]+)?)"\]\s*=\s*\{`)
	for {
		var target *Region
		var targetPath GroupPath
		for _, loc := range defRe.FindAllStringSubmatchIndex(text, -1) {
			open := loc[1] - 1
			end, balanced := walkBalanced(text, open)
			if !balanced {
				continue
			}
			r := Region{MarkerStart: loc[0], Open: open, Start: open + 1, End: end, Balanced: true}
			p := GroupPath(text[loc[2]:loc[3]])
			if target == nil || r.MarkerStart > target.MarkerStart {
				rr := r
				target = &rr
				targetPath = p
			}
		}
		if target == nil {
			break
		}
		text = deleteRegionLines(text, *target)
		if targetPath == path {
			res.Deleted = true
		} else {
			res.SubgroupsRemoved++
		}
	}

	// Item assignments under the subtree.
	assignRe := regexp.MustCompile(`=\s*"` + regexp.QuoteMeta(string(path)) + `(?:` + PathSeparator + `[^"]*)?"\s*,?`)
	itemsFound := 0
	if cascadeItems {
		var removed int
		text, removed = deleteWholeLines(text, func(line string) bool {
			return itemKeyLineRe.MatchString(line) && assignRe.MatchString(line)
		})
		itemsFound = removed
		res.ItemsRemoved = removed
	} else {
		for _, line := range strings.Split(text, "\n") {
			if itemKeyLineRe.MatchString(line) && assignRe.MatchString(line) {
				itemsFound++
			}
		}
	}

	// UI-state lines: boolean flags whose key mentions the path exactly,
	// as a prefix, or as a token inside a cumulative tree-status key.
	exact := `"` + string(path) + `"`
	prefixed := `"` + string(path) + PathSeparator
	token := string(path)
	var uiRemoved int
	text, uiRemoved = deleteWholeLines(text, func(line string) bool {
		if !strings.Contains(line, "= true") && !strings.Contains(line, "= false") {
			return false
		}
		if strings.Contains(line, exact) || strings.Contains(line, prefixed) {
			return true
		}
		return strings.Contains(line, " "+token+" ") ||
			strings.Contains(line, " "+token+`"]`) ||
			strings.Contains(line, " "+token+PathSeparator)
	})
	res.UIRefsRemoved = uiRemoved

	if !res.Deleted && res.SubgroupsRemoved == 0 && itemsFound == 0 {
		res.addError("group not found: %s", path)
		return res, ErrEntityNotFound
	}

	text = resetCollapsedStatus(text)
	text = normalize(text)

	if err := s.persist(&res.OpResult, doc.Text, text, opts); err != nil {
		return res, err
	}
	return res, nil
}
