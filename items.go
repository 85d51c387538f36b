package tsmedit

import (
	"regexp"
	"sort"
	"strings"
)

// AddItemsResult reports one AddItems call. Added and Skipped can both be
// non-zero: an ID that already has a live entry anywhere in the document
// counts as skipped, which is what makes repeated imports idempotent.
type AddItemsResult struct {
	OpResult
	Added    int
	Skipped  int
	AddedIDs []int
}

// AddItems inserts one entry per pending item ID into the authoritative
// items table, assigning each to its group path. IDs that already exist
// are skipped. Only the legacy nested layout stores a per-profile items
// table; other variants abort with ErrUnsupportedSchema.
func (s *Store) AddItems(assign map[int]GroupPath, opts Options) (*AddItemsResult, error) {
	res := &AddItemsResult{}

	doc, err := s.load()
	if err != nil {
		res.addError("%v", err)
		return res, err
	}
	if doc.Variant != VariantLegacyNested {
		res.addError("item addition is not supported for the %s layout", doc.Variant)
		return res, ErrUnsupportedSchema
	}

	text, ok := ensureItemsTable(doc.Text, indexRegions(doc.Text))
	if !ok {
		res.addError("could not locate or create the items table")
		return res, ErrRegionNotFound
	}

	idx := indexRegions(text)
	region, ok := idx.authoritative(KindItemsTable)
	if !ok {
		res.addError("could not locate or create the items table")
		return res, ErrRegionNotFound
	}
	res.Warnings = append(res.Warnings, idx.warnings...)

	existing := doc.ItemIDs()

	ids := make([]int, 0, len(assign))
	for id := range assign {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	indent := siblingIndent(text, region)
	var lines []string
	for _, id := range ids {
		if existing[id] {
			res.Skipped++
			continue
		}
		key := EncodeItemKey(id, doc.Variant)
		lines = append(lines, indent+`["`+key+`"] = "`+string(assign[id])+`",`)
		res.Added++
		res.AddedIDs = append(res.AddedIDs, id)
	}

	if len(lines) == 0 {
		return res, nil
	}

	text = insertAtRegionStart(text, region, strings.Join(lines, "\n"))
	text = resetCollapsedStatus(text)
	text = normalize(text)

	if err := s.persist(&res.OpResult, doc.Text, text, opts); err != nil {
		return res, err
	}
	return res, nil
}

// RemoveItemsResult reports one RemoveItems call.
type RemoveItemsResult struct {
	OpResult
	Removed  int
	NotFound int
}

var itemKeyLineRe = regexp.MustCompile(`\["((?:item|i):[\d:]+)"\]\s*=`)

// RemoveItems deletes the entry lines for the given item IDs, whichever
// key encoding they use. IDs without a live entry are counted as not
// found, not errors.
func (s *Store) RemoveItems(ids []int, opts Options) (*RemoveItemsResult, error) {
	res := &RemoveItemsResult{}

	doc, err := s.load()
	if err != nil {
		res.addError("%v", err)
		return res, err
	}

	pending := map[int]bool{}
	for _, id := range ids {
		pending[id] = true
	}

	text, removed := deleteWholeLines(doc.Text, func(line string) bool {
		m := itemKeyLineRe.FindStringSubmatch(line)
		if m == nil {
			return false
		}
		key, ok := DecodeItemKey(strings.TrimRight(m[1], ":"))
		if !ok || !pending[key.ID] {
			return false
		}
		delete(pending, key.ID)
		return true
	})
	res.Removed = removed
	res.NotFound = len(pending)

	if removed == 0 {
		return res, nil
	}

	text = normalize(text)
	if err := s.persist(&res.OpResult, doc.Text, text, opts); err != nil {
		return res, err
	}
	return res, nil
}
