package tsmedit

import (
	"strconv"
	"strings"
)

// PathSeparator joins the segments of a group path. TSM uses a backtick,
// which cannot appear in ordinary group names.
const PathSeparator = "`"

// GroupPath identifies a position in the group tree, e.g. "Transmog`Swords`One Hand".
type GroupPath string

func (p GroupPath) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), PathSeparator)
}

func (p GroupPath) Depth() int {
	return len(p.Segments())
}

// Prefixes returns every ancestor of p plus p itself, shallowest first.
// For "A`B`C" that is ["A", "A`B", "A`B`C"].
func (p GroupPath) Prefixes() []GroupPath {
	segs := p.Segments()
	out := make([]GroupPath, 0, len(segs))
	for i := range segs {
		out = append(out, GroupPath(strings.Join(segs[:i+1], PathSeparator)))
	}
	return out
}

// Parent returns the path with the last segment removed, or false for a
// top-level path.
func (p GroupPath) Parent() (GroupPath, bool) {
	i := strings.LastIndex(string(p), PathSeparator)
	if i < 0 {
		return "", false
	}
	return p[:i], true
}

// IsDescendantOf reports whether p lives strictly below anc in the tree.
func (p GroupPath) IsDescendantOf(anc GroupPath) bool {
	return strings.HasPrefix(string(p), string(anc)+PathSeparator)
}

// ItemKey is the decoded form of the two historical item key encodings.
// The legacy encoding spells out the full item-link suffix
// ("item:12976:0:0:0:0:0:0"); the short one is "i:12976", optionally with
// trailing bonus IDs ("i:12976::4786:6652"). ID is canonical either way, so
// callers never branch on the encoding.
type ItemKey struct {
	ID     int
	Bonus  []int
	Legacy bool
}

const legacyKeySuffix = ":0:0:0:0:0:0"

func (k ItemKey) String() string {
	if k.Legacy {
		return "item:" + strconv.Itoa(k.ID) + legacyKeySuffix
	}
	s := "i:" + strconv.Itoa(k.ID)
	if len(k.Bonus) > 0 {
		parts := make([]string, len(k.Bonus))
		for i, b := range k.Bonus {
			parts[i] = strconv.Itoa(b)
		}
		s += ":" + ":" + strings.Join(parts, ":")
	}
	return s
}

// EncodeItemKey renders the key for an item ID in the encoding the given
// schema variant expects.
func EncodeItemKey(id int, v SchemaVariant) string {
	if v == VariantLegacyNested {
		return ItemKey{ID: id, Legacy: true}.String()
	}
	return ItemKey{ID: id}.String()
}

// DecodeItemKey parses either key encoding. The second return is false when
// s is not an item key at all.
func DecodeItemKey(s string) (ItemKey, bool) {
	switch {
	case strings.HasPrefix(s, "i:"):
		rest := s[len("i:"):]
		id, tail, ok := leadingInt(rest)
		if !ok {
			return ItemKey{}, false
		}
		k := ItemKey{ID: id}
		for _, part := range strings.Split(tail, ":") {
			if part == "" {
				continue
			}
			b, err := strconv.Atoi(part)
			if err != nil {
				return ItemKey{}, false
			}
			k.Bonus = append(k.Bonus, b)
		}
		return k, true
	case strings.HasPrefix(s, "item:"):
		rest := s[len("item:"):]
		id, tail, ok := leadingInt(rest)
		if !ok {
			return ItemKey{}, false
		}
		for _, part := range strings.Split(tail, ":") {
			if part == "" {
				continue
			}
			if _, err := strconv.Atoi(part); err != nil {
				return ItemKey{}, false
			}
		}
		return ItemKey{ID: id, Legacy: true}, true
	}
	return ItemKey{}, false
}

// leadingInt splits "12345:rest" into 12345 and ":rest".
func leadingInt(s string) (int, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	id, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, "", false
	}
	return id, s[i:], true
}

// TreeStatusKey builds the cumulative key the host UI uses for tree
// expansion state: token 0 is the fixed sentinel "1" and token k is the
// path truncated to its first k segments, all space-joined. For
// "Transmog`Swords" that is "1 Transmog Transmog`Swords".
func TreeStatusKey(p GroupPath) string {
	tokens := []string{"1"}
	for _, pre := range p.Prefixes() {
		tokens = append(tokens, string(pre))
	}
	return strings.Join(tokens, " ")
}
