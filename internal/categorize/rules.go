package categorize

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	tsmedit "github.com/Xurkon/TSM-Scraper"
)

// LoadRules reads an overlay rule file. The document is a mapping from
// destination group path to matcher fields:
//
//	Transmog`Daggers:
//	  class: Weapon
//	  subclass: Dagger
//	Tradeskills`Alchemy`Potions:
//	  name_contains: potion
//
// Document order is match order, so the file is decoded through a
// yaml.MapSlice rather than a Go map.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes overlay rules from YAML, preserving order.
func ParseRules(data []byte) ([]Rule, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	var rules []Rule
	for _, item := range doc {
		group, ok := item.Key.(string)
		if !ok || group == "" {
			return nil, fmt.Errorf("parse rules: rule key %v is not a group path", item.Key)
		}
		fields, err := matcherFields(item.Value)
		if err != nil {
			return nil, fmt.Errorf("parse rules: %q: %w", group, err)
		}
		r := Rule{Group: tsmedit.GroupPath(group)}
		for k, v := range fields {
			switch k {
			case "class":
				r.Class = v
			case "subclass":
				r.Subclass = v
			case "slot":
				r.Slot = v
			case "name_contains":
				r.NameContains = v
			default:
				return nil, fmt.Errorf("parse rules: %q: unknown matcher field %q", group, k)
			}
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// matcherFields flattens a rule body into string fields. The decoder may
// hand back either an ordered or a plain map depending on nesting.
func matcherFields(v interface{}) (map[string]string, error) {
	out := map[string]string{}
	switch body := v.(type) {
	case nil:
		// A bare group key matches everything; legal but pointless.
		return out, nil
	case yaml.MapSlice:
		for _, f := range body {
			k, ok1 := f.Key.(string)
			s, ok2 := f.Value.(string)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("matcher field %v must be a string pair", f.Key)
			}
			out[k] = s
		}
	case map[string]interface{}:
		for k, fv := range body {
			s, ok := fv.(string)
			if !ok {
				return nil, fmt.Errorf("matcher field %q must be a string", k)
			}
			out[k] = s
		}
	default:
		return nil, fmt.Errorf("rule body must be a mapping, got %T", v)
	}
	return out, nil
}
