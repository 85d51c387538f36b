// Package categorize maps item metadata onto TSM group paths. The built-in
// rule set mirrors the classic class/subclass/slot taxonomy; callers can
// overlay their own rules from a YAML file, and overlay order is the match
// order.
package categorize

import (
	"strings"

	tsmedit "github.com/Xurkon/TSM-Scraper"
)

// Uncategorized is the group every unmatched item falls into.
const Uncategorized = tsmedit.GroupPath("Other")

// Rule matches item metadata against a destination group. Empty fields
// match anything; Slot matches case-insensitively as a substring so
// "Head" also catches "Head (Cosmetic)". NameContains is a last-resort
// match on the item name.
type Rule struct {
	Class        string
	Subclass     string
	Slot         string
	NameContains string
	Group        tsmedit.GroupPath
}

func (r Rule) matches(it Metadata) bool {
	if r.Class != "" && r.Class != it.Class {
		return false
	}
	if r.Subclass != "" && r.Subclass != it.Subclass {
		return false
	}
	if r.Slot != "" && !strings.Contains(strings.ToLower(it.Slot), strings.ToLower(r.Slot)) {
		return false
	}
	if r.NameContains != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(r.NameContains)) {
		return false
	}
	return true
}

// Metadata is the item description the rules run against.
type Metadata struct {
	Class    string
	Subclass string
	Slot     string
	Name     string
}

// Categorizer resolves metadata to a group path. Rules are checked in
// order and the first match wins; overlay rules are checked before the
// built-in set.
type Categorizer struct {
	overlay  []Rule
	builtin  []Rule
	fallback tsmedit.GroupPath
}

// New returns a categorizer carrying only the built-in rule set.
func New() *Categorizer {
	return &Categorizer{
		builtin:  defaultRules(),
		fallback: Uncategorized,
	}
}

// Overlay prepends rules that take precedence over the built-in set.
func (c *Categorizer) Overlay(rules []Rule) {
	c.overlay = append(c.overlay, rules...)
}

// Categorize returns the group path for the item. The fallback group is
// returned when no rule matches; it is never empty.
func (c *Categorizer) Categorize(it Metadata) tsmedit.GroupPath {
	for _, r := range c.overlay {
		if r.matches(it) {
			return r.Group
		}
	}
	for _, r := range c.builtin {
		if r.matches(it) {
			return r.Group
		}
	}
	return c.fallback
}

// CategorizeBatch buckets item IDs by their resolved group, the shape
// AddItems consumes.
func (c *Categorizer) CategorizeBatch(items map[int]Metadata) map[int]tsmedit.GroupPath {
	out := make(map[int]tsmedit.GroupPath, len(items))
	for id, it := range items {
		out[id] = c.Categorize(it)
	}
	return out
}

// Groups returns every distinct destination group, sorted. Useful for
// pre-creating the group tree before an import.
func (c *Categorizer) Groups() []tsmedit.GroupPath {
	seen := map[tsmedit.GroupPath]bool{}
	var out []tsmedit.GroupPath
	for _, r := range append(append([]Rule{}, c.overlay...), c.builtin...) {
		if !seen[r.Group] {
			seen[r.Group] = true
			out = append(out, r.Group)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func g(s string) tsmedit.GroupPath {
	return tsmedit.GroupPath(strings.ReplaceAll(s, "/", tsmedit.PathSeparator))
}

// defaultRules builds the built-in taxonomy. Armor rules for the four
// main materials share the same slot layout, so they are generated.
func defaultRules() []Rule {
	rules := []Rule{
		// Weapons.
		{Class: "Weapon", Subclass: "Sword (1H)", Group: g("Transmog/Swords/One Hand")},
		{Class: "Weapon", Subclass: "Sword (2H)", Group: g("Transmog/Swords/Two Hand")},
		{Class: "Weapon", Subclass: "Axe (1H)", Group: g("Transmog/Axes/One Hand")},
		{Class: "Weapon", Subclass: "Axe (2H)", Group: g("Transmog/Axes/Two Hand")},
		{Class: "Weapon", Subclass: "Mace (1H)", Group: g("Transmog/Maces/One Hand")},
		{Class: "Weapon", Subclass: "Mace (2H)", Group: g("Transmog/Maces/Two Hand")},
		{Class: "Weapon", Subclass: "Dagger", Group: g("Transmog/Daggers")},
		{Class: "Weapon", Subclass: "Staff", Group: g("Transmog/Staves")},
		{Class: "Weapon", Subclass: "Polearm", Group: g("Transmog/Polearms")},
		{Class: "Weapon", Subclass: "Bow", Group: g("Transmog/Bows")},
		{Class: "Weapon", Subclass: "Gun", Group: g("Transmog/Guns")},
		{Class: "Weapon", Subclass: "Crossbow", Group: g("Transmog/Crossbow")},
		{Class: "Weapon", Subclass: "Wand", Group: g("Transmog/Wands")},
		{Class: "Weapon", Subclass: "Thrown", Group: g("Transmog/Throwing")},
		{Class: "Weapon", Subclass: "Fist Weapon", Group: g("Transmog/Fist Weapons")},
		{Class: "Weapon", Subclass: "Fishing Pole", Group: g("Tradeskills/Fishing/Rods")},
	}

	// Armor by material and slot. Robes land with chests.
	slots := []struct{ slot, leaf string }{
		{"Head", "Helm"},
		{"Shoulder", "Shoulders"},
		{"Chest", "Chest"},
		{"Robe", "Chest"},
		{"Waist", "Waist"},
		{"Legs", "Legs"},
		{"Feet", "Feet"},
		{"Wrists", "Wrists"},
		{"Hands", "Hands"},
	}
	for _, material := range []string{"Cloth", "Leather", "Mail", "Plate"} {
		for _, s := range slots {
			rules = append(rules, Rule{
				Class:    "Armor",
				Subclass: material,
				Slot:     s.slot,
				Group:    g("Transmog/" + material + "/" + s.leaf),
			})
		}
	}
	rules = append(rules, []Rule{
		{Class: "Armor", Subclass: "Cloth", Slot: "Back", Group: g("Transmog/Cloaks")},
		{Class: "Armor", Subclass: "Shield", Group: g("Transmog/Shields")},
		{Class: "Armor", Subclass: "Miscellaneous", Slot: "Off Hand", Group: g("Transmog/Offhand")},
		{Class: "Armor", Subclass: "Miscellaneous", Slot: "Held In Off-hand", Group: g("Transmog/Offhand")},
		{Class: "Armor", Subclass: "Miscellaneous", Slot: "Tabard", Group: g("Transmog/Tabards")},
		{Class: "Armor", Subclass: "Miscellaneous", Slot: "Shirt", Group: g("Transmog/Shirts")},

		// Consumables, with name fallbacks for mislabeled entries.
		{Class: "Consumable", Subclass: "Potion", Group: g("Tradeskills/Alchemy/Potions")},
		{Class: "Consumable", Subclass: "Elixir", Group: g("Tradeskills/Alchemy/Elixirs")},
		{Class: "Consumable", Subclass: "Flask", Group: g("Tradeskills/Alchemy/Flasks")},
		{Class: "Consumable", Subclass: "Food", Group: g("Tradeskills/Cooking/Edibles")},
		{Class: "Consumable", Subclass: "Drink", Group: g("Tradeskills/Cooking/Drinks")},
		{Class: "Consumable", Subclass: "Bandage", Group: g("Tradeskills/FirstAid/Bandages")},
		{Class: "Consumable", Subclass: "Scroll", Group: g("Scrolls")},
		{Class: "Consumable", NameContains: "potion", Group: g("Tradeskills/Alchemy/Potions")},
		{Class: "Consumable", NameContains: "elixir", Group: g("Tradeskills/Alchemy/Elixirs")},
		{Class: "Consumable", NameContains: "flask", Group: g("Tradeskills/Alchemy/Flasks")},
		{Class: "Consumable", NameContains: "scroll", Group: g("Scrolls")},

		// Trade goods.
		{Class: "Trade Goods", Subclass: "Metal & Stone", Group: g("Tradeskills/Materials/Mining")},
		{Class: "Trade Goods", Subclass: "Herb", Group: g("Tradeskills/Materials/Herbalism")},
		{Class: "Trade Goods", Subclass: "Leather", Group: g("Tradeskills/Materials/Skinning")},
		{Class: "Trade Goods", Subclass: "Cloth", Group: g("Tradeskills/Tailoring/Cloth")},
		{Class: "Trade Goods", Subclass: "Meat", Group: g("Tradeskills/Cooking/Meats")},
		{Class: "Trade Goods", Subclass: "Elemental", Group: g("Tradeskills/Materials/Elemental")},
		{Class: "Trade Goods", Subclass: "Enchanting", Group: g("Tradeskills/Enchanting/Reagents")},
		{Class: "Trade Goods", Subclass: "Jewelcrafting", Group: g("Tradeskills/Jewelcrafting/Reagents")},
		{Class: "Trade Goods", Subclass: "Engineering", Group: g("Tradeskills/Engineering/Reagents")},

		// Recipes.
		{Class: "Recipe", Subclass: "Alchemy", Group: g("Patterns/Alchemy")},
		{Class: "Recipe", Subclass: "Blacksmithing", Group: g("Patterns/Blacksmithing")},
		{Class: "Recipe", Subclass: "Cooking", Group: g("Patterns/Cooking")},
		{Class: "Recipe", Subclass: "Enchanting", Group: g("Patterns/Enchanting")},
		{Class: "Recipe", Subclass: "Engineering", Group: g("Patterns/Engineering")},
		{Class: "Recipe", Subclass: "First Aid", Group: g("Patterns/First Aid")},
		{Class: "Recipe", Subclass: "Jewelcrafting", Group: g("Patterns/Jewelcrafting")},
		{Class: "Recipe", Subclass: "Leatherworking", Group: g("Patterns/Leatherworking")},
		{Class: "Recipe", Subclass: "Tailoring", Group: g("Patterns/Tailoring")},

		// Catch-alls by class.
		{Class: "Gem", Group: g("Tradeskills/Jewelcrafting/Gems")},
		{Class: "Container", Group: g("Tradeskills/Tailoring/Bags")},
		{Class: "Projectile", Group: g("Ammo")},
		{Class: "Quest", Group: g("Quest")},
		{Class: "Junk", Group: g("Trash")},
	}...)
	return rules
}
