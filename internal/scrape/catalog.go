// Package scrape pulls item data from the Ascension database site
// (db.ascension.gg). List pages are keyed by WoW's internal item
// classification, item detail comes from the site's XML endpoint, and
// everything is cached on disk so repeat runs stay off their servers.
package scrape

import (
	"fmt"
	"sort"
	"strings"

	tsmedit "github.com/Xurkon/TSM-Scraper"
)

// Item is the metadata the detail endpoint exposes for one item.
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Class    string `json:"item_class"`
	Subclass string `json:"item_subclass"`
	Slot     string `json:"slot"`
	Quality  int    `json:"quality"`
}

// Category is one scrapeable slice of the item database. Query is the
// class[.subclass[.slot]] filter the list endpoint takes; Group is where
// imported items of this category land.
type Category struct {
	Query string
	Group tsmedit.GroupPath
}

// Item class IDs, per WoW's internal classification.
const (
	classConsumable = 0
	classContainer  = 1
	classWeapon     = 2
	classGem        = 3
	classArmor      = 4
	classProjectile = 6
	classTradeGoods = 7
	classRecipe     = 9
	classQuiver     = 11
	classGlyph      = 16
)

func grp(s string) tsmedit.GroupPath {
	return tsmedit.GroupPath(strings.ReplaceAll(s, "/", tsmedit.PathSeparator))
}

func q(class int, sub interface{}) string {
	if sub == nil {
		return fmt.Sprintf("%d", class)
	}
	return fmt.Sprintf("%d.%v", class, sub)
}

// catalog maps category names (the CLI vocabulary) to their database
// filter and destination group.
var catalog = buildCatalog()

func buildCatalog() map[string]Category {
	c := map[string]Category{
		// Weapons.
		"axe_1h":       {q(classWeapon, 0), grp("Transmog/Axes/One Hand")},
		"axe_2h":       {q(classWeapon, 1), grp("Transmog/Axes/Two Hand")},
		"bow":          {q(classWeapon, 2), grp("Transmog/Bows")},
		"gun":          {q(classWeapon, 3), grp("Transmog/Guns")},
		"mace_1h":      {q(classWeapon, 4), grp("Transmog/Maces/One Hand")},
		"mace_2h":      {q(classWeapon, 5), grp("Transmog/Maces/Two Hand")},
		"polearm":      {q(classWeapon, 6), grp("Transmog/Polearms")},
		"sword_1h":     {q(classWeapon, 7), grp("Transmog/Swords/One Hand")},
		"sword_2h":     {q(classWeapon, 8), grp("Transmog/Swords/Two Hand")},
		"staff":        {q(classWeapon, 10), grp("Transmog/Staves")},
		"fist":         {q(classWeapon, 13), grp("Transmog/Fist")},
		"dagger":       {q(classWeapon, 15), grp("Transmog/Daggers")},
		"thrown":       {q(classWeapon, 16), grp("Transmog/Throwing")},
		"crossbow":     {q(classWeapon, 18), grp("Transmog/Crossbow")},
		"wand":         {q(classWeapon, 19), grp("Transmog/Wands")},
		"fishing_pole": {q(classWeapon, 20), grp("Tradeskills/Fishing/Rods")},

		// Armor that has no slot split.
		"shield":  {q(classArmor, 6), grp("Transmog/Shields")},
		"back":    {q(classArmor, -6), grp("Transmog/Cloaks")},
		"offhand": {q(classArmor, -5), grp("Transmog/Offhand")},
		"tabard":  {q(classArmor, -7), grp("Transmog/Tabards")},
		"shirt":   {q(classArmor, -8), grp("Transmog/Shirts")},
		"amulet":  {q(classArmor, -3), grp("Transmog/Amulets")},
		"ring":    {q(classArmor, -2), grp("Transmog/Rings")},
		"trinket": {q(classArmor, -4), grp("Transmog/Trinkets")},

		// Consumables.
		"potion":  {q(classConsumable, 1), grp("Tradeskills/Alchemy/Potions")},
		"elixir":  {q(classConsumable, 2), grp("Tradeskills/Alchemy/Elixirs")},
		"flask":   {q(classConsumable, 3), grp("Tradeskills/Alchemy/Flasks")},
		"scroll":  {q(classConsumable, 4), grp("Scrolls")},
		"food":    {q(classConsumable, 5), grp("Tradeskills/Cooking/Edibles")},
		"bandage": {q(classConsumable, 7), grp("Tradeskills/FirstAid/Bandages")},

		// Trade goods.
		"trade_goods":     {q(classTradeGoods, nil), grp("Tradeskills/Materials")},
		"trade_parts":     {q(classTradeGoods, 1), grp("Tradeskills/Engineering/Parts")},
		"trade_cloth":     {q(classTradeGoods, 5), grp("Tradeskills/Tailoring/Cloth")},
		"trade_leather":   {q(classTradeGoods, 6), grp("Tradeskills/Materials/Skinning")},
		"metal_stone":     {q(classTradeGoods, 7), grp("Tradeskills/Materials/Mining")},
		"meat":            {q(classTradeGoods, 8), grp("Tradeskills/Cooking/Meats")},
		"herb":            {q(classTradeGoods, 9), grp("Tradeskills/Materials/Herbalism")},
		"elemental":       {q(classTradeGoods, 10), grp("Tradeskills/Materials/Elemental")},
		"enchanting_mats": {q(classTradeGoods, 12), grp("Tradeskills/Enchanting/Reagents")},
		"jc_mats":         {q(classTradeGoods, 4), grp("Tradeskills/Jewelcrafting/Reagents")},

		// Recipes.
		"recipe":                {q(classRecipe, nil), grp("Patterns")},
		"recipe_alchemy":        {q(classRecipe, 6), grp("Patterns/Alchemy")},
		"recipe_blacksmithing":  {q(classRecipe, 4), grp("Patterns/Blacksmithing")},
		"recipe_cooking":        {q(classRecipe, 5), grp("Patterns/Cooking")},
		"recipe_enchanting":     {q(classRecipe, 8), grp("Patterns/Enchanting")},
		"recipe_engineering":    {q(classRecipe, 3), grp("Patterns/Engineering")},
		"recipe_first_aid":      {q(classRecipe, 7), grp("Patterns/First Aid")},
		"recipe_fishing":        {q(classRecipe, 9), grp("Patterns/Fishing")},
		"recipe_jewelcrafting":  {q(classRecipe, 10), grp("Patterns/Jewelcrafting")},
		"recipe_leatherworking": {q(classRecipe, 1), grp("Patterns/Leatherworking")},
		"recipe_tailoring":      {q(classRecipe, 2), grp("Patterns/Tailoring")},

		// Gems.
		"gem":        {q(classGem, nil), grp("Tradeskills/Jewelcrafting/Gems")},
		"gem_red":    {q(classGem, 0), grp("Tradeskills/Jewelcrafting/Gems/Red")},
		"gem_blue":   {q(classGem, 1), grp("Tradeskills/Jewelcrafting/Gems/Blue")},
		"gem_yellow": {q(classGem, 2), grp("Tradeskills/Jewelcrafting/Gems/Yellow")},
		"gem_meta":   {q(classGem, 6), grp("Tradeskills/Jewelcrafting/Gems/Meta")},

		// Containers, ammo, glyph umbrella categories.
		"container": {q(classContainer, nil), grp("Containers")},
		"bag":       {q(classContainer, 0), grp("Tradeskills/Tailoring/Bags")},
		"ammo":      {q(classProjectile, nil), grp("Ammo")},
		"quiver":    {q(classQuiver, nil), grp("Quivers")},
		"glyph":     {q(classGlyph, nil), grp("Glyphs")},
	}

	// Armor splits by material and equipment slot; the slot IDs are the
	// site's inventory-slot filter values.
	materials := []struct {
		name string
		id   int
	}{
		{"cloth", 1}, {"leather", 2}, {"mail", 3}, {"plate", 4},
	}
	slots := []struct {
		name string
		id   int
		leaf string
	}{
		{"helm", 1, "Helm"},
		{"shoulders", 3, "Shoulders"},
		{"chest", 5, "Chest"},
		{"waist", 6, "Waist"},
		{"legs", 7, "Legs"},
		{"feet", 8, "Feet"},
		{"wrists", 9, "Wrists"},
		{"hands", 10, "Hands"},
	}
	for _, m := range materials {
		leaf := strings.ToUpper(m.name[:1]) + m.name[1:]
		for _, s := range slots {
			c[m.name+"_"+s.name] = Category{
				Query: fmt.Sprintf("%d.%d.%d", classArmor, m.id, s.id),
				Group: grp("Transmog/" + leaf + "/" + s.leaf),
			}
		}
	}
	return c
}

// Lookup resolves a category name.
func Lookup(name string) (Category, bool) {
	c, ok := catalog[strings.ToLower(name)]
	return c, ok
}

// Categories returns every known category name, sorted.
func Categories() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
