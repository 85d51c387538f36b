package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	tsmedit "github.com/Xurkon/TSM-Scraper"
	"github.com/Xurkon/TSM-Scraper/internal/categorize"
	"github.com/Xurkon/TSM-Scraper/internal/scrape"
)

var (
	scrapeLimit   int
	scrapeList    bool
	autoImportMax int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [category]",
	Short: "Scrape item IDs for a database category",
	Long: "Scrape item IDs from the Ascension database for one category,\n" +
		"e.g. sword_1h, plate_chest, herb. Use --list to see every category.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if scrapeList || len(args) == 0 {
			rows := [][]string{}
			for _, name := range scrape.Categories() {
				cat, _ := scrape.Lookup(name)
				rows = append(rows, []string{name, cat.Query, string(cat.Group)})
			}
			fmt.Print(renderTable([]string{"Category", "Filter", "Group"}, rows))
			return nil
		}

		category := args[0]
		cat, ok := scrape.Lookup(category)
		if !ok {
			return fmt.Errorf("unknown category %q", category)
		}
		client, err := newScraper()
		if err != nil {
			return err
		}
		ids, err := client.ListItemIDs(cmd.Context(), category)
		if err != nil {
			return err
		}
		if scrapeLimit > 0 && len(ids) > scrapeLimit {
			ids = ids[:scrapeLimit]
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%s: %d items", category, len(ids))))
		fmt.Println(dimStyle.Render("destination group: ") + string(cat.Group))
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [item-id]",
	Short: "Look up one item and suggest a group for it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid item ID %q", args[0])
		}
		client, err := newScraper()
		if err != nil {
			return err
		}
		item, err := client.Item(cmd.Context(), id)
		if err != nil {
			return err
		}

		cat, err := newCategorizer()
		if err != nil {
			return err
		}
		group := cat.Categorize(categorize.Metadata{
			Class:    item.Class,
			Subclass: item.Subclass,
			Slot:     item.Slot,
			Name:     item.Name,
		})

		fmt.Println(headerStyle.Render(fmt.Sprintf("Item %d", item.ID)))
		fmt.Printf("Name:     %s\n", item.Name)
		fmt.Printf("Class:    %s\n", item.Class)
		fmt.Printf("Subclass: %s\n", item.Subclass)
		fmt.Printf("Slot:     %s\n", item.Slot)
		fmt.Printf("Quality:  %d\n", item.Quality)
		fmt.Printf("Group:    %s\n", okStyle.Render(string(group)))
		return nil
	},
}

var autoImportCmd = &cobra.Command{
	Use:   "auto-import [category ...]",
	Short: "Scrape categories and import them into their groups",
	Long: "Scrape one or more database categories and import every item into\n" +
		"the category's destination group, creating missing groups first.\n" +
		"Honors --dry-run.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newScraper()
		if err != nil {
			return err
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		opts := tsmedit.Options{DryRun: dryRun}

		totalAdded, totalSkipped := 0, 0
		for _, category := range args {
			cat, ok := scrape.Lookup(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}
			ids, err := client.ListItemIDs(cmd.Context(), category)
			if err != nil {
				return err
			}
			if autoImportMax > 0 && len(ids) > autoImportMax {
				ids = ids[:autoImportMax]
			}
			fmt.Printf("%s %d items -> %s\n",
				headerStyle.Render(category+":"), len(ids), cat.Group)
			if len(ids) == 0 {
				continue
			}

			gres, err := store.AddGroups([]tsmedit.GroupPath{cat.Group}, opts)
			if gres != nil {
				reportOutcome(&gres.OpResult)
			}
			if err != nil {
				return err
			}

			assign := make(map[int]tsmedit.GroupPath, len(ids))
			for _, id := range ids {
				assign[id] = cat.Group
			}
			ires, err := store.AddItems(assign, opts)
			if ires != nil {
				reportOutcome(&ires.OpResult)
				totalAdded += ires.Added
				totalSkipped += ires.Skipped
			}
			if err != nil {
				return err
			}
		}

		fmt.Printf("\n%s %d  %s %d\n",
			okStyle.Render("imported:"), totalAdded,
			warnStyle.Render("skipped:"), totalSkipped)
		return nil
	},
}

// newCategorizer builds the rule set, overlaying the configured rules
// file when one is set.
func newCategorizer() (*categorize.Categorizer, error) {
	c := categorize.New()
	if cfg.RulesFile != "" {
		rules, err := categorize.LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		c.Overlay(rules)
	}
	return c, nil
}

func init() {
	scrapeCmd.Flags().IntVarP(&scrapeLimit, "limit", "l", 0, "cap the number of IDs shown")
	scrapeCmd.Flags().BoolVar(&scrapeList, "list", false, "list the known categories")
	autoImportCmd.Flags().IntVarP(&autoImportMax, "limit", "l", 0, "cap items imported per category")
}
