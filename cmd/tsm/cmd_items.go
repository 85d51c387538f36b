package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	tsmedit "github.com/Xurkon/TSM-Scraper"
)

var (
	importGroup string
	importItems string
	removeItems string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import item IDs into a group",
	Long: "Import item IDs into a TSM group. IDs are given comma-separated,\n" +
		"or as @path to read one ID per line from a file. The group path uses\n" +
		"backticks, e.g. Transmog`Swords`One Hand.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseItemIDs(importItems)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("no valid item IDs in %q", importItems)
		}

		store, err := newStore()
		if err != nil {
			return err
		}
		assign := make(map[int]tsmedit.GroupPath, len(ids))
		for _, id := range ids {
			assign[id] = tsmedit.GroupPath(importGroup)
		}

		res, err := store.AddItems(assign, tsmedit.Options{DryRun: dryRun})
		if res != nil {
			reportOutcome(&res.OpResult)
			fmt.Printf("%s %d  %s %d\n",
				okStyle.Render("added:"), res.Added,
				warnStyle.Render("skipped:"), res.Skipped)
		}
		return err
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove items by ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseItemIDs(removeItems)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("no valid item IDs in %q", removeItems)
		}

		store, err := newStore()
		if err != nil {
			return err
		}
		res, err := store.RemoveItems(ids, tsmedit.Options{DryRun: dryRun})
		if res != nil {
			reportOutcome(&res.OpResult)
			fmt.Printf("%s %d  %s %d\n",
				okStyle.Render("removed:"), res.Removed,
				warnStyle.Render("not found:"), res.NotFound)
		}
		return err
	},
}

func init() {
	importCmd.Flags().StringVarP(&importGroup, "group", "g", "", "destination group path")
	importCmd.Flags().StringVarP(&importItems, "items", "i", "", "comma-separated item IDs, or @file")
	_ = importCmd.MarkFlagRequired("group")
	_ = importCmd.MarkFlagRequired("items")

	removeCmd.Flags().StringVarP(&removeItems, "items", "i", "", "comma-separated item IDs, or @file")
	_ = removeCmd.MarkFlagRequired("items")
}

// parseItemIDs accepts "123,456" or "@ids.txt" with one ID per line.
// Non-numeric tokens are skipped rather than fatal, matching how hand
// curated ID lists tend to carry comments.
func parseItemIDs(spec string) ([]int, error) {
	var tokens []string
	if strings.HasPrefix(spec, "@") {
		data, err := os.ReadFile(spec[1:])
		if err != nil {
			return nil, fmt.Errorf("read item list: %w", err)
		}
		tokens = strings.Split(string(data), "\n")
	} else {
		tokens = strings.Split(spec, ",")
	}

	var ids []int
	seen := map[int]bool{}
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		id, err := strconv.Atoi(tok)
		if err != nil || id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
