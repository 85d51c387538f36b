package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	tsmedit "github.com/Xurkon/TSM-Scraper"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize the saved variables file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.File == "" {
			return fmt.Errorf("no saved variables file: pass --file or set `file` in the config")
		}
		doc, err := tsmedit.LoadDocument(cfg.File)
		if err != nil {
			return err
		}

		items := doc.Items()
		groups := doc.Groups()

		fmt.Println(headerStyle.Render("TSM SavedVariables"))
		fmt.Printf("File:    %s\n", cfg.File)
		fmt.Printf("Layout:  %s\n", doc.Variant)
		fmt.Printf("Items:   %s\n", okStyle.Render(strconv.Itoa(len(items))))
		fmt.Printf("Groups:  %s\n", okStyle.Render(strconv.Itoa(len(groups))))

		counts := map[tsmedit.GroupPath]int{}
		for _, e := range items {
			counts[e.Group]++
		}
		type row struct {
			group tsmedit.GroupPath
			n     int
		}
		rows := make([]row, 0, len(counts))
		for g, n := range counts {
			rows = append(rows, row{g, n})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].n != rows[j].n {
				return rows[i].n > rows[j].n
			}
			return rows[i].group < rows[j].group
		})
		if len(rows) > 15 {
			rows = rows[:15]
		}

		if len(rows) > 0 {
			fmt.Println()
			fmt.Println(headerStyle.Render("Top groups by item count"))
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{string(r.group), strconv.Itoa(r.n)})
			}
			fmt.Print(renderTable([]string{"Group", "Items"}, table))
		}
		return nil
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the group tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.File == "" {
			return fmt.Errorf("no saved variables file: pass --file or set `file` in the config")
		}
		doc, err := tsmedit.LoadDocument(cfg.File)
		if err != nil {
			return err
		}

		h := doc.Hierarchy()
		if len(h) == 0 {
			fmt.Println(dimStyle.Render("no groups"))
			return nil
		}

		var walk func(parent tsmedit.GroupPath, depth int)
		walk = func(parent tsmedit.GroupPath, depth int) {
			for _, child := range h[parent] {
				segs := child.Segments()
				name := segs[len(segs)-1]
				n := len(doc.ItemsByGroup(child))
				line := ""
				for i := 0; i < depth; i++ {
					line += "  "
				}
				line += name
				if n > 0 {
					line += dimStyle.Render(fmt.Sprintf("  (%d items)", n))
				}
				fmt.Println(line)
				walk(child, depth+1)
			}
		}
		walk(tsmedit.GroupPath(""), 0)
		return nil
	},
}
