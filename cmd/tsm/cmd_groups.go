package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	tsmedit "github.com/Xurkon/TSM-Scraper"
)

var deleteKeepItems bool

var addGroupsCmd = &cobra.Command{
	Use:   "add-groups [path ...]",
	Short: "Create groups (ancestors included)",
	Long: "Create one or more groups. Ancestors are created automatically,\n" +
		"parents before children. Paths use backticks: Transmog`Swords`One Hand.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		paths := make([]tsmedit.GroupPath, 0, len(args))
		for _, a := range args {
			p := tsmedit.GroupPath(strings.TrimSpace(a))
			if p != "" {
				paths = append(paths, p)
			}
		}

		res, err := store.AddGroups(paths, tsmedit.Options{DryRun: dryRun})
		if res != nil {
			reportOutcome(&res.OpResult)
			for _, p := range res.GroupsAdded {
				fmt.Println(okStyle.Render("+ ") + string(p))
			}
			fmt.Printf("%s %d  %s %d\n",
				okStyle.Render("created:"), res.Added,
				warnStyle.Render("existing:"), res.Skipped)
		}
		return err
	},
}

var renameGroupCmd = &cobra.Command{
	Use:   "rename-group [old] [new]",
	Short: "Rename a group and every reference to it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		res, err := store.RenameGroup(
			tsmedit.GroupPath(args[0]),
			tsmedit.GroupPath(args[1]),
			tsmedit.Options{DryRun: dryRun},
		)
		if res != nil {
			reportOutcome(&res.OpResult)
			if res.Renamed {
				fmt.Printf("%s %d group references, %d item assignments\n",
					okStyle.Render("updated:"), res.GroupsUpdated, res.ItemsUpdated)
			}
		}
		return err
	},
}

var deleteGroupCmd = &cobra.Command{
	Use:   "delete-group [path]",
	Short: "Delete a group, its subgroups and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		res, err := store.DeleteGroup(
			tsmedit.GroupPath(args[0]),
			!deleteKeepItems,
			tsmedit.Options{DryRun: dryRun},
		)
		if res != nil {
			reportOutcome(&res.OpResult)
			if res.Deleted || res.SubgroupsRemoved > 0 {
				fmt.Printf("%s subgroups %d, items %d, ui refs %d\n",
					okStyle.Render("deleted:"),
					res.SubgroupsRemoved, res.ItemsRemoved, res.UIRefsRemoved)
			}
		}
		return err
	},
}

func init() {
	deleteGroupCmd.Flags().BoolVar(&deleteKeepItems, "keep-items", false,
		"leave item assignments in place instead of cascading the delete")
}
