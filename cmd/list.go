package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/dietwatch/internal/dietcalc"
)

var (
	listUser   string
	listFilter string
	listSort   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List diets with their end-of-diet warnings",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listUser, "user", "", "Only diets of this user")
	listCmd.Flags().StringVar(&listFilter, "filter", "all", "Which diets to show: all, active, ended, warnings")
	listCmd.Flags().StringVar(&listSort, "sort", "days", "Sort order: days, severity, user")
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := dietcalc.ParseFilter(listFilter)
	if err != nil {
		return err
	}
	sortKey, err := dietcalc.ParseSortKey(listSort)
	if err != nil {
		return err
	}

	e := loadEnv()
	diets, err := e.diets(context.Background(), listUser)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rows := dietcalc.FilterRows(dietcalc.Snapshot(diets, e.now), filter)
	dietcalc.SortRows(rows, sortKey)
	printRows(cmd.OutOrStdout(), rows, e.now.Location(), e.phrases)
	return nil
}
