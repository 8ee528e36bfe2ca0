package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/dietwatch/internal/api"
	"github.com/Tiliavir/dietwatch/internal/storage"
)

var (
	syncUser   string
	syncDryRun bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch a user's diets from the backend into the local cache",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncUser, "user", "", "User whose diets to fetch (required)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print planned changes without writing")
	_ = syncCmd.MarkFlagRequired("user")
}

func runSync(cmd *cobra.Command, args []string) error {
	if flagOffline {
		return fmt.Errorf("sync needs the backend; drop --offline")
	}
	e := loadEnv()
	ctx := context.Background()

	client, err := e.client(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	dryTag := ""
	if syncDryRun {
		dryTag = " [dry-run]"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Syncing diets of user %s%s...\n\n", syncUser, dryTag)

	diets, err := client.ListDiets(ctx, api.ListOptions{UserID: syncUser})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch diets: %v\n", err)
		os.Exit(2)
	}

	result, err := storage.SyncDiets(e.cache, diets, storage.SyncOptions{
		UserID: syncUser,
		DryRun: syncDryRun,
		Now:    e.now,
		Out:    out,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sync error: %v\n", err)
		os.Exit(2)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d imported\n", result.Imported)
	fmt.Fprintf(out, "  %d updated\n", result.Updated)
	fmt.Fprintf(out, "  %d skipped\n", result.Skipped)
	fmt.Fprintf(out, "  %d removed\n", result.Removed)
	return nil
}
