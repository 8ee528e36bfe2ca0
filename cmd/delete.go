package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/dietwatch/internal/storage"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <diet-id>",
	Short: "Delete a diet on the backend and from the local cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	if flagOffline {
		return fmt.Errorf("delete needs the backend; drop --offline")
	}
	id := args[0]
	e := loadEnv()
	ctx := context.Background()

	client, err := e.client(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := client.DeleteDiet(ctx, id); err != nil {
		if isNotFound(err) {
			fmt.Fprintf(os.Stderr, "Diet %q not found.\n", id)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cached, err := storage.FindDiet(e.cache, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not update cache: %v\n", err)
	} else if cached != nil {
		if _, err := storage.RemoveDiet(e.cache, cached.UserID, id); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not update cache: %v\n", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted diet %q.\n", id)
	return nil
}
