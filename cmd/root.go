package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagOffline  bool
	flagLocale   string
	flagTimezone string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "dw",
	Short: "dietwatch – end-of-diet warnings for coaches",
	Long: `dw checks which of your clients' diets are about to end and whether a
follow-up diet is already scheduled. Diets are read from the diet backend
REST API, or from the local cache in ~/.dietwatch/ when --offline is set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagOffline, "offline", false, "Read diets from the local cache instead of the backend")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "Message language: en or pl (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "IANA timezone that defines today (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log backend requests to stderr")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(deleteCmd)
}
