package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/dietwatch/internal/dietcalc"
	"github.com/Tiliavir/dietwatch/internal/i18n"
	"github.com/Tiliavir/dietwatch/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status <diet-id>",
	Short: "Show how long a diet has left and whether a next one is scheduled",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e := loadEnv()
	ctx := context.Background()

	d, siblings, found, err := e.diet(ctx, args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Diet %q not found.\n", args[0])
		os.Exit(1)
	}

	ind := dietcalc.Evaluate(d, siblings, e.now)
	printStatus(cmd.OutOrStdout(), d, ind, e.now.Location(), e.phrases)
	return nil
}

func printStatus(w io.Writer, d model.Diet, ind dietcalc.Indicator, loc *time.Location, p i18n.Phrases) {
	first, firstOK := dietcalc.FirstDay(d)
	last, lastOK := dietcalc.LastDay(d)

	fmt.Fprintf(w, "Diet %s (user %s)\n", d.ID, d.UserID)
	fmt.Fprintf(w, "  Days:      %s → %s\n", formatDay(first, firstOK, loc), formatDay(last, lastOK, loc))
	fmt.Fprintf(w, "  Remaining: %s\n", formatRemaining(ind.DaysRemaining))
	fmt.Fprintf(w, "  Status:    %s\n", ind.Status)
	if msg := dietcalc.IndicatorText(ind, p); msg != "" {
		fmt.Fprintf(w, "  %s%s\n", tierMarker(ind.Tier()), msg)
	}
}
