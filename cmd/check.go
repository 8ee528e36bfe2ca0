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

var checkCmd = &cobra.Command{
	Use:   "check <diet-id>",
	Short: "Check whether a next diet is scheduled after the given one",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	cont := dietcalc.CheckFutureDiets(d, siblings, e.now.Location())
	printContinuity(cmd.OutOrStdout(), d, cont, e.now.Location(), e.phrases)
	if !cont.HasFutureDiet {
		// Scripts can alert on a missing follow-up.
		os.Exit(3)
	}
	return nil
}

func printContinuity(w io.Writer, d model.Diet, cont dietcalc.Continuity, loc *time.Location, p i18n.Phrases) {
	last, lastOK := dietcalc.LastDay(d)
	fmt.Fprintf(w, "Diet %s (user %s) ends %s\n", d.ID, d.UserID, formatDay(last, lastOK, loc))
	if !cont.HasFutureDiet {
		fmt.Fprintf(w, "  %s\n", p.NoSuccessor)
		return
	}
	start := "–"
	if cont.NextDietStart != nil {
		start = formatDay(*cont.NextDietStart, true, loc)
	}
	fmt.Fprintf(w, "  Next diet: %s, first day %s (gap %d)\n", cont.NextDietID, start, cont.GapDays)
	fmt.Fprintf(w, "  %s\n", dietcalc.SuccessorText(cont.GapDays, p))
}
