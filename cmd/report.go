package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/dietwatch/internal/dietcalc"
	"github.com/Tiliavir/dietwatch/internal/i18n"
)

var (
	reportUser   string
	reportFilter string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise diet warnings",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportUser, "user", "", "Only diets of this user")
	reportCmd.Flags().StringVar(&reportFilter, "filter", "warnings", "Which diets to include: all, active, ended, warnings")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, json, yaml")
}

// report is the serialised form of a warning summary.
type report struct {
	Date    string           `json:"date" yaml:"date"`
	Summary dietcalc.Summary `json:"summary" yaml:"summary"`
	Diets   []reportRow      `json:"diets" yaml:"diets"`
}

type reportRow struct {
	DietID        string `json:"dietId" yaml:"diet_id"`
	UserID        string `json:"userId" yaml:"user_id"`
	FirstDay      string `json:"firstDay,omitempty" yaml:"first_day,omitempty"`
	LastDay       string `json:"lastDay,omitempty" yaml:"last_day,omitempty"`
	DaysRemaining int    `json:"daysRemaining" yaml:"days_remaining"`
	Status        string `json:"status" yaml:"status"`
	Indicator     string `json:"indicator" yaml:"indicator"`
	Tier          string `json:"tier" yaml:"tier"`
	Message       string `json:"message,omitempty" yaml:"message,omitempty"`
	NextDietID    string `json:"nextDietId,omitempty" yaml:"next_diet_id,omitempty"`
	GapDays       *int   `json:"gapDays,omitempty" yaml:"gap_days,omitempty"`
}

// buildReport summarises all rows and lists the ones selected by filter.
func buildReport(rows []dietcalc.Row, filter dietcalc.Filter, now time.Time, p i18n.Phrases) report {
	rep := report{
		Date:    now.Format(dateLayout),
		Summary: dietcalc.Summarize(rows),
		Diets:   []reportRow{},
	}
	loc := now.Location()
	for _, r := range dietcalc.FilterRows(rows, filter) {
		first, firstOK := dietcalc.FirstDay(r.Diet)
		last, lastOK := dietcalc.LastDay(r.Diet)
		row := reportRow{
			DietID:        r.Diet.ID,
			UserID:        r.Diet.UserID,
			DaysRemaining: r.Indicator.DaysRemaining,
			Status:        string(r.Indicator.Status),
			Indicator:     r.Indicator.Kind.String(),
			Tier:          r.Indicator.Tier().String(),
			Message:       dietcalc.IndicatorText(r.Indicator, p),
		}
		if firstOK {
			row.FirstDay = formatDay(first, true, loc)
		}
		if lastOK {
			row.LastDay = formatDay(last, true, loc)
		}
		if c := r.Indicator.Continuity; c.HasFutureDiet {
			gap := c.GapDays
			row.NextDietID = c.NextDietID
			row.GapDays = &gap
		}
		rep.Diets = append(rep.Diets, row)
	}
	return rep
}

func runReport(cmd *cobra.Command, args []string) error {
	filter, err := dietcalc.ParseFilter(reportFilter)
	if err != nil {
		return err
	}
	switch reportFormat {
	case "md", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want md, json or yaml)", reportFormat)
	}

	e := loadEnv()
	diets, err := e.diets(context.Background(), reportUser)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rows := dietcalc.Snapshot(diets, e.now)
	dietcalc.SortRows(rows, dietcalc.SortSeverity)
	rep := buildReport(rows, filter, e.now, e.phrases)

	if err := writeReport(cmd.OutOrStdout(), rep, reportFormat, e.phrases); err != nil {
		fmt.Fprintln(os.Stderr, "error encoding report:", err)
		os.Exit(2)
	}
	return nil
}

func writeReport(w io.Writer, rep report, format string, p i18n.Phrases) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		printMarkdownReport(w, rep, p)
		return nil
	}
}

func printMarkdownReport(w io.Writer, rep report, p i18n.Phrases) {
	s := rep.Summary
	fmt.Fprintf(w, "Diets on %s\n", rep.Date)
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintf(w, "%-20s%d\n", "Critical", s.Critical)
	fmt.Fprintf(w, "%-20s%d\n", "Warning", s.Warning)
	fmt.Fprintf(w, "%-20s%d\n", "Normal", s.Normal)
	fmt.Fprintf(w, "%-20s%d\n", "Ended", s.Ended)
	fmt.Fprintf(w, "%-20s%d\n", "No next diet", s.WithoutSuccessor)
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintf(w, "%-20s%d\n", "Total", s.Total)
	if n := s.Critical + s.Warning; n > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.DietsEnding(n))
	}

	if len(rep.Diets) == 0 {
		return
	}
	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Diet", "User", "Last day", "Days", "Tier", "Message"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	for _, r := range rep.Diets {
		table.Append([]string{
			r.DietID,
			r.UserID,
			r.LastDay,
			formatRemaining(r.DaysRemaining),
			r.Tier,
			r.Message,
		})
	}
	table.Render()
}
