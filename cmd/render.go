package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/Tiliavir/dietwatch/internal/dietcalc"
	"github.com/Tiliavir/dietwatch/internal/i18n"
	"github.com/Tiliavir/dietwatch/internal/model"
)

const dateLayout = "2006-01-02"

// formatDay renders the calendar date of ts in loc, or "–" when ok is false.
func formatDay(ts model.Timestamp, ok bool, loc *time.Location) string {
	if !ok {
		return "–"
	}
	return ts.Time().In(loc).Format(dateLayout)
}

// formatRemaining renders a days-remaining count; ended diets show "ended".
func formatRemaining(days int) string {
	switch {
	case days < 0:
		return "ended"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// tierMarker is a short plain-text badge for an indicator tier.
func tierMarker(t dietcalc.Tier) string {
	switch t {
	case dietcalc.TierAlarm:
		return "!!"
	case dietcalc.TierCaution:
		return "! "
	case dietcalc.TierInfo:
		return "i "
	case dietcalc.TierNeutral:
		return "– "
	default:
		return "  "
	}
}

// printRows renders rows as a table.
func printRows(w io.Writer, rows []dietcalc.Row, loc *time.Location, p i18n.Phrases) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No diets found.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "Diet", "User", "First day", "Last day", "Remaining", "Status", "Message"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, r := range rows {
		first, firstOK := dietcalc.FirstDay(r.Diet)
		last, lastOK := dietcalc.LastDay(r.Diet)
		table.Append([]string{
			tierMarker(r.Indicator.Tier()),
			r.Diet.ID,
			r.Diet.UserID,
			formatDay(first, firstOK, loc),
			formatDay(last, lastOK, loc),
			formatRemaining(r.Indicator.DaysRemaining),
			string(r.Indicator.Status),
			dietcalc.IndicatorText(r.Indicator, p),
		})
	}
	table.Render()
}
