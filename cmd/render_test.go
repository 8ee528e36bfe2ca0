package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/dietwatch/internal/dietcalc"
	"github.com/Tiliavir/dietwatch/internal/i18n"
	"github.com/Tiliavir/dietwatch/internal/model"
)

var testNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func dietOn(id, user string, offsets ...int) model.Diet {
	d := model.Diet{ID: id, UserID: user}
	for _, off := range offsets {
		ts := model.TimestampFromTime(testNow.AddDate(0, 0, off))
		d.Days = append(d.Days, model.DietDay{Date: &ts})
	}
	return d
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{-1, "ended"},
		{0, "0 days"},
		{1, "1 day"},
		{5, "5 days"},
	}
	for _, tt := range tests {
		if got := formatRemaining(tt.days); got != tt.want {
			t.Errorf("formatRemaining(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestFormatDay(t *testing.T) {
	ts := model.TimestampFromTime(time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC))
	if got := formatDay(ts, true, time.UTC); got != "2026-10-14" {
		t.Errorf("formatDay UTC = %q", got)
	}
	if got := formatDay(ts, true, time.FixedZone("UTC+2", 7200)); got != "2026-10-15" {
		t.Errorf("formatDay UTC+2 = %q", got)
	}
	if got := formatDay(ts, false, time.UTC); got != "–" {
		t.Errorf("formatDay missing = %q", got)
	}
}

func TestPrintStatus(t *testing.T) {
	d := dietOn("d1", "u1", -6, 0)
	all := []model.Diet{d, dietOn("d2", "u1", 1, 8)}
	ind := dietcalc.Evaluate(d, all, testNow)

	var buf bytes.Buffer
	printStatus(&buf, d, ind, time.UTC, i18n.English())
	out := buf.String()
	for _, want := range []string{
		"Diet d1 (user u1)",
		"2026-10-08 → 2026-10-14",
		"Remaining: 0 days",
		"Status:    critical",
		"Ends today, next diet starts the day after",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("printStatus output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintContinuity(t *testing.T) {
	d := dietOn("d1", "u1", 0)

	var buf bytes.Buffer
	printContinuity(&buf, d, dietcalc.CheckFutureDiets(d, nil, time.UTC), time.UTC, i18n.Polish())
	if !strings.Contains(buf.String(), "brak zaplanowanej następnej diety") {
		t.Errorf("missing no-successor line:\n%s", buf.String())
	}

	buf.Reset()
	next := dietOn("d2", "u1", 2)
	printContinuity(&buf, d, dietcalc.CheckFutureDiets(d, []model.Diet{next}, time.UTC), time.UTC, i18n.English())
	if !strings.Contains(buf.String(), "Next diet: d2, first day 2026-10-16 (gap 2)") {
		t.Errorf("missing successor line:\n%s", buf.String())
	}
}

func TestPrintRowsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printRows(&buf, nil, time.UTC, i18n.English())
	if buf.String() != "No diets found.\n" {
		t.Errorf("printRows(nil) = %q", buf.String())
	}
}

func TestPrintRowsTable(t *testing.T) {
	rows := dietcalc.Snapshot([]model.Diet{dietOn("d1", "u1", 0, 2)}, testNow)
	var buf bytes.Buffer
	printRows(&buf, rows, time.UTC, i18n.English())
	out := buf.String()
	for _, want := range []string{"d1", "u1", "2026-10-16", "warning", "Ends in 2 days, no next diet scheduled"} {
		if !strings.Contains(out, want) {
			t.Errorf("printRows output missing %q:\n%s", want, out)
		}
	}
}

func reportFixture() report {
	diets := []model.Diet{
		dietOn("alone", "u1", -3, 1),
		dietOn("covered", "u2", -3, 2),
		dietOn("next", "u2", 3, 10),
		dietOn("old", "u3", -9, -2),
	}
	rows := dietcalc.Snapshot(diets, testNow)
	dietcalc.SortRows(rows, dietcalc.SortSeverity)
	return buildReport(rows, dietcalc.FilterWarnings, testNow, i18n.English())
}

func TestBuildReport(t *testing.T) {
	rep := reportFixture()
	if rep.Date != "2026-10-14" {
		t.Errorf("Date = %q", rep.Date)
	}
	want := dietcalc.Summary{Total: 4, Critical: 1, Warning: 1, Normal: 1, Ended: 1, WithoutSuccessor: 1}
	if rep.Summary != want {
		t.Errorf("Summary = %+v, want %+v", rep.Summary, want)
	}
	if len(rep.Diets) != 2 {
		t.Fatalf("report diets = %d, want 2", len(rep.Diets))
	}
	if rep.Diets[0].DietID != "alone" || rep.Diets[0].Tier != "alarm" {
		t.Errorf("first row = %+v, want alone/alarm", rep.Diets[0])
	}
	covered := rep.Diets[1]
	if covered.NextDietID != "next" || covered.GapDays == nil || *covered.GapDays != 1 {
		t.Errorf("covered row = %+v, want next diet with gap 1", covered)
	}
	if covered.Indicator != "warning-with-successor" {
		t.Errorf("covered indicator = %q", covered.Indicator)
	}
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, reportFixture(), "json", i18n.English()); err != nil {
		t.Fatal(err)
	}
	var back report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("report is not valid JSON: %v\n%s", err, buf.String())
	}
	if back.Summary.Total != 4 || len(back.Diets) != 2 {
		t.Errorf("decoded report = %+v", back)
	}
}

func TestWriteReportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, reportFixture(), "yaml", i18n.English()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "without_successor: 1") {
		t.Errorf("yaml output missing summary field:\n%s", buf.String())
	}
	var back report
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}
	if len(back.Diets) != 2 || back.Diets[0].DietID != "alone" {
		t.Errorf("decoded yaml report = %+v", back)
	}
}

func TestWriteReportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, reportFixture(), "md", i18n.Polish()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Diets on 2026-10-14", "No next diet", "2 diety wkrótce się kończą", "| alone"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown report missing %q:\n%s", want, out)
		}
	}
}
