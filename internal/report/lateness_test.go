package report

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(v time.Time) *time.Time { return &v }

func TestTyoLabel(t *testing.T) {
	today := day(2024, 1, 15)

	cases := []struct {
		name    string
		base    *time.Time
		actedAt *time.Time
		want    string
	}{
		{"acted today", timePtr(day(2024, 1, 10)), timePtr(time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)), "T"},
		{"base is today", timePtr(day(2024, 1, 15)), nil, "T"},
		{"one day old", timePtr(day(2024, 1, 14)), nil, "Y"},
		{"five days old", timePtr(day(2024, 1, 10)), nil, "5"},
		{"future base", timePtr(day(2024, 1, 20)), nil, "-"},
		{"no base", nil, nil, "-"},
		{"acted yesterday does not help", timePtr(day(2024, 1, 13)), timePtr(day(2024, 1, 14)), "2"},
	}
	for _, tc := range cases {
		if got := TyoLabel(tc.base, tc.actedAt, today); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

// Stored dates parse as UTC midnights while the report date is midnight
// in the configured location; labels must come out the same as if both
// shared a zone.
func TestTyoLabelMixedLocations(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, tokyo)

	if got := TyoLabel(timePtr(day(2024, 1, 9)), nil, today); got != "Y" {
		t.Fatalf("one day old across zones: got %q want Y", got)
	}
	if got := TyoLabel(timePtr(day(2024, 1, 10)), nil, today); got != "T" {
		t.Fatalf("same date across zones: got %q want T", got)
	}
	if got := TyoLabel(timePtr(day(2024, 1, 5)), nil, today); got != "5" {
		t.Fatalf("five days old across zones: got %q want 5", got)
	}
}

func TestReportTyoMixedLocations(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	report := time.Date(2024, 1, 10, 0, 0, 0, 0, tokyo)

	if got := ReportTyo(report, nil, timePtr(day(2024, 1, 9)), ModeDueOnly); got != "Y" {
		t.Fatalf("dueOnly across zones: got %q want Y", got)
	}
	// A window that opens tomorrow must stay blank even when the start
	// instant is under 24h away.
	if got := ReportTyo(report, timePtr(day(2024, 1, 11)), timePtr(day(2024, 1, 12)), ModeRange); got != "-" {
		t.Fatalf("range before start across zones: got %q want -", got)
	}
	if got := ReportTyo(report, timePtr(day(2024, 1, 10)), timePtr(day(2024, 1, 12)), ModeRange); got != "T" {
		t.Fatalf("range on start across zones: got %q want T", got)
	}
}

func TestReportTyoDueOnly(t *testing.T) {
	due := timePtr(day(2024, 1, 10))

	cases := []struct {
		report time.Time
		want   string
	}{
		{day(2024, 1, 9), "-"},
		{day(2024, 1, 10), "T"},
		{day(2024, 1, 11), "Y"},
		{day(2024, 1, 15), "4"},
	}
	for _, tc := range cases {
		if got := ReportTyo(tc.report, nil, due, ModeDueOnly); got != tc.want {
			t.Fatalf("dueOnly on %s: got %q want %q", tc.report.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestReportTyoRange(t *testing.T) {
	start := timePtr(day(2024, 1, 8))
	due := timePtr(day(2024, 1, 10))

	cases := []struct {
		report time.Time
		want   string
	}{
		{day(2024, 1, 7), "-"},
		{day(2024, 1, 8), "T"},
		{day(2024, 1, 9), "T"},
		{day(2024, 1, 10), "T"},
		{day(2024, 1, 11), "Y"},
		{day(2024, 1, 13), "3"},
	}
	for _, tc := range cases {
		if got := ReportTyo(tc.report, start, due, ModeRange); got != tc.want {
			t.Fatalf("range on %s: got %q want %q", tc.report.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestReportTyoWithoutDueDate(t *testing.T) {
	if got := ReportTyo(day(2024, 1, 10), nil, nil, ModeRange); got != "-" {
		t.Fatalf("nil due date: got %q want -", got)
	}
}

func TestLatenessOrdering(t *testing.T) {
	// Most late first: big day counts, then "Y", then "T", then "-".
	order := []string{"5", "2", "Y", "T", "-"}
	for i := 0; i < len(order)-1; i++ {
		if !laterThan(order[i], order[i+1]) {
			t.Fatalf("%q should outrank %q", order[i], order[i+1])
		}
		if laterThan(order[i+1], order[i]) {
			t.Fatalf("%q must not outrank %q", order[i+1], order[i])
		}
	}
	if laterThan("3", "3") {
		t.Fatal("equal labels must not outrank each other")
	}
}
