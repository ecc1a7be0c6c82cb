package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/username/leave-planner/internal/holiday"
	"github.com/username/leave-planner/internal/planner"
	"github.com/username/leave-planner/pkg/dateutil"
)

func testResult() *planner.Result {
	return &planner.Result{
		Year:    2025,
		Country: "GB",
		Budget:  5,
		LeaveDates: []time.Time{
			dateutil.Date(2025, time.June, 9),
		},
		TotalDaysOff: 4,
		LeavesUsed:   1,
		Selected: []planner.Opportunity{
			{
				LeaveDates:   []time.Time{dateutil.Date(2025, time.June, 9)},
				TotalDaysOff: 4,
				LeavesNeeded: 1,
				Description:  "Long weekend (Fri-Mon) starting Jun 06",
			},
		},
		Holidays: holiday.Set{
			dateutil.Date(2025, time.December, 25): "Christmas Day",
		},
		Weekends: dateutil.WeekendsOfYear(2025),
	}
}

func TestTextRenderer_Sections(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	NewText(&buf).Render(testResult())
	out := buf.String()

	for _, want := range []string{
		"Leave plan for GB 2025",
		"Total days off:   4",
		"Leave days used:  1/5",
		"Efficiency ratio: 4.0:1",
		"Weekends            |  104",
		"June 2025",
		"Monday, June 09",
		"Long weekend (Fri-Mon) starting Jun 06",
		"Christmas Day",
		"Annual calendar 2025",
		"Mo Tu We Th Fr Sa Su",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Twelve month titles in the calendar grid plus one group header
	if got := strings.Count(out, "December 2025"); got != 1 {
		t.Errorf("December block appears %d times, want 1", got)
	}
}

func TestTextRenderer_EmptyPlan(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := testResult()
	result.LeaveDates = nil
	result.Selected = nil
	result.TotalDaysOff = 0
	result.LeavesUsed = 0

	var buf bytes.Buffer
	NewText(&buf).Render(result)

	if !strings.Contains(buf.String(), "No leave opportunities found") {
		t.Error("empty plan should explain that nothing was found")
	}
}

func TestMonthLines_Alignment(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := testResult()
	lines := monthLines(2025, time.June, result, map[time.Time]bool{})

	// Header, weekday row and full weeks must all share one width
	for i, line := range lines {
		if len(line) != monthWidth {
			t.Errorf("line %d width = %d, want %d: %q", i, len(line), monthWidth, line)
		}
	}

	// June 1 2025 is a Sunday, so the first day lands in the last column
	if !strings.HasSuffix(lines[2], " 1") {
		t.Errorf("first week = %q, want June 1 in the Sunday column", lines[2])
	}
}

func TestHTMLRenderer(t *testing.T) {
	renderer, err := NewHTML()
	if err != nil {
		t.Fatalf("NewHTML() error = %v", err)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, testResult()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>Leave plan 2025 (GB)</title>",
		`class="holiday"`,
		`class="leave"`,
		"Christmas Day",
		"<caption>June</caption>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}

	if got := strings.Count(out, "<caption>"); got != 12 {
		t.Errorf("month table count = %d, want 12", got)
	}
}
