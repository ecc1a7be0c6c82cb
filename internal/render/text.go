package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/username/leave-planner/internal/planner"
	"github.com/username/leave-planner/pkg/dateutil"
)

var (
	holidayColor = color.New(color.FgRed, color.Bold)
	leaveColor   = color.New(color.FgBlue, color.Bold)
	weekendColor = color.New(color.FgHiBlack)
	headerColor  = color.New(color.FgGreen, color.Bold)
)

// TextRenderer writes a plan as tables and an annual calendar grid
type TextRenderer struct {
	out io.Writer
}

// NewText creates a renderer writing to out
func NewText(out io.Writer) *TextRenderer {
	return &TextRenderer{out: out}
}

// Render writes the full report for a planning result
func (r *TextRenderer) Render(result *planner.Result) {
	r.renderSummary(result)
	r.renderBreakdown(result)
	r.renderLeaveDates(result)
	r.renderHolidays(result)
	r.renderCalendar(result)
}

func (r *TextRenderer) renderSummary(result *planner.Result) {
	fmt.Fprintln(r.out, headerColor.Sprintf("📊 Leave plan for %s %d", result.Country, result.Year))
	fmt.Fprintln(r.out, "═══════════════════════════════════════════════════════")
	fmt.Fprintf(r.out, "  Total days off:   %d\n", result.TotalDaysOff)
	fmt.Fprintf(r.out, "  Leave days used:  %d/%d\n", result.LeavesUsed, result.Budget)
	fmt.Fprintf(r.out, "  Efficiency ratio: %.1f:1\n", result.Efficiency())
	fmt.Fprintln(r.out)
}

func (r *TextRenderer) renderBreakdown(result *planner.Result) {
	fmt.Fprintln(r.out, headerColor.Sprint("📋 Strategy breakdown"))
	fmt.Fprintln(r.out, "  Category            | Days")
	fmt.Fprintln(r.out, "  --------------------+-----")
	fmt.Fprintf(r.out, "  Weekends            | %4d\n", len(result.Weekends))
	fmt.Fprintf(r.out, "  Public holidays     | %4d\n", len(result.Holidays))
	fmt.Fprintf(r.out, "  Optimal leave days  | %4d\n", result.LeavesUsed)
	fmt.Fprintf(r.out, "  Total days off      | %4d\n", result.TotalDaysOff)
	fmt.Fprintln(r.out)
}

func (r *TextRenderer) renderLeaveDates(result *planner.Result) {
	fmt.Fprintln(r.out, headerColor.Sprint("🎯 Recommended leave dates"))

	if len(result.LeaveDates) == 0 {
		fmt.Fprintln(r.out, "  No leave opportunities found in the preferred months.")
		fmt.Fprintln(r.out, "  Try selecting additional months or a larger budget.")
		fmt.Fprintln(r.out)
		return
	}

	// Group by month, keeping date order within each group
	byMonth := make(map[time.Month][]time.Time)
	months := []time.Month{}
	for _, date := range result.LeaveDates {
		if _, ok := byMonth[date.Month()]; !ok {
			months = append(months, date.Month())
		}
		byMonth[date.Month()] = append(byMonth[date.Month()], date)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	for _, month := range months {
		fmt.Fprintf(r.out, "  %s %d\n", month, result.Year)
		for _, date := range byMonth[month] {
			fmt.Fprintf(r.out, "    - %s\n", leaveColor.Sprint(date.Format("Monday, January 02")))
		}
	}

	fmt.Fprintln(r.out)
	for _, opp := range result.Selected {
		fmt.Fprintf(r.out, "  %s (%d days off for %d leave days)\n",
			opp.Description, opp.TotalDaysOff, opp.LeavesNeeded)
	}
	fmt.Fprintln(r.out)
}

func (r *TextRenderer) renderHolidays(result *planner.Result) {
	fmt.Fprintln(r.out, headerColor.Sprint("🏛  Public holidays"))
	for _, date := range result.Holidays.SortedDates() {
		fmt.Fprintf(r.out, "  %s  %s\n",
			holidayColor.Sprint(date.Format("Mon, Jan 02")), result.Holidays[date])
	}
	fmt.Fprintln(r.out)
}

func (r *TextRenderer) renderCalendar(result *planner.Result) {
	fmt.Fprintln(r.out, headerColor.Sprintf("📅 Annual calendar %d", result.Year))
	fmt.Fprintf(r.out, "  %s holiday  %s leave  %s weekend\n\n",
		holidayColor.Sprint("██"), leaveColor.Sprint("██"), weekendColor.Sprint("██"))

	leaveSet := make(map[time.Time]bool, len(result.LeaveDates))
	for _, date := range result.LeaveDates {
		leaveSet[date] = true
	}

	// Three months side by side, four rows
	for row := 0; row < 4; row++ {
		blocks := make([][]string, 3)
		for col := 0; col < 3; col++ {
			month := time.Month(row*3 + col + 1)
			blocks[col] = monthLines(result.Year, month, result, leaveSet)
		}

		height := 0
		for _, block := range blocks {
			if len(block) > height {
				height = len(block)
			}
		}

		for line := 0; line < height; line++ {
			parts := make([]string, 3)
			for col := 0; col < 3; col++ {
				if line < len(blocks[col]) {
					parts[col] = blocks[col][line]
				} else {
					parts[col] = strings.Repeat(" ", monthWidth)
				}
			}
			fmt.Fprintf(r.out, "  %s\n", strings.Join(parts, "   "))
		}
		fmt.Fprintln(r.out)
	}
}

// monthWidth is the printable width of one month block: seven 2-char
// day cells joined by single spaces.
const monthWidth = 7*2 + 6

// monthLines renders one month as fixed-width lines. ANSI color codes
// are applied after padding so alignment survives.
func monthLines(year int, month time.Month, result *planner.Result, leaveSet map[time.Time]bool) []string {
	title := fmt.Sprintf("%s %d", month, year)
	pad := monthWidth - len(title)
	lines := []string{
		strings.Repeat(" ", pad/2) + title + strings.Repeat(" ", pad-pad/2),
		"Mo Tu We Th Fr Sa Su",
	}

	first := dateutil.Date(year, month, 1)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday-first column offset
	offset := (int(first.Weekday()) + 6) % 7

	cells := make([]string, 0, 7)
	for i := 0; i < offset; i++ {
		cells = append(cells, "  ")
	}

	for day := 1; day <= daysInMonth; day++ {
		date := dateutil.Date(year, month, day)
		cell := fmt.Sprintf("%2d", day)

		switch {
		case result.Holidays.Contains(date):
			cell = holidayColor.Sprint(cell)
		case leaveSet[date]:
			cell = leaveColor.Sprint(cell)
		case dateutil.IsWeekend(date):
			cell = weekendColor.Sprint(cell)
		}
		cells = append(cells, cell)

		if len(cells) == 7 {
			lines = append(lines, strings.Join(cells, " "))
			cells = cells[:0]
		}
	}

	if len(cells) > 0 {
		for len(cells) < 7 {
			cells = append(cells, "  ")
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return lines
}
