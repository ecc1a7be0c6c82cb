package render

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/username/leave-planner/internal/planner"
	"github.com/username/leave-planner/pkg/dateutil"
)

// HTMLRenderer writes the plan as a standalone HTML page with a
// twelve-month calendar grid.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTML creates an HTML renderer
func NewHTML() (*HTMLRenderer, error) {
	tmpl, err := template.New("calendar").Parse(calendarTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

type htmlDay struct {
	Number int
	Class  string // "", "weekend", "holiday" or "leave"
	Title  string
}

type htmlMonth struct {
	Name  string
	Weeks [][]htmlDay
}

type htmlHoliday struct {
	Date string
	Name string
}

type htmlPage struct {
	Year         int
	Country      string
	TotalDaysOff int
	LeavesUsed   int
	Budget       int
	Efficiency   string
	Months       []htmlMonth
	Holidays     []htmlHoliday
}

// Render writes the HTML page for a planning result
func (r *HTMLRenderer) Render(out io.Writer, result *planner.Result) error {
	leaveSet := make(map[time.Time]bool, len(result.LeaveDates))
	for _, date := range result.LeaveDates {
		leaveSet[date] = true
	}

	page := htmlPage{
		Year:         result.Year,
		Country:      result.Country,
		TotalDaysOff: result.TotalDaysOff,
		LeavesUsed:   result.LeavesUsed,
		Budget:       result.Budget,
		Efficiency:   fmt.Sprintf("%.1f", result.Efficiency()),
	}

	for month := time.January; month <= time.December; month++ {
		page.Months = append(page.Months, buildHTMLMonth(result, month, leaveSet))
	}
	for _, date := range result.Holidays.SortedDates() {
		page.Holidays = append(page.Holidays, htmlHoliday{
			Date: date.Format("Mon, Jan 02"),
			Name: result.Holidays[date],
		})
	}

	if err := r.tmpl.Execute(out, page); err != nil {
		return fmt.Errorf("failed to render calendar page: %w", err)
	}
	return nil
}

func buildHTMLMonth(result *planner.Result, month time.Month, leaveSet map[time.Time]bool) htmlMonth {
	first := dateutil.Date(result.Year, month, 1)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7 // Monday-first

	week := make([]htmlDay, offset)
	block := htmlMonth{Name: month.String()}

	for day := 1; day <= daysInMonth; day++ {
		date := dateutil.Date(result.Year, month, day)
		cell := htmlDay{Number: day}

		switch {
		case result.Holidays.Contains(date):
			cell.Class = "holiday"
			cell.Title = result.Holidays[date]
		case leaveSet[date]:
			cell.Class = "leave"
			cell.Title = "Recommended leave day"
		case dateutil.IsWeekend(date):
			cell.Class = "weekend"
		}

		week = append(week, cell)
		if len(week) == 7 {
			block.Weeks = append(block.Weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, htmlDay{})
		}
		block.Weeks = append(block.Weeks, week)
	}

	return block
}

const calendarTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Leave plan {{.Year}} ({{.Country}})</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2em; color: #222; }
  h1 { margin-bottom: 0.2em; }
  .summary { margin-bottom: 1.5em; color: #444; }
  .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1.5em; }
  table { border-collapse: collapse; width: 100%; }
  caption { font-weight: bold; padding: 0.3em; }
  th, td { text-align: center; padding: 0.25em 0.35em; font-size: 0.85em; }
  td.weekend { background: #eee; }
  td.holiday { background: #f8d7da; font-weight: bold; }
  td.leave { background: #cfe2ff; font-weight: bold; }
  .legend span { display: inline-block; padding: 0.1em 0.6em; margin-right: 0.8em; }
  .holidays { margin-top: 2em; }
  .holidays td { text-align: left; }
</style>
</head>
<body>
<h1>Leave plan {{.Year}} &mdash; {{.Country}}</h1>
<p class="summary">
  {{.TotalDaysOff}} total days off for {{.LeavesUsed}} of {{.Budget}} leave days
  (efficiency {{.Efficiency}}:1)
</p>
<p class="legend">
  <span class="holiday">public holiday</span>
  <span class="leave">recommended leave</span>
  <span class="weekend">weekend</span>
</p>
<div class="grid">
{{range .Months}}
  <table>
    <caption>{{.Name}}</caption>
    <tr><th>Mo</th><th>Tu</th><th>We</th><th>Th</th><th>Fr</th><th>Sa</th><th>Su</th></tr>
    {{range .Weeks}}<tr>{{range .}}<td class="{{.Class}}"{{if .Title}} title="{{.Title}}"{{end}}>{{if .Number}}{{.Number}}{{end}}</td>{{end}}</tr>
    {{end}}
  </table>
{{end}}
</div>
<div class="holidays">
  <h2>Public holidays</h2>
  <table>
  {{range .Holidays}}<tr><td>{{.Date}}</td><td>{{.Name}}</td></tr>
  {{end}}
  </table>
</div>
</body>
</html>
`
