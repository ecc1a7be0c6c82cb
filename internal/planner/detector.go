package planner

import (
	"fmt"
	"time"

	"github.com/username/leave-planner/internal/holiday"
	"github.com/username/leave-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// DefaultMaxBridgeDays caps how many working days a bridge may spend to
// reach a weekend. Bridges longer than this are not worth the leave.
const DefaultMaxBridgeDays = 4

// Detector scans one year's calendar for leave opportunities
type Detector struct {
	holidays      holiday.Set
	maxBridgeDays int
	logger        *zap.Logger
}

// NewDetector creates a Detector over the holiday set of a single year
func NewDetector(holidays holiday.Set, maxBridgeDays int, logger *zap.Logger) *Detector {
	if maxBridgeDays <= 0 {
		maxBridgeDays = DefaultMaxBridgeDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		holidays:      holidays,
		maxBridgeDays: maxBridgeDays,
		logger:        logger,
	}
}

// Detect returns every bridge and long-weekend opportunity for the year
// restricted to the given months. The months set must already be
// resolved (never empty). Output order is deterministic: bridges in
// holiday date order, then long weekends in calendar order.
func (d *Detector) Detect(year int, months MonthSet) []Opportunity {
	opportunities := d.BridgeOpportunities(months)
	opportunities = append(opportunities, d.LongWeekendOpportunities(year, months)...)

	d.logger.Debug("Detection completed",
		zap.Int("year", year),
		zap.Int("opportunities", len(opportunities)))

	return opportunities
}

// BridgeOpportunities finds chances to connect a public holiday to the
// nearest weekend by taking the working days in between off. Each
// holiday is probed in both directions independently, so a single
// holiday can yield two opportunities.
func (d *Detector) BridgeOpportunities(months MonthSet) []Opportunity {
	opportunities := []Opportunity{}

	for _, holidayDate := range d.holidays.SortedDates() {
		if !months.Contains(holidayDate.Month()) {
			continue
		}

		name := d.holidays[holidayDate]

		if opp, ok := d.bridge(holidayDate, name, -1); ok {
			opportunities = append(opportunities, opp)
		}
		if opp, ok := d.bridge(holidayDate, name, 1); ok {
			opportunities = append(opportunities, opp)
		}
	}

	return opportunities
}

// bridge walks from the holiday in the given direction (-1 = backward,
// +1 = forward), collecting working days until it reaches a weekend or
// the cap. A bridge is valid only when the walk actually reached a
// weekend and spent at least one leave day; the whole contiguous
// weekend block then counts toward the break.
func (d *Detector) bridge(holidayDate time.Time, name string, direction int) (Opportunity, bool) {
	leaveDates := []time.Time{}

	current := holidayDate.AddDate(0, 0, direction)
	for dateutil.IsWeekday(current) && len(leaveDates) < d.maxBridgeDays {
		leaveDates = append(leaveDates, current)
		current = current.AddDate(0, 0, direction)
	}

	// Hitting the cap on a working day means the weekend is too far
	if !dateutil.IsWeekend(current) || len(leaveDates) == 0 {
		return Opportunity{}, false
	}

	weekendDays := 0
	for check := current; dateutil.IsWeekend(check); check = check.AddDate(0, 0, direction) {
		weekendDays++
	}

	side := "before"
	if direction > 0 {
		side = "after"
	}

	// +1 for the holiday itself
	totalDaysOff := len(leaveDates) + weekendDays + 1

	return Opportunity{
		LeaveDates:   leaveDates,
		TotalDaysOff: totalDaysOff,
		LeavesNeeded: len(leaveDates),
		Description:  fmt.Sprintf("Bridge %s %s", side, name),
	}, true
}

// LongWeekendOpportunities finds 4-day breaks made by taking a single
// Monday after a free Friday-to-Sunday run, or a single Friday before
// one. Both directions are scanned independently, so one Friday-Monday
// pair yields two candidates with different leave dates; the budget
// decides whether both get taken.
func (d *Detector) LongWeekendOpportunities(year int, months MonthSet) []Opportunity {
	opportunities := []Opportunity{}

	start := dateutil.YearStart(year)
	end := dateutil.YearEnd(year)

	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if !months.Contains(current.Month()) {
			continue
		}

		switch current.Weekday() {
		case time.Friday:
			monday := current.AddDate(0, 0, 3)
			if !d.holidays.Contains(monday) && !monday.After(end) && months.Contains(monday.Month()) {
				opportunities = append(opportunities, Opportunity{
					LeaveDates:   []time.Time{monday},
					TotalDaysOff: 4,
					LeavesNeeded: 1,
					Description:  fmt.Sprintf("Long weekend (Fri-Mon) starting %s", current.Format("Jan 02")),
				})
			}

		case time.Monday:
			friday := current.AddDate(0, 0, -3)
			if !d.holidays.Contains(friday) && !friday.Before(start) && months.Contains(friday.Month()) {
				opportunities = append(opportunities, Opportunity{
					LeaveDates:   []time.Time{friday},
					TotalDaysOff: 4,
					LeavesNeeded: 1,
					Description:  fmt.Sprintf("Long weekend (Fri-Mon) ending %s", current.Format("Jan 02")),
				})
			}
		}
	}

	return opportunities
}
