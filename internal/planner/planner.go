package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/leave-planner/internal/holiday"
	"github.com/username/leave-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// ErrInvalidBudget is returned when the requested leave budget is below 1
var ErrInvalidBudget = errors.New("leave budget must be at least 1")

// MonthSet is the set of months leave may be scheduled in
type MonthSet map[time.Month]bool

// Contains reports whether the month is allowed
func (m MonthSet) Contains(month time.Month) bool {
	return m[month]
}

// AllMonths returns a MonthSet covering January through December
func AllMonths() MonthSet {
	months := make(MonthSet, 12)
	for m := time.January; m <= time.December; m++ {
		months[m] = true
	}
	return months
}

// resolveMonths turns the caller's month list into a MonthSet. An empty
// list means "all months allowed"; the substitution happens here, before
// detection ever runs.
func resolveMonths(preferred []int) (MonthSet, error) {
	if len(preferred) == 0 {
		return AllMonths(), nil
	}

	months := make(MonthSet, len(preferred))
	for _, m := range preferred {
		if m < 1 || m > 12 {
			return nil, fmt.Errorf("invalid month %d: must be 1-12", m)
		}
		months[time.Month(m)] = true
	}
	return months, nil
}

// Request holds the caller-supplied inputs for one optimization run
type Request struct {
	Year            int
	Country         string
	NumLeaves       int
	PreferredMonths []int // empty means all months
}

// Result is everything the renderer needs: the recommendation itself
// plus the year's calendar facts for display.
type Result struct {
	Year         int
	Country      string
	Budget       int
	LeaveDates   []time.Time
	TotalDaysOff int
	LeavesUsed   int
	Selected     []Opportunity
	Holidays     holiday.Set
	Weekends     []time.Time
}

// Efficiency is the achieved days-off-per-leave-day ratio, 0 when no
// leave was scheduled.
func (r *Result) Efficiency() float64 {
	if r.LeavesUsed == 0 {
		return 0
	}
	return float64(r.TotalDaysOff) / float64(r.LeavesUsed)
}

// Planner runs the full optimization pipeline. It holds no per-request
// state; concurrent Plan calls are independent.
type Planner struct {
	provider      holiday.Provider
	maxBridgeDays int
	logger        *zap.Logger
}

// New creates a new Planner
func New(provider holiday.Provider, maxBridgeDays int, logger *zap.Logger) *Planner {
	if maxBridgeDays <= 0 {
		maxBridgeDays = DefaultMaxBridgeDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		provider:      provider,
		maxBridgeDays: maxBridgeDays,
		logger:        logger,
	}
}

// Plan computes the recommended leave dates for the request
func (p *Planner) Plan(req Request) (*Result, error) {
	if req.NumLeaves < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidBudget, req.NumLeaves)
	}

	months, err := resolveMonths(req.PreferredMonths)
	if err != nil {
		return nil, err
	}

	// Provider errors surface unchanged: the planner never swaps in a
	// different region.
	holidays, err := p.provider.Holidays(req.Country, req.Year)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Planning leave",
		zap.Int("year", req.Year),
		zap.String("country", req.Country),
		zap.Int("budget", req.NumLeaves),
		zap.Int("preferred_months", len(months)),
		zap.Int("holidays", len(holidays)))

	detector := NewDetector(holidays, p.maxBridgeDays, p.logger)
	opportunities := detector.Detect(req.Year, months)

	plan := Select(opportunities, req.NumLeaves)

	p.logger.Info("Plan completed",
		zap.Int("opportunities", len(opportunities)),
		zap.Int("selected", len(plan.Selected)),
		zap.Int("leaves_used", plan.LeavesUsed),
		zap.Int("total_days_off", plan.TotalDaysOff))

	return &Result{
		Year:         req.Year,
		Country:      req.Country,
		Budget:       req.NumLeaves,
		LeaveDates:   plan.LeaveDates,
		TotalDaysOff: plan.TotalDaysOff,
		LeavesUsed:   plan.LeavesUsed,
		Selected:     plan.Selected,
		Holidays:     holidays,
		Weekends:     dateutil.WeekendsOfYear(req.Year),
	}, nil
}
