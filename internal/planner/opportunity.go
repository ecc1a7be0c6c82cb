package planner

import "time"

// Opportunity is a candidate leave plan: the dates to request off and
// the consecutive break they buy. Bridges and long weekends share this
// one shape; they differ only in how detection produced them, which the
// Description records for display.
type Opportunity struct {
	LeaveDates   []time.Time
	TotalDaysOff int
	LeavesNeeded int
	Description  string
}

// Efficiency is the total days off gained per leave day spent.
// Always recomputed from the stored fields, never cached.
func (o Opportunity) Efficiency() float64 {
	if o.LeavesNeeded == 0 {
		return 0
	}
	return float64(o.TotalDaysOff) / float64(o.LeavesNeeded)
}
