package planner

import (
	"sort"
	"time"
)

// Plan is the outcome of greedy selection: the accepted opportunities
// and their running totals. LeavesUsed never exceeds the budget and the
// accepted leave dates are pairwise disjoint.
type Plan struct {
	LeaveDates   []time.Time
	TotalDaysOff int
	LeavesUsed   int
	Selected     []Opportunity
}

// Select greedily picks non-overlapping opportunities in descending
// efficiency order until the leave budget is spent. An opportunity that
// would exceed the remaining budget is skipped, not accepted partially,
// and scanning continues since a cheaper one later may still fit.
//
// This is a heuristic: there is no backtracking, so the result is not
// guaranteed globally optimal.
func Select(opportunities []Opportunity, budget int) Plan {
	// Stable sort keeps detection order among equal efficiencies, which
	// keeps the whole pipeline deterministic.
	sorted := make([]Opportunity, len(opportunities))
	copy(sorted, opportunities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Efficiency() > sorted[j].Efficiency()
	})

	plan := Plan{}
	taken := make(map[time.Time]bool)

	for _, opp := range sorted {
		if overlaps(opp.LeaveDates, taken) {
			continue
		}
		if plan.LeavesUsed+opp.LeavesNeeded > budget {
			continue
		}

		for _, date := range opp.LeaveDates {
			taken[date] = true
			plan.LeaveDates = append(plan.LeaveDates, date)
		}
		plan.LeavesUsed += opp.LeavesNeeded
		plan.TotalDaysOff += opp.TotalDaysOff
		plan.Selected = append(plan.Selected, opp)
	}

	sort.Slice(plan.LeaveDates, func(i, j int) bool {
		return plan.LeaveDates[i].Before(plan.LeaveDates[j])
	})

	return plan
}

func overlaps(dates []time.Time, taken map[time.Time]bool) bool {
	for _, date := range dates {
		if taken[date] {
			return true
		}
	}
	return false
}
