package holiday

import (
	"errors"
	"sort"
	"time"

	"github.com/username/leave-planner/pkg/dateutil"
)

// ErrUnsupportedRegion is returned when a provider does not know the
// requested country code. The planner propagates it unchanged and never
// substitutes a default region.
var ErrUnsupportedRegion = errors.New("unsupported region code")

// Set maps each public holiday date (normalized to midnight UTC) to the
// holiday name for a single (country, year) pair. A Set is immutable
// once handed out by a provider.
type Set map[time.Time]string

// Provider supplies public holidays for a country and year.
// Implementations must be deterministic for a given (country, year).
type Provider interface {
	Holidays(country string, year int) (Set, error)
}

// Contains reports whether the given day is a public holiday
func (s Set) Contains(date time.Time) bool {
	_, ok := s[dateutil.Day(date)]
	return ok
}

// SortedDates returns the holiday dates in ascending order.
// Map iteration order is not deterministic, so every consumer that
// needs a stable order goes through this.
func (s Set) SortedDates() []time.Time {
	dates := make([]time.Time, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
