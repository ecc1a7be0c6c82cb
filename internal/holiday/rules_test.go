package holiday

import (
	"errors"
	"testing"
	"time"

	"github.com/username/leave-planner/pkg/dateutil"
)

func TestEasterSunday(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{2024, dateutil.Date(2024, time.March, 31)},
		{2025, dateutil.Date(2025, time.April, 20)},
		{2026, dateutil.Date(2026, time.April, 5)},
		{2000, dateutil.Date(2000, time.April, 23)},
	}

	for _, tt := range tests {
		got := easterSunday(tt.year)
		if !got.Equal(tt.want) {
			t.Errorf("easterSunday(%d) = %s, want %s",
				tt.year, dateutil.FormatDate(got), dateutil.FormatDate(tt.want))
		}
	}
}

func TestNthWeekday(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		weekday time.Weekday
		n       int
		want    time.Time
	}{
		{"3rd Monday of January 2024", 2024, time.January, time.Monday, 3, dateutil.Date(2024, time.January, 15)},
		{"1st Monday of May 2024", 2024, time.May, time.Monday, 1, dateutil.Date(2024, time.May, 6)},
		{"last Monday of May 2024", 2024, time.May, time.Monday, -1, dateutil.Date(2024, time.May, 27)},
		{"last Monday of August 2024", 2024, time.August, time.Monday, -1, dateutil.Date(2024, time.August, 26)},
		{"4th Thursday of November 2024", 2024, time.November, time.Thursday, 4, dateutil.Date(2024, time.November, 28)},
		{"2nd Monday of October 2024", 2024, time.October, time.Monday, 2, dateutil.Date(2024, time.October, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nthWeekday(tt.year, tt.month, tt.weekday, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("nthWeekday(%d, %v, %v, %d) = %s, want %s",
					tt.year, tt.month, tt.weekday, tt.n,
					dateutil.FormatDate(got), dateutil.FormatDate(tt.want))
			}
		})
	}
}

func TestRulesProvider_BritishHolidays2024(t *testing.T) {
	provider := NewRulesProvider(nil)

	set, err := provider.Holidays("GB", 2024)
	if err != nil {
		t.Fatalf("Holidays(GB, 2024) error = %v", err)
	}

	expected := map[time.Time]string{
		dateutil.Date(2024, time.January, 1):   "New Year's Day",
		dateutil.Date(2024, time.March, 29):    "Good Friday",
		dateutil.Date(2024, time.April, 1):     "Easter Monday",
		dateutil.Date(2024, time.May, 6):       "Early May Bank Holiday",
		dateutil.Date(2024, time.May, 27):      "Spring Bank Holiday",
		dateutil.Date(2024, time.August, 26):   "Summer Bank Holiday",
		dateutil.Date(2024, time.December, 25): "Christmas Day",
		dateutil.Date(2024, time.December, 26): "Boxing Day",
	}

	if len(set) != len(expected) {
		t.Errorf("GB 2024 holiday count = %d, want %d", len(set), len(expected))
	}

	for date, name := range expected {
		got, ok := set[date]
		if !ok {
			t.Errorf("GB 2024 missing holiday on %s (%s)", dateutil.FormatDate(date), name)
			continue
		}
		if got != name {
			t.Errorf("GB 2024 holiday on %s = %q, want %q", dateutil.FormatDate(date), got, name)
		}
	}
}

func TestRulesProvider_NewYearObservedShift(t *testing.T) {
	provider := NewRulesProvider(nil)

	// January 1 2022 is a Saturday; GB observes it on Monday January 3
	set, err := provider.Holidays("GB", 2022)
	if err != nil {
		t.Fatalf("Holidays(GB, 2022) error = %v", err)
	}

	if set.Contains(dateutil.Date(2022, time.January, 1)) {
		t.Error("GB 2022 should not list January 1 (Saturday) as the New Year holiday")
	}
	if !set.Contains(dateutil.Date(2022, time.January, 3)) {
		t.Error("GB 2022 should observe New Year's Day on Monday January 3")
	}
}

func TestRulesProvider_AllRegionsProduceHolidays(t *testing.T) {
	provider := NewRulesProvider(nil)

	for _, code := range SupportedRegions() {
		set, err := provider.Holidays(code, 2025)
		if err != nil {
			t.Errorf("Holidays(%s, 2025) error = %v", code, err)
			continue
		}
		if len(set) == 0 {
			t.Errorf("Holidays(%s, 2025) returned empty set", code)
		}
		for date := range set {
			if date.Year() != 2025 {
				t.Errorf("Holidays(%s, 2025) contains out-of-year date %s",
					code, dateutil.FormatDate(date))
			}
		}
	}
}

func TestRulesProvider_UnsupportedRegion(t *testing.T) {
	provider := NewRulesProvider(nil)

	_, err := provider.Holidays("XX", 2024)
	if err == nil {
		t.Fatal("Holidays(XX, 2024) expected error, got nil")
	}
	if !errors.Is(err, ErrUnsupportedRegion) {
		t.Errorf("Holidays(XX, 2024) error = %v, want ErrUnsupportedRegion", err)
	}
}

func TestRulesProvider_LowercaseCountryCode(t *testing.T) {
	provider := NewRulesProvider(nil)

	set, err := provider.Holidays("gb", 2024)
	if err != nil {
		t.Fatalf("Holidays(gb, 2024) error = %v", err)
	}
	if !set.Contains(dateutil.Date(2024, time.December, 25)) {
		t.Error("lowercase country code should resolve to the same region")
	}
}

func TestSetSortedDates(t *testing.T) {
	set := Set{
		dateutil.Date(2024, time.December, 25): "Christmas Day",
		dateutil.Date(2024, time.January, 1):   "New Year's Day",
		dateutil.Date(2024, time.May, 6):       "Early May Bank Holiday",
	}

	dates := set.SortedDates()

	if len(dates) != 3 {
		t.Fatalf("SortedDates() len = %d, want 3", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			t.Errorf("SortedDates() not ascending at index %d", i)
		}
	}
}
