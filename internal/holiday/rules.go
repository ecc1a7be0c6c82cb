package holiday

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/leave-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// RulesProvider computes public holidays from built-in per-country rules.
// It works fully offline and is used both standalone and as the fallback
// behind the API provider.
type RulesProvider struct {
	logger *zap.Logger
}

// NewRulesProvider creates a new RulesProvider instance
func NewRulesProvider(logger *zap.Logger) *RulesProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RulesProvider{logger: logger}
}

// regionRules maps a country code to its holiday rule function
var regionRules = map[string]func(year int) Set{
	"GB": britishHolidays,
	"US": americanHolidays,
	"CA": canadianHolidays,
	"AU": australianHolidays,
	"DE": germanHolidays,
	"FR": frenchHolidays,
	"IN": indianHolidays,
	"JP": japaneseHolidays,
}

// SupportedRegions returns the country codes the built-in rules cover,
// in ascending order.
func SupportedRegions() []string {
	regions := make([]string, 0, len(regionRules))
	for code := range regionRules {
		regions = append(regions, code)
	}
	for i := 1; i < len(regions); i++ {
		for j := i; j > 0 && regions[j] < regions[j-1]; j-- {
			regions[j], regions[j-1] = regions[j-1], regions[j]
		}
	}
	return regions
}

// Holidays returns the public holidays for the country and year
func (p *RulesProvider) Holidays(country string, year int) (Set, error) {
	code := strings.ToUpper(strings.TrimSpace(country))

	rules, ok := regionRules[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRegion, country)
	}

	set := rules(year)
	p.logger.Debug("Built holidays from rules",
		zap.String("country", code),
		zap.Int("year", year),
		zap.Int("count", len(set)))

	return set, nil
}

// nthWeekday returns the nth occurrence of the weekday in the month.
// Negative n counts from the end of the month (-1 = last).
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	if n > 0 {
		d := dateutil.Date(year, month, 1)
		offset := (int(weekday) - int(d.Weekday()) + 7) % 7
		return d.AddDate(0, 0, offset+(n-1)*7)
	}

	// Last day of month, walk back to the weekday
	d := dateutil.Date(year, month+1, 1).AddDate(0, 0, -1)
	offset := (int(d.Weekday()) - int(weekday) + 7) % 7
	return d.AddDate(0, 0, -offset+(n+1)*7)
}

// observed shifts a holiday landing on a weekend to the following
// Monday, the usual substitute-day convention.
func observed(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

func britishHolidays(year int) Set {
	easter := easterSunday(year)

	return Set{
		observed(dateutil.Date(year, time.January, 1)): "New Year's Day",
		easter.AddDate(0, 0, -2):                       "Good Friday",
		easter.AddDate(0, 0, 1):                        "Easter Monday",
		nthWeekday(year, time.May, time.Monday, 1):     "Early May Bank Holiday",
		nthWeekday(year, time.May, time.Monday, -1):    "Spring Bank Holiday",
		nthWeekday(year, time.August, time.Monday, -1): "Summer Bank Holiday",
		dateutil.Date(year, time.December, 25):         "Christmas Day",
		dateutil.Date(year, time.December, 26):         "Boxing Day",
	}
}

func americanHolidays(year int) Set {
	return Set{
		dateutil.Date(year, time.January, 1):              "New Year's Day",
		nthWeekday(year, time.January, time.Monday, 3):    "Martin Luther King Jr. Day",
		nthWeekday(year, time.February, time.Monday, 3):   "Washington's Birthday",
		nthWeekday(year, time.May, time.Monday, -1):       "Memorial Day",
		dateutil.Date(year, time.June, 19):                "Juneteenth",
		dateutil.Date(year, time.July, 4):                 "Independence Day",
		nthWeekday(year, time.September, time.Monday, 1):  "Labor Day",
		dateutil.Date(year, time.November, 11):            "Veterans Day",
		nthWeekday(year, time.November, time.Thursday, 4): "Thanksgiving Day",
		dateutil.Date(year, time.December, 25):            "Christmas Day",
	}
}

func canadianHolidays(year int) Set {
	easter := easterSunday(year)

	// Victoria Day: the Monday preceding May 25
	victoria := dateutil.Date(year, time.May, 24)
	for victoria.Weekday() != time.Monday {
		victoria = victoria.AddDate(0, 0, -1)
	}

	return Set{
		dateutil.Date(year, time.January, 1):             "New Year's Day",
		easter.AddDate(0, 0, -2):                         "Good Friday",
		victoria:                                         "Victoria Day",
		dateutil.Date(year, time.July, 1):                "Canada Day",
		nthWeekday(year, time.September, time.Monday, 1): "Labour Day",
		nthWeekday(year, time.October, time.Monday, 2):   "Thanksgiving",
		dateutil.Date(year, time.November, 11):           "Remembrance Day",
		dateutil.Date(year, time.December, 25):           "Christmas Day",
		dateutil.Date(year, time.December, 26):           "Boxing Day",
	}
}

func australianHolidays(year int) Set {
	easter := easterSunday(year)

	return Set{
		dateutil.Date(year, time.January, 1):   "New Year's Day",
		dateutil.Date(year, time.January, 26):  "Australia Day",
		easter.AddDate(0, 0, -2):               "Good Friday",
		easter.AddDate(0, 0, 1):                "Easter Monday",
		dateutil.Date(year, time.April, 25):    "Anzac Day",
		dateutil.Date(year, time.December, 25): "Christmas Day",
		dateutil.Date(year, time.December, 26): "Boxing Day",
	}
}

func germanHolidays(year int) Set {
	easter := easterSunday(year)

	return Set{
		dateutil.Date(year, time.January, 1):   "Neujahr",
		easter.AddDate(0, 0, -2):               "Karfreitag",
		easter.AddDate(0, 0, 1):                "Ostermontag",
		dateutil.Date(year, time.May, 1):       "Tag der Arbeit",
		easter.AddDate(0, 0, 39):               "Christi Himmelfahrt",
		easter.AddDate(0, 0, 50):               "Pfingstmontag",
		dateutil.Date(year, time.October, 3):   "Tag der Deutschen Einheit",
		dateutil.Date(year, time.December, 25): "1. Weihnachtstag",
		dateutil.Date(year, time.December, 26): "2. Weihnachtstag",
	}
}

func frenchHolidays(year int) Set {
	easter := easterSunday(year)

	return Set{
		dateutil.Date(year, time.January, 1):   "Jour de l'an",
		easter.AddDate(0, 0, 1):                "Lundi de Paques",
		dateutil.Date(year, time.May, 1):       "Fete du Travail",
		dateutil.Date(year, time.May, 8):       "Victoire 1945",
		easter.AddDate(0, 0, 39):               "Ascension",
		easter.AddDate(0, 0, 50):               "Lundi de Pentecote",
		dateutil.Date(year, time.July, 14):     "Fete nationale",
		dateutil.Date(year, time.August, 15):   "Assomption",
		dateutil.Date(year, time.November, 1):  "Toussaint",
		dateutil.Date(year, time.November, 11): "Armistice 1918",
		dateutil.Date(year, time.December, 25): "Noel",
	}
}

func indianHolidays(year int) Set {
	return Set{
		dateutil.Date(year, time.January, 26):  "Republic Day",
		dateutil.Date(year, time.August, 15):   "Independence Day",
		dateutil.Date(year, time.October, 2):   "Gandhi Jayanti",
		dateutil.Date(year, time.December, 25): "Christmas Day",
	}
}

func japaneseHolidays(year int) Set {
	return Set{
		dateutil.Date(year, time.January, 1):             "New Year's Day",
		nthWeekday(year, time.January, time.Monday, 2):   "Coming of Age Day",
		dateutil.Date(year, time.February, 11):           "National Foundation Day",
		dateutil.Date(year, time.February, 23):           "Emperor's Birthday",
		dateutil.Date(year, time.April, 29):              "Showa Day",
		dateutil.Date(year, time.May, 3):                 "Constitution Memorial Day",
		dateutil.Date(year, time.May, 4):                 "Greenery Day",
		dateutil.Date(year, time.May, 5):                 "Children's Day",
		nthWeekday(year, time.July, time.Monday, 3):      "Marine Day",
		dateutil.Date(year, time.August, 11):             "Mountain Day",
		nthWeekday(year, time.September, time.Monday, 3): "Respect for the Aged Day",
		nthWeekday(year, time.October, time.Monday, 2):   "Sports Day",
		dateutil.Date(year, time.November, 3):            "Culture Day",
		dateutil.Date(year, time.November, 23):           "Labour Thanksgiving Day",
	}
}
