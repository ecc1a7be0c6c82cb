package holiday

import (
	"errors"
	"testing"
	"time"

	"github.com/username/leave-planner/pkg/dateutil"
	"go.uber.org/zap"
)

func TestParseHolidayResponse(t *testing.T) {
	body := []byte(`[
		{"date":"2024-01-01","localName":"New Year's Day","name":"New Year's Day","countryCode":"GB","global":true},
		{"date":"2024-12-25","localName":"Christmas Day","name":"Christmas Day","countryCode":"GB","global":true},
		{"date":"2024-12-26","localName":"Boxing Day","name":"Boxing Day","countryCode":"GB","global":true}
	]`)

	set, err := parseHolidayResponse(2024, body)
	if err != nil {
		t.Fatalf("parseHolidayResponse() error = %v", err)
	}

	if len(set) != 3 {
		t.Errorf("parsed holiday count = %d, want 3", len(set))
	}

	if name := set[dateutil.Date(2024, time.December, 25)]; name != "Christmas Day" {
		t.Errorf("Dec 25 name = %q, want %q", name, "Christmas Day")
	}
}

func TestParseHolidayResponse_DropsOutOfYearEntries(t *testing.T) {
	body := []byte(`[
		{"date":"2024-01-01","name":"New Year's Day"},
		{"date":"2025-01-01","name":"New Year's Day"}
	]`)

	set, err := parseHolidayResponse(2024, body)
	if err != nil {
		t.Fatalf("parseHolidayResponse() error = %v", err)
	}

	if len(set) != 1 {
		t.Errorf("parsed holiday count = %d, want 1 (2025 entry dropped)", len(set))
	}
}

func TestParseHolidayResponse_FallsBackToLocalName(t *testing.T) {
	body := []byte(`[{"date":"2024-10-03","localName":"Tag der Deutschen Einheit"}]`)

	set, err := parseHolidayResponse(2024, body)
	if err != nil {
		t.Fatalf("parseHolidayResponse() error = %v", err)
	}

	if name := set[dateutil.Date(2024, time.October, 3)]; name != "Tag der Deutschen Einheit" {
		t.Errorf("Oct 3 name = %q, want local name fallback", name)
	}
}

func TestParseHolidayResponse_InvalidJSON(t *testing.T) {
	_, err := parseHolidayResponse(2024, []byte(`{"not":"an array"}`))
	if err == nil {
		t.Error("parseHolidayResponse() expected error for non-array JSON, got nil")
	}
}

func TestParseHolidayResponse_InvalidDate(t *testing.T) {
	_, err := parseHolidayResponse(2024, []byte(`[{"date":"25/12/2024","name":"Christmas Day"}]`))
	if err == nil {
		t.Error("parseHolidayResponse() expected error for invalid date, got nil")
	}
}

func TestAPIProvider_Cache(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	provider := NewAPIProvider("", time.Hour, logger)

	// Manually populate cache; a hit must not touch the network
	set := Set{
		dateutil.Date(2024, time.December, 25): "Christmas Day",
	}

	provider.cacheMu.Lock()
	provider.cache["GB-2024"] = &cachedSet{
		set:       set,
		fetchedAt: time.Now(),
	}
	provider.cacheMu.Unlock()

	result, err := provider.Holidays("gb", 2024)
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}

	if !result.Contains(dateutil.Date(2024, time.December, 25)) {
		t.Error("cached set should contain Christmas Day")
	}

	provider.ClearCache()

	provider.cacheMu.RLock()
	if len(provider.cache) != 0 {
		t.Errorf("cache not cleared, len = %d", len(provider.cache))
	}
	provider.cacheMu.RUnlock()
}

func TestCompositeProvider_FallsBackToRules(t *testing.T) {
	failing := providerFunc(func(country string, year int) (Set, error) {
		return nil, errors.New("network down")
	})

	composite := NewCompositeProvider(failing, NewRulesProvider(nil), nil)

	set, err := composite.Holidays("GB", 2024)
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}
	if !set.Contains(dateutil.Date(2024, time.December, 25)) {
		t.Error("fallback rules should answer for GB")
	}
}

func TestCompositeProvider_PrefersPrimary(t *testing.T) {
	primarySet := Set{dateutil.Date(2024, time.July, 4): "Independence Day"}
	primary := providerFunc(func(country string, year int) (Set, error) {
		return primarySet, nil
	})

	composite := NewCompositeProvider(primary, NewRulesProvider(nil), nil)

	set, err := composite.Holidays("US", 2024)
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}
	if len(set) != 1 {
		t.Errorf("composite should return primary set untouched, got %d entries", len(set))
	}
}

func TestCompositeProvider_UnsupportedRegionEverywhere(t *testing.T) {
	primary := providerFunc(func(country string, year int) (Set, error) {
		return nil, ErrUnsupportedRegion
	})

	composite := NewCompositeProvider(primary, NewRulesProvider(nil), nil)

	_, err := composite.Holidays("XX", 2024)
	if !errors.Is(err, ErrUnsupportedRegion) {
		t.Errorf("Holidays(XX) error = %v, want ErrUnsupportedRegion", err)
	}
}

// providerFunc adapts a function to the Provider interface for tests
type providerFunc func(country string, year int) (Set, error)

func (f providerFunc) Holidays(country string, year int) (Set, error) {
	return f(country, year)
}
