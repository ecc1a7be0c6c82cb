package holiday

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/username/leave-planner/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	defaultAPIBaseURL  = "https://date.nager.at"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// APIProvider implements Provider using the Nager.Date public-holidays API
type APIProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[string]*cachedSet
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
}

type cachedSet struct {
	set       Set
	fetchedAt time.Time
}

// apiHoliday represents one entry of the Nager.Date response
type apiHoliday struct {
	Date        string `json:"date"` // "2024-12-25"
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Global      bool   `json:"global"`
}

// NewAPIProvider creates a new APIProvider instance
func NewAPIProvider(baseURL string, cacheTTL time.Duration, logger *zap.Logger) *APIProvider {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &APIProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cache:    make(map[string]*cachedSet),
		cacheTTL: cacheTTL,
	}
}

// Holidays returns the public holidays for the country and year.
// Results are cached per (country, year) with a TTL; cached Sets are
// never mutated after insertion.
func (p *APIProvider) Holidays(country string, year int) (Set, error) {
	code := strings.ToUpper(strings.TrimSpace(country))
	cacheKey := fmt.Sprintf("%s-%d", code, year)

	p.cacheMu.RLock()
	if cached, ok := p.cache[cacheKey]; ok {
		if time.Since(cached.fetchedAt) < p.cacheTTL {
			p.cacheMu.RUnlock()
			p.logger.Debug("Using cached holidays",
				zap.String("key", cacheKey))
			return cached.set, nil
		}
	}
	p.cacheMu.RUnlock()

	set, err := p.fetchYear(code, year)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[cacheKey] = &cachedSet{
		set:       set,
		fetchedAt: time.Now(),
	}
	p.cacheMu.Unlock()

	return set, nil
}

// fetchYear fetches the full holiday list for one year from the API
func (p *APIProvider) fetchYear(code string, year int) (Set, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", p.baseURL, year, code)

	p.logger.Debug("Fetching holidays from API",
		zap.String("url", url),
		zap.String("country", code),
		zap.Int("year", year))

	resp, err := p.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	// The API answers 404 for region codes it does not know
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRegion, code)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	set, err := parseHolidayResponse(year, body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse holiday response: %w", err)
	}

	p.logger.Info("Holidays fetched from API",
		zap.String("country", code),
		zap.Int("year", year),
		zap.Int("count", len(set)))

	return set, nil
}

// parseHolidayResponse parses the Nager.Date JSON array into a Set.
// Entries outside the requested year are dropped.
func parseHolidayResponse(year int, body []byte) (Set, error) {
	var entries []apiHoliday
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("invalid holiday JSON: %w", err)
	}

	set := make(Set, len(entries))
	for _, entry := range entries {
		date, err := dateutil.ParseDate(entry.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", entry.Date, err)
		}
		if date.Year() != year {
			continue
		}

		name := entry.Name
		if name == "" {
			name = entry.LocalName
		}
		set[date] = name
	}

	return set, nil
}

// ClearCache clears the cache
func (p *APIProvider) ClearCache() {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	p.cache = make(map[string]*cachedSet)
	p.logger.Info("Holiday cache cleared")
}
