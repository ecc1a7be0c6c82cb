package holiday

import (
	"go.uber.org/zap"
)

// CompositeProvider implements Provider with a fallback strategy
// Primary: APIProvider (network)
// Fallback: RulesProvider (built-in rules)
type CompositeProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewCompositeProvider creates a new CompositeProvider
func NewCompositeProvider(primary, fallback Provider, logger *zap.Logger) *CompositeProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompositeProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays returns the public holidays for the country and year.
// The fallback answers for the same region only; an unsupported region
// surfaces as ErrUnsupportedRegion from the fallback as well, never as
// data for a substituted region.
func (cp *CompositeProvider) Holidays(country string, year int) (Set, error) {
	set, err := cp.primary.Holidays(country, year)
	if err == nil {
		return set, nil
	}

	cp.logger.Warn("Primary holiday provider failed, falling back to built-in rules",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Error(err))

	return cp.fallback.Holidays(country, year)
}
