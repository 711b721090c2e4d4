package marketcache

import (
	"context"
	"strings"

	"counsellor/internal/domain"
)

// Storage keeps recent job-market lookups so repeated recommendations of the
// same career do not hit the remote service every turn.
type Storage interface {
	Get(ctx context.Context, key string) (domain.MarketData, bool, error)
	Set(ctx context.Context, key string, data domain.MarketData) error
}

// Key builds the cache key for a career searched in country.
func Key(country, career string) string {
	return strings.ToLower(country) + ":" + strings.ToLower(strings.TrimSpace(career))
}
