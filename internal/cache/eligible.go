package cache

import (
	"time"

	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
)

// EligibleSetCache holds catalog query results keyed by normalized filter.
type EligibleSetCache struct {
	sets Cache[string, []catalogdomain.Food]
	ttl  time.Duration
}

// NewEligibleSetCache returns nil when ttl disables caching.
func NewEligibleSetCache(ttl time.Duration) *EligibleSetCache {
	if ttl <= 0 {
		return nil
	}
	return &EligibleSetCache{
		sets: NewTTLCache[string, []catalogdomain.Food](),
		ttl:  ttl,
	}
}

func (c *EligibleSetCache) Get(filter catalogdomain.Filter) ([]catalogdomain.Food, bool) {
	if c == nil {
		return nil, false
	}
	return c.sets.Get(filter.Key())
}

func (c *EligibleSetCache) Set(filter catalogdomain.Filter, foods []catalogdomain.Food) {
	if c == nil {
		return
	}
	c.sets.Set(filter.Key(), foods, c.ttl)
}
