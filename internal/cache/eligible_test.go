package cache

import (
	"testing"
	"time"

	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
)

func TestEligibleSetCacheDisabled(t *testing.T) {
	c := NewEligibleSetCache(0)
	assert.Nil(t, c)

	c.Set(catalogdomain.Filter{}, []catalogdomain.Food{{ID: 1}})
	_, ok := c.Get(catalogdomain.Filter{})
	assert.False(t, ok)
}

func TestEligibleSetCacheKeysByNormalizedFilter(t *testing.T) {
	c := NewEligibleSetCache(time.Minute)
	padded := " 中餐 "
	trimmed := "中餐"

	c.Set(catalogdomain.Filter{Category: &padded}, []catalogdomain.Food{{ID: 7}})

	got, ok := c.Get(catalogdomain.Filter{Category: &trimmed})
	assert.True(t, ok)
	assert.Len(t, got, 1)

	_, ok = c.Get(catalogdomain.Filter{})
	assert.False(t, ok)
}
