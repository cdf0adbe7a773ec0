package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"github.com/smallbiznis/whateat/internal/catalog/repository"
	"github.com/smallbiznis/whateat/internal/config"
	"github.com/smallbiznis/whateat/internal/migration"
	"github.com/smallbiznis/whateat/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	svc  catalogdomain.Service
	repo catalogdomain.Repository
	node *snowflake.Node
}

func newFixture(t *testing.T, cacheTTL time.Duration) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := repository.Provide()
	svc := New(Params{
		DB:   conn,
		Log:  zap.NewNop(),
		Cfg:  config.Config{CatalogCacheTTL: cacheTTL},
		Repo: repo,
	})
	return &fixture{db: conn, svc: svc, repo: repo, node: node}
}

func (f *fixture) add(t *testing.T, name, category string, meal *catalogdomain.MealPeriod, price *int64) catalogdomain.Food {
	t.Helper()
	food := catalogdomain.Food{
		ID:         f.node.Generate(),
		Name:       name,
		Category:   category,
		MealType:   meal,
		PriceCents: price,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, f.repo.Insert(context.Background(), f.db, &food))
	return food
}

func meal(m catalogdomain.MealPeriod) *catalogdomain.MealPeriod { return &m }
func cents(v int64) *int64 { return &v }
func text(v string) *string { return &v }

func names(foods []catalogdomain.Food) []string {
	out := make([]string, 0, len(foods))
	for _, f := range foods {
		out = append(out, f.Name)
	}
	return out
}

func TestEligibleFilters(t *testing.T) {
	f := newFixture(t, 0)
	f.add(t, "Noodles", "Chinese", meal(catalogdomain.MealLunch), cents(1500))
	f.add(t, "Sushi", "Japanese", meal(catalogdomain.MealDinner), cents(6800))
	f.add(t, "Congee", "Chinese", meal(catalogdomain.MealBreakfast), nil)
	f.add(t, "Mystery", "Chinese", nil, cents(2000))

	ctx := context.Background()
	cases := []struct {
		name   string
		filter catalogdomain.Filter
		want   []string
	}{
		{"no filter", catalogdomain.Filter{}, []string{"Noodles", "Sushi", "Congee", "Mystery"}},
		{"meal excludes unset", catalogdomain.Filter{MealPeriod: meal(catalogdomain.MealLunch)}, []string{"Noodles"}},
		{"max price excludes unpriced", catalogdomain.Filter{MaxPriceCents: cents(2000)}, []string{"Noodles", "Mystery"}},
		{"min price inclusive", catalogdomain.Filter{MinPriceCents: cents(6800)}, []string{"Sushi"}},
		{"category exact", catalogdomain.Filter{Category: text("Chinese")}, []string{"Noodles", "Congee", "Mystery"}},
		{"blank category ignored", catalogdomain.Filter{Category: text("  ")}, []string{"Noodles", "Sushi", "Congee", "Mystery"}},
		{"anded", catalogdomain.Filter{Category: text("Chinese"), MaxPriceCents: cents(1800)}, []string{"Noodles"}},
		{"inverted range", catalogdomain.Filter{MinPriceCents: cents(5000), MaxPriceCents: cents(1000)}, []string{}},
		{"category case sensitive", catalogdomain.Filter{Category: text("chinese")}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			foods, err := f.svc.Eligible(ctx, tc.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.want, names(foods))
		})
	}
}

func TestEligibleRejectsInvalidFilter(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.svc.Eligible(ctx, catalogdomain.Filter{MealPeriod: meal(7)})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidMealType)

	_, err = f.svc.Eligible(ctx, catalogdomain.Filter{MinPriceCents: cents(-1)})
	assert.ErrorIs(t, err, catalogdomain.ErrNegativePrice)
}

func TestEligibleDefaultConfigSeesCatalogChanges(t *testing.T) {
	t.Setenv("CATALOG_CACHE_TTL", "")
	f := newFixture(t, config.Load().CatalogCacheTTL)
	ctx := context.Background()
	food := f.add(t, "Noodles", "Chinese", nil, nil)

	foods, err := f.svc.Eligible(ctx, catalogdomain.Filter{})
	require.NoError(t, err)
	require.Len(t, foods, 1)

	require.NoError(t, f.db.Exec("DELETE FROM foods WHERE id = ?", food.ID).Error)
	foods, err = f.svc.Eligible(ctx, catalogdomain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, foods)

	f.add(t, "Dumplings", "Chinese", nil, nil)
	foods, err = f.svc.Eligible(ctx, catalogdomain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dumplings"}, names(foods))
}

func TestEligibleUsesCacheWhenEnabled(t *testing.T) {
	f := newFixture(t, time.Minute)
	ctx := context.Background()
	f.add(t, "Noodles", "Chinese", nil, nil)

	first, err := f.svc.Eligible(ctx, catalogdomain.Filter{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	f.add(t, "Dumplings", "Chinese", nil, nil)

	cached, err := f.svc.Eligible(ctx, catalogdomain.Filter{})
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	other, err := f.svc.Eligible(ctx, catalogdomain.Filter{Category: text("Chinese")})
	require.NoError(t, err)
	assert.Len(t, other, 2)
}

func TestGetByID(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	food := f.add(t, "Hotpot", "Sichuan", meal(catalogdomain.MealDinner), cents(8850))

	resp, err := f.svc.GetByID(ctx, food.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Hotpot", resp.Name)
	require.NotNil(t, resp.Price)
	assert.Equal(t, "88.50", *resp.Price)
	assert.Equal(t, "晚餐", resp.MealTypeName)

	_, err = f.svc.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidID)

	_, err = f.svc.GetByID(ctx, "12345")
	assert.ErrorIs(t, err, catalogdomain.ErrNotFound)
}

func TestCategories(t *testing.T) {
	f := newFixture(t, 0)
	f.add(t, "A", "Fast Food", nil, nil)
	f.add(t, "B", "Fast Food", nil, nil)
	f.add(t, "C", "Japanese", nil, nil)

	categories, err := f.svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, catalogdomain.Category{Name: "Fast Food", Slug: "fast-food", Count: 2}, categories[0])
	assert.Equal(t, "japanese", categories[1].Slug)
}
