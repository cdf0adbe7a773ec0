package seed

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/whateat/internal/auth/domain"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"github.com/smallbiznis/whateat/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSampleFoodsFillsEmptyCatalogOnce(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&catalogdomain.Food{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	inserted, err := EnsureSampleFoods(conn, node)
	require.NoError(t, err)
	assert.Equal(t, len(sampleFoods), inserted)

	inserted, err = EnsureSampleFoods(conn, node)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	var food catalogdomain.Food
	require.NoError(t, conn.Where("name = ?", "红烧肉").First(&food).Error)
	require.NotNil(t, food.PriceCents)
	assert.Equal(t, int64(3800), *food.PriceCents)
	require.NotNil(t, food.MealType)
	assert.Equal(t, catalogdomain.MealLunch, *food.MealType)
}

func TestEnsureSampleFoodsSkipsNonEmptyCatalog(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&catalogdomain.Food{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	require.NoError(t, conn.Create(&catalogdomain.Food{ID: node.Generate(), Name: "Existing", Category: "Other"}).Error)

	inserted, err := EnsureSampleFoods(conn, node)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestEnsureDemoUserIsIdempotent(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&authdomain.User{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	first, err := EnsureDemoUser(conn, node)
	require.NoError(t, err)
	second, err := EnsureDemoUser(conn, node)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "吃货", first.DisplayName())
}

func TestSeedRequiresHandles(t *testing.T) {
	_, err := EnsureSampleFoods(nil, nil)
	assert.Error(t, err)
	_, err = EnsureDemoUser(nil, nil)
	assert.Error(t, err)
}
