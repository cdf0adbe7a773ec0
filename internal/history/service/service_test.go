package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"github.com/smallbiznis/whateat/internal/config"
	drawdomain "github.com/smallbiznis/whateat/internal/draw/domain"
	historydomain "github.com/smallbiznis/whateat/internal/history/domain"
	"github.com/smallbiznis/whateat/internal/history/repository"
	"github.com/smallbiznis/whateat/internal/migration"
	"github.com/smallbiznis/whateat/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var base = time.Date(2026, 3, 10, 4, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, limit int) (historydomain.Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	cfg := config.DefaultDrawConfig()
	cfg.HistoryLimit = limit

	return New(Params{
		DB:      conn,
		Log:     zap.NewNop(),
		DrawCfg: config.NewStaticDrawConfig(cfg),
		Repo:    repository.Provide(),
	}), conn
}

func insertEvent(t *testing.T, conn *gorm.DB, id int64, userID snowflake.ID, name string, at time.Time) {
	t.Helper()
	price := int64(1800)
	event := drawdomain.Event{
		ID:     snowflake.ID(id),
		UserID: userID,
		FoodID: snowflake.ID(1000 + id),
		FoodSnapshot: datatypes.NewJSONType(catalogdomain.Snapshot{
			ID:         snowflake.ID(1000 + id),
			Name:       name,
			Category:   "Chinese",
			PriceCents: &price,
		}),
		DrawnAt: at,
	}
	require.NoError(t, conn.Create(&event).Error)
}

func eventIDs(entries []historydomain.Entry) []snowflake.ID {
	ids := make([]snowflake.ID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EventID)
	}
	return ids
}

func TestRecentDrawsNewestFirst(t *testing.T) {
	svc, conn := newTestService(t, 30)
	user := snowflake.ID(42)

	insertEvent(t, conn, 1, user, "Congee", base.Add(-48*time.Hour))
	insertEvent(t, conn, 2, user, "Noodles", base)
	insertEvent(t, conn, 3, user, "Dumplings", base)
	insertEvent(t, conn, 4, user, "Sushi", base.Add(-time.Hour))
	insertEvent(t, conn, 5, snowflake.ID(7), "Hotpot", base.Add(time.Hour))

	entries, err := svc.RecentDraws(context.Background(), user)
	require.NoError(t, err)

	// Equal timestamps fall back to the larger id first.
	assert.Equal(t, []snowflake.ID{3, 2, 4, 1}, eventIDs(entries))
	assert.Equal(t, "Dumplings", entries[0].Food.Name)
	assert.True(t, entries[0].DrawnAt.Equal(base))
}

func TestRecentDrawsRespectsLimit(t *testing.T) {
	svc, conn := newTestService(t, 2)
	user := snowflake.ID(42)

	for i := int64(1); i <= 5; i++ {
		insertEvent(t, conn, i, user, "Noodles", base.Add(time.Duration(i)*time.Minute))
	}

	entries, err := svc.RecentDraws(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, []snowflake.ID{5, 4}, eventIDs(entries))
}

func TestRecentDrawsStableAcrossReads(t *testing.T) {
	svc, conn := newTestService(t, 3)
	user := snowflake.ID(42)

	// Inserted out of id order; five events share one timestamp and the
	// limit cuts through the tie.
	for _, id := range []int64{7, 2, 9, 4, 6} {
		insertEvent(t, conn, id, user, "Noodles", base)
	}
	insertEvent(t, conn, 1, user, "Congee", base.Add(-time.Hour))

	ctx := context.Background()
	first, err := svc.RecentDraws(ctx, user)
	require.NoError(t, err)
	require.Equal(t, []snowflake.ID{9, 7, 6}, eventIDs(first))

	insertEvent(t, conn, 8, snowflake.ID(7), "Hotpot", base)

	for i := 0; i < 3; i++ {
		again, err := svc.RecentDraws(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecentDrawsEmpty(t *testing.T) {
	svc, _ := newTestService(t, 30)

	entries, err := svc.RecentDraws(context.Background(), snowflake.ID(42))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecentDrawsRenderSnapshotWithoutCatalogRow(t *testing.T) {
	svc, conn := newTestService(t, 30)
	user := snowflake.ID(42)
	insertEvent(t, conn, 1, user, "Retired Dish", base)

	var foods int64
	require.NoError(t, conn.Model(&catalogdomain.Food{}).Count(&foods).Error)
	require.Zero(t, foods)

	entries, err := svc.RecentDraws(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	resp := entries[0].Response()
	assert.Equal(t, "1", resp.ID)
	assert.Equal(t, "Retired Dish", resp.Food.Name)
	require.NotNil(t, resp.Food.Price)
	assert.Equal(t, "18.00", *resp.Food.Price)
}
