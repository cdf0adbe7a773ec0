package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDrawConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DrawConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*DrawConfig) {}},
		{name: "zero limit allowed", mutate: func(c *DrawConfig) { c.DailyFreeLimit = 0 }},
		{name: "negative limit", mutate: func(c *DrawConfig) { c.DailyFreeLimit = -1 }, wantErr: true},
		{name: "zero history", mutate: func(c *DrawConfig) { c.HistoryLimit = 0 }, wantErr: true},
		{name: "zero lock wait", mutate: func(c *DrawConfig) { c.LockWait = 0 }, wantErr: true},
		{name: "unknown timezone", mutate: func(c *DrawConfig) { c.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "blank timezone", mutate: func(c *DrawConfig) { c.Timezone = "  " }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDrawConfig()
			tt.mutate(&cfg)
			err := validateDrawConfig(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStaticDrawConfigLocation(t *testing.T) {
	cfg := DefaultDrawConfig()
	cfg.Timezone = "America/New_York"
	holder := NewStaticDrawConfig(cfg)

	loc := holder.Get().Location()
	require.NotNil(t, loc)
	assert.Equal(t, "America/New_York", loc.String())
	assert.Equal(t, 3*time.Second, holder.Get().LockWait)
}

func clearDrawEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WHATEAT_DRAW_DAILYFREELIMIT",
		"WHATEAT_DRAW_HISTORYLIMIT",
		"WHATEAT_DRAW_TIMEZONE",
		"WHATEAT_DRAW_LOCKWAIT",
		"DAILY_FREE_TIMES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDrawConfigDefaultsWithoutFile(t *testing.T) {
	clearDrawEnv(t)

	holder, err := loadDrawConfigHolder(t.TempDir())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, DefaultDailyFreeLimit, cfg.DailyFreeLimit)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, DefaultDrawTimezone, cfg.Location().String())
	assert.Equal(t, DefaultLockWait, cfg.LockWait)
}

func TestLoadDrawConfigEnvOverrides(t *testing.T) {
	clearDrawEnv(t)
	t.Setenv("WHATEAT_DRAW_DAILYFREELIMIT", "7")
	t.Setenv("WHATEAT_DRAW_LOCKWAIT", "750ms")
	t.Setenv("WHATEAT_DRAW_TIMEZONE", "UTC")

	holder, err := loadDrawConfigHolder(t.TempDir())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, 7, cfg.DailyFreeLimit)
	assert.Equal(t, 750*time.Millisecond, cfg.LockWait)
	assert.Equal(t, "UTC", cfg.Location().String())
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
}

func TestLoadDrawConfigLegacyDailyFreeTimes(t *testing.T) {
	clearDrawEnv(t)
	t.Setenv("DAILY_FREE_TIMES", "5")

	holder, err := loadDrawConfigHolder(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 5, holder.Get().DailyFreeLimit)
}

func TestLoadDrawConfigPartialFile(t *testing.T) {
	clearDrawEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "draw.yml"), []byte("draw:\n  dailyFreeLimit: 5\n"), 0o600))

	holder, err := loadDrawConfigHolder(dir)
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, 5, cfg.DailyFreeLimit)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, DefaultLockWait, cfg.LockWait)
	assert.Equal(t, DefaultDrawTimezone, cfg.Timezone)
}

func TestLoadDrawConfigEnvBeatsFile(t *testing.T) {
	clearDrawEnv(t)
	t.Setenv("WHATEAT_DRAW_DAILYFREELIMIT", "9")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "draw.yml"), []byte("draw:\n  dailyFreeLimit: 5\n  historyLimit: 10\n"), 0o600))

	holder, err := loadDrawConfigHolder(dir)
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, 9, cfg.DailyFreeLimit)
	assert.Equal(t, 10, cfg.HistoryLimit)
}

func TestLoadDrawConfigRejectsInvalidFile(t *testing.T) {
	clearDrawEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "draw.yml"), []byte("draw:\n  historyLimit: 0\n"), 0o600))

	_, err := loadDrawConfigHolder(dir)
	assert.Error(t, err)
}
