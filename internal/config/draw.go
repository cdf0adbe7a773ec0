package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DefaultDailyFreeLimit = 3
	DefaultHistoryLimit   = 30
	DefaultDrawTimezone   = "Asia/Shanghai"
	DefaultLockWait       = 3 * time.Second
)

const (
	keyDailyFreeLimit = "draw.dailyFreeLimit"
	keyHistoryLimit   = "draw.historyLimit"
	keyTimezone       = "draw.timezone"
	keyLockWait       = "draw.lockWait"
)

// DrawConfig tunes the daily draw quota. It is hot-reloadable.
type DrawConfig struct {
	DailyFreeLimit int
	HistoryLimit   int
	Timezone       string
	LockWait       time.Duration

	location *time.Location
}

func DefaultDrawConfig() DrawConfig {
	return DrawConfig{
		DailyFreeLimit: DefaultDailyFreeLimit,
		HistoryLimit:   DefaultHistoryLimit,
		Timezone:       DefaultDrawTimezone,
		LockWait:       DefaultLockWait,
	}
}

// Location returns the timezone that defines a quota day.
func (c DrawConfig) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type DrawConfigHolder struct {
	current atomic.Value // holds DrawConfig
}

func NewDrawConfigHolder() (*DrawConfigHolder, error) {
	return loadDrawConfigHolder("/etc/whateat", ".")
}

func newDrawViper(paths ...string) *viper.Viper {
	v := viper.New()

	v.SetConfigName("draw")
	v.SetConfigType("yml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("WHATEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// DAILY_FREE_TIMES is the name older deployments already set.
	_ = v.BindEnv(keyDailyFreeLimit, "WHATEAT_DRAW_DAILYFREELIMIT", "DAILY_FREE_TIMES")

	defaults := DefaultDrawConfig()
	v.SetDefault(keyDailyFreeLimit, defaults.DailyFreeLimit)
	v.SetDefault(keyHistoryLimit, defaults.HistoryLimit)
	v.SetDefault(keyTimezone, defaults.Timezone)
	v.SetDefault(keyLockWait, defaults.LockWait)
	return v
}

func loadDrawConfigHolder(paths ...string) (*DrawConfigHolder, error) {
	v := newDrawViper(paths...)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	cfg, err := decodeDrawConfig(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticDrawConfig(cfg)
	if !fileFound {
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeDrawConfig(v)
		if err != nil {
			zap.L().Warn("draw config reload ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		zap.L().Info("draw config reloaded",
			zap.String("file", e.Name),
			zap.Int("daily_free_limit", updated.DailyFreeLimit),
			zap.String("timezone", updated.Timezone),
		)
	})
	v.WatchConfig()

	return holder, nil
}

// NewStaticDrawConfig returns a holder that never reloads.
func NewStaticDrawConfig(cfg DrawConfig) *DrawConfigHolder {
	if cfg.location == nil {
		if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
			cfg.location = loc
		}
	}
	holder := &DrawConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *DrawConfigHolder) Get() DrawConfig {
	return h.current.Load().(DrawConfig)
}

// decodeDrawConfig reads key by key so file values, env overrides and
// defaults merge per field.
func decodeDrawConfig(v *viper.Viper) (DrawConfig, error) {
	cfg := DrawConfig{
		DailyFreeLimit: v.GetInt(keyDailyFreeLimit),
		HistoryLimit:   v.GetInt(keyHistoryLimit),
		Timezone:       v.GetString(keyTimezone),
		LockWait:       v.GetDuration(keyLockWait),
	}
	if err := validateDrawConfig(&cfg); err != nil {
		return DrawConfig{}, err
	}
	return cfg, nil
}

func validateDrawConfig(cfg *DrawConfig) error {
	if cfg.DailyFreeLimit < 0 {
		return errors.New("draw.dailyFreeLimit cannot be negative")
	}
	if cfg.HistoryLimit <= 0 {
		return errors.New("draw.historyLimit must be positive")
	}
	if cfg.LockWait <= 0 {
		return errors.New("draw.lockWait must be positive")
	}
	cfg.Timezone = strings.TrimSpace(cfg.Timezone)
	if cfg.Timezone == "" {
		return errors.New("draw.timezone cannot be empty")
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("draw.timezone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc
	return nil
}
