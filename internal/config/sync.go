package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// SyncConfig tunes the calendar synchronization engine.
type SyncConfig struct {
	// ThrottleDelay is the pause between items during a full sync, bounding
	// the request rate against the planner store.
	ThrottleDelay time.Duration `mapstructure:"throttleDelay"`

	// ReconcileInterval is the cadence of the periodic full sync.
	ReconcileInterval time.Duration `mapstructure:"reconcileInterval"`

	// DueReminderMinutes fires the due-date reminder this far in advance.
	DueReminderMinutes int `mapstructure:"dueReminderMinutes"`

	// FinanceCategory and PaymentsCategory are the planner category names
	// resolved at projection time.
	FinanceCategory  string `mapstructure:"financeCategory"`
	PaymentsCategory string `mapstructure:"paymentsCategory"`

	FeedBuffer int `mapstructure:"feedBuffer"`
}

func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		ThrottleDelay:      100 * time.Millisecond,
		ReconcileInterval:  30 * time.Minute,
		DueReminderMinutes: 1440,
		FinanceCategory:    "Financeiro",
		PaymentsCategory:   "Pagamentos",
		FeedBuffer:         16,
	}
}

// SyncConfigHolder exposes the current SyncConfig and hot-reloads it when the
// backing file changes.
type SyncConfigHolder struct {
	current atomic.Value // holds SyncConfig
}

func NewSyncConfigHolder() (*SyncConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("sync")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/gestao/config")
	v.AddConfigPath("/etc/gestao")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GESTAO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSyncConfig()
	v.SetDefault("sync.throttleDelay", defaults.ThrottleDelay)
	v.SetDefault("sync.reconcileInterval", defaults.ReconcileInterval)
	v.SetDefault("sync.dueReminderMinutes", defaults.DueReminderMinutes)
	v.SetDefault("sync.financeCategory", defaults.FinanceCategory)
	v.SetDefault("sync.paymentsCategory", defaults.PaymentsCategory)
	v.SetDefault("sync.feedBuffer", defaults.FeedBuffer)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg SyncConfig
	if err := v.UnmarshalKey("sync", &cfg); err != nil {
		return nil, err
	}
	if err := validateSyncConfig(cfg); err != nil {
		return nil, err
	}

	holder := &SyncConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated SyncConfig
		if err := v.UnmarshalKey("sync", &updated); err != nil {
			log.Printf("[sync-config] reload failed: %v", err)
			return
		}
		if err := validateSyncConfig(updated); err != nil {
			log.Printf("[sync-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[sync-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticSyncHolder wraps a fixed config, used by tests and one-shot runs.
func NewStaticSyncHolder(cfg SyncConfig) *SyncConfigHolder {
	holder := &SyncConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *SyncConfigHolder) Get() SyncConfig {
	return h.current.Load().(SyncConfig)
}

func validateSyncConfig(cfg SyncConfig) error {
	if cfg.ThrottleDelay < 0 {
		return errors.New("sync.throttleDelay cannot be negative")
	}
	if cfg.DueReminderMinutes < 0 {
		return errors.New("sync.dueReminderMinutes cannot be negative")
	}
	if strings.TrimSpace(cfg.FinanceCategory) == "" || strings.TrimSpace(cfg.PaymentsCategory) == "" {
		return errors.New("sync category names cannot be empty")
	}
	return nil
}
