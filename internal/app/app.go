// Package app builds the TipCalc object graph once at process start.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mjec/tipcalc/internal/config"
	"github.com/mjec/tipcalc/internal/metrics"
	"github.com/mjec/tipcalc/internal/numeric"
	"github.com/mjec/tipcalc/internal/preferences"
	"github.com/mjec/tipcalc/internal/service"
	"github.com/mjec/tipcalc/internal/storage"
	"github.com/mjec/tipcalc/internal/storage/memory"
	"github.com/mjec/tipcalc/internal/storage/sqlite"
	"github.com/mjec/tipcalc/pkg/logging"
)

// App holds the shared components and the two screen controllers.
type App struct {
	Config      config.Config
	Locale      numeric.Locale
	Preferences *preferences.Store
	Codec       *numeric.Codec
	Metrics     *metrics.Metrics
	Calculator  *service.TipService
	Settings    *service.SettingsService

	store storage.Store
}

// Open initializes storage, loads preferences and wires the screens.
// A nil reg registers metrics on prometheus.DefaultRegisterer.
// Open also installs the default slog logger at cfg.LogLevel.
func Open(ctx context.Context, cfg config.Config, reg prometheus.Registerer) (*App, error) {
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := openStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}

	prefs, err := preferences.Open(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	loc := numeric.DetectLocale(cfg.Locale)
	codec := numeric.NewCodec(loc)
	m, err := metrics.New(reg, cfg.Metrics.Namespace)
	if err != nil {
		store.Close()
		return nil, err
	}

	slog.Info("TipCalc initialized",
		"storage", cfg.Storage.Driver,
		"locale", loc.Tag.String(),
		"currency", loc.Currency.Code(),
	)
	return &App{
		Config:      cfg,
		Locale:      loc,
		Preferences: prefs,
		Codec:       codec,
		Metrics:     m,
		Calculator:  service.NewTipService(prefs, codec, m),
		Settings:    service.NewSettingsService(prefs, codec, m),
		store:       store,
	}, nil
}

func openStorage(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(nil), nil
	case config.DriverSQLite, "":
		store, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.Debug("Storage initialized", "database", cfg.Path)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Close releases storage. Unflushed preference edits are lost; callers flush
// through the screens' Disappear and Close first.
func (a *App) Close() error {
	if a.Preferences.Dirty() {
		slog.Warn("Closing with unsaved preferences")
	}
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
