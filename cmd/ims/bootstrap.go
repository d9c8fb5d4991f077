package main

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/ims-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ims-cli/internal/adapters/driven/page"
	"github.com/custodia-labs/ims-cli/internal/adapters/driven/storage/diskv"
	"github.com/custodia-labs/ims-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ims-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ims-cli/internal/core/services"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

// bootstrap wires adapters and services for one command run.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("Failed to load settings, using defaults: %v", err)
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}
	applyOverrides(settings, opts)

	store, err := openStore(settings.State, stateDir(opts.ConfigDir, settings.State))
	if err != nil {
		return nil, err
	}

	var (
		source  driven.ElementSource
		watcher driven.PageWatcher
	)
	if settings.Page.Source != "" {
		src, err := page.NewSource(page.Config{
			Location:      settings.Page.Source,
			Token:         settings.Page.Token,
			RatePerSecond: settings.Page.RatePerSecond,
		})
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("open page: %w", err)
		}
		source = src
		if src.IsFile() {
			watcher = src
		}
		logger.Debug("Page source: %s", src.Location())
	}

	search := services.NewSearchService(source, settings.Page.Target)
	search.SetDefaults(settings.Search.Threshold, settings.Search.Limit)

	notifications := services.NewNotificationService(settings.Notifications)
	forms := services.NewFormService(store, notifications, settings.Autosave)

	return &cli.Services{
		Search:        search,
		Actions:       services.NewResultActionService(source),
		UIState:       services.NewUIStateService(store, settings.Layout.NarrowWidth),
		Notifications: notifications,
		Forms:         forms,
		Shortcuts:     services.NewShortcutService(),
		Settings:      settingsService,
		State:         store,
		Watcher:       watcher,
		Close: func() error {
			forms.Close()
			return store.Close()
		},
	}, nil
}

// applyOverrides layers root flags over the loaded settings without saving them.
func applyOverrides(settings *domain.AppSettings, opts cli.Options) {
	if opts.Page != "" {
		settings.Page.Source = opts.Page
	}
	if opts.StateBackend != "" {
		settings.State.Backend = domain.StateBackend(opts.StateBackend)
	}
}

// stateDir resolves where persisted state lives. An explicit state.dir wins,
// then <config>/state. Empty lets the store pick its own default.
func stateDir(configDir string, state domain.StateSettings) string {
	if state.Dir != "" {
		return state.Dir
	}
	if configDir != "" {
		return filepath.Join(configDir, "state")
	}
	return ""
}

func openStore(state domain.StateSettings, dir string) (driven.KVStore, error) {
	switch state.Backend {
	case domain.StateBackendMemory:
		return memory.NewKVStore(), nil
	case domain.StateBackendDiskv:
		path := dir
		if path != "" {
			path = filepath.Join(dir, "kv")
		}
		store, err := diskv.NewStore(path)
		if err != nil {
			return nil, fmt.Errorf("open diskv state: %w", err)
		}
		return store, nil
	case domain.StateBackendSQLite, "":
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite state: %w", err)
		}
		return store.KVStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidBackend, state.Backend)
	}
}
