package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySearchDebounce    = "search.debounce_ms"
	keySearchThreshold   = "search.threshold"
	keySearchLimit       = "search.limit"
	keyAutosaveDebounce  = "autosave.debounce_ms"
	keyNotifyDuration    = "notifications.duration_ms"
	keyNotifyFade        = "notifications.fade_ms"
	keyNotifyRate        = "notifications.rate_per_sec"
	keyLayoutNarrowWidth = "layout.narrow_width"
	keyStateBackend      = "state.backend"
	keyStateDir          = "state.dir"
	keyPageSource        = "page.source"
	keyPageTarget        = "page.target"
	keyPageToken         = "page.token"
	keyPageRate          = "page.rate_per_sec"
	keyPerfSlowLoad      = "perf.slow_load_ms"
)

// valueKind is how a setting's string form is parsed.
type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBackend
)

// settingKinds lists every settable key in display order.
var settingKinds = []struct {
	key  string
	kind valueKind
}{
	{keySearchDebounce, kindInt},
	{keySearchThreshold, kindFloat},
	{keySearchLimit, kindInt},
	{keyAutosaveDebounce, kindInt},
	{keyNotifyDuration, kindInt},
	{keyNotifyFade, kindInt},
	{keyNotifyRate, kindFloat},
	{keyLayoutNarrowWidth, kindInt},
	{keyStateBackend, kindBackend},
	{keyStateDir, kindString},
	{keyPageSource, kindString},
	{keyPageTarget, kindString},
	{keyPageToken, kindString},
	{keyPageRate, kindFloat},
	{keyPerfSlowLoad, kindInt},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			Debounce:  s.getMillis(keySearchDebounce, defaults.Search.Debounce),
			Threshold: s.getFloat(keySearchThreshold, defaults.Search.Threshold),
			Limit:     s.getInt(keySearchLimit, defaults.Search.Limit),
		},
		Autosave: domain.AutosaveSettings{
			Debounce: s.getMillis(keyAutosaveDebounce, defaults.Autosave.Debounce),
		},
		Notifications: domain.NotificationSettings{
			Duration:      s.getMillis(keyNotifyDuration, defaults.Notifications.Duration),
			Fade:          s.getMillis(keyNotifyFade, defaults.Notifications.Fade),
			RatePerSecond: s.getFloat(keyNotifyRate, defaults.Notifications.RatePerSecond),
		},
		Layout: domain.LayoutSettings{
			NarrowWidth: s.getInt(keyLayoutNarrowWidth, defaults.Layout.NarrowWidth),
		},
		State: domain.StateSettings{
			Backend: s.getBackend(defaults.State.Backend),
			Dir:     s.configStore.GetString(keyStateDir), // empty means next to the config file
		},
		Page: domain.PageSettings{
			Source:        s.configStore.GetString(keyPageSource),
			Target:        s.getString(keyPageTarget, defaults.Page.Target),
			Token:         s.configStore.GetString(keyPageToken),
			RatePerSecond: s.getFloat(keyPageRate, defaults.Page.RatePerSecond),
		},
		Perf: domain.PerfSettings{
			SlowLoad: s.getMillis(keyPerfSlowLoad, defaults.Perf.SlowLoad),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keySearchDebounce, settings.Search.Debounce.Milliseconds()},
		{keySearchThreshold, settings.Search.Threshold},
		{keySearchLimit, settings.Search.Limit},
		{keyAutosaveDebounce, settings.Autosave.Debounce.Milliseconds()},
		{keyNotifyDuration, settings.Notifications.Duration.Milliseconds()},
		{keyNotifyFade, settings.Notifications.Fade.Milliseconds()},
		{keyNotifyRate, settings.Notifications.RatePerSecond},
		{keyLayoutNarrowWidth, settings.Layout.NarrowWidth},
		{keyStateBackend, settings.State.Backend.String()},
		{keyStateDir, settings.State.Dir},
		{keyPageSource, settings.Page.Source},
		{keyPageTarget, settings.Page.Target},
		{keyPageRate, settings.Page.RatePerSecond},
		{keyPerfSlowLoad, settings.Perf.SlowLoad.Milliseconds()},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Only overwrite the token when one is given
	if settings.Page.Token != "" {
		if err := s.configStore.Set(keyPageToken, settings.Page.Token); err != nil {
			return fmt.Errorf("save %s: %w", keyPageToken, err)
		}
	}

	return nil
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := lookupKind(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		if key == keySearchThreshold && f >= 1 {
			return fmt.Errorf("%w: %s must be below 1", domain.ErrInvalidInput, key)
		}
		parsed = f
	case kindBackend:
		backend := domain.StateBackend(strings.ToLower(strings.TrimSpace(value)))
		if !backend.IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrInvalidBackend, value)
		}
		parsed = backend.String()
	default:
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every settable key.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKinds))
	for i, k := range settingKinds {
		keys[i] = k.key
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func lookupKind(key string) (valueKind, bool) {
	for _, k := range settingKinds {
		if k.key == key {
			return k.kind, true
		}
	}
	return kindString, false
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Millisecond
}

func (s *SettingsService) getBackend(defaultVal domain.StateBackend) domain.StateBackend {
	backend := domain.StateBackend(s.configStore.GetString(keyStateBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
