package domain

import "time"

// StateBackend selects where persisted UI state is kept.
type StateBackend string

// Available state backends.
const (
	// StateBackendSQLite stores state in a SQLite key-value table.
	StateBackendSQLite StateBackend = "sqlite"

	// StateBackendDiskv stores each key as a file.
	StateBackendDiskv StateBackend = "diskv"

	// StateBackendMemory keeps state for the lifetime of the process only.
	StateBackendMemory StateBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StateBackend) IsValid() bool {
	switch b {
	case StateBackendSQLite, StateBackendDiskv, StateBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StateBackend) String() string {
	return string(b)
}

// SearchSettings configures fuzzy search.
type SearchSettings struct {
	// Debounce is the quiet interval before search-as-you-type runs.
	Debounce time.Duration

	// Threshold is the score results must exceed.
	Threshold float64

	// Limit caps result count; zero means unlimited.
	Limit int
}

// AutosaveSettings configures form draft persistence.
type AutosaveSettings struct {
	// Debounce is the quiet interval before a draft is written.
	Debounce time.Duration
}

// NotificationSettings configures toast notifications.
type NotificationSettings struct {
	Duration time.Duration
	Fade     time.Duration

	// RatePerSecond bounds how many notifications are accepted per second.
	RatePerSecond float64
}

// LayoutSettings configures responsive behaviour.
type LayoutSettings struct {
	NarrowWidth int
}

// StateSettings configures UI state persistence.
type StateSettings struct {
	Backend StateBackend
	Dir     string
}

// PageSettings configures where searchable elements come from.
type PageSettings struct {
	// Source is a file path or http(s) URL of a rendered page.
	Source string

	// Target is the default selector searched.
	Target string

	// Token is an optional bearer token for HTTP sources.
	Token string

	// RatePerSecond bounds HTTP fetches.
	RatePerSecond float64
}

// PerfSettings configures load-time monitoring.
type PerfSettings struct {
	SlowLoad time.Duration
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Search        SearchSettings
	Autosave      AutosaveSettings
	Notifications NotificationSettings
	Layout        LayoutSettings
	State         StateSettings
	Page          PageSettings
	Perf          PerfSettings
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Debounce:  300 * time.Millisecond,
			Threshold: MatchThreshold,
		},
		Autosave: AutosaveSettings{
			Debounce: time.Second,
		},
		Notifications: NotificationSettings{
			Duration:      DefaultNotificationDuration,
			Fade:          DefaultNotificationFade,
			RatePerSecond: 5,
		},
		Layout: LayoutSettings{
			NarrowWidth: DefaultNarrowWidth,
		},
		State: StateSettings{
			Backend: StateBackendSQLite,
		},
		Page: PageSettings{
			Target:        DefaultSearchTarget,
			RatePerSecond: 2,
		},
		Perf: PerfSettings{
			SlowLoad: 3 * time.Second,
		},
	}
}
