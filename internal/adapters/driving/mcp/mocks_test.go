package mcp

import (
	"context"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	states  []domain.ElementState
	score   float64
	err     error

	lastQuery  string
	lastOpts   domain.SearchOptions
	lastTarget string
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) Filter(_ context.Context, query, target string) ([]domain.ElementState, error) {
	m.lastQuery = query
	m.lastTarget = target
	return m.states, m.err
}

func (m *mockSearchService) Score(_, _ string) float64 {
	return m.score
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockUIStateService is a mock implementation of driving.UIStateService.
type mockUIStateService struct {
	state domain.UIState
}

func (m *mockUIStateService) Restore() domain.UIState               { return m.state }
func (m *mockUIStateService) State() domain.UIState                 { return m.state }
func (m *mockUIStateService) SetWidth(_ int)                        {}
func (m *mockUIStateService) ToggleSidebar() domain.UIState         { return m.state }
func (m *mockUIStateService) ToggleMobileSidebar() domain.UIState   { return m.state }
func (m *mockUIStateService) ClickOutside(_, _ bool) domain.UIState { return m.state }
func (m *mockUIStateService) ToggleTheme() domain.UIState           { return m.state }
func (m *mockUIStateService) SetTheme(_ domain.Theme) error         { return nil }
func (m *mockUIStateService) OpenDropdown(_ string) domain.UIState  { return m.state }
func (m *mockUIStateService) OpenModal() domain.UIState             { return m.state }
func (m *mockUIStateService) CloseOverlays() domain.UIState         { return m.state }
func (m *mockUIStateService) FocusSearch(_ bool) domain.UIState     { return m.state }
