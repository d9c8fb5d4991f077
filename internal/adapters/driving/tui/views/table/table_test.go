package table

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

type mockSearchService struct {
	filterFunc func(ctx context.Context, query, target string) ([]domain.ElementState, error)
}

func (m *mockSearchService) Search(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
	return nil, nil
}

func (m *mockSearchService) Filter(ctx context.Context, query, target string) ([]domain.ElementState, error) {
	if m.filterFunc != nil {
		return m.filterFunc(ctx, query, target)
	}
	return nil, nil
}

func (m *mockSearchService) Score(string, string) float64 {
	return 0
}

func testStates() []domain.ElementState {
	return []domain.ElementState{
		{
			Element:     domain.Element{ID: "item-1", Text: "Hex bolt M6 HB-06 400", Cells: []string{"Hex bolt M6", "HB-06", "400"}},
			Visible:     true,
			Highlighted: true,
		},
		{
			Element: domain.Element{ID: "item-2", Index: 1, Text: "Washer 10mm WS-10 0"},
		},
		{
			Element:     domain.Element{ID: "item-3", Index: 2, Text: "Hex nut M6 HN-06 1200"},
			Visible:     true,
			Highlighted: true,
		},
	}
}

func newTestView(svc *mockSearchService) *View {
	var view *View
	if svc == nil {
		view = NewView(nil, nil, "#inventory")
	} else {
		view = NewView(nil, svc, "#inventory")
	}
	view.WithDebounce(0)
	view.SetDimensions(100, 30)
	return view
}

func loaded(t *testing.T, v *View) {
	t.Helper()
	v.Update(messages.FilterCompleted{Seq: v.Seq(), States: testStates()})
	require.Len(t, v.States(), 3)
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, "")
	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.False(t, view.Ready())
	assert.Equal(t, "Initialising...", view.View())
}

func TestView_Init_LoadsFilter(t *testing.T) {
	var gotQuery, gotTarget string
	svc := &mockSearchService{
		filterFunc: func(_ context.Context, query, target string) ([]domain.ElementState, error) {
			gotQuery, gotTarget = query, target
			return testStates(), nil
		},
	}
	view := newTestView(svc)

	cmd := view.Init()
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.FilterCompleted)
	require.True(t, ok)

	assert.Empty(t, gotQuery)
	assert.Equal(t, "#inventory", gotTarget)
	assert.Equal(t, view.Seq(), msg.Seq)
}

func TestView_NoService(t *testing.T) {
	view := newTestView(nil)

	cmd := view.Init()
	require.NotNil(t, cmd)
	view.Update(cmd())

	assert.ErrorIs(t, view.Err(), ErrNoSearchService)
	assert.Contains(t, view.View(), "Error:")
}

func TestView_FilterCompleted_HidesRows(t *testing.T) {
	view := newTestView(&mockSearchService{})
	loaded(t, view)

	assert.Equal(t, 2, view.VisibleCount())
	out := view.View()
	assert.Contains(t, out, "Hex bolt M6 │ HB-06 │ 400")
	assert.Contains(t, out, "Hex nut M6")
	assert.NotContains(t, out, "Washer")
	assert.Contains(t, out, "2 of 3 rows visible")
}

func TestView_FilterCompleted_StaleDropped(t *testing.T) {
	view := newTestView(&mockSearchService{})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})

	view.Update(messages.FilterCompleted{Seq: view.Seq() - 1, States: testStates()})
	assert.Empty(t, view.States())

	view.Update(messages.FilterCompleted{Seq: view.Seq(), States: testStates()})
	assert.Len(t, view.States(), 3)
}

func TestView_FilterCompleted_Error(t *testing.T) {
	view := newTestView(&mockSearchService{})
	view.Update(messages.FilterCompleted{Seq: view.Seq(), Err: domain.ErrTargetNotFound})

	assert.ErrorIs(t, view.Err(), domain.ErrTargetNotFound)
}

func TestView_Typing_Debounces(t *testing.T) {
	var queries []string
	svc := &mockSearchService{
		filterFunc: func(_ context.Context, query, _ string) ([]domain.ElementState, error) {
			queries = append(queries, query)
			return testStates(), nil
		},
	}
	view := newTestView(svc)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	require.NotNil(t, cmd)
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	assert.Equal(t, "he", view.Query())

	_, cmd = view.Update(messages.DebounceElapsed{View: messages.ViewTable, Seq: view.Seq() - 1})
	assert.Nil(t, cmd)
	_, cmd = view.Update(messages.DebounceElapsed{View: messages.ViewSearch, Seq: view.Seq()})
	assert.Nil(t, cmd)

	_, cmd = view.Update(messages.DebounceElapsed{View: messages.ViewTable, Seq: view.Seq()})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"he"}, queries)
}

func TestView_Apply(t *testing.T) {
	var gotQuery string
	svc := &mockSearchService{
		filterFunc: func(_ context.Context, query, _ string) ([]domain.ElementState, error) {
			gotQuery = query
			return nil, nil
		},
	}
	view := newTestView(svc)

	cmd := view.Apply("bolt")
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, "bolt", view.Query())
	assert.Equal(t, "bolt", gotQuery)
}

func TestView_PageChanged_Reloads(t *testing.T) {
	view := newTestView(&mockSearchService{})
	before := view.Seq()

	_, cmd := view.Update(messages.PageChanged{})
	require.NotNil(t, cmd)
	assert.Equal(t, before+1, view.Seq())
}

func TestView_Navigation(t *testing.T) {
	view := newTestView(&mockSearchService{})
	loaded(t, view)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	// Hidden rows are skipped, so the visible list ends here
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Selected())
}

func TestView_EmptyStates(t *testing.T) {
	view := newTestView(&mockSearchService{})
	view.Update(messages.FilterCompleted{Seq: view.Seq(), States: []domain.ElementState{}})
	assert.Contains(t, view.View(), "No rows in #inventory")

	view.Update(messages.FilterCompleted{Seq: view.Seq(), States: []domain.ElementState{
		{Element: domain.Element{ID: "a", Text: "Washer"}},
	}})
	assert.Contains(t, view.View(), "No rows match")
}

func TestView_ErrorOccurred(t *testing.T) {
	view := newTestView(&mockSearchService{})
	view.Update(messages.ErrorOccurred{Err: errors.New("boom")})
	assert.EqualError(t, view.Err(), "boom")
}
