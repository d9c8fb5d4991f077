package input

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/styles"
)

func typeRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ticks runs cmd and collects the debounce ticks it produces. Blink and
// other commands are ignored.
func ticks(cmd tea.Cmd) []messages.DebounceElapsed {
	if cmd == nil {
		return nil
	}
	var out []messages.DebounceElapsed
	switch msg := cmd().(type) {
	case messages.DebounceElapsed:
		out = append(out, msg)
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, ticks(c)...)
		}
	}
	return out
}

func newInstantInput() *QueryInput {
	q := NewQueryInput(nil, messages.ViewSearch)
	q.SetDebounce(0)
	// A static cursor keeps blink commands out of the batches.
	q.textinput.Cursor.SetMode(cursor.CursorStatic)
	return q
}

func TestNewQueryInput(t *testing.T) {
	q := NewQueryInput(styles.DefaultStyles(), messages.ViewTable)

	require.NotNil(t, q)
	assert.Equal(t, "", q.Value())
	assert.True(t, q.Focused())
	assert.Equal(t, DefaultDebounce, q.Debounce())
	assert.Equal(t, 0, q.Seq())
}

func TestNewQueryInput_NilStyles(t *testing.T) {
	q := NewQueryInput(nil, messages.ViewSearch)

	assert.NotNil(t, q.styles)
}

func TestQueryInput_Init(t *testing.T) {
	assert.NotNil(t, newInstantInput().Init())
}

func TestQueryInput_Update_SchedulesTick(t *testing.T) {
	q := newInstantInput()

	_, cmd := q.Update(typeRune('h'))

	assert.Equal(t, "h", q.Value())
	assert.Equal(t, 1, q.Seq())
	got := ticks(cmd)
	require.Len(t, got, 1)
	assert.Equal(t, messages.DebounceElapsed{View: messages.ViewSearch, Seq: 1}, got[0])
	assert.True(t, q.Due(got[0]))
}

func TestQueryInput_Update_UnchangedValueDoesNotTick(t *testing.T) {
	q := newInstantInput()

	_, cmd := q.Update(tea.KeyMsg{Type: tea.KeyLeft})

	assert.Empty(t, ticks(cmd))
	assert.Equal(t, 0, q.Seq())
}

func TestQueryInput_RapidEditsOnlyLastTickIsDue(t *testing.T) {
	q := newInstantInput()

	var all []messages.DebounceElapsed
	for _, r := range "hex" {
		_, cmd := q.Update(typeRune(r))
		all = append(all, ticks(cmd)...)
	}

	require.Len(t, all, 3)
	assert.False(t, q.Due(all[0]))
	assert.False(t, q.Due(all[1]))
	assert.True(t, q.Due(all[2]))
	assert.Equal(t, "hex", q.Value())
}

func TestQueryInput_Due_OtherView(t *testing.T) {
	q := newInstantInput()
	q.Update(typeRune('a'))

	assert.False(t, q.Due(messages.DebounceElapsed{View: messages.ViewTable, Seq: q.Seq()}))
}

func TestQueryInput_Bump(t *testing.T) {
	q := newInstantInput()
	q.Update(typeRune('a'))
	pending := messages.DebounceElapsed{View: messages.ViewSearch, Seq: q.Seq()}

	seq := q.Bump()

	assert.Equal(t, 2, seq)
	assert.False(t, q.Due(pending))
	assert.True(t, q.Current(seq))
	assert.False(t, q.Current(1))
}

func TestQueryInput_SetDebounce(t *testing.T) {
	q := NewQueryInput(nil, messages.ViewSearch)

	q.SetDebounce(50 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, q.Debounce())

	q.SetDebounce(-time.Second)
	assert.Equal(t, time.Duration(0), q.Debounce())
}

func TestQueryInput_View(t *testing.T) {
	q := newInstantInput()

	assert.Contains(t, q.View(), "Search")

	q.SetLabel("Filter: ")
	assert.Contains(t, q.View(), "Filter")
}

func TestQueryInput_SetValueDoesNotBump(t *testing.T) {
	q := newInstantInput()

	q.SetValue("bolt")

	assert.Equal(t, "bolt", q.Value())
	assert.Equal(t, 0, q.Seq())
}

func TestQueryInput_FocusBlur(t *testing.T) {
	q := newInstantInput()

	q.Blur()
	assert.False(t, q.Focused())

	q.Focus()
	assert.True(t, q.Focused())
}

func TestQueryInput_SetWidth(t *testing.T) {
	q := newInstantInput()

	q.SetWidth(100)
	assert.Equal(t, 100, q.Width())
	assert.Equal(t, 100-len("Search: ")-6, q.textinput.Width)

	q.SetWidth(10)
	assert.Equal(t, minInputWidth, q.textinput.Width)
}

func TestQueryInput_Reset(t *testing.T) {
	q := newInstantInput()
	q.Update(typeRune('a'))
	pending := messages.DebounceElapsed{View: messages.ViewSearch, Seq: q.Seq()}

	q.Reset()

	assert.Equal(t, "", q.Value())
	assert.False(t, q.Due(pending))
}

func TestQueryInput_Backspace(t *testing.T) {
	q := newInstantInput()
	q.SetValue("ab")
	q.textinput.CursorEnd()

	_, cmd := q.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "a", q.Value())
	assert.Len(t, ticks(cmd), 1)
}
