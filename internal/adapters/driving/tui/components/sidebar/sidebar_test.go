package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/messages"
)

func TestNew(t *testing.T) {
	b := New(nil)

	require.NotNil(t, b)
	assert.Len(t, b.Items(), 3)
	assert.Equal(t, messages.ViewSearch, b.Active())
	assert.False(t, b.Collapsed())
}

func TestSidebar_View_Expanded(t *testing.T) {
	b := New(nil)
	b.SetHeight(6)

	view := b.View()

	assert.Contains(t, view, "Inventory")
	assert.Contains(t, view, "Search")
	assert.Contains(t, view, "New item")
}

func TestSidebar_View_Collapsed(t *testing.T) {
	b := New(nil)
	b.SetHeight(6)
	expanded := b.Width()

	b.SetCollapsed(true)
	view := b.View()

	assert.True(t, b.Collapsed())
	assert.NotContains(t, view, "Search")
	assert.Contains(t, view, "IMS")
	assert.Less(t, b.Width(), expanded)
}

func TestSidebar_Next(t *testing.T) {
	b := New(nil)

	assert.Equal(t, messages.ViewTable, b.Next())

	b.SetActive(messages.ViewForm)
	assert.Equal(t, messages.ViewSearch, b.Next())

	b.SetActive(messages.ViewType(99))
	assert.Equal(t, messages.ViewSearch, b.Next())
}
