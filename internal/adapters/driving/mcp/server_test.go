package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{}, Options{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("empty version falls back to default", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, Options{})
		require.NoError(t, err)
		assert.Equal(t, DefaultVersion, server.opts.Version)
	})

	t.Run("version is kept", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, Options{Version: "1.2.0"})
		require.NoError(t, err)
		assert.Equal(t, "1.2.0", server.opts.Version)
	})
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"nil search service", &Ports{}, ErrMissingSearchService},
		{"search only", &Ports{Search: &mockSearchService{}}, nil},
		{"all ports", &Ports{
			Search:   &mockSearchService{},
			Settings: &mockSettingsService{},
			UIState:  &mockUIStateService{},
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
