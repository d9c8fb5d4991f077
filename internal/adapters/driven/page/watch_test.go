package page

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

func TestSource_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(`<table></table>`), 0o600))

	src, err := NewSource(Config{Location: path})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := src.Watch(ctx)
	require.NoError(t, err)

	// Several writes in a burst.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`<table><tr><td>x</td></tr></table>`), 0o600))
	}

	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-changes:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSource_Watch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte(`<table></table>`), 0o600))

	src, err := NewSource(Config{Location: path})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := src.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.html"), []byte("x"), 0o600))

	select {
	case <-changes:
		t.Fatal("unexpected change signal")
	case <-time.After(3 * watchThrottle):
	}
}

func TestSource_Watch_HTTPUnsupported(t *testing.T) {
	src, err := NewSource(Config{Location: "https://example.com/"})
	require.NoError(t, err)

	_, err = src.Watch(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
}

func TestThrottle_CoalescesTriggers(t *testing.T) {
	calls := make(chan struct{}, 10)
	th := newThrottle(20*time.Millisecond, func() { calls <- struct{}{} })

	th.Trigger()
	th.Trigger()
	th.Trigger()

	assert.Eventually(t, func() bool { return len(calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, calls, 1)

	th.Trigger()
	th.Stop()
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, calls, 1)
}
