package page

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.PageWatcher = (*Source)(nil)

// watchThrottle coalesces a burst of writes into one change signal.
const watchThrottle = 100 * time.Millisecond

// Watch emits a signal whenever a file page changes, until ctx is cancelled.
// Bursts of writes produce a single signal. HTTP pages cannot be watched.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	if !s.IsFile() {
		return nil, fmt.Errorf("%w: only file pages can be watched", domain.ErrUnsupportedSource)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are seen.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	changes := make(chan struct{}, 1)
	var (
		sendMu sync.Mutex
		done   bool
	)
	send := func() {
		sendMu.Lock()
		defer sendMu.Unlock()
		if done {
			return
		}
		select {
		case changes <- struct{}{}:
		default:
			// A signal is already pending; the reader reloads once.
		}
	}

	go func() {
		defer func() {
			sendMu.Lock()
			done = true
			close(changes)
			sendMu.Unlock()
		}()
		defer watcher.Close()

		throttle := newThrottle(watchThrottle, send)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("Page watcher error: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != s.path {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				throttle.Trigger()
			}
		}
	}()

	return changes, nil
}

// throttle calls fn once per window after the first trigger in it.
type throttle struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	fn    func()
}

func newThrottle(delay time.Duration, fn func()) *throttle {
	return &throttle{delay: delay, fn: fn}
}

func (t *throttle) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.delay, t.flush)
}

func (t *throttle) flush() {
	t.mu.Lock()
	t.timer = nil
	t.mu.Unlock()
	t.fn()
}

func (t *throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
