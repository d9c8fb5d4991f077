package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects debounced calls.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

const testDelay = 30 * time.Millisecond

func TestNew_DefaultDelay(t *testing.T) {
	d := New(0, func(string) {})
	assert.Equal(t, time.Second, d.Delay())

	d = New(testDelay, func(string) {})
	assert.Equal(t, testDelay, d.Delay())
}

func TestDebouncer_BurstRunsOnceWithLastValue(t *testing.T) {
	rec := &recorder{}
	d := New(testDelay, rec.record)
	defer d.Stop()

	for _, q := range []string{"w", "wi", "wid", "widg"} {
		d.Trigger(q)
	}

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(3 * testDelay)
	assert.Equal(t, []string{"widg"}, rec.snapshot())
}

func TestDebouncer_SeparateBurstsRunSeparately(t *testing.T) {
	rec := &recorder{}
	d := New(testDelay, rec.record)
	defer d.Stop()

	d.Trigger("first")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	d.Trigger("second")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestDebouncer_Cancel(t *testing.T) {
	rec := &recorder{}
	d := New(testDelay, rec.record)
	defer d.Stop()

	d.Trigger("draft")
	assert.True(t, d.Pending())

	d.Cancel()
	assert.False(t, d.Pending())

	time.Sleep(3 * testDelay)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_Flush(t *testing.T) {
	rec := &recorder{}
	d := New(time.Hour, rec.record)
	defer d.Stop()

	d.Trigger("now")
	d.Flush()

	assert.Equal(t, []string{"now"}, rec.snapshot())
	assert.False(t, d.Pending())

	d.Flush()
	assert.Len(t, rec.snapshot(), 1, "flush without a pending call does nothing")
}

func TestDebouncer_StopIgnoresTriggers(t *testing.T) {
	rec := &recorder{}
	d := New(testDelay, rec.record)

	d.Stop()
	d.Trigger("late")

	time.Sleep(3 * testDelay)
	assert.Empty(t, rec.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncer_NoOverlappingRuns(t *testing.T) {
	var (
		mu      sync.Mutex
		active  int
		overlap bool
		runs    int
	)
	release := make(chan struct{})

	d := New(5*time.Millisecond, func(int) {
		mu.Lock()
		active++
		if active > 1 {
			overlap = true
		}
		runs++
		mu.Unlock()

		<-release

		mu.Lock()
		active--
		mu.Unlock()
	})
	defer d.Stop()

	d.Trigger(1)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs == 1
	}, time.Second, time.Millisecond)

	// Triggers while the first run is blocked must wait for it.
	d.Trigger(2)
	time.Sleep(20 * time.Millisecond)
	close(release)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs == 2
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, overlap)
}

func TestDebouncer_WaitBlocksOnRunningCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	rec := &recorder{}
	d := New(time.Millisecond, func(v string) {
		close(started)
		<-release
		rec.record(v)
	})
	defer d.Stop()

	d.Trigger("draft")
	<-started

	waited := make(chan struct{})
	go func() {
		d.Cancel()
		d.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait returned while the call was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the call finished")
	}
	assert.Equal(t, []string{"draft"}, rec.snapshot())
}

func TestDebouncer_WaitIdle(t *testing.T) {
	d := New(testDelay, func(string) {})
	defer d.Stop()

	d.Wait()
	d.Trigger("x")
	d.Wait()
	assert.True(t, d.Pending())
}

func TestDebouncer_NilTrigger(t *testing.T) {
	var d *Debouncer[string]
	assert.NotPanics(t, func() { d.Trigger("x") })
}
