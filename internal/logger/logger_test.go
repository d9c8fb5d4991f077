package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects output to a buffer and restores defaults on cleanup.
func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	SetQuiet(false)
	t.Cleanup(func() {
		SetVerbose(false)
		SetQuiet(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("test message %s", "arg")

	assert.Equal(t, "[DEBUG] test message arg\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("test message")
	Info("info message")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Search Execution")

	assert.Equal(t, "\n=== Search Execution ===\n", buf.String())
}

func TestInfo(t *testing.T) {
	buf := capture(t, true)

	Info("info message %d", 42)

	assert.Equal(t, "[INFO] info message 42\n", buf.String())
}

func TestWarn_PrintsWithoutVerbose(t *testing.T) {
	buf := capture(t, false)

	Warn("Failed to restore form data: %s", "bad json")

	assert.Equal(t, "[WARN] Failed to restore form data: bad json\n", buf.String())
}

func TestQuiet_SuppressesEverything(t *testing.T) {
	buf := capture(t, true)
	SetQuiet(true)

	Debug("a")
	Info("b")
	Warn("c")

	assert.Empty(t, buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	buf := capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", n)
			IsVerbose()
			Warn("warn %d", n)
		}(i)
	}
	wg.Wait()

	assert.Contains(t, buf.String(), "[WARN]")
}
