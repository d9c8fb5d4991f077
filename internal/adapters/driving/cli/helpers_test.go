package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ims-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ims-cli/internal/core/domain"
	coreservices "github.com/custodia-labs/ims-cli/internal/core/services"
)

// fakeSource serves a fixed inventory table.
type fakeSource struct {
	elements map[string][]domain.Element
}

func (f *fakeSource) Elements(_ context.Context, target string) ([]domain.Element, error) {
	elems, ok := f.elements[target]
	if !ok {
		return nil, domain.ErrTargetNotFound
	}
	return elems, nil
}

func (f *fakeSource) Location() string {
	return "testdata/inventory.html"
}

func inventory() []domain.Element {
	return []domain.Element{
		{ID: "item-1", Kind: domain.KindRow, Index: 0, Text: "Hex bolt M6 HB-06 400", Cells: []string{"Hex bolt M6", "HB-06", "400"}},
		{ID: "item-2", Kind: domain.KindRow, Index: 1, Text: "Hex nut M6 HN-06 1200", Cells: []string{"Hex nut M6", "HN-06", "1200"}},
		{ID: "#inventory#2", Kind: domain.KindRow, Index: 2, Text: "Washer 10mm WS-10 0", Cells: []string{"Washer 10mm", "WS-10", "0"}},
	}
}

type testServices struct {
	*Services
	store  *memory.KVStore
	config *memory.ConfigStore
}

// setupTestServices installs services backed by memory stores and a fake
// page, and removes them when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	color.NoColor = true

	source := &fakeSource{elements: map[string][]domain.Element{
		"table":      inventory(),
		"#inventory": inventory(),
		"#empty":     {},
	}}
	store := memory.NewKVStore()
	config := memory.NewConfigStore()
	notes := coreservices.NewNotificationService(domain.DefaultAppSettings().Notifications)
	forms := coreservices.NewFormService(store, notes, domain.AutosaveSettings{Debounce: time.Hour})

	s := &Services{
		Search:        coreservices.NewSearchService(source, domain.DefaultSearchTarget),
		Actions:       coreservices.NewResultActionService(source),
		UIState:       coreservices.NewUIStateService(store, 0),
		Notifications: notes,
		Forms:         forms,
		Shortcuts:     coreservices.NewShortcutService(),
		Settings:      coreservices.NewSettingsService(config),
		State:         store,
	}
	SetServices(s)
	t.Cleanup(func() {
		forms.Close()
		SetServices(nil)
	})

	return &testServices{Services: s, store: store, config: config}
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// lines splits output into trimmed non-empty lines.
func lines(out string) []string {
	var result []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			result = append(result, l)
		}
	}
	return result
}

// requireLine fails unless one output line contains every part.
func requireLine(t *testing.T, out string, parts ...string) {
	t.Helper()
	for _, l := range lines(out) {
		found := true
		for _, p := range parts {
			if !strings.Contains(l, p) {
				found = false
				break
			}
		}
		if found {
			return
		}
	}
	require.Failf(t, "line not found", "want a line containing %q in:\n%s", parts, out)
}
