package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options are the root flags handed to the bootstrap function.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// Page overrides page.source.
	Page string

	// StateBackend overrides state.backend.
	StateBackend string
}

// Services holds everything the commands talk to.
type Services struct {
	Search        driving.SearchService
	Actions       driving.ResultActionService
	UIState       driving.UIStateService
	Notifications driving.NotificationService
	Forms         driving.FormService
	Shortcuts     driving.ShortcutService
	Settings      driving.SettingsService

	// State is the key-value store behind UI state and autosave.
	State driven.KVStore

	// Watcher is set when the page can be watched for changes.
	Watcher driven.PageWatcher

	// Close releases stores and stops background work.
	Close func() error
}

// Bootstrap builds services for the given options.
type Bootstrap func(opts Options) (*Services, error)

var (
	rootOpts  Options
	verbose   bool
	bootstrap Bootstrap
	services  *Services
)

// Service accessors used by the commands.
var (
	searchService       driving.SearchService
	actionService       driving.ResultActionService
	uiStateService      driving.UIStateService
	notificationService driving.NotificationService
	formService         driving.FormService
	shortcutService     driving.ShortcutService
	settingsService     driving.SettingsService
	stateStore          driven.KVStore
	pageWatcher         driven.PageWatcher
)

var rootCmd = &cobra.Command{
	Use:   "ims",
	Short: "Inventory page search and state tool",
	Long: `ims searches the tables, cards and lists of an inventory page and
keeps the page's interface state (sidebar, theme, form drafts) between runs.

Point it at a saved HTML page or an http(s) URL with --page or the
page.source setting, then search from the command line, the terminal UI,
or an MCP client.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: closeServices,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootOpts.ConfigDir, "config", "", "configuration directory (default ~/.ims)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&rootOpts.Page, "page", "", "page file or URL to search")
	flags.StringVar(&rootOpts.StateBackend, "state-backend", "", "state backend: sqlite, diskv or memory")
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices installs services directly.
func SetServices(s *Services) {
	services = s
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	actionService = s.Actions
	uiStateService = s.UIState
	notificationService = s.Notifications
	formService = s.Forms
	shortcutService = s.Shortcuts
	settingsService = s.Settings
	stateStore = s.State
	pageWatcher = s.Watcher
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	if bootstrap == nil || services != nil {
		return nil
	}
	if rootOpts.StateBackend != "" && !domain.StateBackend(rootOpts.StateBackend).IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidBackend, rootOpts.StateBackend)
	}

	s, err := bootstrap(rootOpts)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(s)
	logger.Debug("Services ready for %s", cmd.CommandPath())
	return nil
}

func closeServices(_ *cobra.Command, _ []string) error {
	return Shutdown()
}

// Shutdown closes services built by the bootstrap function. It is safe to
// call more than once.
func Shutdown() error {
	if services == nil || services.Close == nil || bootstrap == nil {
		return nil
	}
	err := services.Close()
	SetServices(nil)
	return err
}

// errNotConfigured reports a missing service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
