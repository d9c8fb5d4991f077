package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

// tuiLogName is the log file used while the TUI owns the terminal.
const tuiLogName = "ims-tui.log"

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for ims.

The TUI searches the page as you type, filters the inventory table and
edits new stock items with their drafts saved automatically.

Controls:
  ctrl+k    - Focus search
  ctrl+b    - Toggle sidebar
  ctrl+t    - Toggle theme
  ctrl+n    - Next page
  esc       - Close menus and dialogs
  f1        - Keyboard shortcuts
  ctrl+c    - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ports := &tui.Ports{
		Search:        searchService,
		ResultAction:  actionService,
		UIState:       uiStateService,
		Notifications: notificationService,
		Forms:         formService,
		Shortcuts:     shortcutService,
		Settings:      settingsService,
	}

	if pageWatcher != nil {
		changes, err := pageWatcher.Watch(ctx)
		if err != nil {
			logger.Debug("Page not watched: %v", err)
		} else {
			ports.PageChanges = changes
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	// Create and run the bubbletea program
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()

	if formService != nil {
		formService.Flush()
	}
	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	return nil
}

// redirectLogs keeps log output off the alternate screen. Verbose runs log
// to a file in the temp directory; otherwise logging is silenced.
func redirectLogs() (func(), error) {
	if !verbose {
		logger.SetQuiet(true)
		return func() { logger.SetQuiet(false) }, nil
	}

	path := filepath.Join(os.TempDir(), tuiLogName)
	f, err := tea.LogToFile(path, "ims")
	if err != nil {
		return nil, fmt.Errorf("open TUI log: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
