package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change search, autosave, notification, layout, state and page
settings. Values are stored in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting by its configuration key, for example:

  ims settings set search.debounce_ms 250
  ims settings set page.source ./inventory.html
  ims settings set state.backend diskv

When setting page.token without a value, the token is read from the
terminal without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	printSettings(cmd.OutOrStdout(), settings)
	return nil
}

func printSettings(w io.Writer, s *domain.AppSettings) {
	section := color.New(color.Bold)

	block := func(title string, rows [][2]string) {
		fmt.Fprintln(w, section.Sprintf("[%s]", title))
		tbl := newTable()
		for _, row := range rows {
			tbl.AddRow("  "+row[0]+":", row[1])
		}
		fmt.Fprintln(w, tbl)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Current Settings")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	block("Search", [][2]string{
		{"Debounce", s.Search.Debounce.String()},
		{"Threshold", fmt.Sprintf("%.2f", s.Search.Threshold)},
		{"Limit", limitString(s.Search.Limit)},
	})
	block("Autosave", [][2]string{
		{"Debounce", s.Autosave.Debounce.String()},
	})
	block("Notifications", [][2]string{
		{"Duration", s.Notifications.Duration.String()},
		{"Fade", s.Notifications.Fade.String()},
		{"Rate", fmt.Sprintf("%g/s", s.Notifications.RatePerSecond)},
	})
	block("Layout", [][2]string{
		{"Narrow width", fmt.Sprintf("%d columns", s.Layout.NarrowWidth)},
	})
	block("State", [][2]string{
		{"Backend", s.State.Backend.String()},
		{"Directory", orDefault(s.State.Dir, "(default)")},
	})
	block("Page", [][2]string{
		{"Source", orDefault(s.Page.Source, "(not set)")},
		{"Target", s.Page.Target},
		{"Token", tokenString(s.Page.Token)},
		{"Rate", fmt.Sprintf("%g/s", s.Page.RatePerSecond)},
	})
	block("Performance", [][2]string{
		{"Slow load", s.Perf.SlowLoad.String()},
	})
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case key == "page.token":
		fmt.Fprint(cmd.ErrOrStderr(), "Token: ")
		value = readPassword()
		fmt.Fprintln(cmd.ErrOrStderr())
	default:
		return fmt.Errorf("%w: missing value for %s", domain.ErrInvalidInput, key)
	}

	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w (known keys: %s)", err, strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	if key == "page.token" {
		value = maskToken(value)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	for _, key := range settingsService.Keys() {
		fmt.Fprintln(cmd.OutOrStdout(), key)
	}
	return nil
}

func limitString(limit int) string {
	if limit <= 0 {
		return "none"
	}
	return fmt.Sprintf("%d", limit)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func tokenString(token string) string {
	if token == "" {
		return "(not set)"
	}
	return maskToken(token)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
