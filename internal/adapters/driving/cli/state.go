package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect persisted interface state",
	Long: `Reads and writes the key-value store that holds the sidebar and theme
choices and form drafts (keys prefixed with "autosave_").`,
}

var stateGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runStateGet,
}

var stateSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a value",
	Args:  cobra.ExactArgs(2),
	RunE:  runStateSet,
}

var stateRemoveCmd = &cobra.Command{
	Use:     "rm [key]",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a stored value",
	Args:    cobra.ExactArgs(1),
	RunE:    runStateRemove,
}

var stateListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List stored keys and values",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStateList,
}

var stateClearDraftsCmd = &cobra.Command{
	Use:   "clear-drafts",
	Short: "Remove every autosaved form draft",
	Args:  cobra.NoArgs,
	RunE:  runStateClearDrafts,
}

func init() {
	stateCmd.AddCommand(stateGetCmd)
	stateCmd.AddCommand(stateSetCmd)
	stateCmd.AddCommand(stateRemoveCmd)
	stateCmd.AddCommand(stateListCmd)
	stateCmd.AddCommand(stateClearDraftsCmd)
	rootCmd.AddCommand(stateCmd)
}

func runStateGet(cmd *cobra.Command, args []string) error {
	if stateStore == nil {
		return errNotConfigured("state")
	}

	value, ok, err := stateStore.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runStateSet(cmd *cobra.Command, args []string) error {
	if stateStore == nil {
		return errNotConfigured("state")
	}

	if err := stateStore.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to store %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
	return nil
}

func runStateRemove(cmd *cobra.Command, args []string) error {
	if stateStore == nil {
		return errNotConfigured("state")
	}

	if err := stateStore.Remove(args[0]); err != nil {
		return fmt.Errorf("failed to remove %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func runStateList(cmd *cobra.Command, args []string) error {
	if stateStore == nil {
		return errNotConfigured("state")
	}

	var prefix string
	if len(args) == 1 {
		prefix = args[0]
	}

	keys, err := stateStore.Keys(prefix)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	if len(keys) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored state.")
		return nil
	}

	bold := color.New(color.Bold)
	tbl := newTable()
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Value"))
	for _, key := range keys {
		value, ok, err := stateStore.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		tbl.AddRow(key, value)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tbl)
	return nil
}

func runStateClearDrafts(cmd *cobra.Command, _ []string) error {
	if stateStore == nil {
		return errNotConfigured("state")
	}

	keys, err := stateStore.Keys(domain.AutosavePrefix)
	if err != nil {
		return fmt.Errorf("failed to list drafts: %w", err)
	}
	for _, key := range keys {
		if err := stateStore.Remove(key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d draft(s)\n", len(keys))
	return nil
}
