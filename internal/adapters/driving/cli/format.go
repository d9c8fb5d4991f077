package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/format"
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format values the way the page shows them",
}

var formatCurrencyCmd = &cobra.Command{
	Use:   "currency [amount]",
	Short: "Format an amount as US dollars",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormatCurrency,
}

var formatDateCmd = &cobra.Command{
	Use:   "date [date]",
	Short: "Format a date as \"Jan 2, 2006\"",
	Long:  `Accepts RFC 3339 timestamps or ` + domain.DatePlaceholder + ` dates.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFormatDate,
}

func init() {
	formatCmd.AddCommand(formatCurrencyCmd)
	formatCmd.AddCommand(formatDateCmd)
	rootCmd.AddCommand(formatCmd)
}

func runFormatCurrency(cmd *cobra.Command, args []string) error {
	raw := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(args[0]), "$"), ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: not a number: %s", domain.ErrInvalidInput, args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), format.Currency(amount))
	return nil
}

func runFormatDate(cmd *cobra.Command, args []string) error {
	t, err := format.ParseDate(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), format.Date(t))
	return nil
}
