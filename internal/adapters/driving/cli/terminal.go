package cli

import (
	"os"

	"golang.org/x/term"
)

const (
	defaultColumnWidth = 60
	minColumnWidth     = 20
)

// textColumnWidth returns the widest a table column should get.
func textColumnWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultColumnWidth
	}
	// Leave room for the index, score and id columns.
	if w := width - 40; w > minColumnWidth {
		return w
	}
	return minColumnWidth
}

// isInteractive reports whether stdin and stdout are terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
