package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService copies result text and opens the page a result came from.
type ResultActionService struct {
	source driven.ElementSource

	// writeClipboard and run are replaced in tests.
	writeClipboard func(text string) error
	run            func(cmd *exec.Cmd) error
}

// NewResultActionService creates a result action service. A nil source
// disables OpenPage.
func NewResultActionService(source driven.ElementSource) *ResultActionService {
	return &ResultActionService{
		source:         source,
		writeClipboard: clipboard.WriteAll,
		run:            func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// CopyToClipboard puts the element text of result on the system clipboard.
func (s *ResultActionService) CopyToClipboard(_ context.Context, result *domain.SearchResult) error {
	if result == nil {
		return fmt.Errorf("copy: %w", domain.ErrInvalidInput)
	}
	if clipboard.Unsupported {
		return fmt.Errorf("copy: no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}
	if err := s.writeClipboard(result.Element.Text); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}

// OpenPage opens the page file or URL with the desktop's default handler.
func (s *ResultActionService) OpenPage(_ context.Context) error {
	if s.source == nil || s.source.Location() == "" {
		return domain.ErrNoPageSource
	}

	cmd, err := openCommand(runtime.GOOS, s.source.Location())
	if err != nil {
		return err
	}
	if err := s.run(cmd); err != nil {
		return fmt.Errorf("open %s: %w", s.source.Location(), err)
	}
	return nil
}

// openCommand returns the command that opens target on goos.
func openCommand(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	default:
		return nil, fmt.Errorf("open: unsupported platform %s", goos)
	}
}
