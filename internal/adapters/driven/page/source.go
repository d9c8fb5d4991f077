package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRate is the default number of HTTP fetches per second.
	DefaultRate = 2.0

	// maxPageSize bounds how much of a page is read.
	maxPageSize = 16 << 20
)

// Ensure Source implements the interface.
var _ driven.ElementSource = (*Source)(nil)

// Config configures a page source.
type Config struct {
	// Location is a file path, file:// URL or http(s) URL.
	Location string

	// Token is an optional bearer token sent to HTTP pages.
	Token string

	// RatePerSecond bounds HTTP fetches; zero uses DefaultRate.
	RatePerSecond float64

	// Timeout bounds each HTTP fetch; zero uses DefaultTimeout.
	Timeout time.Duration
}

// Source reads elements from a file or HTTP page.
type Source struct {
	location string
	path     string // set for file pages
	client   *http.Client
	limiter  *rate.Limiter
}

// NewSource creates a page source for cfg.Location.
func NewSource(cfg Config) (*Source, error) {
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		return nil, domain.ErrNoPageSource
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path (a one-letter scheme is a Windows drive)
		return newFileSource(location)
	}

	switch u.Scheme {
	case "file":
		return newFileSource(u.Path)
	case "http", "https":
		return newHTTPSource(location, cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSource, u.Scheme)
	}
}

func newFileSource(path string) (*Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return &Source{location: abs, path: abs}, nil
}

func newHTTPSource(location string, cfg Config) *Source {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = DefaultRate
	}

	client := &http.Client{Timeout: timeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = oauth2.NewClient(context.Background(), ts)
		client.Timeout = timeout
	}

	return &Source{
		location: location,
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Location returns the file path or URL of the page.
func (s *Source) Location() string {
	return s.location
}

// IsFile reports whether the page is a local file.
func (s *Source) IsFile() bool {
	return s.path != ""
}

// Elements loads the page and returns the searchable elements of target.
func (s *Source) Elements(ctx context.Context, target string) ([]domain.Element, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("%w: empty target", domain.ErrInvalidInput)
	}

	start := time.Now()
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	elements, err := extract(doc, target)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded %d elements from %s in %s", len(elements), s.location, time.Since(start))
	return elements, nil
}

func (s *Source) load(ctx context.Context) ([]byte, error) {
	if s.IsFile() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read page: %w", err)
		}
		return data, nil
	}
	return s.fetch(ctx)
}

func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, URL: s.location}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return data, nil
}

// StatusError is returned when an HTTP page responds with a non-200 status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// IsUnauthorized reports whether err is an HTTP 401 or 403 from a page.
func IsUnauthorized(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden
}
