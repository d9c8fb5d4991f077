package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for ims resources.
	uriScheme = "ims://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current application settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "ui-state",
		Name:        "ui-state",
		Description: "Persisted sidebar and theme state",
		MIMEType:    "application/json",
	}, s.handleUIStateResource)

	// Template for the elements of a target; the selector is URL-escaped.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "elements/{target}",
		Name:        "target-elements",
		Description: "Searchable elements inside a CSS selector target",
		MIMEType:    "application/json",
	}, s.handleElementsResource)
}

// handleSettingsResource returns the current settings with the page token masked.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	info := map[string]any{
		"search": map[string]any{
			"debounce_ms": settings.Search.Debounce.Milliseconds(),
			"threshold":   settings.Search.Threshold,
			"limit":       settings.Search.Limit,
		},
		"autosave": map[string]any{
			"debounce_ms": settings.Autosave.Debounce.Milliseconds(),
		},
		"notifications": map[string]any{
			"duration_ms":  settings.Notifications.Duration.Milliseconds(),
			"fade_ms":      settings.Notifications.Fade.Milliseconds(),
			"rate_per_sec": settings.Notifications.RatePerSecond,
		},
		"layout": map[string]any{"narrow_width": settings.Layout.NarrowWidth},
		"state": map[string]any{
			"backend": settings.State.Backend.String(),
			"dir":     settings.State.Dir,
		},
		"page": map[string]any{
			"source":       settings.Page.Source,
			"target":       settings.Page.Target,
			"token_set":    settings.Page.Token != "",
			"rate_per_sec": settings.Page.RatePerSecond,
		},
		"perf": map[string]any{"slow_load_ms": settings.Perf.SlowLoad.Milliseconds()},
	}

	return jsonResult(req.Params.URI, info, "settings")
}

// handleUIStateResource returns the persisted interface state.
func (s *Server) handleUIStateResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.UIState == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	state := s.ports.UIState.Restore()
	info := struct {
		SidebarCollapsed bool   `json:"sidebar_collapsed"`
		Theme            string `json:"theme"`
	}{
		SidebarCollapsed: state.SidebarCollapsed,
		Theme:            state.Theme.String(),
	}

	return jsonResult(req.Params.URI, info, "ui state")
}

// handleElementsResource returns every element inside a target.
func (s *Server) handleElementsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	target := extractTarget(req.Params.URI)
	if target == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	states, err := s.ports.Search.Filter(ctx, "", target)
	if err != nil {
		return nil, fmt.Errorf("listing elements: %w", err)
	}

	elements := make([]ElementOutput, len(states))
	for i := range states {
		elements[i] = toElementOutput(states[i].Element)
	}

	return jsonResult(req.Params.URI, elements, "elements")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTarget extracts the selector from a URI like ims://elements/{target}.
func extractTarget(uri string) string {
	const prefix = uriScheme + "elements/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	target, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(target)
}
