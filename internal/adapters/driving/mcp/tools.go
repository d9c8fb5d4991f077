package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// defaultLimit caps search results when the caller sets no limit.
const defaultLimit = 20

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query     string  `json:"query" jsonschema:"the text to fuzzy match; its characters must appear in order"`
	Target    string  `json:"target,omitempty" jsonschema:"CSS selector of the element to search (default from settings)"`
	Limit     int     `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
	Threshold float64 `json:"threshold,omitempty" jsonschema:"minimum score, exclusive (default 0.3)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []ElementOutput `json:"results"`
	Count   int             `json:"count"`
}

// ElementOutput represents a single page element in tool output.
type ElementOutput struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Index       int      `json:"index"`
	Text        string   `json:"text"`
	Cells       []string `json:"cells,omitempty"`
	Score       float64  `json:"score,omitempty"`
	Highlighted bool     `json:"highlighted,omitempty"`
}

// FilterInput is the input schema for the filter tool.
type FilterInput struct {
	Query  string `json:"query" jsonschema:"case-insensitive substring; empty shows every element"`
	Target string `json:"target,omitempty" jsonschema:"CSS selector of the element to filter (default from settings)"`
}

// FilterOutput is the output schema for the filter tool.
type FilterOutput struct {
	Visible []ElementOutput `json:"visible"`
	Hidden  int             `json:"hidden"`
	Total   int             `json:"total"`
}

// ScoreInput is the input schema for the score tool.
type ScoreInput struct {
	Query     string `json:"query" jsonschema:"the fuzzy query"`
	Candidate string `json:"candidate" jsonschema:"the text to score"`
}

// ScoreOutput is the output schema for the score tool.
type ScoreOutput struct {
	Score   float64 `json:"score"`
	Matches bool    `json:"matches"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Fuzzy search the rows, cards and list items of the inventory page, best match first",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "filter",
		Description: "List the page elements whose text contains a substring",
	}, s.handleFilter)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score",
		Description: "Score how well a candidate string fuzzy matches a query (0 to 1)",
	}, s.handleScore)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	opts := domain.SearchOptions{
		Target:    input.Target,
		Threshold: input.Threshold,
		Limit:     limit,
	}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("searching: %w", err)
	}

	output := SearchOutput{
		Results: make([]ElementOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = toElementOutput(results[i].Element)
		output.Results[i].Score = results[i].Score
	}

	return nil, output, nil
}

// handleFilter handles the filter tool invocation.
func (s *Server) handleFilter(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FilterInput,
) (*mcp.CallToolResult, FilterOutput, error) {
	states, err := s.ports.Search.Filter(ctx, input.Query, input.Target)
	if err != nil {
		return nil, FilterOutput{}, fmt.Errorf("filtering: %w", err)
	}

	output := FilterOutput{
		Visible: []ElementOutput{},
		Total:   len(states),
	}
	for i := range states {
		if !states[i].Visible {
			output.Hidden++
			continue
		}
		out := toElementOutput(states[i].Element)
		out.Highlighted = states[i].Highlighted
		output.Visible = append(output.Visible, out)
	}

	return nil, output, nil
}

// handleScore handles the score tool invocation.
func (s *Server) handleScore(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ScoreInput,
) (*mcp.CallToolResult, ScoreOutput, error) {
	score := s.ports.Search.Score(input.Query, input.Candidate)
	return nil, ScoreOutput{
		Score:   score,
		Matches: score > domain.MatchThreshold,
	}, nil
}

func toElementOutput(el domain.Element) ElementOutput {
	return ElementOutput{
		ID:    el.ID,
		Kind:  el.Kind.String(),
		Index: el.Index,
		Text:  el.Text,
		Cells: el.Cells,
	}
}
