package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks and filters the searchable elements of a page.
type SearchService struct {
	source    driven.ElementSource
	target    string
	threshold float64
	limit     int
}

// NewSearchService creates a new search service over the given element source.
// An empty defaultTarget falls back to domain.DefaultSearchTarget.
func NewSearchService(source driven.ElementSource, defaultTarget string) *SearchService {
	if defaultTarget == "" {
		defaultTarget = domain.DefaultSearchTarget
	}
	return &SearchService{
		source: source,
		target: defaultTarget,
	}
}

// SetDefaults sets the threshold and limit used when SearchOptions leave them unset.
func (s *SearchService) SetDefaults(threshold float64, limit int) {
	s.threshold = threshold
	s.limit = limit
}

// Search scores every element of the target against query and returns the
// ones above the threshold, best first. Ties keep document order.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if opts.Threshold <= 0 {
		opts.Threshold = s.threshold
	}
	if opts.Limit <= 0 {
		opts.Limit = s.limit
	}
	threshold := opts.EffectiveThreshold()
	logger.Debug("Threshold: %.2f, Limit: %d", threshold, opts.Limit)

	elements, err := s.elements(ctx, opts.Target)
	if err != nil {
		return nil, err
	}
	logger.Debug("Candidates: %d elements", len(elements))

	results := make([]domain.SearchResult, 0, len(elements))
	for _, el := range elements {
		score := domain.Score(query, el.Text)
		if score <= threshold {
			continue
		}
		results = append(results, domain.SearchResult{Element: el, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	logger.Info("Final results: %d", len(results))

	return results, nil
}

// Filter applies the table filter: elements whose text contains query
// (case-insensitive) stay visible and are highlighted. An empty query shows
// every element without highlighting.
func (s *SearchService) Filter(ctx context.Context, query, target string) ([]domain.ElementState, error) {
	logger.Debug("Filter %q in %q", query, target)

	elements, err := s.elements(ctx, target)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	states := make([]domain.ElementState, len(elements))
	for i, el := range elements {
		matches := strings.Contains(strings.ToLower(el.Text), needle)
		states[i] = domain.ElementState{
			Element:     el,
			Visible:     matches || query == "",
			Highlighted: matches && query != "",
		}
	}
	return states, nil
}

// Score returns the fuzzy match score of query against candidate.
func (s *SearchService) Score(query, candidate string) float64 {
	return domain.Score(query, candidate)
}

// elements loads the target's elements. A target that resolves to nothing
// yields no elements and no error.
func (s *SearchService) elements(ctx context.Context, target string) ([]domain.Element, error) {
	if s.source == nil {
		return nil, fmt.Errorf("search: %w", domain.ErrNoPageSource)
	}
	if target == "" {
		target = s.target
	}

	elements, err := s.source.Elements(ctx, target)
	if errors.Is(err, domain.ErrTargetNotFound) {
		logger.Debug("Target %q not found, nothing to search", target)
		return []domain.Element{}, nil
	}
	if err != nil {
		logger.Warn("Loading elements failed: %v", err)
		return nil, fmt.Errorf("load elements: %w", err)
	}
	return elements, nil
}
