package filter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"show-notes/pkg/domain"
)

// Filter defines the interface for episode filtering
type Filter interface {
	ShouldKeep(ctx context.Context, src domain.Source) (bool, error)
}

// Apply applies all filters to a list of episodes, keeping their order
func Apply(ctx context.Context, srcs []domain.Source, filters ...Filter) ([]domain.Source, error) {
	filtered := make([]domain.Source, 0, len(srcs))

	for _, src := range srcs {
		keep := true
		for _, f := range filters {
			shouldKeep, err := f.ShouldKeep(ctx, src)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", src.BlogURL, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, src)
		}
	}

	return filtered, nil
}

// CategoryFilter keeps episodes whose category is in the given set (case-insensitive)
type CategoryFilter struct {
	categories map[string]bool
}

// NewCategoryFilter creates a new category filter
func NewCategoryFilter(categories ...string) *CategoryFilter {
	set := make(map[string]bool, len(categories))
	for _, c := range categories {
		set[strings.ToLower(strings.TrimSpace(c))] = true
	}
	return &CategoryFilter{categories: set}
}

// ShouldKeep returns true if the episode's category was requested
func (f *CategoryFilter) ShouldKeep(ctx context.Context, src domain.Source) (bool, error) {
	return f.categories[strings.ToLower(strings.TrimSpace(src.Category))], nil
}

// DuplicateFilter drops episodes whose blog page was already seen.
// URLs are compared without their fragment, so ".../daniel-ek/#more-53852" and
// ".../daniel-ek/" are the same page.
type DuplicateFilter struct {
	seen map[string]bool
}

// NewDuplicateFilter creates a new duplicate filter
func NewDuplicateFilter() *DuplicateFilter {
	return &DuplicateFilter{seen: make(map[string]bool)}
}

// ShouldKeep returns false for every occurrence after the first
func (f *DuplicateFilter) ShouldKeep(ctx context.Context, src domain.Source) (bool, error) {
	key := pageKey(src.BlogURL)
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

// HostFilter keeps episodes whose blog page is on one of the given hosts
type HostFilter struct {
	hosts map[string]bool
}

// NewHostFilter creates a new host filter
func NewHostFilter(hosts ...string) *HostFilter {
	set := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		set[strings.ToLower(strings.TrimSpace(h))] = true
	}
	return &HostFilter{hosts: set}
}

// ShouldKeep returns true if the blog URL's host is allowed
func (f *HostFilter) ShouldKeep(ctx context.Context, src domain.Source) (bool, error) {
	parsed, err := url.Parse(src.BlogURL)
	if err != nil {
		return false, fmt.Errorf("parse blog URL: %w", err)
	}
	return f.hosts[strings.ToLower(parsed.Hostname())], nil
}

func pageKey(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	parsed.Fragment = ""
	parsed.RawFragment = ""
	parsed.Host = strings.ToLower(parsed.Host)
	if parsed.Path == "" {
		parsed.Path = "/"
	}
	return parsed.String()
}
