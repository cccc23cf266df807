// Package sources provides the (blog page, video) pairs a build scrapes.
package sources

import (
	"context"
	"fmt"

	"show-notes/pkg/domain"
)

// Provider returns the episodes to scrape, in order.
type Provider interface {
	Load(ctx context.Context) ([]domain.Source, error)
}

// List is a fixed, in-memory list of episodes.
type List []domain.Source

// Load returns a copy of the list
func (l List) Load(ctx context.Context) ([]domain.Source, error) {
	out := make([]domain.Source, len(l))
	copy(out, l)
	return out, nil
}

// Chain concatenates the episodes of several providers, in provider order.
type Chain []Provider

// Load loads every provider and fails on the first error
func (c Chain) Load(ctx context.Context) ([]domain.Source, error) {
	var all []domain.Source
	for i, p := range c {
		srcs, err := p.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		all = append(all, srcs...)
	}
	return all, nil
}
