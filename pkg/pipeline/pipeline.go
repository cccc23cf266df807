package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"show-notes/pkg/domain"
	"show-notes/pkg/filter"
	"show-notes/pkg/scraper"
	"show-notes/pkg/sources"
)

// EpisodeScraper fetches one episode page and extracts its notes
type EpisodeScraper interface {
	Scrape(ctx context.Context, src domain.Source) (*domain.EpisodeNotes, error)
}

// SiteWriter renders the episodes into an output directory
type SiteWriter interface {
	WriteSite(dir string, episodes []*domain.EpisodeNotes) ([]string, error)
}

// Saver archives a scraped episode somewhere besides the HTML output
type Saver interface {
	SaveEpisodeNotes(ctx context.Context, episode *domain.EpisodeNotes) error
}

// Config holds everything a build needs
type Config struct {
	Sources   sources.Provider
	Filters   []filter.Filter
	Scraper   EpisodeScraper
	Writer    SiteWriter
	OutputDir string
	// Savers are optional; they run after the site is written
	Savers []Saver
}

// Result summarizes a finished build
type Result struct {
	Episodes []*domain.EpisodeNotes
	// Skipped holds the blog URLs that did not answer 200 OK
	Skipped []string
	Files   []string
}

// Builder runs one linear pass: load sources, filter, scrape each page in order,
// render the site, then archive.
type Builder struct {
	cfg Config
}

// NewBuilder creates a new builder
func NewBuilder(cfg Config) (*Builder, error) {
	switch {
	case cfg.Sources == nil:
		return nil, errors.New("sources are required")
	case cfg.Scraper == nil:
		return nil, errors.New("scraper is required")
	case cfg.Writer == nil:
		return nil, errors.New("site writer is required")
	case cfg.OutputDir == "":
		return nil, errors.New("output dir is required")
	}
	return &Builder{cfg: cfg}, nil
}

// Run executes the build.
//
// Pages that do not answer 200 OK are skipped. Any other scrape error aborts the
// run before anything is written.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	srcs, err := b.cfg.Sources.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}

	if len(b.cfg.Filters) > 0 {
		srcs, err = filter.Apply(ctx, srcs, b.cfg.Filters...)
		if err != nil {
			return nil, err
		}
	}

	log.Printf("Builder: Scraping %d episodes", len(srcs))

	result := &Result{}
	for i, src := range srcs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		episode, err := b.cfg.Scraper.Scrape(ctx, src)
		if errors.Is(err, scraper.ErrSkipped) {
			log.Printf("Builder: [%d/%d] skipping %s", i+1, len(srcs), src.BlogURL)
			result.Skipped = append(result.Skipped, src.BlogURL)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scrape %s: %w", src.BlogURL, err)
		}

		log.Printf("Builder: [%d/%d] %s: %d notes", i+1, len(srcs), episode.Title, len(episode.Notes))
		result.Episodes = append(result.Episodes, episode)
	}

	files, err := b.cfg.Writer.WriteSite(b.cfg.OutputDir, result.Episodes)
	if err != nil {
		return nil, fmt.Errorf("write site: %w", err)
	}
	result.Files = files
	log.Printf("Builder: Wrote %d files to %s", len(files), b.cfg.OutputDir)

	for _, saver := range b.cfg.Savers {
		for _, episode := range result.Episodes {
			if err := saver.SaveEpisodeNotes(ctx, episode); err != nil {
				return result, fmt.Errorf("archive %s: %w", episode.BlogURL, err)
			}
		}
	}

	return result, nil
}
