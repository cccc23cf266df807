// Package scraper fetches episode pages and turns them into show notes.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"show-notes/pkg/domain"
	"show-notes/pkg/httpclient"
	"show-notes/pkg/shownotes"
)

// ErrSkipped means the page answered with something other than 200 OK.
// Callers drop the episode without treating it as a failure.
var ErrSkipped = errors.New("episode page unavailable")

// Extractor turns episode HTML into a title and notes.
type Extractor interface {
	ExtractTitle(html string) (string, error)
	ExtractNotes(html, videoURL string) ([]domain.Note, error)
}

// DefaultExtractor implements Extractor using the shownotes package
type DefaultExtractor struct{}

// ExtractTitle extracts the episode title using shownotes.ExtractTitle
func (DefaultExtractor) ExtractTitle(html string) (string, error) {
	return shownotes.ExtractTitle(html)
}

// ExtractNotes extracts show notes using shownotes.ExtractNotes
func (DefaultExtractor) ExtractNotes(html, videoURL string) ([]domain.Note, error) {
	return shownotes.ExtractNotes(html, videoURL)
}

// Scraper fetches one episode page per source
type Scraper struct {
	client    *httpclient.HTTPClient
	extractor Extractor
	now       func() time.Time
}

// New creates a scraper using browser-like headers
func New() *Scraper {
	return NewWithClient(httpclient.NewClient(httpclient.BrowserClient))
}

// NewWithClient creates a scraper with a custom HTTP client
func NewWithClient(client *httpclient.HTTPClient) *Scraper {
	return &Scraper{
		client:    client,
		extractor: DefaultExtractor{},
		now:       time.Now,
	}
}

// SetExtractor replaces the extraction logic
func (s *Scraper) SetExtractor(extractor Extractor) {
	s.extractor = extractor
}

// Scrape performs one GET of the source's blog page and extracts its show notes.
//
// A non-200 response returns ErrSkipped. Extraction errors are returned as-is so
// the caller can abort the run.
func (s *Scraper) Scrape(ctx context.Context, src domain.Source) (*domain.EpisodeNotes, error) {
	html, err := s.fetchHTML(ctx, src.BlogURL)
	if err != nil {
		return nil, err
	}

	notes, err := s.extractor.ExtractNotes(html, src.VideoURL)
	if err != nil {
		return nil, fmt.Errorf("extract notes from %s: %w", src.BlogURL, err)
	}

	title, err := s.extractor.ExtractTitle(html)
	if err != nil {
		return nil, fmt.Errorf("extract title from %s: %w", src.BlogURL, err)
	}

	return &domain.EpisodeNotes{
		BlogURL:   src.BlogURL,
		VideoURL:  src.VideoURL,
		Title:     title,
		Category:  src.Category,
		Notes:     notes,
		ScrapedAt: s.now().UTC(),
	}, nil
}

// FetchHTML fetches a page body, returning ErrSkipped for non-200 responses
func (s *Scraper) FetchHTML(ctx context.Context, url string) (string, error) {
	return s.fetchHTML(ctx, url)
}

func (s *Scraper) fetchHTML(ctx context.Context, url string) (string, error) {
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned status %d", ErrSkipped, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	html := string(body)
	if strings.TrimSpace(html) == "" {
		return "", fmt.Errorf("empty response from %s", url)
	}

	return html, nil
}

func drainAndClose(rc io.ReadCloser) {
	if rc == nil {
		return
	}
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
