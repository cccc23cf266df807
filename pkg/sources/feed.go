package sources

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"show-notes/pkg/domain"
	"show-notes/pkg/shownotes"

	"github.com/mmcdole/gofeed"
)

// PageFetcher fetches the HTML of an episode page.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// Feed discovers episodes from an RSS/Atom feed. Each item link is an episode page;
// its companion video is looked up on the page itself.
type Feed struct {
	feedURL    string
	category   string
	maxItems   int
	feedParser *gofeed.Parser
	pages      PageFetcher
}

// NewFeed creates a feed source. maxItems <= 0 means every item in the feed document.
func NewFeed(feedURL, category string, maxItems int, pages PageFetcher) *Feed {
	return &Feed{
		feedURL:    feedURL,
		category:   category,
		maxItems:   maxItems,
		feedParser: gofeed.NewParser(),
		pages:      pages,
	}
}

// SetHTTPClient sets the client used to download the feed document
func (f *Feed) SetHTTPClient(client *http.Client) {
	f.feedParser.Client = client
}

// Load fetches and parses the feed, then resolves the video of every item.
// Items whose page cannot be fetched or has no video are dropped.
func (f *Feed) Load(ctx context.Context) ([]domain.Source, error) {
	feed, err := f.feedParser.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	items := feed.Items
	if f.maxItems > 0 && len(items) > f.maxItems {
		items = items[:f.maxItems]
	}

	srcs := make([]domain.Source, 0, len(items))
	for _, item := range items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}

		video, err := f.findVideo(ctx, link)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("Feed: dropping %s: %v", link, err)
			continue
		}

		srcs = append(srcs, domain.Source{
			BlogURL:  link,
			VideoURL: video,
			Category: f.category,
		})
	}

	if len(srcs) == 0 {
		return nil, fmt.Errorf("no feed items with a video found")
	}

	return srcs, nil
}

func (f *Feed) findVideo(ctx context.Context, pageURL string) (string, error) {
	if f.pages == nil {
		return "", errors.New("page fetcher is not set")
	}

	html, err := f.pages.FetchHTML(ctx, pageURL)
	if err != nil {
		return "", err
	}

	return shownotes.FindVideoURL(html)
}
