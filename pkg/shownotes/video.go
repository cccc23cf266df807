package shownotes

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoVideoURL = errors.New("no video URL found in HTML")

// FindVideoURL attempts to locate the companion YouTube video of an episode page.
//
// The current strategy is:
//   - Collect every <iframe src> and <a href> pointing at YouTube
//   - Prefer embeds (the player on the page) over plain links
//   - Return the first candidate normalized to https://www.youtube.com/watch?v=<id>
func FindVideoURL(html string) (string, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return "", err
	}

	var embeds, links []string

	doc.Find("iframe[src], iframe[data-src]").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			// Lazy-loading plugins keep the real source here
			src, _ = sel.Attr("data-src")
		}
		if watch, ok := youtubeWatchURL(src); ok {
			embeds = append(embeds, watch)
		}
	})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if watch, ok := youtubeWatchURL(href); ok {
			links = append(links, watch)
		}
	})

	switch {
	case len(embeds) > 0:
		return embeds[0], nil
	case len(links) > 0:
		return links[0], nil
	default:
		return "", ErrNoVideoURL
	}
}

// youtubeWatchURL recognizes watch, embed and youtu.be short links.
func youtubeWatchURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = strings.TrimPrefix(u.Path, "/embed/")
		}
	case "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
	}

	id = strings.Trim(id, "/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}

	return "https://www.youtube.com/watch?v=" + url.QueryEscape(id), true
}
