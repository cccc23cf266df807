package domain

import (
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"
)

// Source is one input pair: the blog page carrying the show notes and the
// companion video the timestamps point into.
type Source struct {
	BlogURL  string `yaml:"blog" json:"blog"`
	VideoURL string `yaml:"video" json:"video"`
	// Category groups episodes on the index page (optional).
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
}

// Note is a single show-notes line.
type Note struct {
	Description string `bson:"description" json:"description"`
	// Time is the elapsed-time string exactly as it appeared on the page (e.g. "1:05:30").
	Time string `bson:"time" json:"time"`
	// URL is the video deep link starting at Time.
	URL string `bson:"url" json:"url"`
}

// EpisodeNotes holds everything scraped from one episode page.
type EpisodeNotes struct {
	// BlogURL is the page the notes were scraped from.
	BlogURL  string `bson:"url" json:"url"`
	VideoURL string `bson:"video_url" json:"video_url"`
	Title    string `bson:"title" json:"title"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`
	Notes    []Note `bson:"notes" json:"notes"`

	// ScrapedAt is only kept for archives. It is never rendered.
	ScrapedAt time.Time `bson:"scraped_at" json:"scraped_at"`
}

// Filename returns the output file name for the episode page.
// The last path segment of the blog URL is preferred, e.g.
// https://tim.blog/2017/10/09/richard-branson/ -> richard-branson.html
func (e *EpisodeNotes) Filename() string {
	if u, err := url.Parse(e.BlogURL); err == nil {
		if base := path.Base(strings.TrimRight(u.Path, "/")); base != "" && base != "." && base != "/" {
			if name := Slugify(base); name != "" {
				return name + ".html"
			}
		}
	}

	if name := Slugify(e.Title); name != "" {
		return name + ".html"
	}

	return "episode.html"
}

// Slugify lower-cases s and collapses every run of non-alphanumeric characters into a
// single dash.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
