// Package render turns scraped show notes into a static HTML site.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"show-notes/pkg/domain"
)

//go:embed templates/*
var templateFS embed.FS

const (
	episodeTemplate = "notes.html"
	indexTemplate   = "index.html"
	stylesheet      = "style.css"

	// IndexFilename is the aggregate page written next to the episode pages
	IndexFilename = "index.html"

	// DefaultTitle is used for the index page when none is configured
	DefaultTitle = "Show Notes"
)

// Renderer renders episode and index pages from embedded templates
type Renderer struct {
	templates *template.Template
	title     string
}

// Group is a run of episodes sharing a category on the index page
type Group struct {
	Category string
	Episodes []*domain.EpisodeNotes
}

type indexData struct {
	Title  string
	Groups []Group
}

// New parses the embedded templates
func New(title string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	if title == "" {
		title = DefaultTitle
	}

	return &Renderer{
		templates: tmpl,
		title:     title,
	}, nil
}

// RenderEpisode writes the page for a single episode
func (r *Renderer) RenderEpisode(w io.Writer, episode *domain.EpisodeNotes) error {
	if episode == nil {
		return fmt.Errorf("episode is nil")
	}
	return r.templates.ExecuteTemplate(w, episodeTemplate, episode)
}

// RenderIndex writes the aggregate page listing every episode, grouped by category
// in the order categories first appear.
func (r *Renderer) RenderIndex(w io.Writer, episodes []*domain.EpisodeNotes) error {
	data := indexData{
		Title:  r.title,
		Groups: GroupByCategory(episodes),
	}
	return r.templates.ExecuteTemplate(w, indexTemplate, data)
}

// GroupByCategory groups episodes by category, keeping first-seen order for both
// groups and episodes.
func GroupByCategory(episodes []*domain.EpisodeNotes) []Group {
	var groups []Group
	position := make(map[string]int)

	for _, e := range episodes {
		if e == nil {
			continue
		}
		i, ok := position[e.Category]
		if !ok {
			i = len(groups)
			position[e.Category] = i
			groups = append(groups, Group{Category: e.Category})
		}
		groups[i].Episodes = append(groups[i].Episodes, e)
	}

	return groups
}

// WriteSite renders every page into memory first and only then writes them to dir,
// so a template failure leaves dir untouched.
//
// Returns the paths written, index last.
func (r *Renderer) WriteSite(dir string, episodes []*domain.EpisodeNotes) ([]string, error) {
	type page struct {
		name string
		body []byte
	}

	pages := make([]page, 0, len(episodes)+2)
	seen := make(map[string]string)

	for _, e := range episodes {
		if e == nil {
			continue
		}

		name := e.Filename()
		if name == IndexFilename {
			return nil, fmt.Errorf("episode %s would overwrite %s", e.BlogURL, IndexFilename)
		}
		if other, ok := seen[name]; ok {
			return nil, fmt.Errorf("episodes %s and %s both render to %s", other, e.BlogURL, name)
		}
		seen[name] = e.BlogURL

		var buf bytes.Buffer
		if err := r.RenderEpisode(&buf, e); err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		pages = append(pages, page{name: name, body: buf.Bytes()})
	}

	css, err := fs.ReadFile(templateFS, "templates/"+stylesheet)
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	pages = append(pages, page{name: stylesheet, body: css})

	var index bytes.Buffer
	if err := r.RenderIndex(&index, episodes); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	pages = append(pages, page{name: IndexFilename, body: index.Bytes()})

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	written := make([]string, 0, len(pages))
	for _, p := range pages {
		path := filepath.Join(dir, p.name)
		if err := os.WriteFile(path, p.body, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	return written, nil
}
