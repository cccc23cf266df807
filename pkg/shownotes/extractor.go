// Package shownotes extracts episode titles and timestamped show notes from blog pages.
package shownotes

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"show-notes/pkg/domain"
	"show-notes/pkg/timestamp"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

var (
	ErrEmptyHTML         = errors.New("empty HTML content")
	ErrShowNotesNotFound = errors.New("show notes section not found")
	ErrMalformedNote     = errors.New("malformed show notes line")
	ErrTitleNotFound     = errors.New("title not found in HTML")
)

// showNotesHeading is matched case-insensitively against the text of h3 headings.
const showNotesHeading = "show notes"

// noteLine matches "description [time]". The description is greedy so the last
// bracket pair on the line is taken as the time.
var noteLine = regexp.MustCompile(`^(.+) \[([^\[\]]+)\]`)

// ParseNoteLine splits a show notes line such as
// "Richard's first business [05:30]" into its description and time.
func ParseNoteLine(text string) (string, string, error) {
	line := normalizeWhitespace(text)

	m := noteLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedNote, line)
	}

	description := strings.TrimSpace(m[1])
	ts := strings.TrimSpace(m[2])
	if description == "" || ts == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedNote, line)
	}

	return description, ts, nil
}

// ExtractNotes finds the "show notes" h3 heading, takes the element right after it and
// turns every list item below that element into a Note deep-linking into videoURL.
//
// Any line that does not parse fails the whole extraction.
func ExtractNotes(html, videoURL string) ([]domain.Note, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	heading := doc.Find("h3").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(normalizeWhitespace(s.Text())), showNotesHeading)
	}).First()
	if heading.Length() == 0 {
		return nil, ErrShowNotesNotFound
	}

	list := heading.Next()
	if list.Length() == 0 {
		return nil, fmt.Errorf("%w: heading has no following element", ErrShowNotesNotFound)
	}

	var (
		notes   []domain.Note
		lineErr error
	)

	list.Find("li").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		description, ts, err := ParseNoteLine(item.Text())
		if err != nil {
			lineErr = err
			return false
		}

		link, err := timestamp.DeepLink(videoURL, ts)
		if err != nil {
			lineErr = fmt.Errorf("note %q: %w", description, err)
			return false
		}

		notes = append(notes, domain.Note{
			Description: description,
			Time:        ts,
			URL:         link,
		})
		return true
	})

	if lineErr != nil {
		return nil, lineErr
	}

	return notes, nil
}

// ExtractTitle extracts the episode title from HTML content with fallback mechanisms
func ExtractTitle(html string) (string, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return "", err
	}

	// WordPress themes put the post title in h1.entry-title
	if title := normalizeWhitespace(doc.Find("h1.entry-title").First().Text()); title != "" {
		return title, nil
	}

	// Fallback: let readability guess
	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err == nil {
		if title := normalizeWhitespace(article.Title); title != "" {
			return title, nil
		}
	}

	if title := normalizeWhitespace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}

	return "", ErrTitleNotFound
}

func parseDocument(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
