package sources

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"show-notes/pkg/domain"
)

// File reads episodes from a text file, one per line:
//
//	<blog-url> <video-url> [category]
//
// Blank lines and lines starting with "#" are skipped. A "# Category: <name>" line sets
// the category of the lines after it that do not name their own.
type File struct {
	path string
}

// NewFile creates a file source for the given path
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads and parses the file
func (f *File) Load(ctx context.Context) ([]domain.Source, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseList(file)
}

// ParseList parses the line format accepted by File
func ParseList(r io.Reader) ([]domain.Source, error) {
	var (
		srcs     []domain.Source
		category string
	)

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			comment := strings.TrimSpace(strings.TrimPrefix(line, "#"))
			if name, ok := cutPrefixFold(comment, "category:"); ok {
				category = strings.TrimSpace(name)
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected \"<blog-url> <video-url> [category]\", got %q", lineNum, line)
		}

		src := domain.Source{
			BlogURL:  strings.TrimRight(fields[0], ","),
			VideoURL: strings.TrimRight(fields[1], ","),
			Category: category,
		}
		if len(fields) > 2 {
			src.Category = strings.Join(fields[2:], " ")
		}

		srcs = append(srcs, src)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file at line %d: %w", lineNum, err)
	}

	if len(srcs) == 0 {
		return nil, fmt.Errorf("no episodes found in file")
	}

	return srcs, nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}
