package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"show-notes/pkg/domain"
	"show-notes/pkg/filter"
	"show-notes/pkg/httpclient"
	"show-notes/pkg/render"
	"show-notes/pkg/scraper"
	"show-notes/pkg/shownotes"
	"show-notes/pkg/sources"
)

// mockSaver records saved episodes
type mockSaver struct {
	saved []string
	err   error
}

func (m *mockSaver) SaveEpisodeNotes(ctx context.Context, episode *domain.EpisodeNotes) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, episode.BlogURL)
	return nil
}

func page(title string, notes ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<html><body><h1 class="entry-title">%s</h1><h3>SHOW NOTES</h3><ul>`, title)
	for _, n := range notes {
		fmt.Fprintf(&b, "<li>%s</li>", n)
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}

// blogServer serves episode pages by path; unknown paths are 404.
func blogServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		html, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func newBuilder(t *testing.T, srcs sources.List, out string, savers ...Saver) *Builder {
	t.Helper()

	r, err := render.New("")
	if err != nil {
		t.Fatalf("render.New failed: %v", err)
	}

	b, err := NewBuilder(Config{
		Sources:   srcs,
		Scraper:   scraper.NewWithClient(httpclient.NewClient(httpclient.DefaultClient)),
		Writer:    r,
		OutputDir: out,
		Savers:    savers,
	})
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	return b
}

func TestBuilder_Run(t *testing.T) {
	server := blogServer(t, map[string]string{
		"/2017/10/09/richard-branson/": page("Richard Branson", "Intro [0:30]", "Kites [12:00]"),
		"/2018/09/25/howard-marks/":    page("Howard Marks", "Cycles [1:02:03]"),
	})

	srcs := sources.List{
		{BlogURL: server.URL + "/2017/10/09/richard-branson/", VideoURL: "https://www.youtube.com/watch?v=KxL1B_3_KHk", Category: "Entrepreneurs"},
		{BlogURL: server.URL + "/2019/01/01/missing/", VideoURL: "https://www.youtube.com/watch?v=zzz", Category: "Entrepreneurs"},
		{BlogURL: server.URL + "/2018/09/25/howard-marks/", VideoURL: "https://www.youtube.com/watch?v=9qeWQz7qCW4", Category: "Investors"},
	}

	out := filepath.Join(t.TempDir(), "public")
	saver := &mockSaver{}

	result, err := newBuilder(t, srcs, out, saver).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Episodes) != 2 {
		t.Fatalf("Expected 2 episodes, got %d", len(result.Episodes))
	}
	if len(result.Skipped) != 1 || !strings.HasSuffix(result.Skipped[0], "/missing/") {
		t.Errorf("unexpected skipped list %v", result.Skipped)
	}
	if len(saver.saved) != 2 {
		t.Errorf("Expected 2 archived episodes, got %d", len(saver.saved))
	}

	for _, name := range []string{"richard-branson.html", "howard-marks.html", "index.html", "style.css"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "missing.html")); !os.IsNotExist(err) {
		t.Error("skipped episode must not be rendered")
	}

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), "https://www.youtube.com/watch?v=9qeWQz7qCW4&amp;t=3723") {
		t.Errorf("index is missing the deep link:\n%s", index)
	}
}

func TestBuilder_Run_Deterministic(t *testing.T) {
	server := blogServer(t, map[string]string{
		"/a/": page("A", "One [1:00]"),
		"/b/": page("B", "Two [2:00]"),
	})
	srcs := sources.List{
		{BlogURL: server.URL + "/a/", VideoURL: "https://youtu.be/a"},
		{BlogURL: server.URL + "/b/", VideoURL: "https://youtu.be/b"},
	}

	first := t.TempDir()
	second := t.TempDir()
	if _, err := newBuilder(t, srcs, first).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := newBuilder(t, srcs, second).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{"a.html", "b.html", "index.html"} {
		x, _ := os.ReadFile(filepath.Join(first, name))
		y, _ := os.ReadFile(filepath.Join(second, name))
		if len(x) == 0 || string(x) != string(y) {
			t.Errorf("%s differs between runs", name)
		}
	}
}

func TestBuilder_Run_MalformedPageAborts(t *testing.T) {
	server := blogServer(t, map[string]string{
		"/good/": page("Good", "One [1:00]"),
		"/bad/":  page("Bad", "One [1:00]", "no timestamp"),
	})
	srcs := sources.List{
		{BlogURL: server.URL + "/good/", VideoURL: "https://youtu.be/a"},
		{BlogURL: server.URL + "/bad/", VideoURL: "https://youtu.be/b"},
	}

	out := filepath.Join(t.TempDir(), "public")
	saver := &mockSaver{}

	_, err := newBuilder(t, srcs, out, saver).Run(context.Background())
	if !errors.Is(err, shownotes.ErrMalformedNote) {
		t.Fatalf("expected ErrMalformedNote, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("nothing should be written when the run aborts")
	}
	if len(saver.saved) != 0 {
		t.Error("nothing should be archived when the run aborts")
	}
}

func TestBuilder_Run_Filters(t *testing.T) {
	server := blogServer(t, map[string]string{
		"/a/": page("A", "One [1:00]"),
	})
	srcs := sources.List{
		{BlogURL: server.URL + "/a/", VideoURL: "https://youtu.be/a", Category: "Investors"},
		{BlogURL: server.URL + "/a/#more-1", VideoURL: "https://youtu.be/a", Category: "Investors"},
		{BlogURL: server.URL + "/never-fetched/", VideoURL: "https://youtu.be/b", Category: "Misc"},
	}

	r, _ := render.New("")
	b, err := NewBuilder(Config{
		Sources:   srcs,
		Filters:   []filter.Filter{filter.NewCategoryFilter("investors"), filter.NewDuplicateFilter()},
		Scraper:   scraper.NewWithClient(httpclient.NewClient(httpclient.DefaultClient)),
		Writer:    r,
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}

	result, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Episodes) != 1 || len(result.Skipped) != 0 {
		t.Fatalf("unexpected result: %d episodes, skipped %v", len(result.Episodes), result.Skipped)
	}
}

func TestBuilder_Run_SaverError(t *testing.T) {
	server := blogServer(t, map[string]string{"/a/": page("A", "One [1:00]")})
	srcs := sources.List{{BlogURL: server.URL + "/a/", VideoURL: "https://youtu.be/a"}}

	_, err := newBuilder(t, srcs, t.TempDir(), &mockSaver{err: errors.New("db down")}).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "db down") {
		t.Fatalf("expected saver error, got %v", err)
	}
}

func TestBuilder_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srcs := sources.List{{BlogURL: "https://tim.blog/a/", VideoURL: "https://youtu.be/a"}}
	if _, err := newBuilder(t, srcs, t.TempDir()).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewBuilder_Validation(t *testing.T) {
	r, _ := render.New("")
	s := scraper.New()

	tests := []Config{
		{Scraper: s, Writer: r, OutputDir: "out"},
		{Sources: sources.List{}, Writer: r, OutputDir: "out"},
		{Sources: sources.List{}, Scraper: s, OutputDir: "out"},
		{Sources: sources.List{}, Scraper: s, Writer: r},
	}

	for i, cfg := range tests {
		if _, err := NewBuilder(cfg); err == nil {
			t.Errorf("config %d: expected validation error, got nil", i)
		}
	}
}
