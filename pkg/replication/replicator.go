package replication

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"show-notes/pkg/db"
	"show-notes/pkg/domain"
)

// DefaultBatchSize is how many episodes go into one Postgres transaction
const DefaultBatchSize = 100

// EpisodeTable is the Postgres table replicated episodes land in
const EpisodeTable = "episode"

// EpisodeReader reads every archived episode
type EpisodeReader interface {
	GetAllEpisodeNotes(ctx context.Context) ([]domain.EpisodeNotes, error)
}

// Config wires the replication dependencies.
type Config struct {
	Mongo     EpisodeReader
	Postgres  db.DBProvider
	BatchSize int
}

// Replicator copies archived episodes from MongoDB to Postgres (or Supabase).
//
// This is a one-shot "copy what is missing" flow: episodes whose URL already
// exists in Postgres are left alone.
type Replicator struct {
	mongo     EpisodeReader
	pg        db.DBProvider
	batchSize int
}

// Stats reports what a replication run did
type Stats struct {
	Processed int
	Inserted  int
}

func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.Mongo == nil {
		return nil, fmt.Errorf("mongo client is required")
	}
	if cfg.Postgres == nil {
		return nil, fmt.Errorf("postgres client is required")
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Replicator{
		mongo:     cfg.Mongo,
		pg:        cfg.Postgres,
		batchSize: batchSize,
	}, nil
}

// ReplicateEpisodesMongoToPostgres reads all episodes from Mongo and inserts the new
// ones, with their notes, into the Postgres `episode` and `episode_note` tables.
func (r *Replicator) ReplicateEpisodesMongoToPostgres(ctx context.Context) (Stats, error) {
	var stats Stats

	if err := r.EnsureSchema(ctx); err != nil {
		return stats, err
	}

	episodes, err := r.mongo.GetAllEpisodeNotes(ctx)
	if err != nil {
		return stats, fmt.Errorf("read episodes from mongo: %w", err)
	}

	log.Printf("Loaded %d episodes from Mongo, processing in batches of %d...", len(episodes), r.batchSize)

	for start := 0; start < len(episodes); start += r.batchSize {
		end := min(start+r.batchSize, len(episodes))

		inserted, err := r.processBatch(ctx, episodes[start:end])
		if err != nil {
			return stats, fmt.Errorf("batch [%d:%d]: %w", start, end, err)
		}

		stats.Processed += end - start
		stats.Inserted += inserted
		log.Printf("Progress: processed %d/%d episodes, inserted %d new episodes", stats.Processed, len(episodes), stats.Inserted)
	}

	return stats, nil
}

// EnsureSchema creates the archive tables if they do not exist.
func (r *Replicator) EnsureSchema(ctx context.Context) error {
	if r.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}

	const ddl = `
CREATE TABLE IF NOT EXISTS episode (
  url TEXT PRIMARY KEY,
  video_url TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  scraped_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS episode_note (
  episode_url TEXT NOT NULL REFERENCES episode(url) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  description TEXT NOT NULL,
  time TEXT NOT NULL,
  url TEXT NOT NULL,
  PRIMARY KEY (episode_url, position)
);`

	if _, err := r.pg.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create episode tables: %w", err)
	}
	return nil
}

// processBatch checks which URLs already exist and inserts the rest in one transaction.
func (r *Replicator) processBatch(ctx context.Context, batch []domain.EpisodeNotes) (int, error) {
	existing, err := r.existingURLs(ctx, batch)
	if err != nil {
		return 0, err
	}

	toInsert := filterNew(batch, existing)
	if len(toInsert) == 0 {
		return 0, nil
	}

	if err := r.insertEpisodesTx(ctx, toInsert); err != nil {
		return 0, err
	}
	return len(toInsert), nil
}

func (r *Replicator) existingURLs(ctx context.Context, batch []domain.EpisodeNotes) (map[string]bool, error) {
	args := make([]any, 0, len(batch))
	for _, e := range batch {
		if e.BlogURL != "" {
			args = append(args, e.BlogURL)
		}
	}
	if len(args) == 0 {
		return map[string]bool{}, nil
	}

	rows, err := r.pg.DB().QueryContext(ctx, buildURLInQuery(len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("query existing urls: %w", err)
	}
	defer rows.Close()

	set := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan url: %w", err)
		}
		set[url] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return set, nil
}

// buildURLInQuery returns "SELECT url FROM episode WHERE url IN ($1, ..., $n)".
func buildURLInQuery(n int) string {
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return "SELECT url FROM episode WHERE url IN (" + strings.Join(placeholders, ", ") + ")"
}

// filterNew drops episodes without a URL, already stored, or repeated within the batch.
func filterNew(all []domain.EpisodeNotes, existing map[string]bool) []domain.EpisodeNotes {
	seen := make(map[string]bool, len(existing))
	for url := range existing {
		seen[url] = true
	}

	out := make([]domain.EpisodeNotes, 0, len(all))
	for _, e := range all {
		if e.BlogURL == "" || seen[e.BlogURL] {
			continue
		}
		seen[e.BlogURL] = true
		out = append(out, e)
	}
	return out
}

func (r *Replicator) insertEpisodesTx(ctx context.Context, batch []domain.EpisodeNotes) error {
	tx, err := r.pg.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertEpisode = `
INSERT INTO episode (url, video_url, title, category, scraped_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (url) DO NOTHING`

	const insertNote = `
INSERT INTO episode_note (episode_url, position, description, time, url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (episode_url, position) DO NOTHING`

	for _, e := range batch {
		if _, err := tx.ExecContext(ctx, insertEpisode, e.BlogURL, e.VideoURL, e.Title, e.Category, e.ScrapedAt); err != nil {
			return fmt.Errorf("insert episode url=%q: %w", e.BlogURL, err)
		}
		for i, n := range e.Notes {
			if _, err := tx.ExecContext(ctx, insertNote, e.BlogURL, i, n.Description, n.Time, n.URL); err != nil {
				return fmt.Errorf("insert note %d of %q: %w", i, e.BlogURL, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
