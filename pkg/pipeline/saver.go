package pipeline

import (
	"context"

	"show-notes/pkg/db"
	"show-notes/pkg/domain"
)

// DBSaver implements Saver by upserting episodes into MongoDB
type DBSaver struct {
	dbClient *db.Client
}

// NewDBSaver creates a new database saver
func NewDBSaver(dbClient *db.Client) *DBSaver {
	return &DBSaver{
		dbClient: dbClient,
	}
}

// SaveEpisodeNotes saves an episode to the database
func (s *DBSaver) SaveEpisodeNotes(ctx context.Context, episode *domain.EpisodeNotes) error {
	return s.dbClient.SaveEpisodeNotes(ctx, episode)
}
