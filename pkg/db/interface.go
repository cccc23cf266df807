package db

import "database/sql"

// DBProvider is implemented by the SQL archive targets (plain Postgres and Supabase)
// so the replicator can write to either.
type DBProvider interface {
	DB() *sql.DB
}
