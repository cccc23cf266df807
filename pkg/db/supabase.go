package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseConfig holds configuration required to connect to Supabase.
type SupabaseConfig struct {
	// ConnectionString is the Supabase Postgres connection string.
	// If empty, it is built from SupabaseURL and Password.
	ConnectionString string

	// SupabaseURL is the project URL, e.g. "https://[project-ref].supabase.co"
	SupabaseURL string

	// SupabaseKey is the API key used by the SDK client (service_role for server-side use).
	SupabaseKey string

	// Password is the database password, not the API key.
	Password string

	Pool PoolConfig
}

// SupabaseClient provides access to the Supabase Postgres database and the SDK.
type SupabaseClient struct {
	db          *sql.DB
	supabaseSDK *supabase.Client
	cfg         SupabaseConfig
}

// NewSupabaseClient constructs a Supabase client.
func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// Connect initializes the SDK client (when URL and key are set) and the direct
// database connection. The archive writes through SQL, so the direct connection
// is required.
func (c *SupabaseClient) Connect(ctx context.Context) error {
	if err := c.connectSDK(); err != nil {
		return err
	}

	connStr := c.cfg.ConnectionString
	if connStr == "" {
		var err error
		connStr, err = BuildSupabaseConnectionString(c.cfg.SupabaseURL, c.cfg.Password)
		if err != nil {
			return fmt.Errorf("build connection string: %w", err)
		}
	}

	// Supabase's pooler does not support pgx's statement cache
	connStr = addConnectionParam(connStr, "statement_cache_capacity", "0")
	connStr = addConnectionParam(connStr, "default_query_exec_mode", "simple_protocol")

	db, err := openPgx(ctx, connStr, c.cfg.Pool)
	if err != nil {
		return fmt.Errorf("supabase postgres: %w", err)
	}

	c.db = db
	return nil
}

// Close closes the database connection.
func (c *SupabaseClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the underlying sql.DB handle.
func (c *SupabaseClient) DB() *sql.DB {
	return c.db
}

func (c *SupabaseClient) connectSDK() error {
	if c.cfg.SupabaseURL == "" || c.cfg.SupabaseKey == "" {
		return nil
	}
	sdkClient, err := supabase.NewClient(c.cfg.SupabaseURL, c.cfg.SupabaseKey, nil)
	if err != nil {
		return fmt.Errorf("initialize supabase SDK: %w", err)
	}
	c.supabaseSDK = sdkClient
	return nil
}

// HasSDK reports whether the REST API client was configured.
func (c *SupabaseClient) HasSDK() bool {
	return c.supabaseSDK != nil
}

// CountRows asks the project's REST API how many rows of table the configured key can see.
func (c *SupabaseClient) CountRows(table string) (int64, error) {
	if c.supabaseSDK == nil {
		return 0, fmt.Errorf("supabase SDK not initialized: URL and key are required")
	}

	_, count, err := c.supabaseSDK.From(table).Select("url", "exact", true).Execute()
	if err != nil {
		return 0, fmt.Errorf("count %s via REST: %w", table, err)
	}
	return count, nil
}

// BuildSupabaseConnectionString derives the direct Postgres connection string of a
// project from its URL (https://[project-ref].supabase.co) and database password.
func BuildSupabaseConnectionString(supabaseURL, password string) (string, error) {
	if supabaseURL == "" {
		return "", fmt.Errorf("supabase URL is required when connection string is not provided")
	}
	if password == "" {
		return "", fmt.Errorf("supabase password is required when connection string is not provided")
	}

	parsedURL, err := url.Parse(supabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}

	parts := strings.Split(parsedURL.Hostname(), ".")
	if len(parts) < 2 || parts[0] == "" {
		return "", fmt.Errorf("invalid supabase URL format: expected [project-ref].supabase.co")
	}
	projectRef := parts[0]

	conn := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword("postgres", password),
		Host:     "db." + projectRef + ".supabase.co:5432",
		Path:     "/postgres",
		RawQuery: "sslmode=require",
	}
	return conn.String(), nil
}

// addConnectionParam adds a query parameter to the connection string if not already present.
func addConnectionParam(connStr, key, value string) string {
	if strings.Contains(connStr, key+"=") {
		return connStr
	}

	separator := "?"
	if strings.Contains(connStr, "?") {
		separator = "&"
	}

	return connStr + separator + key + "=" + value
}
