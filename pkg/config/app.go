package config

import (
	"fmt"
	"time"

	"show-notes/pkg/domain"
	"show-notes/pkg/httpclient"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config is the show-notes configuration. With no file, NewDefault reproduces the
// fixed behavior: the built-in episode list rendered into ./public.
type Config struct {
	Site     SiteConfig      `yaml:"site"`
	HTTP     HTTPConfig      `yaml:"http"`
	Episodes []EpisodeConfig `yaml:"episodes"`
	// EpisodeFiles are text files in the "<blog-url> <video-url> [category]" format
	EpisodeFiles []string      `yaml:"episode_files"`
	Feeds        []FeedConfig  `yaml:"feeds"`
	Filters      FiltersConfig `yaml:"filters"`
	Archive      ArchiveConfig `yaml:"archive"`
	Server       ServerConfig  `yaml:"server"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Site),
		validation.Field(&c.HTTP),
		validation.Field(&c.Episodes),
		validation.Field(&c.EpisodeFiles, validation.Each(validation.Required)),
		validation.Field(&c.Feeds),
		validation.Field(&c.Archive),
		validation.Field(&c.Server),
	)
}

// UsesBuiltinEpisodes reports whether no episode source is configured, in which case
// the built-in list is scraped.
func (c *Config) UsesBuiltinEpisodes() bool {
	return len(c.Episodes) == 0 && len(c.EpisodeFiles) == 0 && len(c.Feeds) == 0
}

// Sources converts the inline episode list.
func (c *Config) Sources() []domain.Source {
	out := make([]domain.Source, 0, len(c.Episodes))
	for _, e := range c.Episodes {
		out = append(out, domain.Source{BlogURL: e.Blog, VideoURL: e.Video, Category: e.Category})
	}
	return out
}

// SiteConfig controls the rendered output.
type SiteConfig struct {
	Title     string `yaml:"title"`
	OutputDir string `yaml:"output_dir"`
}

// Validate validates the site configuration.
func (c SiteConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OutputDir, validation.Required),
	)
}

// HTTPConfig controls page fetching.
type HTTPConfig struct {
	// Client is the header profile: browser, cloudflare or default
	Client  string        `yaml:"client"`
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the HTTP configuration.
func (c HTTPConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Client, validation.In("", string(httpclient.BrowserClient), string(httpclient.CloudflareClient), string(httpclient.DefaultClient))),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// ClientType returns the configured header profile.
func (c HTTPConfig) ClientType() httpclient.ClientType {
	t, err := httpclient.ParseClientType(c.Client)
	if err != nil {
		return httpclient.BrowserClient
	}
	return t
}

// EpisodeConfig is one inline episode.
type EpisodeConfig struct {
	Blog     string `yaml:"blog"`
	Video    string `yaml:"video"`
	Category string `yaml:"category"`
}

// Validate validates the episode.
func (c EpisodeConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Blog, validation.Required, is.URL),
		validation.Field(&c.Video, validation.Required, is.URL),
	)
}

// FeedConfig is an RSS/Atom feed listing episode pages.
type FeedConfig struct {
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
	// MaxItems caps how many feed items are used; 0 means all of them
	MaxItems int `yaml:"max_items"`
}

// Validate validates the feed.
func (c FeedConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.URL, validation.Required, is.URL),
		validation.Field(&c.MaxItems, validation.Min(0)),
	)
}

// FiltersConfig restricts which episodes are scraped.
type FiltersConfig struct {
	Categories []string `yaml:"categories"`
	Hosts      []string `yaml:"hosts"`
}

// ArchiveConfig configures the optional episode archive.
type ArchiveConfig struct {
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
	Supabase SupabaseConfig `yaml:"supabase"`
}

// Validate validates the archive configuration.
func (c ArchiveConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Mongo),
	)
}

// MongoConfig holds the MongoDB connection. An empty URI disables the archive.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// Enabled reports whether a URI is configured.
func (c MongoConfig) Enabled() bool {
	return c.URI != ""
}

// Validate validates the Mongo configuration.
func (c MongoConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Database, validation.When(c.Enabled(), validation.Required)),
	)
}

// PostgresConfig holds the Postgres replication target.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// SupabaseConfig holds the Supabase replication target.
type SupabaseConfig struct {
	URL              string `yaml:"url"`
	Key              string `yaml:"key"`
	Password         string `yaml:"password"`
	ConnectionString string `yaml:"connection_string"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Address returns the preview server address.
func (c ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the server configuration.
func (c ServerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// NewDefault returns the configuration used when no file is given.
func NewDefault() *Config {
	return &Config{
		Site: SiteConfig{
			Title:     "Show Notes",
			OutputDir: "public",
		},
		HTTP: HTTPConfig{
			Client:  string(httpclient.BrowserClient),
			Timeout: httpclient.DefaultTimeout,
		},
		Archive: ArchiveConfig{
			Mongo: MongoConfig{
				Database:   "shownotes",
				Collection: "episode_notes",
			},
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}
