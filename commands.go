package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"show-notes/pkg/config"
	"show-notes/pkg/db"
	"show-notes/pkg/filter"
	"show-notes/pkg/httpclient"
	"show-notes/pkg/pipeline"
	"show-notes/pkg/render"
	"show-notes/pkg/replication"
	"show-notes/pkg/scraper"
	"show-notes/pkg/server"
	"show-notes/pkg/sources"

	"github.com/urfave/cli/v3"
)

const (
	targetPostgres = "postgres"
	targetSupabase = "supabase"
)

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.NewDefault()
	if err := config.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runBuild(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if out := cmd.String("out"); out != "" {
		cfg.Site.OutputDir = out
	}
	cfg.Filters.Categories = append(cfg.Filters.Categories, cmd.StringSlice("category")...)
	cfg.EpisodeFiles = append(cfg.EpisodeFiles, cmd.StringSlice("file")...)

	client := httpclient.NewClientWithTimeout(cfg.HTTP.ClientType(), cfg.HTTP.Timeout)
	scr := scraper.NewWithClient(client)

	renderer, err := render.New(cfg.Site.Title)
	if err != nil {
		return err
	}

	pcfg := pipeline.Config{
		Sources:   newProvider(cfg, client, scr),
		Filters:   newFilters(cfg),
		Scraper:   scr,
		Writer:    renderer,
		OutputDir: cfg.Site.OutputDir,
	}

	if cfg.Archive.Mongo.Enabled() {
		mongo, err := connectMongo(ctx, cfg.Archive.Mongo)
		if err != nil {
			return err
		}
		defer mongo.Close(context.Background())
		pcfg.Savers = append(pcfg.Savers, pipeline.NewDBSaver(mongo))
	}

	builder, err := pipeline.NewBuilder(pcfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := builder.Run(ctx)
	if err != nil {
		return err
	}

	log.Printf("Done. Built %d episodes, skipped %d in %s", len(result.Episodes), len(result.Skipped), time.Since(start))
	return nil
}

// newProvider returns the configured sources, or the built-in list when none are set.
func newProvider(cfg *config.Config, client *httpclient.HTTPClient, pages sources.PageFetcher) sources.Provider {
	if cfg.UsesBuiltinEpisodes() {
		return sources.Static()
	}

	chain := sources.Chain{sources.List(cfg.Sources())}
	for _, path := range cfg.EpisodeFiles {
		chain = append(chain, sources.NewFile(path))
	}
	for _, fc := range cfg.Feeds {
		feed := sources.NewFeed(fc.URL, fc.Category, fc.MaxItems, pages)
		feed.SetHTTPClient(client.StdClient())
		chain = append(chain, feed)
	}
	return chain
}

func newFilters(cfg *config.Config) []filter.Filter {
	filters := []filter.Filter{filter.NewDuplicateFilter()}
	if len(cfg.Filters.Categories) > 0 {
		filters = append(filters, filter.NewCategoryFilter(cfg.Filters.Categories...))
	}
	if len(cfg.Filters.Hosts) > 0 {
		filters = append(filters, filter.NewHostFilter(cfg.Filters.Hosts...))
	}
	return filters
}

func connectMongo(ctx context.Context, mc config.MongoConfig) (*db.Client, error) {
	client := db.NewClient(mc.URI, mc.Database, mc.Collection)
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return client, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir := cfg.Site.OutputDir
	if d := cmd.String("dir"); d != "" {
		dir = d
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Server.Port = int(port)
	}

	return server.Run(ctx, cfg.Server.Address(), dir)
}

func runReplicate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.Archive.Mongo.Enabled() {
		return fmt.Errorf("archive.mongo.uri is required for replication")
	}

	mongo, err := connectMongo(ctx, cfg.Archive.Mongo)
	if err != nil {
		return err
	}
	defer mongo.Close(context.Background())

	var target interface {
		db.DBProvider
		Close() error
	}
	var supabaseTarget *db.SupabaseClient

	switch cmd.String("target") {
	case targetPostgres:
		pg := db.NewPostgresClient(db.PostgresConfig{DSN: cfg.Archive.Postgres.DSN})
		if err := pg.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		target = pg
	case targetSupabase:
		sb := db.NewSupabaseClient(db.SupabaseConfig{
			ConnectionString: cfg.Archive.Supabase.ConnectionString,
			SupabaseURL:      cfg.Archive.Supabase.URL,
			SupabaseKey:      cfg.Archive.Supabase.Key,
			Password:         cfg.Archive.Supabase.Password,
		})
		if err := sb.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to supabase: %w", err)
		}
		target = sb
		supabaseTarget = sb
	default:
		return fmt.Errorf("unknown replication target %q", cmd.String("target"))
	}
	defer target.Close()

	replicator, err := replication.NewReplicator(replication.Config{
		Mongo:     mongo,
		Postgres:  target,
		BatchSize: int(cmd.Int("batch-size")),
	})
	if err != nil {
		return err
	}

	stats, err := replicator.ReplicateEpisodesMongoToPostgres(ctx)
	if err != nil {
		return fmt.Errorf("replication failed: %w", err)
	}

	log.Printf("Done. Processed %d episodes, inserted %d", stats.Processed, stats.Inserted)

	if supabaseTarget != nil && supabaseTarget.HasSDK() {
		count, err := supabaseTarget.CountRows(replication.EpisodeTable)
		if err != nil {
			return fmt.Errorf("verify replication: %w", err)
		}
		log.Printf("Supabase REST API reports %d episodes", count)
	}
	return nil
}
