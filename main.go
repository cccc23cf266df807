package main

import (
	"context"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:   "show-notes",
		Usage:  "Scrape podcast show notes and render them as linked HTML pages",
		Action: runBuild,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (built-in defaults when empty)",
				Sources: cli.EnvVars("SHOWNOTES_CONFIG"),
			},
		}, buildFlags()...),
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Scrape every episode and write the site",
				Flags:  buildFlags(),
				Action: runBuild,
			},
			{
				Name:  "serve",
				Usage: "Serve the output directory for preview",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Directory to serve (defaults to the configured output dir)",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "Port to listen on (defaults to the configured port)",
					},
				},
				Action: runServe,
			},
			{
				Name:  "replicate",
				Usage: "Copy archived episodes from MongoDB to Postgres or Supabase",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "target",
						Usage: "Replication target: postgres or supabase",
						Value: targetPostgres,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Episodes per transaction",
					},
				},
				Action: runReplicate,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Output directory",
		},
		&cli.StringSliceFlag{
			Name:  "category",
			Usage: "Only build episodes in this category (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "file",
			Usage: "Episode list file, one \"<blog-url> <video-url> [category]\" per line (repeatable)",
		},
	}
}
