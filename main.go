package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/doc-relevance/internal/analyze"
	"github.com/dtnitsch/doc-relevance/internal/db"
	"github.com/dtnitsch/doc-relevance/internal/detect"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docrel",
		Usage: "rank document passages by structural relevance to a persona and job",
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "analyze a directory of documents and write the ranked result",
				Action: analyze.AnalyzeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input-dir",
						Aliases:  []string{"i"},
						Usage:    "directory containing .pdf, .txt or .html documents",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "persona",
						Aliases: []string{"p"},
						Usage:   "persona description; omit to auto-detect from the corpus",
					},
					&cli.StringFlag{
						Name:    "job",
						Aliases: []string{"j"},
						Usage:   "job-to-be-done description; omit to auto-detect",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "analysis_result.json",
						Usage:   "path of the JSON result artifact",
					},
					&cli.IntFlag{
						Name:  "workers",
						Value: 4,
						Usage: "concurrent document workers",
					},
					&cli.IntFlag{
						Name:  "max-sections",
						Value: 10,
						Usage: "total sections in the final selection",
					},
					&cli.IntFlag{
						Name:  "max-per-doc",
						Value: 3,
						Usage: "sections allowed per document",
					},
					&cli.StringFlag{
						Name:  "timeout",
						Value: "60s",
						Usage: "per-document extraction time budget",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
			},
			{
				Name:   "detect",
				Usage:  "detect document type and optimal persona/job without full analysis",
				Action: detect.DetectAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input-dir",
						Aliases:  []string{"i"},
						Usage:    "directory containing documents to inspect",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
			},
			{
				Name:  "db",
				Usage: "inspect recorded run history",
				Subcommands: []*cli.Command{
					{
						Name:   "runs",
						Usage:  "list recent analysis runs",
						Action: db.RunsAction,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 10,
								Usage: "maximum runs to list",
							},
						},
					},
					{
						Name:      "run",
						Usage:     "show the ranked sections of one run",
						ArgsUsage: "<run-id>",
						Action:    db.RunAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
