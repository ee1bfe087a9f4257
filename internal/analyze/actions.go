package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dtnitsch/doc-relevance/internal/common"
	"github.com/dtnitsch/doc-relevance/models"
	"github.com/dtnitsch/doc-relevance/pkg/artifacts"
	dbpkg "github.com/dtnitsch/doc-relevance/pkg/db"
	"github.com/dtnitsch/doc-relevance/pkg/ingest"
	"github.com/dtnitsch/doc-relevance/pkg/pipeline"
	"github.com/urfave/cli/v2"
)

// AnalyzeAction runs the full analysis over an input directory and writes
// the result artifact.
func AnalyzeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}

	paths, err := ingest.Collect(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("failed to collect documents: %w", err)
	}
	logger.Info("Starting analysis", "input_dir", cfg.InputDir, "documents", len(paths), "workers", cfg.WorkerCount)

	result, err := pipeline.New(logger, cfg).Run(context.Background(), paths)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := artifacts.WriteResult(cfg.OutputPath, result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if data, readErr := os.ReadFile(cfg.OutputPath); readErr == nil {
		logger.Info("Result written", "path", cfg.OutputPath, "sha256", common.ContentHash(data), "bytes", len(data))
	}

	summaryPath, err := artifacts.WriteSummary(cfg.OutputPath, result)
	if err != nil {
		logger.Warn("Failed to write run summary", "error", err)
	} else {
		logger.Info("Summary written", "path", summaryPath)
	}

	// Run history is best effort: a broken database never fails the run.
	if database, dbErr := dbpkg.Open(); dbErr != nil {
		logger.Warn("Failed to open run database", "error", dbErr)
	} else {
		defer database.Close()
		if runID, insErr := database.InsertRun(cfg.InputDir, cfg.OutputPath, result); insErr != nil {
			logger.Warn("Failed to record run", "error", insErr)
		} else {
			logger.Info("Run recorded", "run_id", runID, "db", database.Path())
		}
	}

	if len(result.ExtractedSections) == 0 {
		fmt.Println("Nothing to analyze: no sections met the quality thresholds")
		return nil
	}

	fmt.Printf("Analyzed %d document(s) as %s/%s (%s)\n",
		len(result.Metadata.InputDocuments),
		result.Metadata.EffectivePersona,
		result.Metadata.EffectiveJob,
		result.Metadata.DocumentType)
	fmt.Printf("Top sections (%d):\n", len(result.ExtractedSections))
	for _, s := range result.ExtractedSections {
		fmt.Printf("  %2d. %-40s %s p%d (%.3f)\n",
			s.ImportanceRank, s.SectionTitle, s.Document, s.PageNumber, s.RelevanceScore)
	}
	return nil
}

func configFromFlags(c *cli.Context) (models.AnalyzeConfig, error) {
	cfg := models.DefaultAnalyzeConfig()
	cfg.InputDir = c.String("input-dir")
	if cfg.InputDir == "" {
		return cfg, fmt.Errorf("no input directory provided via --input-dir flag")
	}
	cfg.Persona = c.String("persona")
	cfg.Job = c.String("job")
	cfg.OutputPath = c.String("output")

	if w := c.Int("workers"); w > 0 {
		cfg.WorkerCount = w
	}
	if n := c.Int("max-sections"); n > 0 {
		cfg.MaxSections = n
	}
	if n := c.Int("max-per-doc"); n > 0 {
		cfg.MaxPerDocument = n
	}
	if t := c.String("timeout"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return cfg, fmt.Errorf("invalid timeout duration: %w", err)
		}
		cfg.DocTimeout = d
	}
	return cfg, nil
}
