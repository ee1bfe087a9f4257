package db

import (
	"fmt"
	"strings"

	dbpkg "github.com/dtnitsch/doc-relevance/pkg/db"
	"github.com/urfave/cli/v2"
)

// RunsAction lists recent analysis runs.
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.RecentRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-6s %-22s %-22s %-24s %-8s\n",
		"ID", "Started", "Docs", "Persona", "Job", "Type", "Sections")
	fmt.Println(strings.Repeat("-", 115))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-6d %-22s %-22s %-24s %-8d\n",
			r.RunID,
			r.StartedAt,
			r.DocumentCount,
			r.EffectivePersona,
			r.EffectiveJob,
			r.DocumentType,
			r.SectionCount,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'docrel db run <id>' to see the ranked sections\n")
	return nil
}

// RunAction shows the ranked sections of one run.
func RunAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: docrel db run <run-id>")
	}
	var runID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &runID); err != nil {
		return fmt.Errorf("invalid run ID %q: %w", c.Args().First(), err)
	}

	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	sections, err := database.RunSections(runID)
	if err != nil {
		return fmt.Errorf("failed to load sections: %w", err)
	}
	if len(sections) == 0 {
		fmt.Printf("No sections recorded for run %d\n", runID)
		return nil
	}

	fmt.Printf("%-5s %-40s %-24s %-5s %-8s %-6s\n",
		"Rank", "Section", "Document", "Page", "Score", "Words")
	fmt.Println(strings.Repeat("-", 95))
	for _, s := range sections {
		title := s.SectionTitle
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Printf("%-5d %-40s %-24s %-5d %-8.3f %-6d\n",
			s.ImportanceRank, title, s.Document, s.PageNumber, s.RelevanceScore, s.WordCount)
	}
	return nil
}
