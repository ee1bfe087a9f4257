package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/doc-relevance/pkg/detect"
	"github.com/dtnitsch/doc-relevance/pkg/ingest"
	"github.com/urfave/cli/v2"
)

// report is the JSON shape printed by the detect command.
type report struct {
	InputDocuments     []string `json:"input_documents"`
	DocumentType       string   `json:"document_type"`
	Persona            string   `json:"persona"`
	Job                string   `json:"job"`
	PersonaConfidence  float64  `json:"persona_job_confidence"`
	PersonaDescription string   `json:"persona_job_description,omitempty"`
	Language           string   `json:"language"`
	LanguageConfidence float64  `json:"language_confidence"`
}

// DetectAction inspects a corpus and prints the detected document type and
// optimal persona/job pair without running the full analysis.
func DetectAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	inputDir := c.String("input-dir")
	if inputDir == "" {
		return fmt.Errorf("no input directory provided via --input-dir flag")
	}

	paths, err := ingest.Collect(inputDir)
	if err != nil {
		return fmt.Errorf("failed to collect documents: %w", err)
	}

	var corpus strings.Builder
	var names []string
	for _, path := range paths {
		doc, loadErr := ingest.Load(context.Background(), path)
		if loadErr != nil {
			logger.Warn("Skipping document", "path", path, "error", loadErr)
			continue
		}
		names = append(names, doc.Name)
		corpus.WriteString(doc.Text())
		corpus.WriteByte('\n')
	}

	content := corpus.String()
	docType := detect.Type(content)
	pj := detect.PersonaJob(docType, content)
	language, confidence := detect.Language(content)

	out, err := json.MarshalIndent(report{
		InputDocuments:     names,
		DocumentType:       docType,
		Persona:            pj.Persona,
		Job:                pj.Job,
		PersonaConfidence:  pj.Confidence,
		PersonaDescription: pj.Description,
		Language:           language,
		LanguageConfidence: confidence,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
