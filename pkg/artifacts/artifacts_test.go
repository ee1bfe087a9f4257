package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/doc-relevance/models"
	"gopkg.in/yaml.v3"
)

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Metadata: models.ResultMetadata{
			InputDocuments:   []string{"guide.pdf"},
			EffectivePersona: "travel_planner",
			EffectiveJob:     "plan_group_trip",
			DocumentType:     "travel_guides",
			Language:         "en",
			Timestamp:        "2026-08-28T12:00:00Z",
			AnalysisMethod:   "auto_adaptive_structural_analysis",
		},
		ExtractedSections: []models.SectionRecord{
			{Document: "guide.pdf", SectionTitle: "Day Trips", ImportanceRank: 1, PageNumber: 3, RelevanceScore: 0.812, WordCount: 140},
		},
	}
}

func TestWriteResultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.json")
	if err := WriteResult(path, sampleResult()); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got models.AnalysisResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("written result is not valid JSON: %v", err)
	}
	if got.Metadata.EffectivePersona != "travel_planner" {
		t.Errorf("persona = %q", got.Metadata.EffectivePersona)
	}
	if len(got.ExtractedSections) != 1 || got.ExtractedSections[0].ImportanceRank != 1 {
		t.Errorf("sections did not round-trip: %+v", got.ExtractedSections)
	}
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	resultPath := filepath.Join(dir, "result.json")
	if err := WriteResult(resultPath, sampleResult()); err != nil {
		t.Fatal(err)
	}

	summaryPath, err := WriteSummary(resultPath, sampleResult())
	if err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if filepath.Ext(summaryPath) != ".yaml" {
		t.Errorf("summary path = %q, want .yaml", summaryPath)
	}

	data, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatal(err)
	}
	var got RunSummary
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("summary is not valid YAML: %v", err)
	}
	if got.SectionCount != 1 || got.DocumentType != "travel_guides" {
		t.Errorf("summary = %+v", got)
	}
	if len(got.TopSections) != 1 {
		t.Errorf("top sections = %v", got.TopSections)
	}
}
