package db

import (
	"testing"

	"github.com/dtnitsch/doc-relevance/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Metadata: models.ResultMetadata{
			InputDocuments:   []string{"guide.pdf", "map.pdf"},
			OriginalPersona:  "Travel planner",
			OriginalJob:      "Plan a trip",
			EffectivePersona: "travel_planner",
			EffectiveJob:     "plan_group_trip",
			DocumentType:     "travel_guides",
			Language:         "en",
			AnalysisMethod:   "persona_guided_structural_analysis",
		},
		ExtractedSections: []models.SectionRecord{
			{Document: "guide.pdf", SectionTitle: "Day Trips", ImportanceRank: 1, PageNumber: 3, RelevanceScore: 0.812, WordCount: 140},
			{Document: "map.pdf", SectionTitle: "City Center", ImportanceRank: 2, PageNumber: 1, RelevanceScore: 0.644, WordCount: 98},
		},
	}
}

func TestInsertRunAndReadBack(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	runID, err := database.InsertRun("/docs", "/out/result.json", sampleResult())
	if err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("run ID = %d, want positive", runID)
	}

	runs, err := database.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.EffectivePersona != "travel_planner" || r.DocumentType != "travel_guides" {
		t.Errorf("run record = %+v", r)
	}
	if r.DocumentCount != 2 || r.SectionCount != 2 {
		t.Errorf("counts = %d docs, %d sections, want 2/2", r.DocumentCount, r.SectionCount)
	}

	sections, err := database.RunSections(runID)
	if err != nil {
		t.Fatalf("RunSections: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].ImportanceRank != 1 || sections[0].SectionTitle != "Day Trips" {
		t.Errorf("sections not in rank order: %+v", sections[0])
	}
}

func TestRecentRunsOrder(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	for i := 0; i < 3; i++ {
		if _, err := database.InsertRun("/docs", "", sampleResult()); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := database.RecentRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want limit of 2", len(runs))
	}
	if runs[0].RunID <= runs[1].RunID {
		t.Errorf("runs not newest first: %d then %d", runs[0].RunID, runs[1].RunID)
	}
}

func TestRunSectionsEmptyRun(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	result := sampleResult()
	result.ExtractedSections = nil
	runID, err := database.InsertRun("/docs", "", result)
	if err != nil {
		t.Fatal(err)
	}

	sections, err := database.RunSections(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 0 {
		t.Errorf("got %d sections for empty run", len(sections))
	}
}
