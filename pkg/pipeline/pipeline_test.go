package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/doc-relevance/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func writeTravelDoc(t *testing.T, dir, name string) {
	t.Helper()
	page := `Day 1: City Exploration
1. Meet at the Grand Hotel lobby at 9:00
2. Walking tour of the old town at 10:30
3. Lunch at Chez Marie Restaurant, €25 per person
4. Visit the History Museum in the afternoon
- Entry fee: €12 per person
- Tickets: www.citytours.example
- Phone: +33 1-2345-6789
Opening hours: daily from 10:00 to 18:00
Dinner reservation at the Hotel Restaurant at 19:00
Meeting point: the central square fountain
Bring comfortable shoes for the walking tour
Day 2: Coastal villages tour with hotel pickup at 8:30
1. Book the boat tour at the harbour office
2. Reserve lunch at the Harbour Restaurant
3. Return to the hotel by 18:00 in the evening
Budget: €80 per person for the full day
Contact: tours@example.com for group bookings
`
	if err := os.WriteFile(filepath.Join(dir, name), []byte(strings.Repeat(page, 3)), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunEmptyInput(t *testing.T) {
	pl := New(testLogger(), models.DefaultAnalyzeConfig())
	result, err := pl.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run with no paths errored: %v", err)
	}
	if len(result.ExtractedSections) != 0 {
		t.Errorf("empty run produced %d sections", len(result.ExtractedSections))
	}
	if result.Metadata.DocumentType != "general" {
		t.Errorf("document type = %q, want general", result.Metadata.DocumentType)
	}
	if result.Metadata.AnalysisMethod == "" {
		t.Error("analysis method not set on empty run")
	}
}

func TestRunUnreadableDocumentIsRecoverable(t *testing.T) {
	dir := t.TempDir()
	writeTravelDoc(t, dir, "guide.txt")
	missing := filepath.Join(dir, "missing.txt")

	pl := New(testLogger(), models.DefaultAnalyzeConfig())
	result, err := pl.Run(context.Background(), []string{filepath.Join(dir, "guide.txt"), missing})
	if err != nil {
		t.Fatalf("Run errored on recoverable failure: %v", err)
	}
	if len(result.Metadata.Warnings) == 0 {
		t.Error("missing document produced no warning")
	}
	if len(result.Metadata.InputDocuments) != 1 {
		t.Errorf("input documents = %v, want the one readable doc", result.Metadata.InputDocuments)
	}
}

func TestRunTravelCorpus(t *testing.T) {
	dir := t.TempDir()
	writeTravelDoc(t, dir, "guide.txt")

	pl := New(testLogger(), models.DefaultAnalyzeConfig())
	result, err := pl.Run(context.Background(), []string{filepath.Join(dir, "guide.txt")})
	if err != nil {
		t.Fatal(err)
	}

	if result.Metadata.DocumentType != "travel_guides" {
		t.Errorf("document type = %q, want travel_guides", result.Metadata.DocumentType)
	}
	if result.Metadata.EffectivePersona != "travel_planner" {
		t.Errorf("persona = %q, want travel_planner", result.Metadata.EffectivePersona)
	}
	if result.Metadata.AnalysisMethod != MethodAutoAdaptive {
		t.Errorf("analysis method = %q, want %q", result.Metadata.AnalysisMethod, MethodAutoAdaptive)
	}
	if c := result.Metadata.PersonaConfidence; c <= 0 || c > 1 {
		t.Errorf("persona/job confidence %f out of (0,1]", c)
	}
	if len(result.ExtractedSections) == 0 {
		t.Fatal("no sections extracted from structured travel corpus")
	}

	for i, s := range result.ExtractedSections {
		if s.ImportanceRank != i+1 {
			t.Errorf("section %d rank = %d", i, s.ImportanceRank)
		}
		if s.RelevanceScore < 0 || s.RelevanceScore > 1 {
			t.Errorf("section %d relevance %f out of [0,1]", i, s.RelevanceScore)
		}
		if i > 0 && s.RelevanceScore > result.ExtractedSections[i-1].RelevanceScore {
			t.Errorf("sections not sorted by score at %d", i)
		}
	}

	if len(result.SubsectionAnalysis) == 0 {
		t.Fatal("no subsection analysis produced")
	}
	for _, sub := range result.SubsectionAnalysis {
		if len(sub.RefinedText) > 500 {
			t.Errorf("refined text %d chars, want <= 500", len(sub.RefinedText))
		}
		if sub.ParentSection == "" {
			t.Error("subsection missing parent section title")
		}
	}
}

func TestRunRespectsCaps(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"} {
		writeTravelDoc(t, dir, name)
	}
	paths, _ := filepath.Glob(filepath.Join(dir, "*.txt"))

	cfg := models.DefaultAnalyzeConfig()
	pl := New(testLogger(), cfg)
	result, err := pl.Run(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.ExtractedSections) > cfg.MaxSections {
		t.Errorf("selected %d sections, cap %d", len(result.ExtractedSections), cfg.MaxSections)
	}
	perDoc := make(map[string]int)
	for _, s := range result.ExtractedSections {
		perDoc[s.Document]++
	}
	for doc, n := range perDoc {
		if n > cfg.MaxPerDocument {
			t.Errorf("%s has %d sections, cap %d", doc, n, cfg.MaxPerDocument)
		}
	}
	if len(result.SubsectionAnalysis) > cfg.Subsections {
		t.Errorf("%d subsections, cap %d", len(result.SubsectionAnalysis), cfg.Subsections)
	}
}

func TestRunPersonaGuided(t *testing.T) {
	dir := t.TempDir()
	writeTravelDoc(t, dir, "guide.txt")

	cfg := models.DefaultAnalyzeConfig()
	cfg.Persona = "Travel planner organizing a trip for college friends"
	cfg.Job = "Plan a 4 day trip with a step by step guide"
	pl := New(testLogger(), cfg)
	result, err := pl.Run(context.Background(), []string{filepath.Join(dir, "guide.txt")})
	if err != nil {
		t.Fatal(err)
	}

	if result.Metadata.AnalysisMethod != MethodPersonaGuided {
		t.Errorf("analysis method = %q, want %q", result.Metadata.AnalysisMethod, MethodPersonaGuided)
	}
	if result.Metadata.OriginalPersona != cfg.Persona {
		t.Errorf("original persona not preserved: %q", result.Metadata.OriginalPersona)
	}
	if result.Metadata.EffectivePersona != "planner" {
		t.Errorf("effective persona = %q, want planner", result.Metadata.EffectivePersona)
	}
}

func TestRunManyDocumentsDeterministic(t *testing.T) {
	dir := t.TempDir()
	var paths, names []string
	for i := 0; i < 8; i++ {
		name := "guide" + string(rune('a'+i)) + ".txt"
		writeTravelDoc(t, dir, name)
		paths = append(paths, filepath.Join(dir, name))
		names = append(names, name)
	}

	pl := New(testLogger(), models.DefaultAnalyzeConfig())
	a, err := pl.Run(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(a.Metadata.InputDocuments, ","); got != strings.Join(names, ",") {
		t.Errorf("input documents not in input order:\ngot  %s\nwant %s", got, strings.Join(names, ","))
	}

	for i := 0; i < 5; i++ {
		b, err := pl.Run(context.Background(), paths)
		if err != nil {
			t.Fatal(err)
		}
		a.Metadata.Timestamp = ""
		b.Metadata.Timestamp = ""
		aj, _ := json.Marshal(a)
		bj, _ := json.Marshal(b)
		if string(aj) != string(bj) {
			t.Fatalf("iteration %d diverged:\n%s\n%s", i, aj, bj)
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeTravelDoc(t, dir, "guide.txt")
	paths := []string{filepath.Join(dir, "guide.txt")}

	pl := New(testLogger(), models.DefaultAnalyzeConfig())
	a, err := pl.Run(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}
	b, err := pl.Run(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}

	a.Metadata.Timestamp = ""
	b.Metadata.Timestamp = ""
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	if string(aj) != string(bj) {
		t.Errorf("same corpus produced different results:\n%s\n%s", aj, bj)
	}
}
