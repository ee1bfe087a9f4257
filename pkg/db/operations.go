package db

import (
	"database/sql"
	"fmt"

	"github.com/dtnitsch/doc-relevance/models"
)

// RunRecord is one row of run history.
type RunRecord struct {
	RunID            int64
	StartedAt        string
	InputDir         string
	DocumentCount    int
	EffectivePersona string
	EffectiveJob     string
	DocumentType     string
	AnalysisMethod   string
	SectionCount     int
	OutputPath       string
}

// InsertRun records a completed analysis run with its documents and ranked
// sections in one transaction.
func (db *DB) InsertRun(inputDir, outputPath string, result *models.AnalysisResult) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	meta := result.Metadata
	res, err := tx.Exec(`
		INSERT INTO runs (
			input_dir, document_count,
			original_persona, original_job,
			effective_persona, effective_job,
			document_type, language, analysis_method,
			section_count, output_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inputDir, len(meta.InputDocuments),
		NewNullString(meta.OriginalPersona), NewNullString(meta.OriginalJob),
		meta.EffectivePersona, meta.EffectiveJob,
		meta.DocumentType, NewNullString(meta.Language), meta.AnalysisMethod,
		len(result.ExtractedSections), NewNullString(outputPath),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, doc := range meta.InputDocuments {
		if _, err := tx.Exec(
			`INSERT INTO run_documents (run_id, document) VALUES (?, ?)`,
			runID, doc,
		); err != nil {
			return 0, fmt.Errorf("failed to insert run document: %w", err)
		}
	}

	for _, s := range result.ExtractedSections {
		if _, err := tx.Exec(`
			INSERT INTO run_sections (
				run_id, document, section_title,
				importance_rank, page_number, relevance_score, word_count
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, s.Document, s.SectionTitle,
			s.ImportanceRank, s.PageNumber, s.RelevanceScore, s.WordCount,
		); err != nil {
			return 0, fmt.Errorf("failed to insert run section: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Query(`
		SELECT run_id, started_at, input_dir, document_count,
		       effective_persona, effective_job, document_type,
		       analysis_method, section_count, COALESCE(output_path, '')
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.RunID, &r.StartedAt, &r.InputDir, &r.DocumentCount,
			&r.EffectivePersona, &r.EffectiveJob, &r.DocumentType,
			&r.AnalysisMethod, &r.SectionCount, &r.OutputPath,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// RunSections returns the ranked sections of one run in rank order.
func (db *DB) RunSections(runID int64) ([]models.SectionRecord, error) {
	rows, err := db.Query(`
		SELECT document, section_title, importance_rank,
		       page_number, relevance_score, word_count
		FROM run_sections
		WHERE run_id = ?
		ORDER BY importance_rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var sections []models.SectionRecord
	for rows.Next() {
		var s models.SectionRecord
		if err := rows.Scan(
			&s.Document, &s.SectionTitle, &s.ImportanceRank,
			&s.PageNumber, &s.RelevanceScore, &s.WordCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// NewNullString returns a NULL for empty strings.
func NewNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
