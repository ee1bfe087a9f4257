// Package artifacts writes analysis run outputs to disk: the JSON result
// document and a compact YAML run summary next to it.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/doc-relevance/models"
	"gopkg.in/yaml.v3"
)

// RunSummary is the YAML sidecar written next to the JSON result. It holds
// just enough to skim a run without opening the full result document.
type RunSummary struct {
	Timestamp        string   `yaml:"timestamp"`
	InputDocuments   []string `yaml:"input_documents"`
	DocumentType     string   `yaml:"document_type"`
	EffectivePersona string   `yaml:"effective_persona"`
	EffectiveJob     string   `yaml:"effective_job"`
	Language         string   `yaml:"language,omitempty"`
	AnalysisMethod   string   `yaml:"analysis_method"`
	SectionCount     int      `yaml:"section_count"`
	TopSections      []string `yaml:"top_sections,omitempty"`
	Warnings         []string `yaml:"warnings,omitempty"`
}

// WriteResult marshals the result document as indented JSON at path,
// creating parent directories as needed.
func WriteResult(path string, result *models.AnalysisResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling result: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

// WriteSummary writes the YAML run summary next to the JSON result,
// replacing the .json extension with .yaml.
func WriteSummary(resultPath string, result *models.AnalysisResult) (string, error) {
	summary := RunSummary{
		Timestamp:        result.Metadata.Timestamp,
		InputDocuments:   result.Metadata.InputDocuments,
		DocumentType:     result.Metadata.DocumentType,
		EffectivePersona: result.Metadata.EffectivePersona,
		EffectiveJob:     result.Metadata.EffectiveJob,
		Language:         result.Metadata.Language,
		AnalysisMethod:   result.Metadata.AnalysisMethod,
		SectionCount:     len(result.ExtractedSections),
		Warnings:         result.Metadata.Warnings,
	}
	for i, s := range result.ExtractedSections {
		if i >= 3 {
			break
		}
		summary.TopSections = append(summary.TopSections,
			fmt.Sprintf("%s p%d: %s", s.Document, s.PageNumber, s.SectionTitle))
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("marshalling summary: %w", err)
	}

	summaryPath := strings.TrimSuffix(resultPath, filepath.Ext(resultPath)) + ".yaml"
	if err := os.WriteFile(summaryPath, data, 0600); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}
	return summaryPath, nil
}
