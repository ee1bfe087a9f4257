package models

// PersonaJobResult is the outcome of persona/job resolution, whether taken
// from caller input or auto-detected from the corpus.
type PersonaJobResult struct {
	Persona     string  `json:"persona"`
	Job         string  `json:"job"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description,omitempty"`
}

// ResultMetadata describes how an analysis run resolved its inputs.
type ResultMetadata struct {
	InputDocuments     []string `json:"input_documents"`
	OriginalPersona    string   `json:"original_persona,omitempty"`
	OriginalJob        string   `json:"original_job,omitempty"`
	EffectivePersona   string   `json:"effective_persona"`
	EffectiveJob       string   `json:"effective_job"`
	PersonaConfidence  float64  `json:"persona_job_confidence,omitempty"`
	DocumentType       string   `json:"detected_document_type"`
	Language           string   `json:"language,omitempty"`
	LanguageConfidence float64  `json:"language_confidence,omitempty"`
	Timestamp          string   `json:"processing_timestamp"`
	AnalysisMethod     string   `json:"analysis_method"`
	Warnings           []string `json:"warnings,omitempty"`
}

// SectionRecord is one ranked section in the output artifact.
type SectionRecord struct {
	Document        string  `json:"document"`
	SectionTitle    string  `json:"section_title"`
	ImportanceRank  int     `json:"importance_rank"`
	PageNumber      int     `json:"page_number"`
	RelevanceScore  float64 `json:"relevance_score"`
	WordCount       int     `json:"word_count"`
	StructuralScore float64 `json:"structural_score,omitempty"`
	DensityScore    float64 `json:"density_score,omitempty"`
}

// SubsectionRecord is a refined deep-dive into one of the top sections.
type SubsectionRecord struct {
	Document      string `json:"document"`
	RefinedText   string `json:"refined_text"`
	PageNumber    int    `json:"page_number"`
	ParentSection string `json:"parent_section"`
}

// AnalysisResult is the JSON output artifact of a full pipeline run.
type AnalysisResult struct {
	Metadata           ResultMetadata     `json:"metadata"`
	ExtractedSections  []SectionRecord    `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionRecord `json:"subsection_analysis"`
}
