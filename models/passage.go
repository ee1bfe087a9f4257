package models

// PassageScores holds the derived scores for a passage. Every score is
// normalized to [0,1]; a zero-word passage has all scores exactly 0.
type PassageScores struct {
	Structural   float64
	Density      float64
	Organization float64
	Contextual   float64
	Relevance    float64 // weighted combination of the others
}

// Passage is a windowed span of page text plus its derived features and
// scores. Passages are disposable intermediate values produced by the
// segmenter and consumed by the ranking stages.
type Passage struct {
	Document   string
	PageNumber int
	StartLine  int // offset into the page's non-blank lines
	Lines      []string
	Content    string // lines joined by newline

	// Title is derived from the window's lines, not authoritative.
	Title       string
	ContentType string

	WordCount int
	Features  map[string]int
	Scores    PassageScores
}

// EndLine returns the exclusive end offset of the passage's line range.
func (p *Passage) EndLine() int {
	return p.StartLine + len(p.Lines)
}

// Quality is the persona-independent combined quality used by the merge and
// minimum-quality filters: structural + density + organization.
func (p *Passage) Quality() float64 {
	return p.Scores.Structural + p.Scores.Density + p.Scores.Organization
}
