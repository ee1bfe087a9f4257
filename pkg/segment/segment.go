// Package segment produces overlapping candidate passages from page text
// using a fixed-size, fixed-step sliding window.
//
// Fixed windows avoid any dependence on paragraph or heading detection,
// which is unreliable in text extracted from PDFs.
package segment

import (
	"strings"

	"github.com/dtnitsch/doc-relevance/models"
)

// Defaults match the reference analysis runs. Step < size, so consecutive
// windows overlap.
const (
	DefaultWindowSize = 12
	DefaultWindowStep = 6
	DefaultMinLines   = 5
)

// NonBlankLines returns the trimmed, non-empty lines of a page's text.
func NonBlankLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Page slides a window of size lines advancing by step over the page's
// non-blank lines and returns one provisional passage per window. Pages with
// fewer than minLines lines produce no passages: too little context to be
// meaningful. Non-positive parameters fall back to the defaults.
func Page(page models.Page, size, step, minLines int) []models.Passage {
	if size <= 0 {
		size = DefaultWindowSize
	}
	if step <= 0 || step >= size {
		step = DefaultWindowStep
		if step >= size {
			// Small custom windows still need step < size so consecutive
			// windows overlap; a size of 1 degenerates to step 1.
			step = max(size-1, 1)
		}
	}
	if minLines <= 0 {
		minLines = DefaultMinLines
	}

	lines := NonBlankLines(page.Text)
	if len(lines) < minLines {
		return nil
	}

	var passages []models.Passage
	for i := 0; i+size <= len(lines); i += step {
		window := lines[i : i+size]
		content := strings.Join(window, "\n")
		passages = append(passages, models.Passage{
			Document:   page.Document,
			PageNumber: page.Number,
			StartLine:  i,
			Lines:      window,
			Content:    content,
			WordCount:  len(strings.Fields(content)),
		})
	}
	return passages
}
