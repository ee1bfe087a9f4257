// Package models defines data structures shared across the analysis pipeline.
package models

import "strings"

// Document is one ingested source file: its name plus an ordered sequence of
// pages. Documents are immutable after ingestion.
type Document struct {
	Name  string
	Path  string
	Pages []Page
}

// Page holds the raw extracted text of a single document page. Text may be
// empty when extraction failed for that page; that is not fatal.
type Page struct {
	Document string
	Number   int // 1-based
	Text     string
}

// Text returns the concatenated text of all pages.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// WordCount returns the total number of whitespace-separated words.
func (d *Document) WordCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(strings.Fields(p.Text))
	}
	return n
}
