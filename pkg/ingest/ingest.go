// Package ingest loads analysis input documents from disk. PDF, plain text
// and HTML files all normalize into models.Document with per-page text.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dtnitsch/doc-relevance/models"
	"github.com/dtnitsch/doc-relevance/pkg/pdftext"
)

// Collect lists the analyzable files directly under dir, sorted by name so
// runs over the same directory are reproducible.
func Collect(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".txt", ".html", ".htm":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads one document, dispatching on file extension.
func Load(ctx context.Context, path string) (*models.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return loadPDF(ctx, path)
	case ".txt":
		return loadText(path)
	case ".html", ".htm":
		return loadHTML(path)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}

func loadPDF(ctx context.Context, path string) (*models.Document, error) {
	pageTexts, err := pdftext.ExtractPages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filepath.Base(path), err)
	}

	doc := &models.Document{
		Name: filepath.Base(path),
		Path: path,
	}
	for i, text := range pageTexts {
		doc.Pages = append(doc.Pages, models.Page{
			Document: doc.Name,
			Number:   i + 1,
			Text:     text,
		})
	}
	return doc, nil
}

// loadText treats form feeds as page breaks; a file without them is one
// page.
func loadText(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	doc := &models.Document{
		Name: filepath.Base(path),
		Path: path,
	}
	for i, pageText := range strings.Split(string(data), "\f") {
		doc.Pages = append(doc.Pages, models.Page{
			Document: doc.Name,
			Number:   i + 1,
			Text:     pageText,
		})
	}
	return doc, nil
}
