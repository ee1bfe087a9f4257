package ingest

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/doc-relevance/models"
	readability "github.com/go-shiori/go-readability"
)

// loadHTML distills the main article content with go-readability, then
// walks the clean markup with goquery and renders it back to plain lines.
// List items keep a bullet prefix so the structural patterns still see
// them as list structure. The whole file is one page.
func loadHTML(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	fileURL := &url.URL{Scheme: "file", Path: path}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(string(data)), fileURL)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("parsing %s content: %w", filepath.Base(path), err)
	}

	var lines []string
	if title := normalizeText(article.Title); title != "" {
		lines = append(lines, title)
	}

	doc.Find("h1,h2,h3,h4,p,li,td,pre").Each(func(_ int, s *goquery.Selection) {
		text := normalizeText(s.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "li" {
			text = "- " + text
		}
		lines = append(lines, text)
	})

	return &models.Document{
		Name: filepath.Base(path),
		Path: path,
		Pages: []models.Page{{
			Document: filepath.Base(path),
			Number:   1,
			Text:     strings.Join(lines, "\n"),
		}},
	}, nil
}

// normalizeText joins a selection's text into one line with single spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
