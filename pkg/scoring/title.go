package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/doc-relevance/pkg/features"
)

var (
	properNounRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	digitsRe     = regexp.MustCompile(`\b\d+\b`)
	listMarkerRe = regexp.MustCompile(`^\s*(?:[•\-*+]|\d+[.)])\s+`)
	numPrefixRe  = regexp.MustCompile(`^\d+[.)]\s*`)
	bulletPrefRe = regexp.MustCompile(`^[•\-*+]\s*`)
)

// Title picks the most informative of the passage's first lines to serve as
// its section title. Lines with proper nouns and concrete numbers win; bare
// list items lose. Falls back to "Content Section".
func Title(lines []string) string {
	type candidate struct {
		score int
		line  string
	}
	var candidates []candidate

	limit := min(len(lines), 5)
	for _, raw := range lines[:limit] {
		line := strings.TrimSpace(raw)
		if len(line) < 8 || len(line) > 100 {
			continue
		}

		score := len(properNounRe.FindAllString(line, -1)) * 2
		if digitsRe.MatchString(line) {
			score++
		}
		if listMarkerRe.MatchString(line) {
			score -= 3
		}
		if wc := len(strings.Fields(line)); wc >= 3 && wc <= 12 {
			score += 2
		}
		if line == strings.ToUpper(line) || (line[0] >= 'A' && line[0] <= 'Z' && strings.Contains(line, ":")) {
			score++
		}
		candidates = append(candidates, candidate{score, line})
	}

	if len(candidates) == 0 {
		return "Content Section"
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}

	title := numPrefixRe.ReplaceAllString(best.line, "")
	title = bulletPrefRe.ReplaceAllString(title, "")
	if len(title) > 80 {
		cut := 77
		for cut > 0 && !utf8.RuneStart(title[cut]) {
			cut--
		}
		title = title[:cut] + "..."
	}
	return title
}

// ClassifyContent assigns a coarse content type from feature counts.
func ClassifyContent(counts map[string]int) string {
	switch {
	case counts[features.NumberedLists] >= 3:
		return "procedural"
	case counts[features.Prices] >= 2 || counts[features.Locations] >= 2:
		return "informational"
	case counts[features.BulletPoints] >= 3 || counts[features.KeyValuePairs] >= 3:
		return "reference"
	default:
		return "general"
	}
}
