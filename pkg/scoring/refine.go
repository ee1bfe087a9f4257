package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/doc-relevance/models"
	"github.com/dtnitsch/doc-relevance/pkg/features"
)

const (
	refineWindowLines = 8
	refineMaxChars    = 500
)

// RefineText returns the most information-dense portion of a passage for
// the subsection report. Content already under the character cap passes
// through unchanged; longer content is reduced to the densest 8-line
// sub-window, then truncated if still over the cap.
func RefineText(p *models.Passage) string {
	if len(p.Content) <= refineMaxChars {
		return p.Content
	}

	lines := p.Lines
	if len(lines) <= refineWindowLines {
		return truncate(p.Content)
	}

	bestStart, bestScore := 0, -1.0
	for i := 0; i+refineWindowLines <= len(lines); i++ {
		window := strings.Join(lines[i:i+refineWindowLines], "\n")
		counts := features.Count(window)
		total := 0
		for _, n := range counts {
			total += n
		}
		score := float64(total) + Density(window)*10
		if score > bestScore {
			bestScore = score
			bestStart = i
		}
	}

	return truncate(strings.Join(lines[bestStart:bestStart+refineWindowLines], "\n"))
}

func truncate(s string) string {
	if len(s) <= refineMaxChars {
		return s
	}
	cut := refineMaxChars - 3
	for cut > 0 && !isBoundary(s[cut]) {
		cut--
	}
	if cut == 0 {
		// No whitespace to cut at; back up to a rune boundary instead so
		// a multibyte rune is never split.
		cut = refineMaxChars - 3
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
	}
	return strings.TrimSpace(s[:cut]) + "..."
}

func isBoundary(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t'
}
