package segment

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dtnitsch/doc-relevance/models"
)

func pageWithLines(n int) models.Page {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "line %d with several words\n", i)
	}
	return models.Page{Document: "doc.pdf", Number: 1, Text: sb.String()}
}

func TestPageWindowCounts(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		want  int
	}{
		{"empty page", 0, 0},
		{"below minimum", 4, 0},
		{"too short for one window", 8, 0},
		{"exactly one window", 12, 1},
		{"two overlapping windows", 20, 2},
		{"three windows", 24, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Page(pageWithLines(tt.lines), DefaultWindowSize, DefaultWindowStep, DefaultMinLines)
			if len(got) != tt.want {
				t.Errorf("Page(%d lines) produced %d windows, want %d", tt.lines, len(got), tt.want)
			}
		})
	}
}

func TestPageWindowOverlap(t *testing.T) {
	passages := Page(pageWithLines(24), DefaultWindowSize, DefaultWindowStep, DefaultMinLines)
	if len(passages) < 2 {
		t.Fatalf("expected at least 2 windows, got %d", len(passages))
	}
	for i := 1; i < len(passages); i++ {
		prev, cur := passages[i-1], passages[i]
		if cur.StartLine-prev.StartLine != DefaultWindowStep {
			t.Errorf("window %d starts at %d, previous at %d, want step %d",
				i, cur.StartLine, prev.StartLine, DefaultWindowStep)
		}
		if cur.StartLine >= prev.EndLine() {
			t.Errorf("windows %d and %d do not overlap", i-1, i)
		}
	}
}

func TestPageSmallWindowStepStaysBelowSize(t *testing.T) {
	// A window size below the default step must still produce overlapping
	// windows when the step falls back, not a degenerate step >= size.
	passages := Page(pageWithLines(8), 4, 0, 1)
	if len(passages) != 2 {
		t.Fatalf("Page(8 lines, size 4) produced %d windows, want 2", len(passages))
	}
	if passages[1].StartLine >= passages[0].EndLine() {
		t.Errorf("windows do not overlap: second starts at %d, first ends at %d",
			passages[1].StartLine, passages[0].EndLine())
	}

	// Size 1 cannot overlap; it degenerates to step 1 and must terminate.
	single := Page(pageWithLines(3), 1, 0, 1)
	if len(single) != 3 {
		t.Errorf("Page(3 lines, size 1) produced %d windows, want 3", len(single))
	}
}

func TestPageSkipsBlankLines(t *testing.T) {
	text := "first\n\n\n  second  \n\nthird\n"
	lines := NonBlankLines(text)
	want := []string{"first", "second", "third"}
	if len(lines) != len(want) {
		t.Fatalf("NonBlankLines returned %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPageWordCount(t *testing.T) {
	passages := Page(pageWithLines(12), 12, 6, 5)
	if len(passages) != 1 {
		t.Fatalf("expected 1 window, got %d", len(passages))
	}
	p := passages[0]
	if p.WordCount != 12*5 {
		t.Errorf("WordCount = %d, want %d", p.WordCount, 12*5)
	}
	if p.WordCount < 0 {
		t.Error("negative word count")
	}
}
