// Package rank reduces scored passages to the final ranked selection:
// merging overlapping windows, dropping redundant and low-quality passages,
// and enforcing diversity caps across documents.
package rank

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dtnitsch/doc-relevance/models"
)

// MergeOverlapping collapses overlapping sliding windows from the same
// document page. Windows whose line ranges overlap more than overlapRatio
// of the shorter window keep only the higher-quality one. Passages from
// different documents or pages never merge.
func MergeOverlapping(passages []models.Passage, overlapRatio float64) []models.Passage {
	if len(passages) == 0 {
		return nil
	}

	byPage := make(map[string][]models.Passage)
	var keys []string
	for _, p := range passages {
		key := p.Document + "\x00" + strconv.Itoa(p.PageNumber)
		if _, ok := byPage[key]; !ok {
			keys = append(keys, key)
		}
		byPage[key] = append(byPage[key], p)
	}
	sort.Strings(keys)

	var merged []models.Passage
	for _, key := range keys {
		merged = append(merged, mergePage(byPage[key], overlapRatio)...)
	}
	return merged
}

func mergePage(passages []models.Passage, overlapRatio float64) []models.Passage {
	sort.Slice(passages, func(i, j int) bool {
		return passages[i].StartLine < passages[j].StartLine
	})

	var out []models.Passage
	current := passages[0]
	for _, next := range passages[1:] {
		overlap := current.EndLine() - next.StartLine
		shorter := min(len(current.Lines), len(next.Lines))
		if overlap > 0 && float64(overlap) > float64(shorter)*overlapRatio {
			if next.Quality() > current.Quality() {
				current = next
			}
			continue
		}
		out = append(out, current)
		current = next
	}
	return append(out, current)
}

// FilterQuality drops passages whose structural+density quality falls below
// minQuality, then keeps at most maxPerDoc of the best per document.
func FilterQuality(passages []models.Passage, minQuality float64, maxPerDoc int) []models.Passage {
	perDoc := make(map[string]int)
	var out []models.Passage

	sorted := make([]models.Passage, len(passages))
	copy(sorted, passages)
	SortByRelevance(sorted)

	for _, p := range sorted {
		if p.Scores.Structural+p.Scores.Density < minQuality {
			continue
		}
		if maxPerDoc > 0 && perDoc[p.Document] >= maxPerDoc {
			continue
		}
		perDoc[p.Document]++
		out = append(out, p)
	}
	return out
}

// FilterRedundant removes passages whose word sets are near-duplicates of
// an already accepted passage. Similarity is Jaccard over lowercased word
// sets; passages above the threshold are dropped. Input order decides which
// of two near-duplicates survives, so callers sort by score first.
func FilterRedundant(passages []models.Passage, threshold float64) []models.Passage {
	var out []models.Passage
	var kept []map[string]struct{}

	for _, p := range passages {
		words := wordSet(p.Content)
		redundant := false
		for _, k := range kept {
			if jaccard(words, k) > threshold {
				redundant = true
				break
			}
		}
		if redundant {
			continue
		}
		out = append(out, p)
		kept = append(kept, words)
	}
	return out
}

// SelectDiverse walks score-sorted passages once, accepting until the total
// cap is hit while allowing at most perDocCap passages per document.
// Rejecting a passage never consumes budget. No second pass: a document
// whose quota is full stays full.
func SelectDiverse(passages []models.Passage, totalCap, perDocCap int) []models.Passage {
	if totalCap <= 0 {
		return nil
	}

	perDoc := make(map[string]int)
	var out []models.Passage
	for _, p := range passages {
		if len(out) >= totalCap {
			break
		}
		if perDocCap > 0 && perDoc[p.Document] >= perDocCap {
			continue
		}
		perDoc[p.Document]++
		out = append(out, p)
	}
	return out
}

// SortByRelevance orders passages by combined score descending with a
// deterministic tie-break on document, page and start line.
func SortByRelevance(passages []models.Passage) {
	sort.SliceStable(passages, func(i, j int) bool {
		a, b := passages[i], passages[j]
		if a.Scores.Relevance != b.Scores.Relevance {
			return a.Scores.Relevance > b.Scores.Relevance
		}
		if a.Document != b.Document {
			return a.Document < b.Document
		}
		if a.PageNumber != b.PageNumber {
			return a.PageNumber < b.PageNumber
		}
		return a.StartLine < b.StartLine
	})
}

func wordSet(content string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(content)) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
