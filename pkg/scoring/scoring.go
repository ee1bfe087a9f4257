// Package scoring computes passage sub-scores and the combined relevance
// score. All scores are in [0,1] and reproducible from the passage's feature
// counts plus the active signature.
package scoring

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/doc-relevance/models"
	"github.com/dtnitsch/doc-relevance/pkg/features"
	"github.com/dtnitsch/doc-relevance/pkg/signature"
)

// Combined relevance weights. One canonical table; the sub-scores stay in
// the output record so a reader can recompute the combination.
const (
	WeightDensity      = 0.30
	WeightStructural   = 0.25
	WeightOrganization = 0.20
	WeightContextual   = 0.25
)

// structuralWeights biases the structural score toward high-value markers.
// Contact, price and location lines carry more information per match than a
// plain bullet.
var structuralWeights = map[string]float64{
	features.BulletPoints:   1.0,
	features.NumberedLists:  1.2,
	features.KeyValuePairs:  1.1,
	features.Locations:      1.3,
	features.ContactInfo:    1.4,
	features.Prices:         1.3,
	features.TimeReferences: 1.2,
	features.Measurements:   1.1,
}

var (
	densityAmountRe = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:(?:km|miles|hours?)\b|[€$£%])`)
	densityClockRe  = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?:\s*[ap]m)?\b`)
	densityLinkRe   = regexp.MustCompile(`(?i)(?:www\.|https?://|@[\w.-]+)`)
	densityVenueRe  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Street|Hotel|Restaurant|Museum)\b`)
)

// Structural scores the weighted structural feature density of a passage.
// Weighted feature count divided by word count, scaled by 10, capped at 1.
// Zero words scores exactly 0.
func Structural(counts map[string]int, wordCount int) float64 {
	if wordCount <= 0 {
		return 0
	}
	weighted := 0.0
	for name, n := range counts {
		if n <= 0 {
			continue
		}
		w, ok := structuralWeights[name]
		if !ok {
			continue
		}
		weighted += float64(n) * w
	}
	return min(weighted/float64(wordCount)*10, 1)
}

// Density scores the concentration of high-value data patterns: amounts
// with units or currency, clock times, links and contacts, named venues.
func Density(content string) float64 {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	score := float64(len(densityAmountRe.FindAllStringIndex(content, -1))) * 3.0
	score += float64(len(densityClockRe.FindAllStringIndex(content, -1))) * 2.5
	score += float64(len(densityLinkRe.FindAllStringIndex(content, -1))) * 2.0
	score += float64(len(densityVenueRe.FindAllStringIndex(content, -1))) * 1.5
	return min(score/float64(words)*5, 1)
}

// Organization rewards recognizable organizational patterns with fixed
// increments. Sequential numbering, categorized bullets under a header,
// key:value structure, and consistent list formatting each count once.
func Organization(counts map[string]int) float64 {
	score := 0.0
	if counts[features.NumberedLists] > 2 {
		score += 0.3
	}
	if counts[features.BulletPoints] > 3 && counts[features.Headers] > 0 {
		score += 0.3
	}
	if counts[features.KeyValuePairs] > 2 {
		score += 0.2
	}
	if features.TotalListItems(counts) > 5 {
		score += 0.2
	}
	return min(score, 1)
}

// Contextual scores persona/job fit of a single passage: the signature's
// required-pattern alignment plus fixed increments for procedural markers.
// A nil signature (unknown persona/job) contributes no pattern component.
func Contextual(content string, counts map[string]int, sig *signature.Signature) float64 {
	if len(strings.Fields(content)) == 0 {
		return 0
	}
	score := 0.0
	if sig != nil {
		score += sig.RequiredScore(content) * 0.4
	}
	if counts[features.NumberedLists] >= 3 {
		score += 0.3
	}
	if counts[features.BulletPoints] >= 3 {
		score += 0.2
	}
	if counts[features.UIActions] >= 3 {
		score += 0.3
	}
	if counts[features.SequenceWords] >= 2 {
		score += 0.2
	}
	return min(score, 1)
}

// Combine folds the sub-scores into the overall relevance score.
func Combine(s models.PassageScores) float64 {
	return s.Density*WeightDensity +
		s.Structural*WeightStructural +
		s.Organization*WeightOrganization +
		s.Contextual*WeightContextual
}

// Score fills in the passage's feature counts and all sub-scores. The
// signature may be nil when the persona/job pair has no library entry.
func Score(p *models.Passage, sig *signature.Signature) {
	if p.Features == nil {
		p.Features = features.Count(p.Content)
	}
	p.Scores.Structural = Structural(p.Features, p.WordCount)
	p.Scores.Density = Density(p.Content)
	p.Scores.Organization = Organization(p.Features)
	p.Scores.Contextual = Contextual(p.Content, p.Features, sig)
	p.Scores.Relevance = Combine(p.Scores)
}
