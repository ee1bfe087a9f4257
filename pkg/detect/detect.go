// Package detect infers document type and the best persona/job pair from
// aggregate corpus text, and normalizes free-text persona and job
// descriptions onto the known categories.
package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dtnitsch/doc-relevance/models"
	"github.com/dtnitsch/doc-relevance/pkg/signature"
)

// GeneralType is returned when no document-type signature clears the
// detection threshold.
const GeneralType = "general"

// detectThreshold is the minimum matches-per-1000-words score a type
// signature must reach.
const detectThreshold = 1.0

// Default persona/job pair when the detected type has no usable signature.
const (
	DefaultPersona = "business_professional"
	DefaultJob     = "content_production"
)

// Persona/job fit component weights.
const (
	fitPatternWeight    = 0.40
	fitStructuralWeight = 0.25
	fitProceduralWeight = 0.20
	fitUIWeight         = 0.15
)

// TypeSignature describes one detectable document type. Indicators are
// counted over the whole corpus and normalized per 1000 words.
type TypeSignature struct {
	Name       string
	Indicators []*regexp.Regexp
	Personas   []string
	Jobs       []string
}

func mustAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// typeSignatures is an ordered slice so ties break by declaration order.
var typeSignatures = []TypeSignature{
	{
		Name: "adobe_acrobat_tutorials",
		Indicators: mustAll(
			`\b(?:Acrobat|PDF|Adobe)\b`,
			`(?i)\b(?:Select|Click|Choose|Press|Drag|Type)\b.*\b(?:tool|menu|button|field)\b`,
			`(?i)\b(?:Create|Edit|Export|Share|Fill|Sign|Convert)\b.*\b(?:PDF|document|form)\b`,
			`(?im)^\s*\d+\.\s+(?:Select|Click|Choose|Open|Navigate)\b`,
		),
		Personas: []string{"hr_professional", "business_professional", "technical_implementer"},
		Jobs:     []string{"create_manage_forms", "document_collaboration", "content_production", "system_configuration"},
	},
	{
		Name: "travel_guides",
		Indicators: mustAll(
			`(?i)\b(?:hotel|restaurant|museum|attraction|visit|tour)\b`,
			`[€$£]\d+(?:\.\d{2})?`,
			`(?i)\b(?:address|phone|hours|open|closed)\b`,
			`(?i)\b(?:Day\s+\d+|Morning|Afternoon|Evening)\b`,
		),
		Personas: []string{"travel_planner"},
		Jobs:     []string{"plan_group_trip"},
	},
	{
		Name: "business_reports",
		Indicators: mustAll(
			`(?i)\b(?:revenue|profit|loss|financial|quarterly)\b`,
			`\b\d+(?:\.\d+)?%`,
			`(?i)\b(?:million|billion)\s*\d+|[€$£]\s*\d+`,
			`\b(?:Q1|Q2|Q3|Q4|FY\d{4})\b`,
		),
		Personas: []string{"business_professional"},
		Jobs:     []string{"content_production", "document_collaboration"},
	},
}

// Type returns the document type whose indicators score highest over the
// corpus text, normalized per 1000 words. Nothing above the threshold, or
// an empty corpus, detects as "general". Ties break by declaration order.
func Type(content string) string {
	words := len(strings.Fields(content))
	if words == 0 {
		return GeneralType
	}

	bestName := GeneralType
	bestScore := 0.0
	for _, ts := range typeSignatures {
		matches := 0
		for _, p := range ts.Indicators {
			matches += len(p.FindAllStringIndex(content, -1))
		}
		score := float64(matches) / float64(words) * 1000
		if score > bestScore {
			bestScore = score
			bestName = ts.Name
		}
	}

	if bestScore < detectThreshold {
		return GeneralType
	}
	return bestName
}

// PersonaJob selects the best persona/job pair for a detected document
// type by scoring each of the type's declared candidate pairs against the
// corpus. An unknown type, or no pair scoring above zero, falls back to
// the type's first declared pair, or to the global default. Confidence is
// the selected pair's full signature match over the corpus.
func PersonaJob(docType, content string) models.PersonaJobResult {
	var ts *TypeSignature
	for i := range typeSignatures {
		if typeSignatures[i].Name == docType {
			ts = &typeSignatures[i]
			break
		}
	}
	if ts == nil {
		return models.PersonaJobResult{
			Persona:     DefaultPersona,
			Job:         DefaultJob,
			Description: "default pair for unrecognized content",
		}
	}

	persona, job := ts.Personas[0], ts.Jobs[0]
	bestScore := 0.0
	for _, p := range ts.Personas {
		for _, j := range ts.Jobs {
			sig := signature.Lookup(p, j)
			if sig == nil {
				continue
			}
			if score := FitScore(content, sig); score > bestScore {
				bestScore = score
				persona, job = p, j
			}
		}
	}

	result := models.PersonaJobResult{
		Persona:     persona,
		Job:         job,
		Description: fmt.Sprintf("best fit for %s content", docType),
	}
	if sig := signature.Lookup(persona, job); sig != nil {
		result.Confidence = sig.Match(content)
	}
	return result
}

var (
	fitNumberedRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	fitBulletRe   = regexp.MustCompile(`(?m)^\s*[•\-*]\s+`)
	fitSubListRe  = regexp.MustCompile(`(?m)^\s*[a-z]\)\s+`)
	fitHeaderRe   = regexp.MustCompile(`(?m)^[A-Z][A-Z\s]{5,}$`)

	fitSequentialRe  = regexp.MustCompile(`(?i)\b(?:first|second|third|next|then|finally|after|before)\b`)
	fitConditionalRe = regexp.MustCompile(`(?i)\b(?:if|when|unless|should|depending|based on)\b`)
	fitIndentedRe    = regexp.MustCompile(`(?m)^\s{4,}\S`)

	fitUIActionRe  = regexp.MustCompile(`(?i)\b(?:click|select|choose|press|drag|drop|type|enter|hover|scroll)\b`)
	fitUIElementRe = regexp.MustCompile(`(?i)\b(?:button|menu|toolbar|panel|dialog|window|field|checkbox|dropdown|tab)\b`)
	fitUINamedRe   = regexp.MustCompile(`(?i)\b(?:All tools|File menu|Edit menu|View menu|Properties panel)\b`)
)

// FitScore rates how well corpus content fits a persona/job signature.
// Required-pattern density dominates; structural quality, procedural depth
// and UI interaction level refine it. The score is comparative, not
// bounded to [0,1].
func FitScore(content string, sig *signature.Signature) float64 {
	if sig == nil {
		return 0
	}
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}

	patternMatches := 0
	for _, p := range sig.Required {
		patternMatches += len(p.FindAllStringIndex(content, -1))
	}
	patternScore := float64(patternMatches) / float64(words) * 1000

	return patternScore*fitPatternWeight +
		structuralQuality(content, words)*fitStructuralWeight +
		proceduralDepth(content, words)*fitProceduralWeight +
		uiInteractionLevel(content, words)*fitUIWeight
}

func structuralQuality(content string, words int) float64 {
	score := float64(len(fitNumberedRe.FindAllStringIndex(content, -1)))*1.2 +
		float64(len(fitBulletRe.FindAllStringIndex(content, -1)))*1.0 +
		float64(len(fitSubListRe.FindAllStringIndex(content, -1)))*1.1 +
		float64(len(fitHeaderRe.FindAllStringIndex(content, -1)))*0.8
	return min(score/float64(words)*100, 1)
}

func proceduralDepth(content string, words int) float64 {
	score := float64(len(fitSequentialRe.FindAllStringIndex(content, -1)))*0.5 +
		float64(len(fitConditionalRe.FindAllStringIndex(content, -1)))*0.7 +
		float64(len(fitIndentedRe.FindAllStringIndex(content, -1)))*0.3
	return min(score/float64(words)*100, 1)
}

func uiInteractionLevel(content string, words int) float64 {
	score := float64(len(fitUIActionRe.FindAllStringIndex(content, -1)))*1.0 +
		float64(len(fitUIElementRe.FindAllStringIndex(content, -1)))*0.8 +
		float64(len(fitUINamedRe.FindAllStringIndex(content, -1)))*1.2
	return min(score/float64(words)*100, 1)
}
