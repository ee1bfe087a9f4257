package detect

import (
	"strings"

	"github.com/dtnitsch/doc-relevance/pkg/signature"
)

// Universal persona and job categories for free-text normalization.
// Arbitrary persona/job descriptions supplied by the caller map onto these
// by keyword scoring.
const (
	PersonaResearcher  = "researcher"
	PersonaPlanner     = "planner"
	PersonaAnalyst     = "analyst"
	PersonaLearner     = "learner"
	PersonaImplementer = "implementer"
	PersonaExplorer    = "explorer"

	JobComprehensiveReview  = "comprehensive_review"
	JobSpecificSelection    = "specific_selection"
	JobStepByStepGuidance   = "step_by_step_guidance"
	JobComparativeAnalysis  = "comparative_analysis"
	JobDiscoveryExploration = "discovery_exploration"
)

type keywordCategory struct {
	name     string
	keywords []string
}

var personaCategories = []keywordCategory{
	{PersonaResearcher, []string{"research", "study", "analysis", "methodology", "results", "data", "phd", "scientist"}},
	{PersonaPlanner, []string{"plan", "schedule", "organize", "coordinate", "arrange", "prepare", "travel", "trip"}},
	{PersonaAnalyst, []string{"analyze", "evaluate", "assess", "compare", "metrics", "performance", "investment", "financial"}},
	{PersonaLearner, []string{"learn", "student", "understand", "master", "practice", "exam", "course"}},
	{PersonaImplementer, []string{"implement", "execute", "deploy", "configure", "setup", "install", "engineer", "developer"}},
	{PersonaExplorer, []string{"explore", "discover", "visit", "experience", "find", "tour"}},
}

var jobCategories = []keywordCategory{
	{JobComprehensiveReview, []string{"comprehensive", "review", "literature", "complete", "thorough", "all"}},
	{JobSpecificSelection, []string{"find", "select", "choose", "best", "recommend", "specific"}},
	{JobStepByStepGuidance, []string{"plan", "guide", "steps", "how to", "process", "procedure", "create", "manage"}},
	{JobComparativeAnalysis, []string{"compare", "analyze", "evaluate", "trends", "performance", "versus"}},
	{JobDiscoveryExploration, []string{"discover", "explore", "identify", "what", "options", "possibilities"}},
}

// signatureAliases routes normalized categories to the closest library
// signature, so caller-supplied personas still get contextual scoring.
var signatureAliases = map[string][2]string{
	PersonaPlanner:     {"travel_planner", "plan_group_trip"},
	PersonaLearner:     {"software_learner", "learn_software_features"},
	PersonaImplementer: {"technical_implementer", "system_configuration"},
	PersonaAnalyst:     {"business_professional", "content_production"},
	PersonaResearcher:  {"business_professional", "document_collaboration"},
	PersonaExplorer:    {"travel_planner", "plan_group_trip"},
}

func scoreCategories(text string, categories []keywordCategory, fallback string) string {
	lower := strings.ToLower(text)
	best := fallback
	bestScore := 0
	for _, c := range categories {
		score := 0
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = c.name
		}
	}
	return best
}

// NormalizePersona maps an arbitrary persona description onto a universal
// persona category. Exact signature persona names pass through unchanged.
// No keyword hits fall back to "explorer".
func NormalizePersona(description string) string {
	key := strings.ToLower(strings.TrimSpace(description))
	for _, s := range signature.All() {
		if key == s.Persona {
			return s.Persona
		}
	}
	return scoreCategories(description, personaCategories, PersonaExplorer)
}

// NormalizeJob maps an arbitrary job description onto a universal job
// category. Exact signature job names pass through unchanged. No keyword
// hits fall back to "discovery_exploration".
func NormalizeJob(description string) string {
	key := strings.ToLower(strings.TrimSpace(description))
	for _, s := range signature.All() {
		if key == s.Job {
			return s.Job
		}
	}
	return scoreCategories(description, jobCategories, JobDiscoveryExploration)
}

// ResolveSignature finds the library signature for a persona/job pair. An
// exact pair match wins; otherwise the persona's alias pair applies. An
// unknown persona has no signature.
func ResolveSignature(persona, job string) *signature.Signature {
	if sig := signature.Lookup(persona, job); sig != nil {
		return sig
	}
	if alias, ok := signatureAliases[persona]; ok {
		return signature.Lookup(alias[0], alias[1])
	}
	return nil
}
