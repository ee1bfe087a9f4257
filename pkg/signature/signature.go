// Package signature holds the persona/job structural signature library and
// the matcher that scores text against a signature.
//
// A signature describes what well-matched content LOOKS like for a persona
// performing a job: the line-level patterns it should contain, the
// information architecture it should exhibit, and the expected density of
// indicator vocabulary. Matching is purely structural; no topic keywords
// beyond what the patterns themselves encode.
package signature

import (
	"regexp"
	"strings"
)

// Architecture states the information-architecture requirement of a
// signature: how deeply nested matching content should be and which
// organizational traits it should show.
type Architecture struct {
	HierarchicalDepth      int
	CrossReferences        bool
	ConditionalLogic       bool
	SequentialDependencies bool
}

// PatternGroup is a named family of line patterns. Group scores are averaged
// so a signature with many groups is not inherently easier to match.
type PatternGroup struct {
	Name     string
	Patterns []*regexp.Regexp
}

// DensityIndicator pairs a named indicator vocabulary with its expected
// matches-per-word ratio.
type DensityIndicator struct {
	Name     string
	Expected float64
}

// Signature is the matching template for one (persona, job) pair.
type Signature struct {
	Persona string
	Job     string

	Groups       []PatternGroup
	Architecture Architecture
	Density      []DensityIndicator

	// Required patterns and weights drive persona/job fit scoring during
	// auto-detection and the contextual sub-score during passage scoring.
	Required         []*regexp.Regexp
	StructuralWeight float64
	UIWeight         float64
	DepthRequirement int
}

// Component weights of the final match score.
const (
	patternWeight      = 0.4
	architectureWeight = 0.3
	densityWeight      = 0.3
)

// indicatorPatterns maps density indicator names to their vocabulary.
var indicatorPatterns = map[string][]*regexp.Regexp{
	"ui_element_references": {
		regexp.MustCompile(`(?i)\b(?:button|menu|toolbar|panel|dialog|window|field|checkbox|dropdown)\b`),
		regexp.MustCompile(`(?i)\b(?:click|select|choose|press|drag|drop|hover)\b`),
		regexp.MustCompile(`(?i)\b(?:All tools|File menu|Edit menu|View menu)\b`),
	},
	"action_verb_density": {
		regexp.MustCompile(`(?i)\b(?:create|make|build|generate|produce)\b`),
		regexp.MustCompile(`(?i)\b(?:edit|modify|change|update|revise)\b`),
		regexp.MustCompile(`(?i)\b(?:save|export|share|send|distribute)\b`),
	},
	"location_density": {
		regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Street|Avenue|Hotel|Restaurant|Museum)\b`),
		regexp.MustCompile(`(?i)\b(?:address|location|place|venue|destination)\b`),
	},
	"time_density": {
		regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?:\s*[AP]M)?\b`),
		regexp.MustCompile(`(?i)\b(?:morning|afternoon|evening|night|day|hour|minute)\b`),
		regexp.MustCompile(`(?i)\b(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\b`),
	},
	"contact_density": {
		regexp.MustCompile(`(?i)\b(?:phone|email|website|contact|address)\b`),
		regexp.MustCompile(`(?i)(?:www\.|https?://|@[\w.-]+|\+?\d{1,3}[-.\s]\d{1,4})`),
	},
	"price_density": {
		regexp.MustCompile(`[€$£]\s*\d+(?:\.\d{2})?`),
		regexp.MustCompile(`(?i)\b\d+(?:\.\d{2})?\s*(?:euros?|dollars?|pounds?)\b`),
		regexp.MustCompile(`(?i)\b(?:cost|price|fee|budget|expense)\b`),
	},
	"technical_specificity": {
		regexp.MustCompile(`(?i)\b(?:configure|parameter|setting|option|property)\b`),
		regexp.MustCompile(`(?i)\b(?:database|server|client|API|URL|XML|JSON)\b`),
	},
	"process_complexity": {
		regexp.MustCompile(`(?i)\b(?:workflow|process|procedure|protocol|methodology)\b`),
		regexp.MustCompile(`(?i)\b(?:step|phase|stage|sequence|order)\b`),
	},
	"learning_progression": {
		regexp.MustCompile(`(?i)\b(?:beginner|intermediate|advanced|basic|complex)\b`),
		regexp.MustCompile(`(?i)\b(?:learn|practice|master|understand|explore)\b`),
	},
	"example_density": {
		regexp.MustCompile(`(?i)\b(?:example|sample|illustration|demonstration)\b`),
		regexp.MustCompile(`(?i)\b(?:for instance|such as|like|including)\b`),
	},
}

var crossRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:see|refer to|as mentioned in|described in)\s+(?:section|chapter|page)\b`),
	regexp.MustCompile(`(?i)\b(?:above|below|earlier|later|previous|next)\s+(?:section|step|example)\b`),
	regexp.MustCompile(`\b(?:Section|Chapter|Page)\s+\d+`),
	regexp.MustCompile(`\b(?:Figure|Table|Example)\s+\d+`),
}

var conditionalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:if|when|unless|should|in case)\b.*\b(?:then|otherwise|else)\b`),
	regexp.MustCompile(`(?i)\b(?:depending on|based on|according to)\b`),
	regexp.MustCompile(`(?i)\b(?:alternatively|instead)\b`),
}

var (
	numberedStepRe  = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	sequentialWords = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:first|second|third|next|then|finally|last)\b`),
		regexp.MustCompile(`(?i)\b(?:before|after|once|when|until)\b`),
		regexp.MustCompile(`(?i)\b(?:step|phase|stage)\s+\d+\b`),
	}
	dottedNumberRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)`)
)

func mustAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// library lists every known signature in declaration order. Lookups are by
// (persona, job); iteration order matters for deterministic tie-breaking.
var library = []*Signature{
	{
		Persona: "hr_professional",
		Job:     "create_manage_forms",
		Groups: []PatternGroup{
			{Name: "field_creation", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Select|Choose|Click).*(?:field|form|button)`,
				`(?im)^\s*\d+\.\s+(?:Add|Create|Insert).*(?:text|field|checkbox)`,
				`(?im)^\s*\d+\.\s+(?:Configure|Set up|Define).*(?:properties|options)`,
			)},
			{Name: "workflow", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Send|Share|Distribute).*(?:document|form)`,
				`(?im)^\s*\d+\.\s+(?:Review|Approve|Sign).*(?:process|workflow)`,
				`(?im)^\s*\d+\.\s+(?:Collect|Gather|Manage).*(?:responses|data)`,
			)},
			{Name: "compliance", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Enable|Set|Configure).*(?:security|permissions)`,
				`(?im)^\s*\d+\.\s+(?:Track|Monitor|Audit).*(?:access|changes)`,
				`(?im)^\s*\d+\.\s+(?:Archive|Store|Backup).*(?:records|documents)`,
			)},
		},
		Architecture: Architecture{HierarchicalDepth: 3, CrossReferences: true, ConditionalLogic: true, SequentialDependencies: true},
		Density: []DensityIndicator{
			{Name: "ui_element_references", Expected: 0.3},
			{Name: "action_verb_density", Expected: 0.4},
			{Name: "technical_specificity", Expected: 0.5},
			{Name: "process_complexity", Expected: 0.6},
		},
		Required: mustAll(
			`(?i)\b(?:form|field|fillable|interactive|signature)\b`,
			`(?i)\b(?:create|prepare|design|build).*(?:form|template)\b`,
			`(?i)\b(?:workflow|approval|review|distribute)\b`,
			`(?im)^\s*\d+\.\s+(?:Add|Create|Insert|Configure).*(?:field|form|button)\b`,
		),
		StructuralWeight: 1.5,
		UIWeight:         1.3,
		DepthRequirement: 3,
	},
	{
		Persona: "hr_professional",
		Job:     "document_collaboration",
		Groups: []PatternGroup{
			{Name: "sharing", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Send|Share|Distribute|Request)`,
				`(?i)\b(?:share|collaborate|review|comment).*(?:document|form)\b`,
			)},
			{Name: "approval", Patterns: mustAll(
				`(?i)\b(?:signature|sign|authorize|approve)\b`,
				`(?i)\b(?:track|monitor|manage).*(?:progress|status|responses)\b`,
			)},
		},
		Architecture: Architecture{HierarchicalDepth: 2, CrossReferences: true, ConditionalLogic: false, SequentialDependencies: true},
		Density: []DensityIndicator{
			{Name: "contact_density", Expected: 0.3},
			{Name: "action_verb_density", Expected: 0.4},
			{Name: "process_complexity", Expected: 0.5},
		},
		Required: mustAll(
			`(?i)\b(?:share|collaborate|review|comment|approve)\b`,
			`(?i)\b(?:signature|sign|authorize|track)\b`,
			`(?i)\b(?:team|group|multiple|recipients)\b`,
			`(?im)^\s*\d+\.\s+(?:Send|Share|Distribute|Request)\b`,
		),
		StructuralWeight: 1.4,
		UIWeight:         1.2,
		DepthRequirement: 2,
	},
	{
		Persona: "business_professional",
		Job:     "content_production",
		Groups: []PatternGroup{
			{Name: "creation", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Create|Convert|Generate|Export)`,
				`(?i)\b(?:create|convert|generate|produce).*(?:document|PDF|content)\b`,
			)},
			{Name: "editing", Patterns: mustAll(
				`(?i)\b(?:edit|modify|format|design)\b`,
				`(?i)\b(?:export|publish|save|output)\b`,
			)},
		},
		Architecture: Architecture{HierarchicalDepth: 2, CrossReferences: false, ConditionalLogic: false, SequentialDependencies: true},
		Density: []DensityIndicator{
			{Name: "action_verb_density", Expected: 0.5},
			{Name: "ui_element_references", Expected: 0.4},
			{Name: "technical_specificity", Expected: 0.3},
		},
		Required: mustAll(
			`(?i)\b(?:create|convert|generate|produce).*(?:document|PDF|content)\b`,
			`(?i)\b(?:edit|modify|format|design)\b`,
			`(?i)\b(?:export|publish|save|output)\b`,
			`(?im)^\s*\d+\.\s+(?:Create|Convert|Generate|Export)\b`,
		),
		StructuralWeight: 1.3,
		UIWeight:         1.1,
		DepthRequirement: 2,
	},
	{
		Persona: "business_professional",
		Job:     "document_collaboration",
		Groups: []PatternGroup{
			{Name: "sharing", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Share|Send|Collaborate|Review)`,
				`(?i)\b(?:share|collaborate|review|comment)\b`,
			)},
			{Name: "workflow", Patterns: mustAll(
				`(?i)\b(?:team|workflow|process|approval)\b`,
				`(?i)\b(?:distribute|collect|manage).*(?:feedback|responses)\b`,
			)},
		},
		Architecture: Architecture{HierarchicalDepth: 2, CrossReferences: true, ConditionalLogic: false, SequentialDependencies: true},
		Density: []DensityIndicator{
			{Name: "contact_density", Expected: 0.3},
			{Name: "process_complexity", Expected: 0.4},
			{Name: "action_verb_density", Expected: 0.4},
		},
		Required: mustAll(
			`(?i)\b(?:share|collaborate|review|comment)\b`,
			`(?i)\b(?:team|workflow|process|approval)\b`,
			`(?i)\b(?:distribute|collect|manage).*(?:feedback|responses)\b`,
			`(?im)^\s*\d+\.\s+(?:Share|Send|Collaborate|Review)\b`,
		),
		StructuralWeight: 1.2,
		UIWeight:         1.0,
		DepthRequirement: 2,
	},
	{
		Persona: "technical_implementer",
		Job:     "system_configuration",
		Groups: []PatternGroup{
			{Name: "configuration", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Configure|Setup|Enable|Install)`,
				`(?i)\b(?:settings|preferences|options|properties)\b`,
			)},
			{Name: "troubleshooting", Patterns: mustAll(
				`(?i)\b(?:troubleshoot|fix|resolve|debug)\b`,
				`(?im)^\s*\d+\.\s+(?:Check|Verify|Ensure).*(?:that|if)`,
			)},
		},
		Architecture: Architecture{HierarchicalDepth: 3, CrossReferences: true, ConditionalLogic: true, SequentialDependencies: true},
		Density: []DensityIndicator{
			{Name: "technical_specificity", Expected: 0.5},
			{Name: "ui_element_references", Expected: 0.4},
			{Name: "process_complexity", Expected: 0.5},
		},
		Required: mustAll(
			`(?i)\b(?:configure|setup|install|enable)\b`,
			`(?i)\b(?:settings|preferences|options|properties)\b`,
			`(?i)\b(?:troubleshoot|fix|resolve|debug)\b`,
			`(?im)^\s*\d+\.\s+(?:Configure|Setup|Enable|Install)\b`,
		),
		StructuralWeight: 1.4,
		UIWeight:         1.3,
		DepthRequirement: 3,
	},
	{
		Persona: "travel_planner",
		Job:     "plan_group_trip",
		Groups: []PatternGroup{
			{Name: "itinerary", Patterns: mustAll(
				`(?im)^\s*(?:Day\s+\d+|Morning|Afternoon|Evening)`,
				`(?im)^\s*\d+:\d+\s*(?:AM|PM)?`,
				`(?im)^\s*\d+\.\s+(?:Visit|Go to|Explore).*(?:at|in|near)`,
			)},
			{Name: "logistics", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Book|Reserve|Contact).*(?:hotel|restaurant)`,
				`(?im)^\s*\d+\.\s+(?:Check|Confirm|Verify).*(?:availability|booking)`,
				`(?im)^\s*\d+\.\s+(?:Meet|Gather|Depart).*(?:at|from)`,
			)},
			{Name: "resources", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Budget|Cost|Price).*(?:per person|total)`,
				`(?im)^\s*\d+\.\s+(?:Pack|Bring|Prepare).*(?:for|before)`,
				`(?im)^\s*\d+\.\s+(?:Download|Get|Obtain).*(?:map|guide|tickets)`,
			)},
		},
		Architecture: Architecture{HierarchicalDepth: 2, CrossReferences: false, ConditionalLogic: false, SequentialDependencies: true},
		Density: []DensityIndicator{
			{Name: "location_density", Expected: 0.6},
			{Name: "time_density", Expected: 0.5},
			{Name: "contact_density", Expected: 0.4},
			{Name: "price_density", Expected: 0.3},
		},
		Required: mustAll(
			`(?im)^\s*(?:Day\s+\d+|Morning|Afternoon|Evening)`,
			`(?i)\b(?:hotel|restaurant|museum|attraction|visit|tour)\b`,
			`[€$£]\s*\d+|(?i)\b\d+\s*(?:euros?|dollars?|pounds?)\b`,
			`(?i)\b(?:book|reserve|meet|depart|itinerary)\b`,
		),
		StructuralWeight: 1.2,
		UIWeight:         0.8,
		DepthRequirement: 2,
	},
	{
		Persona: "software_learner",
		Job:     "learn_software_features",
		Groups: []PatternGroup{
			{Name: "tutorial", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Open|Launch|Start).*(?:application|program)`,
				`(?im)^\s*\d+\.\s+(?:Navigate to|Go to|Find).*(?:menu|toolbar|panel)`,
				`(?im)^\s*\d+\.\s+(?:Follow|Complete|Practice).*(?:steps|exercise)`,
			)},
			{Name: "feature", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:Use|Try|Apply).*(?:tool|feature|function)`,
				`(?im)^\s*\d+\.\s+(?:Customize|Adjust|Modify).*(?:settings|preferences)`,
				`(?im)^\s*\d+\.\s+(?:Save|Export|Share).*(?:work|document|file)`,
			)},
			{Name: "troubleshooting", Patterns: mustAll(
				`(?im)^\s*\d+\.\s+(?:If|When|Should).*(?:error|problem|issue)`,
				`(?im)^\s*\d+\.\s+(?:Check|Verify|Ensure).*(?:that|if)`,
				`(?im)^\s*\d+\.\s+(?:Try|Attempt|Consider).*(?:alternative|different)`,
			)},
		},
		Architecture: Architecture{HierarchicalDepth: 2, CrossReferences: true, ConditionalLogic: false, SequentialDependencies: true},
		Density: []DensityIndicator{
			{Name: "ui_element_references", Expected: 0.7},
			{Name: "action_verb_density", Expected: 0.5},
			{Name: "learning_progression", Expected: 0.4},
			{Name: "example_density", Expected: 0.3},
		},
		Required: mustAll(
			`(?i)\b(?:learn|practice|tutorial|exercise)\b`,
			`(?i)\b(?:tool|feature|function|menu|toolbar)\b`,
			`(?im)^\s*\d+\.\s+(?:Open|Navigate|Use|Try|Practice)\b`,
			`(?i)\b(?:beginner|basic|getting started|introduction)\b`,
		),
		StructuralWeight: 1.3,
		UIWeight:         1.4,
		DepthRequirement: 2,
	},
}

var byKey = func() map[string]*Signature {
	m := make(map[string]*Signature, len(library))
	for _, s := range library {
		m[s.Persona+"/"+s.Job] = s
	}
	return m
}()

// Lookup returns the signature for a (persona, job) pair, or nil when the
// pair is unknown.
func Lookup(persona, job string) *Signature {
	return byKey[persona+"/"+job]
}

// All returns the signature library in declaration order.
func All() []*Signature {
	out := make([]*Signature, len(library))
	copy(out, library)
	return out
}

// Match scores content against the signature. The result is in [0,1]:
// pattern-group alignment weighted 0.4, information architecture 0.3,
// density indicators 0.3. Empty content scores 0.
func (s *Signature) Match(content string) float64 {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return s.PatternScore(content)*patternWeight +
		s.architectureScore(content)*architectureWeight +
		s.densityScore(content, words)*densityWeight
}

// PatternScore averages per-group pattern alignment over all groups. Each
// pattern contributes min(matches/10, 1) so one hot pattern cannot saturate
// a group.
func (s *Signature) PatternScore(content string) float64 {
	if len(s.Groups) == 0 {
		return 0
	}
	var total float64
	for _, g := range s.Groups {
		var groupScore float64
		for _, p := range g.Patterns {
			n := len(p.FindAllStringIndex(content, -1))
			if n > 0 {
				groupScore += min(float64(n)/10, 1)
			}
		}
		total += groupScore / float64(len(g.Patterns))
	}
	return total / float64(len(s.Groups))
}

// RequiredScore averages min(matches/10, 1) over the signature's required
// patterns. Used for the contextual sub-score and persona/job fit.
func (s *Signature) RequiredScore(content string) float64 {
	if len(s.Required) == 0 {
		return 0
	}
	var total float64
	for _, p := range s.Required {
		n := len(p.FindAllStringIndex(content, -1))
		if n > 0 {
			total += min(float64(n)/10, 1)
		}
	}
	return total / float64(len(s.Required))
}

func (s *Signature) architectureScore(content string) float64 {
	score := 0.0

	depth := HierarchicalDepth(content)
	required := s.Architecture.HierarchicalDepth
	if required <= 0 {
		required = 2
	}
	score += min(float64(depth)/float64(required), 1) * 0.3

	if matchAny(crossRefPatterns, content) == s.Architecture.CrossReferences {
		score += 0.2
	}
	if matchAny(conditionalPatterns, content) == s.Architecture.ConditionalLogic {
		score += 0.2
	}
	if hasSequentialDependencies(content) == s.Architecture.SequentialDependencies {
		score += 0.3
	}
	return score
}

func (s *Signature) densityScore(content string, words int) float64 {
	if len(s.Density) == 0 || words == 0 {
		return 0
	}
	var score float64
	for _, ind := range s.Density {
		observed := indicatorDensity(content, ind.Name, words)
		diff := ind.Expected - observed
		if diff < 0 {
			diff = -diff
		}
		score += max(0, 1-diff*2)
	}
	return score / float64(len(s.Density))
}

func indicatorDensity(content, name string, words int) float64 {
	patterns, ok := indicatorPatterns[name]
	if !ok || words == 0 {
		return 0
	}
	total := 0
	for _, p := range patterns {
		total += len(p.FindAllStringIndex(content, -1))
	}
	return float64(total) / float64(words)
}

// HierarchicalDepth estimates nesting depth from indentation (4 spaces per
// level) and dotted numbering (1.1.1 counts two levels).
func HierarchicalDepth(content string) int {
	maxDepth := 0
	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimLeft(line, " \t")
		if stripped == "" {
			continue
		}
		if d := (len(line) - len(stripped)) / 4; d > maxDepth {
			maxDepth = d
		}
		if m := dottedNumberRe.FindString(stripped); m != "" {
			if d := strings.Count(m, "."); d > maxDepth {
				maxDepth = d
			}
		}
	}
	return maxDepth
}

func hasSequentialDependencies(content string) bool {
	if len(numberedStepRe.FindAllStringIndex(content, -1)) >= 3 {
		return true
	}
	total := 0
	for _, p := range sequentialWords {
		total += len(p.FindAllStringIndex(content, -1))
	}
	return total >= 5
}

func matchAny(patterns []*regexp.Regexp, content string) bool {
	for _, p := range patterns {
		if p.MatchString(content) {
			return true
		}
	}
	return false
}
