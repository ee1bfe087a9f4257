// Package features extracts structural feature counts from text spans.
//
// Every feature is a regex match count over the span; the extractor is pure
// and stateless, so the same input always yields the same counts. Counts are
// never negative and a span with no matches reports 0 for that feature.
package features

import "regexp"

// Feature names. The set is fixed; downstream weight tables and signatures
// refer to features by these names.
const (
	BulletPoints  = "bullet_points"
	NumberedLists = "numbered_lists"
	LetteredLists = "lettered_lists"
	SubLists      = "sub_lists"

	KeyValuePairs  = "key_value_pairs"
	Measurements   = "measurements"
	TimeReferences = "time_references"
	Locations      = "locations"
	ContactInfo    = "contact_info"
	Prices         = "prices"

	Headers       = "headers"
	SectionBreaks = "section_breaks"
	Emphasis      = "emphasis"
	Parenthetical = "parenthetical"

	UIActions        = "ui_actions"
	UIElements       = "ui_elements"
	SequenceWords    = "sequence_words"
	ConditionalWords = "conditional_words"
	CrossReferences  = "cross_references"
)

// names lists every feature in declaration order.
var names = []string{
	BulletPoints, NumberedLists, LetteredLists, SubLists,
	KeyValuePairs, Measurements, TimeReferences, Locations, ContactInfo, Prices,
	Headers, SectionBreaks, Emphasis, Parenthetical,
	UIActions, UIElements, SequenceWords, ConditionalWords, CrossReferences,
}

// List/header detection anchors on line starts because extracted PDF text
// loses most layout information except line breaks.
var patterns = map[string]*regexp.Regexp{
	BulletPoints:  regexp.MustCompile(`(?m)^\s*[•\-*+]\s+`),
	NumberedLists: regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`),
	LetteredLists: regexp.MustCompile(`(?m)^\s*[a-z]\)\s+`),
	SubLists:      regexp.MustCompile(`(?m)^\s*\d+\.\d+[.)]\s+`),

	KeyValuePairs:  regexp.MustCompile(`(?m)^[^:\n]{3,50}:\s*[^:\n]{10,}`),
	Measurements:   regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:(?:km|miles|hours?|days?|minutes?|euros?|meters?|feet)\b|€|£|\$|%)`),
	TimeReferences: regexp.MustCompile(`(?i)\b(?:\d{1,2}:\d{2}|\d{1,2}[ap]m|morning|afternoon|evening|night|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
	Locations:      regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Street|St|Avenue|Ave|Road|Rd|Square|Place|Center|Centre|Museum|Hotel|Restaurant)\b`),
	ContactInfo:    regexp.MustCompile(`(?i)(?:www\.|https?://|@[\w.-]+|\+?\d{1,3}[-.\s]\d{3,4}[-.\s]\d{3,4})`),
	Prices:         regexp.MustCompile(`(?i)(?:[€$£]\s*\d+(?:\.\d{2})?|\b\d+(?:\.\d{2})?\s*(?:euros?|dollars?|pounds?)\b)`),

	Headers:       regexp.MustCompile(`(?m)^[A-Z][A-Z\s]{5,}$`),
	SectionBreaks: regexp.MustCompile(`(?m)^[A-Z][^:\n]{10,50}:\s*$`),
	Emphasis:      regexp.MustCompile(`\b[A-Z]{2,}\b`),
	Parenthetical: regexp.MustCompile(`\([^)]{5,50}\)`),

	UIActions:        regexp.MustCompile(`(?i)\b(?:click|select|choose|press|drag|drop|type|enter|hover|scroll)\b`),
	UIElements:       regexp.MustCompile(`(?i)\b(?:button|menu|toolbar|panel|dialog|window|field|checkbox|dropdown|tab)\b`),
	SequenceWords:    regexp.MustCompile(`(?i)\b(?:first|second|third|next|then|finally|after|before|last)\b`),
	ConditionalWords: regexp.MustCompile(`(?i)\b(?:if|when|unless|should|depending|based on)\b`),
	CrossReferences:  regexp.MustCompile(`(?i)\b(?:see|refer to)\s+(?:section|chapter|page)\b|\b(?:Section|Chapter|Page|Figure|Table)\s+\d+`),
}

// Names returns the fixed feature set in declaration order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Count returns the occurrence count of every known feature in span.
// The returned map always contains every feature name.
func Count(span string) map[string]int {
	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name] = len(patterns[name].FindAllStringIndex(span, -1))
	}
	return counts
}

// TotalListItems sums the list-marker features of a count map.
func TotalListItems(counts map[string]int) int {
	return counts[BulletPoints] + counts[NumberedLists] + counts[LetteredLists] + counts[SubLists]
}
