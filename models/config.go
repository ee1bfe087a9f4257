package models

import "time"

// AnalyzeConfig holds runtime configuration for an analysis run.
// All values come from CLI flags, not external config files.
type AnalyzeConfig struct {
	InputDir   string
	Persona    string
	Job        string
	OutputPath string

	WorkerCount int
	DocTimeout  time.Duration

	// Segmentation
	WindowSize   int
	WindowStep   int
	MinPageLines int

	// Merge / redundancy
	MergeOverlapRatio   float64 // fraction of the shorter passage's length
	RedundancyThreshold float64 // word-set Jaccard similarity
	MinQuality          float64 // structural+density floor after merging
	MaxMergedPerDoc     int

	// Final selection
	MaxSections    int
	MaxPerDocument int
	Subsections    int
}

// DefaultAnalyzeConfig returns the canonical tunables. The scoring constants
// were carried over from the reference analysis runs; they are parameters,
// not guaranteed semantics.
func DefaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		WorkerCount:         4,
		DocTimeout:          60 * time.Second,
		WindowSize:          12,
		WindowStep:          6,
		MinPageLines:        5,
		MergeOverlapRatio:   0.4,
		RedundancyThreshold: 0.6,
		MinQuality:          0.3,
		MaxMergedPerDoc:     15,
		MaxSections:         10,
		MaxPerDocument:      3,
		Subsections:         3,
	}
}
