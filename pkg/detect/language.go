package detect

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	languageOnce     sync.Once
	languageDetector lingua.LanguageDetector
)

// languageSample caps how much corpus text feeds the detector. Language is
// stable well before this point and the detector cost grows with input.
const languageSample = 20000

func detector() lingua.LanguageDetector {
	languageOnce.Do(func() {
		languages := []lingua.Language{
			lingua.English, lingua.French, lingua.German, lingua.Spanish,
			lingua.Italian, lingua.Portuguese, lingua.Dutch, lingua.Japanese,
			lingua.Chinese, lingua.Korean,
		}
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build()
	})
	return languageDetector
}

// Language detects the dominant corpus language and returns its ISO 639-1
// code with the detector's confidence. Empty or undetectable text reports
// "unknown" with zero confidence.
func Language(content string) (code string, confidence float64) {
	sample := content
	if len(sample) > languageSample {
		sample = sample[:languageSample]
	}
	if strings.TrimSpace(sample) == "" {
		return "unknown", 0
	}

	lang, ok := detector().DetectLanguageOf(sample)
	if !ok {
		return "unknown", 0
	}
	confidence = detector().ComputeLanguageConfidence(sample, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), confidence
}
