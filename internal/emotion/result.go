package emotion

import "math"

// Classifier method identifiers reported in Result.Method.
const (
	MethodFallback = "fallback"
	MethodLexicon  = "lexicon"
)

// fallbackConfidence is the confidence reported for heuristic results.
const fallbackConfidence = 0.5

// Result is the outcome of an emotion analysis. Confidence is in [0,1] and
// AllEmotions holds percentages in [0,100] keyed by label.
type Result struct {
	Emotion     Label
	Confidence  float64
	AllEmotions map[Label]float64
	Method      string
	// Note explains why a fallback was used; empty otherwise.
	Note string
	// Image describes the analysed image, for image analyses.
	Image *ImageInfo
}

// Fallback returns the neutral result used when no classifier could produce one.
func Fallback(reason string) Result {
	return Result{
		Emotion:     Neutral,
		Confidence:  fallbackConfidence,
		AllEmotions: OneHot(Neutral),
		Method:      MethodFallback,
		Note:        reason,
	}
}

// OneHot returns a distribution with 100 for l and 0 for every other label.
func OneHot(l Label) map[Label]float64 {
	m := make(map[Label]float64, len(Labels))
	for _, other := range Labels {
		m[other] = 0
	}
	m[l] = 100
	return m
}

// Normalize enforces the Result invariants: the label is a member of the
// closed set, confidence is clamped to [0,1] and distribution keys are
// normalised (duplicates keep the highest score).
func (r Result) Normalize() Result {
	r.Emotion = NormalizeLabel(string(r.Emotion))

	if math.IsNaN(r.Confidence) {
		r.Confidence = 0
	}
	r.Confidence = math.Max(0, math.Min(1, r.Confidence))

	if r.AllEmotions != nil {
		scores := make(map[Label]float64, len(r.AllEmotions))
		for raw, p := range r.AllEmotions {
			l, ok := ParseLabel(string(raw))
			if !ok || math.IsNaN(p) {
				continue
			}
			if cur, seen := scores[l]; !seen || p > cur {
				scores[l] = p
			}
		}
		r.AllEmotions = scores
	}

	if r.Method == "" {
		r.Method = MethodFallback
	}
	return r
}
