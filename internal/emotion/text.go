package emotion

import (
	"strings"
	"unicode"
)

// directWords maps a single word that names an emotion to its label.
var directWords = map[string]Label{
	"happy":     Happy,
	"joy":       Happy,
	"sad":       Sad,
	"angry":     Angry,
	"mad":       Angry,
	"surprise":  Surprise,
	"surprised": Surprise,
	"fear":      Fear,
	"scared":    Fear,
	"afraid":    Fear,
	"neutral":   Neutral,
}

// keywordOrder fixes the tie-break order for keyword scoring.
var keywordOrder = []Label{Happy, Sad, Angry, Surprise, Fear}

// keywords are the word signals used by the heuristic text analyzer.
var keywords = map[Label][]string{
	Happy:    {"happy", "joy", "love", "amazing", "great", "wonderful", "good", "excited"},
	Sad:      {"sad", "terrible", "disappointed", "bad", "unhappy", "awful", "depressed"},
	Angry:    {"angry", "mad", "hate", "frustrated", "annoyed", "upset"},
	Surprise: {"surprise", "surprised", "wow", "unbelievable", "shocked"},
	Fear:     {"scared", "fear", "frightening", "frightened", "afraid", "terrified"},
}

// MatchDirect reports whether text consists of a single word naming an
// emotion, ignoring case, whitespace and punctuation.
func MatchDirect(text string) (Label, bool) {
	var sb strings.Builder
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			sb.WriteRune(r)
		}
	}
	l, ok := directWords[sb.String()]
	return l, ok
}

// LexiconResult returns the result for a direct single-word match.
func LexiconResult(l Label) Result {
	return Result{
		Emotion:     l,
		Confidence:  1,
		AllEmotions: OneHot(l),
		Method:      MethodLexicon,
	}
}

// AnalyzeKeywords scores text against the keyword lists and returns the
// dominant label. Text with no keyword hits is neutral.
func AnalyzeKeywords(text string) Result {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	counts := make(map[Label]int, len(keywordOrder))
	for _, w := range words {
		for _, l := range keywordOrder {
			for _, kw := range keywords[l] {
				if w == kw {
					counts[l]++
				}
			}
		}
	}

	dominant, best := Neutral, 0
	for _, l := range keywordOrder {
		if counts[l] > best {
			dominant, best = l, counts[l]
		}
	}

	confidence := fallbackConfidence
	if dominant != Neutral {
		confidence = min(1, float64(best)/3)
	}

	return Result{
		Emotion:     dominant,
		Confidence:  confidence,
		AllEmotions: OneHot(dominant),
		Method:      MethodFallback,
	}
}
