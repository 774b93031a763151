package location

import (
	"context"
	"strings"

	"github.com/rajasatyajit/ReliefOps/pkg/utils"
)

// cueWords flag a location mention as the place where the disaster
// actually happened rather than an incidental reference.
var cueWords = map[string]struct{}{
	"struck":     {},
	"hit":        {},
	"occurred":   {},
	"happened":   {},
	"affected":   {},
	"devastated": {},
	"impacted":   {},
	"at":         {},
	"in":         {},
	"near":       {},
}

const contextWindow = 5

// Selector picks the single best location for a report from its candidate
// place names.
type Selector struct {
	geo Lookuper
}

// NewSelector creates a selector over the given geocoder
func NewSelector(geo Lookuper) *Selector {
	return &Selector{geo: geo}
}

// PrimaryLocation scores every candidate against the report text and
// returns the best one. Zero candidates yield ""; a single candidate is
// returned unchanged without scoring. Ties go to the first-encountered
// candidate.
func (s *Selector) PrimaryLocation(ctx context.Context, text string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	tokens := utils.Tokenize(text)
	firstSentenceTokens := len(utils.Tokenize(utils.FirstSentence(text)))

	best := candidates[0]
	bestScore := -1.0

	for _, candidate := range candidates {
		score := 0.0

		if info := s.geo.Lookup(ctx, candidate); info != nil {
			score += info.Importance * 10
			score += typeWeight(info.Type)
		}

		candLower := utils.NormalizePlace(candidate)
		score += float64(mentionCount(tokens, candLower)) * 2
		score += float64(contextScore(tokens, candLower, firstSentenceTokens)) * 3

		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	return best
}

// typeWeight favors specific places over broad regions
func typeWeight(placeType string) float64 {
	switch placeType {
	case "city", "town", "village":
		return 5
	case "state", "province":
		return 3
	case "country":
		return 1
	default:
		return 0
	}
}

// mentionCount counts text tokens contained in the candidate name
func mentionCount(tokens []string, candLower string) int {
	count := 0
	for _, token := range tokens {
		if strings.Contains(candLower, token) {
			count++
		}
	}
	return count
}

// contextScore scans each mention of the candidate: +1 for every cue word
// within the surrounding window, +2 when the mention falls inside the
// first sentence.
func contextScore(tokens []string, candLower string, firstSentenceTokens int) int {
	score := 0
	for i, token := range tokens {
		if !strings.Contains(candLower, token) {
			continue
		}

		lo := i - contextWindow
		if lo < 0 {
			lo = 0
		}
		hi := i + contextWindow + 1
		if hi > len(tokens) {
			hi = len(tokens)
		}
		for _, w := range tokens[lo:hi] {
			if _, ok := cueWords[w]; ok {
				score++
			}
		}

		if i < firstSentenceTokens {
			score += 2
		}
	}
	return score
}
