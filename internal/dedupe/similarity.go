package dedupe

import (
	"math"
	"sort"

	"github.com/rajasatyajit/ReliefOps/pkg/utils"
)

// SimilarityEngine builds pairwise cosine similarity over TF-IDF vectors.
// The vocabulary is fit jointly over the whole batch and capped at
// maxFeatures terms (highest corpus frequency wins, ties alphabetical for
// determinism).
type SimilarityEngine struct {
	maxFeatures int
}

// NewSimilarityEngine creates an engine with the given vocabulary cap
func NewSimilarityEngine(maxFeatures int) *SimilarityEngine {
	return &SimilarityEngine{maxFeatures: maxFeatures}
}

// Matrix returns the symmetric NxN similarity matrix for the given texts.
// Values are in [0,1] with 1s on the diagonal. Fewer than two non-empty
// texts yield an identity matrix of the right size.
func (e *SimilarityEngine) Matrix(texts []string) [][]float64 {
	n := len(texts)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}
	if n < 2 {
		return matrix
	}

	tokenized := make([][]string, n)
	nonEmpty := 0
	for i, text := range texts {
		tokenized[i] = utils.Tokenize(text)
		if len(tokenized[i]) > 0 {
			nonEmpty++
		}
	}
	if nonEmpty < 2 {
		return matrix
	}

	vocab := e.buildVocabulary(tokenized)
	idf := inverseDocumentFrequency(tokenized, vocab, n)

	vectors := make([][]float64, n)
	for i := range tokenized {
		vectors[i] = vectorize(tokenized[i], vocab, idf)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := dot(vectors[i], vectors[j])
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}
	return matrix
}

// buildVocabulary maps the retained terms to vector indices
func (e *SimilarityEngine) buildVocabulary(tokenized [][]string) map[string]int {
	counts := make(map[string]int)
	for _, tokens := range tokenized {
		for _, tok := range tokens {
			counts[tok]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if e.maxFeatures > 0 && len(terms) > e.maxFeatures {
		terms = terms[:e.maxFeatures]
	}

	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	return vocab
}

// inverseDocumentFrequency uses the smoothed formulation
// ln((1+n)/(1+df)) + 1 so terms present in every document still carry
// a positive weight.
func inverseDocumentFrequency(tokenized [][]string, vocab map[string]int, n int) []float64 {
	df := make([]int, len(vocab))
	for _, tokens := range tokenized {
		seen := make(map[int]struct{})
		for _, tok := range tokens {
			if idx, ok := vocab[tok]; ok {
				seen[idx] = struct{}{}
			}
		}
		for idx := range seen {
			df[idx]++
		}
	}

	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log(float64(1+n)/float64(1+d)) + 1
	}
	return idf
}

// vectorize produces the l2-normalized TF-IDF vector for one document
func vectorize(tokens []string, vocab map[string]int, idf []float64) []float64 {
	vec := make([]float64, len(vocab))
	for _, tok := range tokens {
		if idx, ok := vocab[tok]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= idf[i]
		norm += vec[i] * vec[i]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// dot is the cosine similarity of two l2-normalized vectors
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
