package similarity

import (
	"math"
	"strings"
)

// Scorer computes a symmetric similarity score in [0,1] for a pair of texts.
type Scorer func(text1, text2 string) float64

// Jaccard scores two texts by word-set overlap. Texts are lowercased and
// split on whitespace; the score is |intersection| / |union|.
func Jaccard(text1, text2 string) float64 {
	words1 := tokenSet(text1)
	words2 := tokenSet(text2)

	if len(words1) == 0 && len(words2) == 0 {
		return 1.0
	}
	if len(words1) == 0 || len(words2) == 0 {
		return 0.0
	}

	intersection := 0
	for word := range words1 {
		if _, exists := words2[word]; exists {
			intersection++
		}
	}
	union := len(words1) + len(words2) - intersection

	return float64(intersection) / float64(union)
}

// CosineTfIdf scores two texts by cosine similarity of their TF-IDF vectors.
// The vector space is built over exactly the two input texts, with a fresh
// vocabulary per call, smoothed document frequencies, and L2-normalized
// vectors.
func CosineTfIdf(text1, text2 string) float64 {
	tokens1 := tokenize(text1)
	tokens2 := tokenize(text2)

	if len(tokens1) == 0 && len(tokens2) == 0 {
		return 1.0
	}
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.0
	}

	tf1 := termFrequencies(tokens1)
	tf2 := termFrequencies(tokens2)

	// Smoothed idf over the two-document corpus: ln((1+n)/(1+df)) + 1, n=2.
	idf := func(term string) float64 {
		df := 0
		if _, ok := tf1[term]; ok {
			df++
		}
		if _, ok := tf2[term]; ok {
			df++
		}
		return math.Log(3.0/float64(1+df)) + 1.0
	}

	vec1 := make(map[string]float64, len(tf1))
	vec2 := make(map[string]float64, len(tf2))
	for term, count := range tf1 {
		vec1[term] = float64(count) * idf(term)
	}
	for term, count := range tf2 {
		vec2[term] = float64(count) * idf(term)
	}

	dot := 0.0
	for term, weight := range vec1 {
		dot += weight * vec2[term]
	}

	norm1 := vectorNorm(vec1)
	norm2 := vectorNorm(vec2)
	if norm1 == 0 || norm2 == 0 {
		return 0.0
	}

	return dot / (norm1 * norm2)
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func tokenSet(text string) map[string]struct{} {
	tokens := tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func termFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}

func vectorNorm(vec map[string]float64) float64 {
	sum := 0.0
	for _, weight := range vec {
		sum += weight * weight
	}
	return math.Sqrt(sum)
}
