// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package similarity

import (
	"math"
)

// Vectorizer turns a corpus of documents into L2-normalized TF-IDF vectors.
//
// The vocabulary and document frequencies depend on the whole corpus, so a
// Vectorizer is built once per rebuild and never updated in place.
type Vectorizer struct {
	vocab map[string]int
	df    []int
	docs  int
}

// Fit builds the vocabulary and document frequencies for the tokenized corpus.
func Fit(corpus [][]string) *Vectorizer {
	v := &Vectorizer{
		vocab: make(map[string]int),
		docs:  len(corpus),
	}

	seen := make(map[int]struct{})
	for _, tokens := range corpus {
		clear(seen)
		for _, tok := range tokens {
			id, ok := v.vocab[tok]
			if !ok {
				id = len(v.vocab)
				v.vocab[tok] = id
				v.df = append(v.df, 0)
			}
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				v.df[id]++
			}
		}
	}

	return v
}

// VocabularySize returns the number of distinct terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocab)
}

// IDF returns the smoothed inverse document frequency ln((1+N)/(1+df)) + 1.
// Unknown terms return 0.
func (v *Vectorizer) IDF(term string) float64 {
	id, ok := v.vocab[term]
	if !ok {
		return 0
	}
	return v.idf(id)
}

func (v *Vectorizer) idf(id int) float64 {
	return math.Log(float64(1+v.docs)/float64(1+v.df[id])) + 1
}

// Transform weights the tokens by raw term frequency times IDF and
// L2-normalizes the result. Tokens outside the vocabulary are ignored.
func (v *Vectorizer) Transform(tokens []string) Vector {
	if len(tokens) == 0 {
		return nil
	}

	tf := make(map[int]float64, len(tokens))
	for _, tok := range tokens {
		if id, ok := v.vocab[tok]; ok {
			tf[id]++
		}
	}
	for id, freq := range tf {
		tf[id] = freq * v.idf(id)
	}
	return newVector(tf)
}
