// Package keywords isolates the nouns that applicant tracking systems match
// on: part-of-speech tagging keeps nouns and proper nouns, then stop words
// and generic resume fluff are filtered out.
package keywords

import (
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// Set maps a lowercase keyword to its frequency in the source text.
type Set map[string]int

// nounTags are the Penn Treebank tags retained: nouns and proper nouns,
// singular and plural.
var nounTags = map[string]bool{
	"NN": true, "NNS": true, "NNP": true, "NNPS": true,
}

// stopWords filters common English words that the tagger occasionally labels
// as nouns and that add only noise to matching.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "such": true,
	"year": true, "years": true, "way": true, "ways": true, "lot": true,
}

// Extractor turns normalized text into a keyword Set.
type Extractor struct {
	minLen int
	fluff  map[string]bool
}

// NewExtractor creates a keyword extractor. minLen is the minimum keyword
// length in runes; fluffWords is the configurable deny-list of generic terms.
func NewExtractor(minLen int, fluffWords []string) *Extractor {
	fluff := make(map[string]bool, len(fluffWords))
	for _, w := range fluffWords {
		fluff[strings.ToLower(strings.TrimSpace(w))] = true
	}
	return &Extractor{minLen: minLen, fluff: fluff}
}

// Extract tags each token, retains nouns and proper nouns, lowercases them,
// and drops short tokens, stop words, and fluff-list entries. The text is
// tagged in its original case: proper-noun detection depends on
// capitalization.
func (e *Extractor) Extract(text string) (Set, error) {
	set := make(Set)
	if strings.TrimSpace(text) == "" {
		return set, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tag tokens: %w", err)
	}

	for _, tok := range doc.Tokens() {
		if !nounTags[tok.Tag] {
			continue
		}
		kw := cleanToken(tok.Text)
		if len([]rune(kw)) < e.minLen {
			continue
		}
		if stopWords[kw] || e.fluff[kw] {
			continue
		}
		set[kw]++
	}

	return set, nil
}

// cleanToken lowercases and strips punctuation the tokenizer leaves attached,
// preserving tech suffixes like "c++", "c#", "node.js".
func cleanToken(s string) string {
	s = strings.ToLower(s)
	s = strings.Trim(s, ",;:()[]{}\"'")
	return strings.TrimRight(s, ".")
}
