// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenRunes is the shortest token kept. Single characters carry no signal.
const minTokenRunes = 2

// Tokenize splits text into lower-cased word tokens and drops stop words.
//
// A token is a maximal run of letters, numbers or underscores at least two
// runes long. Combining marks are not word runes, so decomposed accents
// split a token. Text that is not valid UTF-8 yields no tokens, so a malformed
// description behaves like an empty one.
func Tokenize(text string) []string {
	if text == "" || !utf8.ValidString(text) {
		return nil
	}

	lower := strings.ToLower(text)
	tokens := make([]string, 0, len(lower)/5)

	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= minTokenRunes {
			tok := lower[start:end]
			if !IsStopWord(tok) {
				tokens = append(tokens, tok)
			}
		}
		start = -1
		runes = 0
	}

	for i, r := range lower {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(lower))

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
