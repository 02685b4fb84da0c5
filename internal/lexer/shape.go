// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package lexer

import "strings"

const vowels = "aeiou"
const consonants = "bcdfgjklmnprstvxz"

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

func isConsonant(r rune) bool {
	return strings.ContainsRune(consonants, r)
}

// letterShape classifies a cleaned word (apostrophes stripped) by its
// consonant/vowel skeleton, used to pick between cmevla, gismu, and
// lujvo classification when the word isn't a recognized cmavo.
type letterShape struct {
	isName    bool // ends in a consonant
	isGismu   bool // canonical CVCCV or CCVCV 5-letter shape
	endsVowel bool
}

func classifyShape(word string) letterShape {
	clean := strings.ReplaceAll(word, "'", "")
	runes := []rune(clean)
	if len(runes) == 0 {
		return letterShape{}
	}
	last := runes[len(runes)-1]
	shape := letterShape{
		isName:    isConsonant(last) || (!isVowel(last) && last != 'y'),
		endsVowel: isVowel(last),
	}
	if len(runes) == 5 && isVowel(last) {
		shape.isGismu = matchesGismuPattern(runes)
	}
	return shape
}

// matchesGismuPattern checks the two canonical 5-letter gismu skeletons:
// CVCCV (e.g. zarci) and CCVCV (e.g. klama).
// Root predicates in the dictionary are 5 letters with exactly one of
// these two consonant/vowel skeletons.
func matchesGismuPattern(r []rune) bool {
	if len(r) != 5 {
		return false
	}
	c := func(i int) bool { return isConsonant(r[i]) }
	v := func(i int) bool { return isVowel(r[i]) }

	cvccv := c(0) && v(1) && c(2) && c(3) && v(4)
	ccvcv := c(0) && c(1) && v(2) && c(3) && v(4)
	return cvccv || ccvcv
}
