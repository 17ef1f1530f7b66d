// Package textnorm turns raw text into word or character token sequences
// for edit-distance scoring.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases text, drops everything that is not a letter, a number
// or whitespace, and collapses whitespace runs into single spaces.
// Text is NFC-composed first so that a base letter and its combining accent
// count as one character.
func Normalize(text string) string {
	text = strings.ToLower(norm.NFC.String(text))
	text = strings.TrimSpace(text)
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)
	return strings.Join(strings.Fields(text), " ")
}

// Words splits text into word tokens. When normalize is false the text is
// used verbatim and only split on whitespace.
func Words(text string, normalize bool) []string {
	if normalize {
		text = Normalize(text)
	}
	return strings.Fields(text)
}

// Chars splits text into single-rune tokens with all whitespace removed.
func Chars(text string, normalize bool) []string {
	if normalize {
		text = Normalize(text)
	}
	chars := make([]string, 0, len(text))
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		chars = append(chars, string(r))
	}
	return chars
}
