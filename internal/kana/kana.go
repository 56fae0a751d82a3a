// Package kana converts between the Japanese phonetic scripts and classifies
// characters by Unicode block.
package kana

import (
	"iter"
	"strings"
	"unicode/utf8"
)

const (
	hiraganaStart = 0x3040
	hiraganaEnd   = 0x3096
	katakanaStart = 0x30A0
	katakanaEnd   = 0x30F6
	scriptOffset  = katakanaStart - hiraganaStart
)

// CharType is the script class of a character.
type CharType string

const (
	Punctuation CharType = "punctuation"
	Hiragana    CharType = "hiragana"
	Katakana    CharType = "katakana"
	Fullwidth   CharType = "fullwidth"
	Kanji       CharType = "kanji"
	Other       CharType = "other"
)

// ToKatakana maps every hiragana rune to its katakana counterpart.
// Runes outside the hiragana block are returned unchanged.
func ToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= hiraganaStart && r <= hiraganaEnd {
			return r + scriptOffset
		}
		return r
	}, s)
}

// ToHiragana maps every katakana rune to its hiragana counterpart.
// Runes outside the katakana block are returned unchanged.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= katakanaStart && r <= katakanaEnd {
			return r - scriptOffset
		}
		return r
	}, s)
}

// ClassifyRune returns the script class of r.
func ClassifyRune(r rune) CharType {
	switch {
	case r >= 0x3000 && r <= 0x303F:
		return Punctuation
	case r >= 0x3040 && r <= 0x309F:
		return Hiragana
	case r >= 0x30A0 && r <= 0x30FF:
		return Katakana
	case r >= 0xFF00 && r <= 0xFFEF:
		return Fullwidth
	case r >= 0x4E00 && r <= 0x9FAF, r >= 0x3400 && r <= 0x4DBF:
		return Kanji
	default:
		return Other
	}
}

// Classify returns the script class of the first character in s.
// An empty string is Other.
func Classify(s string) CharType {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return Other
	}
	return ClassifyRune(r)
}

// Run is a maximal stretch of characters sharing one CharType.
type Run struct {
	Type       CharType `json:"type"`
	Characters string   `json:"characters"`
}

// Segment splits s into contiguous same-class runs, left to right.
// The returned sequence can be ranged over any number of times.
func Segment(s string) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		start := 0
		var current CharType
		for i, r := range s {
			t := ClassifyRune(r)
			if i == 0 {
				current = t
				continue
			}
			if t != current {
				if !yield(Run{Type: current, Characters: s[start:i]}) {
					return
				}
				start = i
				current = t
			}
		}
		if start < len(s) {
			yield(Run{Type: current, Characters: s[start:]})
		}
	}
}

// IsSmallYoon reports whether r is one of the small ya/yu/yo kana that
// attach to the preceding mora.
func IsSmallYoon(r rune) bool {
	switch r {
	case 'ゃ', 'ゅ', 'ょ', 'ャ', 'ュ', 'ョ':
		return true
	}
	return false
}

// IsKana reports whether every rune in s is hiragana or katakana.
func IsKana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if t := ClassifyRune(r); t != Hiragana && t != Katakana {
			return false
		}
	}
	return true
}
