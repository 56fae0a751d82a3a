// Package pitch classifies the pitch accent of vocabulary readings using a
// precomputed accent dictionary.
package pitch

import (
	"encoding/json"
	"fmt"
	"math"
)

// Accent is one dictionary entry for a word and reading: either a plain
// accent position or one qualified by part of speech.
type Accent interface {
	Position() int
	PartOfSpeech() string
	accent()
}

// PlainAccent is an accent position with no grammatical qualifier.
type PlainAccent struct {
	Pos int
}

func (a PlainAccent) Position() int        { return a.Pos }
func (a PlainAccent) PartOfSpeech() string { return "" }
func (PlainAccent) accent()                {}

// QualifiedAccent is an accent that only applies when the word is used as a
// particular part of speech.
type QualifiedAccent struct {
	POS string
	Pos int
}

func (a QualifiedAccent) Position() int        { return a.Pos }
func (a QualifiedAccent) PartOfSpeech() string { return a.POS }
func (QualifiedAccent) accent()                {}

// Entries is the list of accents recorded for one word and reading.
// In JSON each entry is either a number or a [part of speech, number] pair.
// Entries in any other shape are skipped.
type Entries []Accent

func (e *Entries) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("accent entries: %w", err)
	}

	out := make(Entries, 0, len(raw))
	for _, r := range raw {
		if a, ok := decodeAccent(r); ok {
			out = append(out, a)
		}
	}
	*e = out
	return nil
}

func decodeAccent(r json.RawMessage) (Accent, bool) {
	if pos, ok := decodePosition(r); ok {
		return PlainAccent{Pos: pos}, true
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(r, &pair); err != nil || len(pair) != 2 {
		return nil, false
	}
	var tag string
	if json.Unmarshal(pair[0], &tag) != nil {
		return nil, false
	}
	pos, ok := decodePosition(pair[1])
	if !ok {
		return nil, false
	}
	return QualifiedAccent{POS: tag, Pos: pos}, true
}

// decodePosition accepts any JSON number with an integral value, so 2 and
// 2.0 both decode to 2.
func decodePosition(r json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(r, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func (e Entries) MarshalJSON() ([]byte, error) {
	out := make([]any, 0, len(e))
	for _, a := range e {
		if a.PartOfSpeech() == "" {
			out = append(out, a.Position())
			continue
		}
		out = append(out, []any{a.PartOfSpeech(), a.Position()})
	}
	return json.Marshal(out)
}

// Database maps "word-hiraganaReading" keys to their accents.
type Database map[string]Entries
