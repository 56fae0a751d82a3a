package pitch

import (
	"sort"

	"github.com/vytor/kanjiflash/internal/kana"
	"github.com/vytor/kanjiflash/internal/models"
)

type Pattern string

const (
	Heiban    Pattern = "heiban"
	Atamadaka Pattern = "atamadaka"
	Nakadaka  Pattern = "nakadaka"
	Odaka     Pattern = "odaka"
)

// Info is the pitch accent of one reading under one accent entry.
type Info struct {
	Moras        []string `json:"moras"`
	AccentPos    int      `json:"accent_pos"`
	Pattern      Pattern  `json:"pattern"`
	PartOfSpeech string   `json:"part_of_speech,omitempty"`
}

// ReadingPitch groups the pitch variants of a single reading.
type ReadingPitch struct {
	Reading string `json:"reading"`
	Pitch   []Info `json:"pitch"`
}

// Moras splits a reading into morae, attaching small ya/yu/yo to the
// preceding kana.
func Moras(reading string) []string {
	var moras []string
	for _, r := range reading {
		if kana.IsSmallYoon(r) && len(moras) > 0 {
			moras[len(moras)-1] += string(r)
			continue
		}
		moras = append(moras, string(r))
	}
	return moras
}

// Classify names the accent pattern for a word of moraCount morae whose
// pitch drops after mora pos. It reports false when pos is out of range.
func Classify(moraCount, pos int) (Pattern, bool) {
	switch {
	case pos == 0:
		return Heiban, true
	case pos == 1 && moraCount >= 1:
		return Atamadaka, true
	case pos > 1 && pos < moraCount:
		return Nakadaka, true
	case pos > 1 && pos == moraCount:
		return Odaka, true
	default:
		return "", false
	}
}

// Key is the dictionary key for a word and reading.
func Key(word, reading string) string {
	return word + "-" + kana.ToHiragana(reading)
}

// infos resolves every accent for one reading. Any out-of-range accent
// invalidates the reading's whole entry.
func infos(reading string, accents Entries) ([]Info, bool) {
	moras := Moras(reading)
	out := make([]Info, 0, len(accents))
	for _, a := range accents {
		p, ok := Classify(len(moras), a.Position())
		if !ok {
			return nil, false
		}
		out = append(out, Info{
			Moras:        moras,
			AccentPos:    a.Position(),
			Pattern:      p,
			PartOfSpeech: a.PartOfSpeech(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AccentPos < out[j].AccentPos })
	return out, len(out) > 0
}

// Lookup finds pitch accents for each reading of a vocabulary subject. It
// reports false for subjects that are not vocabulary. Readings with no
// entry, or with an invalid one, are left out.
func Lookup(db Database, s models.Subject) ([]ReadingPitch, bool) {
	if !s.Type.IsVocabulary() {
		return nil, false
	}

	readings := make([]string, 0, len(s.Readings))
	if s.Type == models.SubjectKanaVocabulary || len(s.Readings) == 0 {
		readings = append(readings, s.Characters)
	} else {
		for _, r := range s.Readings {
			readings = append(readings, r.Reading)
		}
	}

	var out []ReadingPitch
	for _, reading := range readings {
		accents, ok := db[Key(s.Characters, reading)]
		if !ok {
			continue
		}
		pitch, ok := infos(kana.ToHiragana(reading), accents)
		if !ok {
			continue
		}
		out = append(out, ReadingPitch{Reading: reading, Pitch: pitch})
	}
	return out, true
}
