package models

import "time"

type SubjectType string

const (
	SubjectRadical        SubjectType = "radical"
	SubjectKanji          SubjectType = "kanji"
	SubjectVocabulary     SubjectType = "vocabulary"
	SubjectKanaVocabulary SubjectType = "kana_vocabulary"
)

// Valid reports whether t is one of the known subject types.
func (t SubjectType) Valid() bool {
	switch t {
	case SubjectRadical, SubjectKanji, SubjectVocabulary, SubjectKanaVocabulary:
		return true
	}
	return false
}

// IsVocabulary reports whether subjects of this type are words rather than
// components.
func (t SubjectType) IsVocabulary() bool {
	return t == SubjectVocabulary || t == SubjectKanaVocabulary
}

type ReadingType string

const (
	ReadingOnyomi  ReadingType = "onyomi"
	ReadingKunyomi ReadingType = "kunyomi"
	ReadingNanori  ReadingType = "nanori"
)

type Reading struct {
	Reading        string      `json:"reading"`
	Type           ReadingType `json:"type,omitempty"`
	Primary        bool        `json:"primary"`
	AcceptedAnswer bool        `json:"accepted_answer"`
}

// PrimaryReading returns the first reading flagged primary, or the first
// reading when none is flagged.
func PrimaryReading(readings []Reading) (Reading, bool) {
	if len(readings) == 0 {
		return Reading{}, false
	}
	for _, r := range readings {
		if r.Primary {
			return r, true
		}
	}
	return readings[0], true
}

type Meaning struct {
	Meaning        string `json:"meaning"`
	Primary        bool   `json:"primary"`
	AcceptedAnswer bool   `json:"accepted_answer"`
}

type AuxiliaryMeaningType string

const (
	AuxiliaryWhitelist AuxiliaryMeaningType = "whitelist"
	AuxiliaryBlacklist AuxiliaryMeaningType = "blacklist"
)

type AuxiliaryMeaning struct {
	Meaning string               `json:"meaning"`
	Type    AuxiliaryMeaningType `json:"type"`
}

type Subject struct {
	ID                int64              `json:"id"`
	Type              SubjectType        `json:"type"`
	Level             int                `json:"level"`
	Characters        string             `json:"characters"`
	Slug              string             `json:"slug"`
	Meanings          []Meaning          `json:"meanings"`
	AuxiliaryMeanings []AuxiliaryMeaning `json:"auxiliary_meanings"`
	Readings          []Reading          `json:"readings,omitempty"`
	Hidden            bool               `json:"hidden"`
	SRSSystemID       int64              `json:"srs_system_id"`
	CreatedAt         time.Time          `json:"created_at"`
}

// PrimaryMeaning returns the primary meaning, falling back to the first one.
func (s Subject) PrimaryMeaning() string {
	for _, m := range s.Meanings {
		if m.Primary {
			return m.Meaning
		}
	}
	if len(s.Meanings) > 0 {
		return s.Meanings[0].Meaning
	}
	return ""
}

// HasReadings reports whether the subject is quizzed on readings.
func (s Subject) HasReadings() bool {
	return s.Type == SubjectKanji || s.Type == SubjectVocabulary
}

type SubjectFilter struct {
	IDs           []int64
	Level         int
	Types         []SubjectType
	IncludeHidden bool
	Limit         int
	Offset        int
}
