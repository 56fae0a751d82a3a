package answer

import (
	"strings"

	"github.com/vytor/kanjiflash/internal/kana"
	"github.com/vytor/kanjiflash/internal/models"
	"golang.org/x/text/width"
)

// QuestionType is the half of a review being answered.
type QuestionType string

const (
	QuestionMeaning QuestionType = "meaning"
	QuestionReading QuestionType = "reading"
)

// CheckMeaning fuzzy-matches an answer against the subject's accepted
// meanings. Whitelisted auxiliary meanings count as accepted and blacklisted
// ones as rejected.
func CheckMeaning(s models.Subject, given string, policy NearMatchPolicy) Verdict {
	var accepted, rejected []string
	for _, m := range s.Meanings {
		if m.AcceptedAnswer {
			accepted = append(accepted, m.Meaning)
		}
	}
	for _, aux := range s.AuxiliaryMeanings {
		switch aux.Type {
		case models.AuxiliaryWhitelist:
			accepted = append(accepted, aux.Meaning)
		case models.AuxiliaryBlacklist:
			rejected = append(rejected, aux.Meaning)
		}
	}
	return FuzzyMatch(given, accepted, rejected, policy)
}

// CheckReading compares a kana answer with the subject's readings. Readings
// must match exactly; a known but unaccepted reading or a small-kana slip
// earns a retry instead of a miss.
func CheckReading(s models.Subject, given string) Verdict {
	v := Verdict{Given: given}

	typed := strings.TrimSpace(width.Fold.String(given))
	if !kana.IsKana(typed) {
		v.Retry = true
		v.Reason = ReasonNotKana
		return v
	}
	answer := kana.ToHiragana(typed)

	for _, r := range s.Readings {
		if r.AcceptedAnswer && kana.ToHiragana(r.Reading) == answer {
			v.OK = true
			v.Match = r.Reading
			return v
		}
	}

	for _, r := range s.Readings {
		if !r.AcceptedAnswer && kana.ToHiragana(r.Reading) == answer {
			v.Retry = true
			v.Match = r.Reading
			v.Reason = ReasonWrongReadingType
			return v
		}
	}

	for _, r := range s.Readings {
		if !r.AcceptedAnswer {
			continue
		}
		d, ok := MatchReadingDigraph(r, typed)
		if !ok {
			d, ok = MatchDigraph(kana.ToHiragana(r.Reading), answer)
		}
		if ok {
			v.Retry = true
			v.Match = r.Reading
			v.Digraph = &d
			v.Reason = ReasonDigraph
			return v
		}
	}

	return v
}
