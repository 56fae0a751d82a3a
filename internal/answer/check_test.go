package answer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/kanjiflash/internal/answer"
	"github.com/vytor/kanjiflash/internal/models"
)

func kanjiSubject() models.Subject {
	return models.Subject{
		ID:         440,
		Type:       models.SubjectKanji,
		Level:      1,
		Characters: "一",
		Meanings: []models.Meaning{
			{Meaning: "One", Primary: true, AcceptedAnswer: true},
		},
		AuxiliaryMeanings: []models.AuxiliaryMeaning{
			{Meaning: "1", Type: models.AuxiliaryWhitelist},
			{Meaning: "Ichi", Type: models.AuxiliaryBlacklist},
		},
		Readings: []models.Reading{
			{Reading: "いち", Type: models.ReadingOnyomi, Primary: true, AcceptedAnswer: true},
			{Reading: "いつ", Type: models.ReadingOnyomi, AcceptedAnswer: true},
			{Reading: "ひと", Type: models.ReadingKunyomi},
		},
	}
}

func vocabSubject() models.Subject {
	return models.Subject{
		ID:         2467,
		Type:       models.SubjectVocabulary,
		Characters: "今日",
		Meanings: []models.Meaning{
			{Meaning: "Today", Primary: true, AcceptedAnswer: true},
		},
		Readings: []models.Reading{
			{Reading: "きょう", Primary: true, AcceptedAnswer: true},
		},
	}
}

func TestCheckMeaning(t *testing.T) {
	s := kanjiSubject()

	v := answer.CheckMeaning(s, "one", answer.Retry)
	assert.True(t, v.OK)
	assert.Equal(t, "One", v.Match)

	v = answer.CheckMeaning(s, "1", answer.Retry)
	assert.True(t, v.OK, "whitelisted auxiliary meanings are accepted")

	v = answer.CheckMeaning(s, "ichi", answer.Accept)
	assert.False(t, v.OK, "blacklisted auxiliary meanings are rejected")
	assert.False(t, v.Retry)
}

func TestCheckMeaning_IgnoresUnacceptedMeanings(t *testing.T) {
	s := vocabSubject()
	s.Meanings = append(s.Meanings, models.Meaning{Meaning: "This Day", AcceptedAnswer: false})

	v := answer.CheckMeaning(s, "this day", answer.Accept)

	assert.False(t, v.OK)
}

func TestCheckReading_Exact(t *testing.T) {
	v := answer.CheckReading(kanjiSubject(), "いち")

	assert.True(t, v.OK)
	assert.Equal(t, "いち", v.Match)
}

func TestCheckReading_KatakanaAnswer(t *testing.T) {
	v := answer.CheckReading(kanjiSubject(), "イチ")

	assert.True(t, v.OK)
}

func TestCheckReading_HalfwidthKatakana(t *testing.T) {
	v := answer.CheckReading(kanjiSubject(), "ｲﾁ")

	assert.True(t, v.OK)
}

func TestCheckReading_WrongReadingType(t *testing.T) {
	v := answer.CheckReading(kanjiSubject(), "ひと")

	assert.False(t, v.OK)
	assert.True(t, v.Retry)
	assert.Equal(t, answer.ReasonWrongReadingType, v.Reason)
	assert.Equal(t, "ひと", v.Match)
}

func TestCheckReading_Digraph(t *testing.T) {
	v := answer.CheckReading(vocabSubject(), "きよう")

	assert.False(t, v.OK)
	assert.True(t, v.Retry)
	assert.Equal(t, answer.ReasonDigraph, v.Reason)
	require.NotNil(t, v.Digraph)
	assert.Equal(t, answer.Digraph{Large: "よ", Small: "ょ"}, *v.Digraph)
}

func TestCheckReading_DigraphInKatakana(t *testing.T) {
	v := answer.CheckReading(vocabSubject(), "キヨウ")

	assert.True(t, v.Retry)
	assert.Equal(t, answer.ReasonDigraph, v.Reason)
}

func TestCheckReading_NotKana(t *testing.T) {
	v := answer.CheckReading(kanjiSubject(), "ichi")

	assert.False(t, v.OK)
	assert.True(t, v.Retry)
	assert.Equal(t, answer.ReasonNotKana, v.Reason)
}

func TestCheckReading_Wrong(t *testing.T) {
	v := answer.CheckReading(kanjiSubject(), "に")

	assert.False(t, v.OK)
	assert.False(t, v.Retry)
	assert.Nil(t, v.Digraph)
}
