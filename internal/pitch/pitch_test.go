package pitch_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/pitch"
)

func TestMoras(t *testing.T) {
	tests := []struct {
		reading  string
		expected []string
	}{
		{"きょう", []string{"きょ", "う"}},
		{"とうきょう", []string{"と", "う", "きょ", "う"}},
		{"ちょっと", []string{"ちょ", "っ", "と"}},
		{"シャツ", []string{"シャ", "ツ"}},
		{"ゃ", []string{"ゃ"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.reading, func(t *testing.T) {
			assert.Equal(t, tt.expected, pitch.Moras(tt.reading))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		moraCount int
		pos       int
		expected  pitch.Pattern
		ok        bool
	}{
		{name: "heiban", moraCount: 3, pos: 0, expected: pitch.Heiban, ok: true},
		{name: "atamadaka", moraCount: 3, pos: 1, expected: pitch.Atamadaka, ok: true},
		{name: "nakadaka", moraCount: 3, pos: 2, expected: pitch.Nakadaka, ok: true},
		{name: "odaka", moraCount: 3, pos: 3, expected: pitch.Odaka, ok: true},
		{name: "one mora drop is atamadaka", moraCount: 1, pos: 1, expected: pitch.Atamadaka, ok: true},
		{name: "past the end", moraCount: 3, pos: 4, ok: false},
		{name: "negative", moraCount: 3, pos: -1, ok: false},
		{name: "empty reading", moraCount: 0, pos: 1, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := pitch.Classify(tt.moraCount, tt.pos)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestEntries_UnmarshalJSON(t *testing.T) {
	var db pitch.Database
	err := json.Unmarshal([]byte(`{
		"今日-きょう": [1],
		"上-うえ": [["名", 2], ["副", 0]],
		"変-へん": [1, "bad", ["名"], [3, 1], 2.5]
	}`), &db)
	require.NoError(t, err)

	assert.Equal(t, pitch.Entries{pitch.PlainAccent{Pos: 1}}, db["今日-きょう"])
	assert.Equal(t, pitch.Entries{
		pitch.QualifiedAccent{POS: "名", Pos: 2},
		pitch.QualifiedAccent{POS: "副", Pos: 0},
	}, db["上-うえ"])
	assert.Equal(t, pitch.Entries{pitch.PlainAccent{Pos: 1}}, db["変-へん"], "malformed entries are skipped")
}

func TestEntries_UnmarshalJSON_IntegralFloats(t *testing.T) {
	var db pitch.Database
	err := json.Unmarshal([]byte(`{"箸-はし": [1.0, ["名", 2.0], 0e0, 1.5]}`), &db)
	require.NoError(t, err)

	assert.Equal(t, pitch.Entries{
		pitch.PlainAccent{Pos: 1},
		pitch.QualifiedAccent{POS: "名", Pos: 2},
		pitch.PlainAccent{Pos: 0},
	}, db["箸-はし"])
}

func TestEntries_UnmarshalJSON_NotAList(t *testing.T) {
	var e pitch.Entries
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &e))
}

func TestEntries_MarshalRoundTrip(t *testing.T) {
	in := pitch.Entries{pitch.PlainAccent{Pos: 0}, pitch.QualifiedAccent{POS: "動", Pos: 2}}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `[0, ["動", 2]]`, string(b))
}

func vocab(characters string, readings ...string) models.Subject {
	s := models.Subject{ID: 1, Type: models.SubjectVocabulary, Characters: characters}
	for i, r := range readings {
		s.Readings = append(s.Readings, models.Reading{Reading: r, Primary: i == 0, AcceptedAnswer: true})
	}
	return s
}

func TestLookup(t *testing.T) {
	db := pitch.Database{
		"今日-きょう":  {pitch.PlainAccent{Pos: 1}},
		"今日-こんにち": {pitch.PlainAccent{Pos: 0}},
	}

	out, ok := pitch.Lookup(db, vocab("今日", "きょう", "こんにち"))

	require.True(t, ok)
	require.Len(t, out, 2)
	assert.Equal(t, "きょう", out[0].Reading)
	assert.Equal(t, []pitch.Info{{Moras: []string{"きょ", "う"}, AccentPos: 1, Pattern: pitch.Atamadaka}}, out[0].Pitch)
	assert.Equal(t, pitch.Heiban, out[1].Pitch[0].Pattern)
	assert.Len(t, out[1].Pitch[0].Moras, 4)
}

func TestLookup_SortsByAccentPosition(t *testing.T) {
	db := pitch.Database{
		"上-うえ": {pitch.QualifiedAccent{POS: "名", Pos: 2}, pitch.QualifiedAccent{POS: "副", Pos: 0}},
	}

	out, ok := pitch.Lookup(db, vocab("上", "うえ"))

	require.True(t, ok)
	require.Len(t, out, 1)
	require.Len(t, out[0].Pitch, 2)
	assert.Equal(t, 0, out[0].Pitch[0].AccentPos)
	assert.Equal(t, "副", out[0].Pitch[0].PartOfSpeech)
	assert.Equal(t, pitch.Heiban, out[0].Pitch[0].Pattern)
	assert.Equal(t, 2, out[0].Pitch[1].AccentPos)
	assert.Equal(t, pitch.Odaka, out[0].Pitch[1].Pattern)
}

func TestLookup_InvalidAccentDropsReading(t *testing.T) {
	db := pitch.Database{
		"三つ-みっつ": {pitch.PlainAccent{Pos: 3}, pitch.PlainAccent{Pos: 4}},
	}

	out, ok := pitch.Lookup(db, vocab("三つ", "みっつ"))

	assert.True(t, ok)
	assert.Empty(t, out)
}

func TestLookup_KatakanaReadingKey(t *testing.T) {
	db := pitch.Database{
		"パン-ぱん": {pitch.PlainAccent{Pos: 1}},
	}
	s := models.Subject{Type: models.SubjectKanaVocabulary, Characters: "パン"}

	out, ok := pitch.Lookup(db, s)

	require.True(t, ok)
	require.Len(t, out, 1)
	assert.Equal(t, "パン", out[0].Reading)
	assert.Equal(t, []string{"ぱ", "ん"}, out[0].Pitch[0].Moras)
	assert.Equal(t, pitch.Atamadaka, out[0].Pitch[0].Pattern)
}

func TestLookup_NotVocabulary(t *testing.T) {
	db := pitch.Database{"一-いち": {pitch.PlainAccent{Pos: 2}}}
	s := models.Subject{Type: models.SubjectKanji, Characters: "一", Readings: []models.Reading{{Reading: "いち"}}}

	out, ok := pitch.Lookup(db, s)

	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestLookup_MissingEntry(t *testing.T) {
	out, ok := pitch.Lookup(pitch.Database{}, vocab("猫", "ねこ"))

	assert.True(t, ok)
	assert.Empty(t, out)
}

func TestDictionary_LoadsOnce(t *testing.T) {
	var calls atomic.Int32
	d := pitch.NewDictionary(func(ctx context.Context) (pitch.Database, error) {
		calls.Add(1)
		return pitch.Database{"猫-ねこ": {pitch.PlainAccent{Pos: 1}}}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Database(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	out, ok, err := d.Lookup(context.Background(), vocab("猫", "ねこ"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, out, 1)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDictionary_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	d := pitch.NewDictionary(func(ctx context.Context) (pitch.Database, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return pitch.Database{"猫-ねこ": {pitch.PlainAccent{Pos: 1}}}, nil
	})

	reqCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := d.Database(reqCtx)
		firstErr <- err
	}()
	<-started

	secondErr := make(chan error, 1)
	go func() {
		_, err := d.Database(context.Background())
		secondErr <- err
	}()

	cancel()
	time.Sleep(20 * time.Millisecond)
	close(release)

	assert.NoError(t, <-firstErr)
	assert.NoError(t, <-secondErr)
}

func TestDictionary_RetriesAfterFailure(t *testing.T) {
	var calls atomic.Int32
	d := pitch.NewDictionary(func(ctx context.Context) (pitch.Database, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("not yet")
		}
		return pitch.Database{}, nil
	})

	_, err := d.Database(context.Background())
	assert.Error(t, err)

	_, err = d.Database(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accents.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"橋-はし": [2], "箸-はし": [1]}`), 0o644))

	db, err := pitch.FileLoader(path)(context.Background())

	require.NoError(t, err)
	assert.Len(t, db, 2)
	assert.Equal(t, pitch.Entries{pitch.PlainAccent{Pos: 2}}, db["橋-はし"])
}

func TestFileLoader_EmptyPath(t *testing.T) {
	db, err := pitch.FileLoader("")(context.Background())

	require.NoError(t, err)
	assert.Empty(t, db)
}

func TestFileLoader_Missing(t *testing.T) {
	_, err := pitch.FileLoader(filepath.Join(t.TempDir(), "nope.json"))(context.Background())

	assert.Error(t, err)
}
