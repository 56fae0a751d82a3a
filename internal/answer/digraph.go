package answer

import (
	"github.com/vytor/kanjiflash/internal/kana"
	"github.com/vytor/kanjiflash/internal/models"
)

// Digraph is a large kana written where the small one belongs, or the
// reverse.
type Digraph struct {
	Large string `json:"large"`
	Small string `json:"small"`
}

// largeForSmall maps each small kana to its full-size form.
var largeForSmall = map[rune]rune{
	'ぁ': 'あ', 'ぃ': 'い', 'ぅ': 'う', 'ぇ': 'え', 'ぉ': 'お',
	'ゃ': 'や', 'ゅ': 'ゆ', 'ょ': 'よ', 'っ': 'つ', 'ゎ': 'わ',
	'ゕ': 'か', 'ゖ': 'け',
	'ァ': 'ア', 'ィ': 'イ', 'ゥ': 'ウ', 'ェ': 'エ', 'ォ': 'オ',
	'ャ': 'ヤ', 'ュ': 'ユ', 'ョ': 'ヨ', 'ッ': 'ツ', 'ヮ': 'ワ',
	'ヵ': 'カ', 'ヶ': 'ケ',
}

// digraphPair returns the pair when a and b differ only by kana size.
func digraphPair(a, b rune) (Digraph, bool) {
	if large, ok := largeForSmall[a]; ok && large == b {
		return Digraph{Large: string(b), Small: string(a)}, true
	}
	if large, ok := largeForSmall[b]; ok && large == a {
		return Digraph{Large: string(a), Small: string(b)}, true
	}
	return Digraph{}, false
}

// MatchDigraph reports whether given differs from reference only by swapping
// a small kana for its large form (or the reverse). Repeats of the same pair
// are tolerated; any other difference fails the match.
func MatchDigraph(reference, given string) (Digraph, bool) {
	ref := []rune(reference)
	got := []rune(given)
	if len(ref) != len(got) {
		return Digraph{}, false
	}

	var found Digraph
	matched := false
	for i := range ref {
		if ref[i] == got[i] {
			continue
		}
		pair, ok := digraphPair(ref[i], got[i])
		if !ok {
			return Digraph{}, false
		}
		if matched && pair != found {
			return Digraph{}, false
		}
		found = pair
		matched = true
	}
	return found, matched
}

// MatchReadingDigraph runs MatchDigraph against a reading. On'yomi readings
// are also compared in katakana, since learners commonly type them that way.
func MatchReadingDigraph(reading models.Reading, given string) (Digraph, bool) {
	if d, ok := MatchDigraph(reading.Reading, given); ok {
		return d, true
	}
	if reading.Type == models.ReadingOnyomi {
		return MatchDigraph(kana.ToKatakana(reading.Reading), given)
	}
	return Digraph{}, false
}
