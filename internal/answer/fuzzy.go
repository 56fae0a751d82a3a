package answer

import (
	"math"
	"strings"

	"golang.org/x/text/width"
)

const noMatch = math.MaxInt

// normalize folds fullwidth input, lowercases and collapses whitespace.
func normalize(s string) string {
	s = width.Fold.String(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tolerance is the largest edit distance accepted for a reference of n runes.
func tolerance(n int) int {
	switch {
	case n <= 3:
		return 0
	case n <= 5:
		return 1
	case n <= 7:
		return 2
	default:
		return n/7 + 2
	}
}

// osaDistance is the optimal string alignment distance between a and b:
// insertions, deletions, substitutions and adjacent transpositions, with no
// substring edited twice.
func osaDistance(a, b []rune) int {
	m, n := len(a), len(b)
	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+1)
			}
		}
	}
	return d[m][n]
}

// score is the distance from answer to reference, or noMatch when it exceeds
// the reference's tolerance.
func score(answer []rune, reference string) int {
	ref := []rune(normalize(reference))
	limit := tolerance(len(ref))
	if diff := len(answer) - len(ref); diff > limit || -diff > limit {
		return noMatch
	}
	if d := osaDistance(answer, ref); d <= limit {
		return d
	}
	return noMatch
}

// best returns the lowest score over references and the reference that
// produced it.
func best(answer []rune, references []string) (int, string) {
	lowest, match := noMatch, ""
	for _, ref := range references {
		if s := score(answer, ref); s < lowest {
			lowest, match = s, ref
			if s == 0 {
				break
			}
		}
	}
	return lowest, match
}

// FuzzyMatch checks a free-text answer against accepted and rejected
// references. An answer is accepted only when its closest accepted reference
// is within tolerance and at least as close as every rejected reference;
// ties go to the accepted side. Inexact matches are resolved by policy.
func FuzzyMatch(given string, accepted, rejected []string, policy NearMatchPolicy) Verdict {
	v := Verdict{Given: given}
	answer := []rune(normalize(given))

	acceptedScore, match := best(answer, accepted)
	rejectedScore, _ := best(answer, rejected)
	if acceptedScore == noMatch || acceptedScore > rejectedScore {
		return v
	}

	v.Match = match
	if acceptedScore == 0 {
		v.OK = true
		return v
	}

	switch policy {
	case Accept:
		v.OK = true
	case AcceptNotify:
		v.OK = true
		v.NearMatch = true
		v.Reason = ReasonNearMatch
	case Retry:
		v.Retry = true
		v.NearMatch = true
		v.Reason = ReasonNearMatch
	case Reject:
	}
	return v
}
