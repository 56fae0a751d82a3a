package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOSADistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"tree", "tree", 0},
		{"particle", "particles", 1},
		{"cat", "bat", 1},
		{"ab", "ba", 1},
		{"abcdef", "abdcef", 1},
		// OSA forbids editing a transposed pair again; true Damerau gives 2.
		{"ca", "abc", 3},
		{"kitten", "sitting", 3},
		{"たべる", "たべろ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, osaDistance([]rune(tt.a), []rune(tt.b)))
			assert.Equal(t, tt.expected, osaDistance([]rune(tt.b), []rune(tt.a)), "distance should be symmetric")
		})
	}
}

func TestTolerance(t *testing.T) {
	tests := []struct {
		length   int
		expected int
	}{
		{0, 0}, {1, 0}, {3, 0},
		{4, 1}, {5, 1},
		{6, 2}, {7, 2},
		{8, 3}, {9, 3}, {13, 3},
		{14, 4}, {21, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tolerance(tt.length), "length %d", tt.length)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "big tree", normalize("  Big \t\n TREE  "))
	assert.Equal(t, "tree", normalize("ｔｒｅｅ"))
	assert.Equal(t, "", normalize("   "))
}
