package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenizer(t *testing.T) {
	tok, err := NewTokenizer("", "")
	require.NoError(t, err)
	assert.IsType(t, heuristicTokenizer{}, tok, "empty scheme defaults to heuristic")

	tok, err = NewTokenizer(SchemeHeuristic, "any-model")
	require.NoError(t, err)
	assert.IsType(t, heuristicTokenizer{}, tok)

	_, err = NewTokenizer("wordpiece", "")
	assert.ErrorIs(t, err, ErrUnknownTokenizer)
}

func TestHeuristicTokenizer_Count(t *testing.T) {
	tok := heuristicTokenizer{}

	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"abcdefgh", 2},
		{"Sentence one.", 4},
		{"héllo", 2}, // five runes, not six bytes
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tok.Count(tt.text), "%q", tt.text)
	}
}

func TestHeuristicTokenizer_EncodeRoundTrip(t *testing.T) {
	tok := heuristicTokenizer{}

	texts := []string{
		"",
		"abc",
		"Sentence one. Sentence two.",
		"Héllo wörld, ça va très bien.",
		strings.Repeat("x", 1001),
	}

	for _, text := range texts {
		pieces := tok.Encode(text)
		assert.Len(t, pieces, tok.Count(text), "Count must agree with Encode for %q", text)
		assert.Equal(t, text, strings.Join(pieces, ""), "joining pieces must reconstruct the text")

		for i, piece := range pieces {
			if i < len(pieces)-1 {
				assert.Len(t, []rune(piece), heuristicRuneWidth)
			}
		}
	}
}
