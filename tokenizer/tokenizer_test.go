package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		words    []string
		wordsEOL []string
	}{
		{
			name:     "Three words",
			input:    "pink fluffy unicorns",
			words:    []string{"pink", "fluffy", "unicorns"},
			wordsEOL: []string{"pink fluffy unicorns", "fluffy unicorns", "unicorns"},
		},
		{
			name:     "Whitespace runs are collapsed",
			input:    "  dancing \t on\n\nrainbows  ",
			words:    []string{"dancing", "on", "rainbows"},
			wordsEOL: []string{"dancing on rainbows", "on rainbows", "rainbows"},
		},
		{
			name:     "Single word",
			input:    "greet",
			words:    []string{"greet"},
			wordsEOL: []string{"greet"},
		},
		{
			name:     "Empty string",
			input:    "",
			words:    []string{},
			wordsEOL: []string{},
		},
		{
			name:     "Only whitespace",
			input:    " \t ",
			words:    []string{},
			wordsEOL: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			words, wordsEOL := Split(tt.input)
			req.Equal(tt.words, words)
			req.Equal(tt.wordsEOL, wordsEOL)
		})
	}
}

func TestSplit_Parallel_Lists(t *testing.T) {
	req := require.New(t)
	inputs := []string{
		"",
		"a",
		"!greet Alice",
		"one  two   three    four",
		"\tleading and trailing\t",
		"été  avec   un badger",
	}

	for _, input := range inputs {
		words, wordsEOL := Split(input)

		// Then both lists have the same length
		req.Len(wordsEOL, len(words), "input=%q", input)

		// And every entry is the rest of the line from that word
		for i := range words {
			req.Equal(strings.Join(words[i:], " "), wordsEOL[i], "input=%q index=%d", input, i)
		}

		// And the first entry is the input with whitespace runs collapsed
		if len(words) > 0 {
			req.Equal(strings.Join(strings.Fields(input), " "), wordsEOL[0])
		}
	}
}
