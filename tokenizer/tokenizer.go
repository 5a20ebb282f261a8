// Package tokenizer splits message text into words.
package tokenizer

import "strings"

// Split returns the whitespace-delimited words of text together with a
// parallel slice where wordsEOL[i] holds words[i:] joined by single spaces.
//
//	Split("pink fluffy unicorns")
//	// words:    ["pink", "fluffy", "unicorns"]
//	// wordsEOL: ["pink fluffy unicorns", "fluffy unicorns", "unicorns"]
//
// Both slices always have the same length and are empty for blank input.
func Split(text string) (words []string, wordsEOL []string) {
	words = strings.Fields(text)
	wordsEOL = make([]string, len(words))
	if len(words) == 0 {
		return words, wordsEOL
	}

	last := len(words) - 1
	wordsEOL[last] = words[last]
	for i := last - 1; i >= 0; i-- {
		wordsEOL[i] = words[i] + " " + wordsEOL[i+1]
	}
	return words, wordsEOL
}
