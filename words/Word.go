// Package words implements the fixed vocabulary of five-letter words
// used both as secret words and as legal guesses.
package words

import (
	"fmt"
	"strings"
)

// WordLength is the number of letters in every word in the vocabulary
const WordLength = 5

// AlphabetSize is the number of letters words may be composed of
const AlphabetSize = 26

// Word is a lowercase word of exactly WordLength ASCII letters
type Word string

// NewWord validates and normalizes a string into a Word. The returned
// Word is always lowercase. An error is returned if the string is not
// exactly WordLength ASCII letters.
func NewWord(s string) (Word, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != WordLength {
		return "", fmt.Errorf("newword: word must have %d letters "+
			"\n\twant(%d) \n\thave(%d)", WordLength, WordLength, len(s))
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return "", fmt.Errorf("newword: illegal letter %q in word %q",
				s[i], s)
		}
	}
	return Word(s), nil
}

// Letter returns the letter at position i
func (w Word) Letter(i int) byte {
	return w[i]
}

func (w Word) String() string {
	return string(w)
}

// LetterIndex converts a lowercase letter 'a'-'z' to an index 0-25
func LetterIndex(letter byte) int {
	return int(letter - 'a')
}

// IndexLetter converts an index 0-25 to a lowercase letter 'a'-'z'
func IndexLetter(i int) byte {
	return byte(i) + 'a'
}
