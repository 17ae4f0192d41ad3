// Package wordle implements the game of Wordle as a reinforcement
// learning environment.
//
// In Wordle, a secret five-letter word is drawn at the start of each
// episode. On every step the agent submits a guess word from a fixed
// vocabulary and receives per-letter feedback: whether each guessed
// letter is in the correct position, present elsewhere in the secret,
// or absent from the secret altogether. The episode ends when the
// secret is guessed or when the guess budget runs out.
package wordle

import (
	"fmt"

	"github.com/BrendonShi/wordle-ai-agent/words"
)

// LetterStatus is the evaluation result for a single letter of a
// guess. The numeric values are stable because letter statuses are
// embedded directly in observation vectors.
type LetterStatus int

const (
	// Empty marks a feedback slot before any guess has been made
	Empty LetterStatus = iota

	// Absent marks a letter that does not occur in the secret (or
	// whose occurrences in the secret are all consumed by other
	// letters of the guess)
	Absent

	// Present marks a letter that occurs in the secret at a different
	// position
	Present

	// Correct marks a letter in the correct position
	Correct
)

func (s LetterStatus) String() string {
	switch s {
	case Absent:
		return "Absent"
	case Present:
		return "Present"
	case Correct:
		return "Correct"
	default:
		return "Empty"
	}
}

// Feedback is the per-position evaluation of one guess against the
// secret word. Feedback always has words.WordLength entries.
type Feedback []LetterStatus

// newEmptyFeedback returns the sentinel Feedback observed before the
// first guess of an episode
func newEmptyFeedback() Feedback {
	return make(Feedback, words.WordLength)
}

// AllCorrect returns whether every position of the Feedback is Correct
func (f Feedback) AllCorrect() bool {
	for _, status := range f {
		if status != Correct {
			return false
		}
	}
	return true
}

// Evaluate scores guess against secret using the two-pass Wordle rule.
//
// The first pass marks exact position matches as Correct and consumes
// the matched secret positions. The second pass marks each remaining
// guess letter Present if it occurs at some yet-unconsumed secret
// position, consuming the earliest such position, and Absent
// otherwise. Consuming secret positions guarantees that, for any
// letter, the number of Correct and Present marks never exceeds the
// number of times that letter occurs in the secret.
//
// Evaluate is a pure function. It returns an error if either word does
// not have exactly words.WordLength lowercase letters.
func Evaluate(guess, secret words.Word) (Feedback, error) {
	if _, err := words.NewWord(guess.String()); err != nil {
		return nil, fmt.Errorf("evaluate: invalid guess: %v", err)
	}
	if _, err := words.NewWord(secret.String()); err != nil {
		return nil, fmt.Errorf("evaluate: invalid secret: %v", err)
	}

	feedback := newEmptyFeedback()
	var consumed [words.WordLength]bool

	// Pass 1: exact matches
	for i := 0; i < words.WordLength; i++ {
		if guess.Letter(i) == secret.Letter(i) {
			feedback[i] = Correct
			consumed[i] = true
		}
	}

	// Pass 2: misplaced letters, matched against the earliest
	// unconsumed occurrence in the secret
	for i := 0; i < words.WordLength; i++ {
		if feedback[i] == Correct {
			continue
		}

		feedback[i] = Absent
		for j := 0; j < words.WordLength; j++ {
			if !consumed[j] && secret.Letter(j) == guess.Letter(i) {
				feedback[i] = Present
				consumed[j] = true
				break
			}
		}
	}

	return feedback, nil
}
