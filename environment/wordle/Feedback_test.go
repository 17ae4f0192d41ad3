package wordle

import (
	"testing"

	"github.com/BrendonShi/wordle-ai-agent/words"
)

func TestEvaluateExactMatch(t *testing.T) {
	feedback, err := Evaluate("crane", "crane")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	for i, status := range feedback {
		if status != Correct {
			t.Errorf("position %v: got %v, want %v", i, status, Correct)
		}
	}
	if !feedback.AllCorrect() {
		t.Error("AllCorrect() = false for exact match")
	}
}

func TestEvaluateRepeatedLetters(t *testing.T) {
	tests := []struct {
		guess  words.Word
		secret words.Word
		want   Feedback
	}{
		// The guess has two l's against a secret with three: one is
		// placed correctly, the other is misplaced
		{"alloy", "lolly",
			Feedback{Absent, Present, Correct, Present, Correct}},
		// The guess has three l's against a secret with two: the
		// third l must not be marked Present
		{"lolly", "alloy",
			Feedback{Present, Present, Correct, Absent, Correct}},
		// Both letters of a doubled guess letter map to distinct
		// secret occurrences
		{"geese", "segue",
			Feedback{Present, Correct, Absent, Present, Correct}},
	}

	for _, test := range tests {
		feedback, err := Evaluate(test.guess, test.secret)
		if err != nil {
			t.Fatalf("evaluate(%v, %v) failed: %v", test.guess, test.secret,
				err)
		}

		for i := range feedback {
			if feedback[i] != test.want[i] {
				t.Errorf("evaluate(%v, %v) position %v: got %v, want %v",
					test.guess, test.secret, i, feedback[i], test.want[i])
			}
		}
	}
}

// TestEvaluateOccurrenceInvariant checks that for every letter, the
// number of non-Absent feedback entries never exceeds the number of
// occurrences of that letter in the secret.
func TestEvaluateOccurrenceInvariant(t *testing.T) {
	pairs := []struct {
		guess  words.Word
		secret words.Word
	}{
		{"lolly", "alloy"},
		{"alloy", "lolly"},
		{"eerie", "melee"},
		{"melee", "eerie"},
		{"aaaaa", "abbba"},
	}

	for _, pair := range pairs {
		feedback, err := Evaluate(pair.guess, pair.secret)
		if err != nil {
			t.Fatalf("evaluate(%v, %v) failed: %v", pair.guess, pair.secret,
				err)
		}

		var marked, available [words.AlphabetSize]int
		for i := 0; i < words.WordLength; i++ {
			available[words.LetterIndex(pair.secret.Letter(i))]++
			if feedback[i] != Absent {
				marked[words.LetterIndex(pair.guess.Letter(i))]++
			}
		}

		for letter := 0; letter < words.AlphabetSize; letter++ {
			if marked[letter] > available[letter] {
				t.Errorf("evaluate(%v, %v): letter %c marked %v times but "+
					"appears %v times in secret", pair.guess, pair.secret,
					words.IndexLetter(letter), marked[letter],
					available[letter])
			}
		}
	}
}

func TestEvaluateInvalidInput(t *testing.T) {
	if _, err := Evaluate("tooolong", "crane"); err == nil {
		t.Error("expected error for malformed guess")
	}
	if _, err := Evaluate("crane", "abc"); err == nil {
		t.Error("expected error for malformed secret")
	}
}

func TestAlphabetStatusMonotonic(t *testing.T) {
	var alphabet alphabetStatus

	// Mark 'l' as Present
	feedback, err := Evaluate("lolly", "alloy")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	alphabet.update("lolly", feedback)

	lIndex := words.LetterIndex('l')
	if alphabet[lIndex] != Correct {
		// lolly has a Correct l at position 2
		t.Fatalf("letter l: got %v, want %v", alphabet[lIndex], Correct)
	}

	// A later guess scoring the same letter lower must not downgrade
	// the recorded knowledge
	feedback, err = Evaluate("lemon", "crane")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	alphabet.update("lemon", feedback)

	if alphabet[lIndex] != Correct {
		t.Errorf("letter l downgraded: got %v, want %v", alphabet[lIndex],
			Correct)
	}

	eIndex := words.LetterIndex('e')
	if alphabet[eIndex] != Present {
		t.Errorf("letter e: got %v, want %v", alphabet[eIndex], Present)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Evaluate("alloy", "lolly"); err != nil {
			b.Fatalf("evaluate failed: %v", err)
		}
	}
}
