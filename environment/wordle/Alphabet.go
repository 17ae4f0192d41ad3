package wordle

import "github.com/BrendonShi/wordle-ai-agent/words"

// alphabetStatus tracks the best known LetterStatus of every letter of
// the alphabet within a single episode. Statuses only ever upgrade
// (Empty -> Absent/Present -> Correct); a letter that was ever marked
// Present or Correct is never downgraded, even if a later guess uses
// the same letter in a position where it is marked Absent.
type alphabetStatus [words.AlphabetSize]LetterStatus

// update upgrades the tracked statuses with the feedback of one guess
func (a *alphabetStatus) update(guess words.Word, feedback Feedback) {
	for i := 0; i < words.WordLength; i++ {
		letter := words.LetterIndex(guess.Letter(i))
		if feedback[i] > a[letter] {
			a[letter] = feedback[i]
		}
	}
}
