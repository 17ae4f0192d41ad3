package wordle

import (
	"fmt"
	"os"
	"strings"

	"github.com/BrendonShi/wordle-ai-agent/words"
)

const (
	ansiReset   string = "\x1b[0m"
	ansiGreen   string = "\x1b[42;30m"
	ansiYellow  string = "\x1b[43;30m"
	ansiGray    string = "\x1b[100;37m"
	ansiDim     string = "\x1b[2m"
	boardIndent string = "  "
)

// colour returns the ANSI colour code used to draw a letter with the
// argument status.
func colour(status LetterStatus) string {
	switch status {
	case Correct:
		return ansiGreen
	case Present:
		return ansiYellow
	case Absent:
		return ansiGray
	default:
		return ansiDim
	}
}

// Render draws the current board and alphabet knowledge to standard
// output using ANSI colours: green for correct letters, yellow for
// present letters, and gray for absent letters.
func (w *Wordle) Render() {
	var builder strings.Builder

	builder.WriteString(w.String())
	builder.WriteString("\n")

	for row := 0; row < MaxGuesses; row++ {
		builder.WriteString(boardIndent)
		if row < len(w.guesses) {
			guess := w.guesses[row]
			feedback := w.feedbacks[row]
			for i := 0; i < words.WordLength; i++ {
				fmt.Fprintf(&builder, "%v %c %v", colour(feedback[i]),
					guess.Letter(i)-'a'+'A', ansiReset)
			}
		} else {
			for i := 0; i < words.WordLength; i++ {
				fmt.Fprintf(&builder, "%v _ %v", ansiDim, ansiReset)
			}
		}
		builder.WriteString("\n")
	}

	builder.WriteString(boardIndent)
	for i := 0; i < words.AlphabetSize; i++ {
		fmt.Fprintf(&builder, "%v%c%v", colour(w.alphabet[i]),
			words.IndexLetter(i)-'a'+'A', ansiReset)
	}
	builder.WriteString("\n")

	fmt.Fprint(os.Stdout, builder.String())
}
