package wordle

import (
	"gonum.org/v1/gonum/mat"

	env "github.com/BrendonShi/wordle-ai-agent/environment"
	ts "github.com/BrendonShi/wordle-ai-agent/timestep"
	"github.com/BrendonShi/wordle-ai-agent/words"
)

const (
	// MaxGuesses is the number of guesses allowed per episode
	MaxGuesses int = 6

	// StepReward is the reward for a non-terminal guess. The small
	// penalty encourages solving in as few guesses as possible.
	StepReward float64 = -0.1

	// WinReward is the reward for guessing the secret word
	WinReward float64 = 1.0

	// LossReward is the reward for running out of guesses
	LossReward float64 = -1.0
)

// Observation layout. Observations are flat vectors holding the
// feedback of the previous guess, the best known status of every
// letter of the alphabet, and the number of guesses remaining.
const (
	feedbackOffset  int = 0
	alphabetOffset  int = words.WordLength
	remainingIndex  int = words.WordLength + words.AlphabetSize
	ObservationDims int = words.WordLength + words.AlphabetSize + 1
)

// Solve implements the standard Wordle task: guess the secret word
// within MaxGuesses guesses. Non-terminal guesses are penalized with
// StepReward, guessing the secret earns WinReward and ends the episode
// with a terminal state, and exhausting the guess budget earns
// LossReward and ends the episode with a timeout.
type Solve struct {
	winEnder  env.Ender
	lossEnder env.Ender
}

// NewSolve returns a new Solve task
func NewSolve() *Solve {
	winEnder := env.NewFunctionEnder(solved, ts.TerminalStateReached)
	lossEnder := env.NewStepLimit(MaxGuesses)

	return &Solve{
		winEnder:  winEnder,
		lossEnder: lossEnder,
	}
}

// Start returns the observation of a fresh episode: sentinel feedback,
// an all-Empty alphabet, and the full guess budget remaining.
func (s *Solve) Start() *mat.VecDense {
	obs := mat.NewVecDense(ObservationDims, nil)
	obs.SetVec(remainingIndex, float64(MaxGuesses))
	return obs
}

// GetReward returns the reward for transitioning to nextState
func (s *Solve) GetReward(_, _, nextState mat.Vector) float64 {
	if feedbackSolved(nextState) {
		return WinReward
	}
	if int(nextState.AtVec(remainingIndex)) <= 0 {
		return LossReward
	}
	return StepReward
}

// End determines whether the argument timestep ends its episode,
// modifying the timestep accordingly. Wins take precedence over the
// guess limit: solving the puzzle on the final guess is still a win.
func (s *Solve) End(t *ts.TimeStep) bool {
	if last := s.winEnder.End(t); last {
		return last
	}
	return s.lossEnder.End(t)
}

// AtGoal returns whether state is a solved board
func (s *Solve) AtGoal(state mat.Matrix) bool {
	rows, cols := state.Dims()
	if cols != 1 || rows < words.WordLength {
		return false
	}
	for i := 0; i < words.WordLength; i++ {
		if LetterStatus(state.At(feedbackOffset+i, 0)) != Correct {
			return false
		}
	}
	return true
}

// solved returns whether the feedback section of an observation is all
// Correct
func solved(obs *mat.VecDense) bool {
	return feedbackSolved(obs)
}

// feedbackSolved returns whether the feedback section of an
// observation vector is all Correct
func feedbackSolved(obs mat.Vector) bool {
	for i := 0; i < words.WordLength; i++ {
		if LetterStatus(obs.AtVec(feedbackOffset+i)) != Correct {
			return false
		}
	}
	return true
}
