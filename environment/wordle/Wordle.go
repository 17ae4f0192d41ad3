package wordle

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	env "github.com/BrendonShi/wordle-ai-agent/environment"
	ts "github.com/BrendonShi/wordle-ai-agent/timestep"
	"github.com/BrendonShi/wordle-ai-agent/words"
)

// Wordle implements the game of Wordle as an environment.
//
// State observations are ObservationDims-dimensional vectors holding,
// in order: the feedback of the previous guess (words.WordLength
// entries, all Empty on the first step of an episode), the best known
// status of each letter of the alphabet (words.AlphabetSize entries),
// and the number of guesses remaining.
//
// Actions are 1-dimensional and discrete in [0, vocabulary size): an
// action selects the word at that index of the environment's sorted
// Dictionary. Guesses may also be submitted directly as words through
// StepWord.
//
// Each episode's secret word is drawn from the Dictionary by a seeded
// categorical distribution owned by the environment, so two
// environments constructed with the same seed and Dictionary play the
// same sequence of secrets.
//
// Wordle implements the environment.Environment interface.
type Wordle struct {
	env.Task
	dict     *words.Dictionary
	selector distuv.Categorical

	secret       words.Word
	alphabet     alphabetStatus
	lastFeedback Feedback

	guesses   []words.Word
	feedbacks []Feedback

	discount    float64
	currentStep ts.TimeStep
}

// New creates a new Wordle environment playing the argument task over
// the argument Dictionary, returning the environment along with the
// first timestep of the first episode.
func New(t env.Task, dict *words.Dictionary, discount float64,
	seed uint64) (env.Environment, ts.TimeStep, error) {
	if dict == nil || dict.Len() == 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: empty dictionary")
	}

	weights := make([]float64, dict.Len())
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}
	source := rand.NewSource(seed)
	selector := distuv.NewCategorical(weights, source)

	wordleEnv := &Wordle{
		Task:     t,
		dict:     dict,
		selector: selector,
		discount: discount,
	}

	firstStep, err := wordleEnv.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: could not reset: %v", err)
	}

	return wordleEnv, firstStep, nil
}

// Reset begins a new episode, drawing a fresh secret word, restoring
// the guess budget, and clearing all letter knowledge
func (w *Wordle) Reset() (ts.TimeStep, error) {
	secret, err := w.dict.At(int(w.selector.Rand()))
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not draw secret: %v",
			err)
	}

	w.secret = secret
	w.alphabet = alphabetStatus{}
	w.lastFeedback = newEmptyFeedback()
	w.guesses = w.guesses[:0]
	w.feedbacks = w.feedbacks[:0]

	step := ts.New(ts.First, 0, w.discount, w.Start(), 0)
	w.currentStep = step

	return step, nil
}

// Step takes one environmental step given a 1-dimensional action
// holding an index into the environment's Dictionary. Step returns the
// next timestep and whether that timestep is the last in the episode.
//
// Step fails with an invalid input error if the action is not a legal
// word index and with an invalid state error if the current episode
// has already ended. On failure no state is mutated.
func (w *Wordle) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action.Len() != 1 {
		return ts.TimeStep{}, false, &GameError{
			Op:  "step",
			Err: errBadAction,
		}
	}

	index := int(action.AtVec(0))
	guess, err := w.dict.At(index)
	if err != nil {
		return ts.TimeStep{}, false, &GameError{
			Op:  "step",
			Err: errBadAction,
		}
	}

	return w.step(guess, action)
}

// StepWord takes one environmental step given a guess word. The guess
// must be in the environment's Dictionary.
func (w *Wordle) StepWord(guess words.Word) (ts.TimeStep, bool, error) {
	index, ok := w.dict.Index(guess)
	if !ok {
		return ts.TimeStep{}, false, &GameError{
			Op:  "stepword",
			Err: errUnknownWord,
		}
	}

	action := mat.NewVecDense(1, []float64{float64(index)})
	return w.step(guess, action)
}

// step applies a validated guess to the board. All validation happens
// before the first state mutation so that a failed step leaves the
// episode untouched.
func (w *Wordle) step(guess words.Word,
	action *mat.VecDense) (ts.TimeStep, bool, error) {
	if w.currentStep.Observation == nil {
		return ts.TimeStep{}, false, &GameError{Op: "step", Err: errNotReset}
	}
	if w.currentStep.Last() {
		return ts.TimeStep{}, false, &GameError{Op: "step", Err: errEpisodeOver}
	}

	feedback, err := Evaluate(guess, w.secret)
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %v", err)
	}

	w.alphabet.update(guess, feedback)
	w.lastFeedback = feedback
	w.guesses = append(w.guesses, guess)
	w.feedbacks = append(w.feedbacks, feedback)

	nextObs := w.observation()
	reward := w.GetReward(w.currentStep.Observation, action, nextObs)
	nextStep := ts.New(ts.Mid, reward, w.discount, nextObs,
		w.currentStep.Number+1)

	last := w.End(&nextStep)
	if last {
		// No value may be bootstrapped past the end of an episode
		nextStep.Discount = 0
	}
	w.currentStep = nextStep

	return nextStep, last, nil
}

// observation constructs a fresh observation vector for the current
// board. Observations are never aliased between steps: each returned
// vector is owned by its timestep.
func (w *Wordle) observation() *mat.VecDense {
	obs := mat.NewVecDense(ObservationDims, nil)

	for i := 0; i < words.WordLength; i++ {
		obs.SetVec(feedbackOffset+i, float64(w.lastFeedback[i]))
	}
	for i := 0; i < words.AlphabetSize; i++ {
		obs.SetVec(alphabetOffset+i, float64(w.alphabet[i]))
	}
	obs.SetVec(remainingIndex, float64(MaxGuesses-len(w.guesses)))

	return obs
}

// CurrentTimeStep returns the last TimeStep returned by Reset or Step
func (w *Wordle) CurrentTimeStep() ts.TimeStep {
	return w.currentStep
}

// Secret returns the secret word of the current episode. The secret is
// not part of any observation; it is exposed for evaluation harnesses
// and rendering only.
func (w *Wordle) Secret() words.Word {
	return w.secret
}

// Dictionary returns the vocabulary the environment plays over
func (w *Wordle) Dictionary() *words.Dictionary {
	return w.dict
}

// ActionSpec returns the action specification of the environment
func (w *Wordle) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0.0})
	upperBound := mat.NewVecDense(1, []float64{float64(w.dict.Len() - 1)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment
func (w *Wordle) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)

	lower := make([]float64, ObservationDims)
	upper := make([]float64, ObservationDims)
	for i := 0; i < remainingIndex; i++ {
		upper[i] = float64(Correct)
	}
	upper[remainingIndex] = float64(MaxGuesses)

	lowerBound := mat.NewVecDense(ObservationDims, lower)
	upperBound := mat.NewVecDense(ObservationDims, upper)

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discounting specification of the environment
func (w *Wordle) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{w.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// String returns a string representation of the environment
func (w *Wordle) String() string {
	return fmt.Sprintf("Wordle  |  Guesses: %d of %d  |  Vocabulary: %d",
		len(w.guesses), MaxGuesses, w.dict.Len())
}
