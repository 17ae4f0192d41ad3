package wordle

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	ts "github.com/BrendonShi/wordle-ai-agent/timestep"
	"github.com/BrendonShi/wordle-ai-agent/words"
)

// testDictionary returns a small deterministic vocabulary
func testDictionary(t *testing.T) *words.Dictionary {
	t.Helper()

	input := strings.Join([]string{
		"alloy", "bench", "crane", "drape", "ghost", "lolly", "slate",
	}, "\n")

	dict, err := words.New(strings.NewReader(input))
	if err != nil {
		t.Fatalf("could not create test dictionary: %v", err)
	}
	return dict
}

// newTestGame returns a Wordle environment playing over the test
// vocabulary with a fixed secret word
func newTestGame(t *testing.T, secret words.Word) *Wordle {
	t.Helper()

	e, _, err := New(NewSolve(), testDictionary(t), 1.0, 42)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}

	game := e.(*Wordle)
	game.secret = secret
	return game
}

func TestResetState(t *testing.T) {
	game := newTestGame(t, "crane")

	step, err := game.Reset()
	if err != nil {
		t.Fatalf("could not reset: %v", err)
	}

	if !step.First() {
		t.Error("first timestep is not First")
	}
	if step.Number != 0 {
		t.Errorf("first timestep number = %v, want 0", step.Number)
	}

	obs := step.Observation
	if obs.Len() != ObservationDims {
		t.Fatalf("observation length = %v, want %v", obs.Len(),
			ObservationDims)
	}
	for i := 0; i < remainingIndex; i++ {
		if LetterStatus(obs.AtVec(i)) != Empty {
			t.Errorf("observation index %v = %v, want %v", i, obs.AtVec(i),
				Empty)
		}
	}
	if int(obs.AtVec(remainingIndex)) != MaxGuesses {
		t.Errorf("guesses remaining = %v, want %v", obs.AtVec(remainingIndex),
			MaxGuesses)
	}
}

func TestWinRewards(t *testing.T) {
	game := newTestGame(t, "alloy")

	wantRewards := []float64{StepReward, StepReward, WinReward}
	guesses := []words.Word{"crane", "slate", "alloy"}

	var step ts.TimeStep
	var last bool
	var err error
	for i, guess := range guesses {
		step, last, err = game.StepWord(guess)
		if err != nil {
			t.Fatalf("step %v failed: %v", i, err)
		}
		if step.Reward != wantRewards[i] {
			t.Errorf("step %v reward = %v, want %v", i, step.Reward,
				wantRewards[i])
		}
	}

	if !last {
		t.Error("winning step is not last")
	}
	if !step.Last() {
		t.Error("winning timestep is not Last")
	}
	if step.EndType() != ts.TerminalStateReached {
		t.Errorf("winning end type = %v, want %v", step.EndType(),
			ts.TerminalStateReached)
	}
	if step.Discount != 0 {
		t.Errorf("terminal discount = %v, want 0", step.Discount)
	}
	if !game.AtGoal(step.Observation) {
		t.Error("AtGoal() = false on a solved board")
	}
}

func TestWinOnFinalGuess(t *testing.T) {
	game := newTestGame(t, "alloy")

	for i := 0; i < MaxGuesses-1; i++ {
		if _, _, err := game.StepWord("crane"); err != nil {
			t.Fatalf("step %v failed: %v", i, err)
		}
	}

	step, last, err := game.StepWord("alloy")
	if err != nil {
		t.Fatalf("final step failed: %v", err)
	}

	if !last {
		t.Error("final step is not last")
	}
	if step.Reward != WinReward {
		t.Errorf("reward = %v, want %v", step.Reward, WinReward)
	}
	// A win on the final guess is a terminal state, not a timeout
	if step.EndType() != ts.TerminalStateReached {
		t.Errorf("end type = %v, want %v", step.EndType(),
			ts.TerminalStateReached)
	}
}

func TestLossRewards(t *testing.T) {
	game := newTestGame(t, "alloy")

	cumulative := 0.0
	var step ts.TimeStep
	var last bool
	var err error
	for i := 0; i < MaxGuesses; i++ {
		step, last, err = game.StepWord("crane")
		if err != nil {
			t.Fatalf("step %v failed: %v", i, err)
		}
		cumulative += step.Reward

		if i < MaxGuesses-1 {
			if last {
				t.Fatalf("episode ended early on step %v", i)
			}
			if step.Reward != StepReward {
				t.Errorf("step %v reward = %v, want %v", i, step.Reward,
					StepReward)
			}
			if step.Discount != 1.0 {
				t.Errorf("step %v discount = %v, want 1.0", i, step.Discount)
			}
		}
	}

	if !last {
		t.Error("episode did not end after exhausting guesses")
	}
	if step.EndType() != ts.Timeout {
		t.Errorf("end type = %v, want %v", step.EndType(), ts.Timeout)
	}
	if step.Reward != LossReward {
		t.Errorf("final reward = %v, want %v", step.Reward, LossReward)
	}
	if step.Discount != 0 {
		t.Errorf("terminal discount = %v, want 0", step.Discount)
	}

	wantReturn := float64(MaxGuesses-1)*StepReward + LossReward
	if math.Abs(cumulative-wantReturn) > 1e-12 {
		t.Errorf("cumulative reward = %v, want %v", cumulative, wantReturn)
	}
	if game.AtGoal(step.Observation) {
		t.Error("AtGoal() = true on a lost board")
	}
}

func TestStepAfterEpisodeEnds(t *testing.T) {
	game := newTestGame(t, "alloy")

	if _, _, err := game.StepWord("alloy"); err != nil {
		t.Fatalf("winning step failed: %v", err)
	}

	before := game.CurrentTimeStep()
	_, _, err := game.StepWord("crane")
	if err == nil {
		t.Fatal("expected error stepping a finished episode")
	}
	if !IsInvalidState(err) {
		t.Errorf("expected invalid state error, got %v", err)
	}

	after := game.CurrentTimeStep()
	if before.Number != after.Number {
		t.Error("failed step mutated the current timestep")
	}
}

func TestInvalidActionLeavesStateUntouched(t *testing.T) {
	game := newTestGame(t, "alloy")

	if _, _, err := game.StepWord("crane"); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	before := game.CurrentTimeStep()

	badActions := []*mat.VecDense{
		mat.NewVecDense(1, []float64{-1}),
		mat.NewVecDense(1, []float64{float64(game.Dictionary().Len())}),
		mat.NewVecDense(2, []float64{0, 1}),
	}
	for _, action := range badActions {
		_, _, err := game.Step(action)
		if err == nil {
			t.Fatalf("expected error for action %v", action)
		}
		if !IsInvalidInput(err) {
			t.Errorf("expected invalid input error for action %v, got %v",
				action, err)
		}
	}

	after := game.CurrentTimeStep()
	if before.Number != after.Number {
		t.Error("failed step mutated the current timestep")
	}
	if !mat.Equal(before.Observation, after.Observation) {
		t.Error("failed step mutated the observation")
	}
}

func TestUnknownWord(t *testing.T) {
	game := newTestGame(t, "alloy")

	_, _, err := game.StepWord("zonal")
	if err == nil {
		t.Fatal("expected error for out-of-vocabulary guess")
	}
	if !IsInvalidInput(err) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestObservationTracksAlphabet(t *testing.T) {
	game := newTestGame(t, "lolly")

	step, _, err := game.StepWord("alloy")
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	obs := step.Observation

	// Feedback section: alloy vs lolly
	want := []LetterStatus{Absent, Present, Correct, Present, Correct}
	for i, status := range want {
		got := LetterStatus(obs.AtVec(feedbackOffset + i))
		if got != status {
			t.Errorf("feedback position %v = %v, want %v", i, got, status)
		}
	}

	// Alphabet section: l was seen both Present and Correct, the
	// stronger status wins
	lStatus := LetterStatus(obs.AtVec(alphabetOffset + words.LetterIndex('l')))
	if lStatus != Correct {
		t.Errorf("alphabet status for l = %v, want %v", lStatus, Correct)
	}
	aStatus := LetterStatus(obs.AtVec(alphabetOffset + words.LetterIndex('a')))
	if aStatus != Absent {
		t.Errorf("alphabet status for a = %v, want %v", aStatus, Absent)
	}
	zStatus := LetterStatus(obs.AtVec(alphabetOffset + words.LetterIndex('z')))
	if zStatus != Empty {
		t.Errorf("alphabet status for z = %v, want %v", zStatus, Empty)
	}

	if int(obs.AtVec(remainingIndex)) != MaxGuesses-1 {
		t.Errorf("guesses remaining = %v, want %v", obs.AtVec(remainingIndex),
			MaxGuesses-1)
	}

	// Observations must not alias between steps
	next, _, err := game.StepWord("crane")
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if obs == next.Observation {
		t.Error("observation aliased between steps")
	}
	if int(obs.AtVec(remainingIndex)) != MaxGuesses-1 {
		t.Error("earlier observation mutated by later step")
	}
}

func TestSeededSecretsReproducible(t *testing.T) {
	dict := testDictionary(t)

	first, _, err := New(NewSolve(), dict, 1.0, 7)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}
	second, _, err := New(NewSolve(), dict, 1.0, 7)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}

	a := first.(*Wordle)
	b := second.(*Wordle)

	for i := 0; i < 25; i++ {
		if a.Secret() != b.Secret() {
			t.Fatalf("episode %v: secrets diverged: %v != %v", i, a.Secret(),
				b.Secret())
		}
		if !dict.Contains(a.Secret()) {
			t.Fatalf("episode %v: secret %v not in vocabulary", i, a.Secret())
		}
		if _, err := a.Reset(); err != nil {
			t.Fatalf("could not reset: %v", err)
		}
		if _, err := b.Reset(); err != nil {
			t.Fatalf("could not reset: %v", err)
		}
	}
}

func TestSpecs(t *testing.T) {
	game := newTestGame(t, "crane")

	actionSpec := game.ActionSpec()
	if actionSpec.Shape.Len() != 1 {
		t.Errorf("action dims = %v, want 1", actionSpec.Shape.Len())
	}
	if actionSpec.LowerBound.AtVec(0) != 0 {
		t.Errorf("action lower bound = %v, want 0",
			actionSpec.LowerBound.AtVec(0))
	}
	wantUpper := float64(game.Dictionary().Len() - 1)
	if actionSpec.UpperBound.AtVec(0) != wantUpper {
		t.Errorf("action upper bound = %v, want %v",
			actionSpec.UpperBound.AtVec(0), wantUpper)
	}

	obsSpec := game.ObservationSpec()
	if obsSpec.Shape.Len() != ObservationDims {
		t.Errorf("observation dims = %v, want %v", obsSpec.Shape.Len(),
			ObservationDims)
	}
	if int(obsSpec.UpperBound.AtVec(remainingIndex)) != MaxGuesses {
		t.Errorf("remaining upper bound = %v, want %v",
			obsSpec.UpperBound.AtVec(remainingIndex), MaxGuesses)
	}
}
