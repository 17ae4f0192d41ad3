package deepq

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/BrendonShi/wordle-ai-agent/environment/wordle"
	"github.com/BrendonShi/wordle-ai-agent/expreplay"
	"github.com/BrendonShi/wordle-ai-agent/initwfn"
	"github.com/BrendonShi/wordle-ai-agent/network"
	"github.com/BrendonShi/wordle-ai-agent/solver"
	"github.com/BrendonShi/wordle-ai-agent/words"
)

// testAgent returns a small DeepQ agent acting in a Wordle environment
// with a 3-word vocabulary
func testAgent(t *testing.T, seed int64) (*DeepQ, *wordle.Wordle) {
	t.Helper()

	input := strings.Join([]string{"alloy", "crane", "slate"}, "\n")
	dict, err := words.New(strings.NewReader(input))
	if err != nil {
		t.Fatalf("could not create dictionary: %v", err)
	}

	e, _, err := wordle.New(wordle.NewSolve(), dict, 0.99, uint64(seed))
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}

	adam, err := solver.NewDefaultAdam(0.01, 2)
	if err != nil {
		t.Fatalf("could not create solver: %v", err)
	}
	init, err := initwfn.NewGlorotU(1.0)
	if err != nil {
		t.Fatalf("could not create weight initializer: %v", err)
	}

	config := Config{
		PolicyLayers: []int{8},
		Biases:       []bool{true},
		Activations:  []*network.Activation{network.ReLU()},
		Solver:       adam,
		InitWFn:      init,

		Epsilon: 0.0,

		ExpReplay: expreplay.Config{
			RemoveMethod:      expreplay.Fifo,
			SampleMethod:      expreplay.Fifo,
			RemoveSize:        1,
			SampleSize:        2,
			MaxReplayCapacity: 10,
			MinReplayCapacity: 1,
		},

		Tau:                  1.0,
		TargetUpdateInterval: 1,
	}

	agent, err := New(e, config, seed)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}
	return agent, e.(*wordle.Wordle)
}

// TestObserveStoresTerminalTransition plays a winning episode and
// checks that the transition into the terminal state, which carries
// the win reward, reaches the replay buffer.
func TestObserveStoresTerminalTransition(t *testing.T) {
	agent, game := testAgent(t, 42)
	defer agent.Close()

	first, err := game.Reset()
	if err != nil {
		t.Fatalf("could not reset environment: %v", err)
	}
	if err := agent.ObserveFirst(first); err != nil {
		t.Fatalf("could not observe first timestep: %v", err)
	}

	secretIndex, ok := game.Dictionary().Index(game.Secret())
	if !ok {
		t.Fatal("secret word not in vocabulary")
	}
	otherIndex := (secretIndex + 1) % game.Dictionary().Len()

	// A wrong guess followed by the secret: a 2-step winning episode
	action := mat.NewVecDense(1, []float64{float64(otherIndex)})
	step, _, err := game.Step(action)
	if err != nil {
		t.Fatalf("could not step environment: %v", err)
	}
	if err := agent.Observe(action, step); err != nil {
		t.Fatalf("could not observe: %v", err)
	}

	action = mat.NewVecDense(1, []float64{float64(secretIndex)})
	step, _, err = game.Step(action)
	if err != nil {
		t.Fatalf("could not step environment: %v", err)
	}
	if !step.Last() {
		t.Fatal("winning step did not end the episode")
	}
	if err := agent.Observe(action, step); err != nil {
		t.Fatalf("could not observe: %v", err)
	}

	if agent.replay.Capacity() != 2 {
		t.Fatalf("replay buffer holds %v transitions, want 2",
			agent.replay.Capacity())
	}

	_, _, rewards, discounts, _, _, err := agent.replay.Sample()
	if err != nil {
		t.Fatalf("could not sample replay buffer: %v", err)
	}

	// A FiFo sampler returns the transitions in insertion order
	if rewards[0] != wordle.StepReward {
		t.Errorf("first reward = %v, want %v", rewards[0], wordle.StepReward)
	}
	if rewards[1] != wordle.WinReward {
		t.Errorf("terminal reward = %v, want %v", rewards[1],
			wordle.WinReward)
	}
	if discounts[1] != 0 {
		t.Errorf("terminal discount = %v, want 0: the update target "+
			"would bootstrap past the end of the episode", discounts[1])
	}
}

// TestGobRoundTrip checks that an encoded agent restores its learned
// weights and exploration rate into another agent.
func TestGobRoundTrip(t *testing.T) {
	first, _ := testAgent(t, 3)
	defer first.Close()
	second, _ := testAgent(t, 5)
	defer second.Close()

	first.trainNet.SetEpsilon(0.25)

	encoded, err := first.GobEncode()
	if err != nil {
		t.Fatalf("could not encode agent: %v", err)
	}
	if err := second.GobDecode(encoded); err != nil {
		t.Fatalf("could not decode agent: %v", err)
	}

	if second.trainNet.Epsilon() != 0.25 {
		t.Errorf("decoded epsilon = %v, want 0.25",
			second.trainNet.Epsilon())
	}

	want := first.trainNet.Learnables()
	got := second.trainNet.Learnables()
	if len(want) != len(got) {
		t.Fatalf("decoded agent has %v learnables, want %v", len(got),
			len(want))
	}
	for i := range want {
		wantData := want[i].Value().Data().([]float64)
		gotData := got[i].Value().Data().([]float64)
		if !floats.Equal(wantData, gotData) {
			t.Errorf("learnable %v: decoded weights differ from encoded "+
				"weights", i)
		}
	}
}
