package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/BrendonShi/wordle-ai-agent/agent/deepq"
	"github.com/BrendonShi/wordle-ai-agent/environment/wordle"
	"github.com/BrendonShi/wordle-ai-agent/experiment"
	"github.com/BrendonShi/wordle-ai-agent/experiment/checkpointer"
	"github.com/BrendonShi/wordle-ai-agent/experiment/tracker"
	"github.com/BrendonShi/wordle-ai-agent/expreplay"
	"github.com/BrendonShi/wordle-ai-agent/initwfn"
	"github.com/BrendonShi/wordle-ai-agent/network"
	"github.com/BrendonShi/wordle-ai-agent/solver"
	"github.com/BrendonShi/wordle-ai-agent/words"
)

func main() {
	var seed = flag.Uint64("seed", 192382, "random seed")
	var trainSteps = flag.Uint("steps", 500_000, "number of training steps")
	var evalEpisodes = flag.Int("eval", 100, "number of evaluation episodes")
	var render = flag.Bool("render", false, "render evaluation episodes")
	flag.Parse()

	dict := words.Default()

	// Create the environment
	task := wordle.NewSolve()
	e, _, err := wordle.New(task, dict, 0.99, *seed)
	if err != nil {
		log.Fatalf("could not create environment: %v", err)
	}

	// Create the learning algorithm
	adam, err := solver.NewDefaultAdam(1e-4, 64)
	if err != nil {
		log.Fatalf("could not create solver: %v", err)
	}
	init, err := initwfn.NewGlorotU(1.0)
	if err != nil {
		log.Fatalf("could not create weight initializer: %v", err)
	}

	config := deepq.Config{
		PolicyLayers: []int{128, 128},
		Biases:       []bool{true, true},
		Activations: []*network.Activation{
			network.ReLU(),
			network.ReLU(),
		},
		Solver:  adam,
		InitWFn: init,

		Epsilon:           1.0,
		MinEpsilon:        0.05,
		EpsilonDecaySteps: int(*trainSteps) / 10,

		ExpReplay: expreplay.Config{
			RemoveMethod:      expreplay.Fifo,
			SampleMethod:      expreplay.Uniform,
			RemoveSize:        1,
			SampleSize:        64,
			MaxReplayCapacity: 50_000,
			MinReplayCapacity: 1_000,
		},

		Tau:                  1.0,
		TargetUpdateInterval: 1_000,
	}
	a, err := config.CreateAgent(e, *seed)
	if err != nil {
		log.Fatalf("could not create agent: %v", err)
	}
	dqn := a.(*deepq.DeepQ)
	defer dqn.Close()

	// Run the experiment, tracking the return and length of each
	// episode and checkpointing the learned weights periodically
	trackers := []tracker.Tracker{
		tracker.NewReturn("./returns.bin"),
		tracker.NewEpisodeLength("./episodes.bin"),
	}
	checkpointers := []checkpointer.Checkpointer{
		checkpointer.NewNStep(100_000, dqn,
			checkpointer.FilenameEnumerator(0, "./checkpoint", ".bin")),
	}

	exp := experiment.NewOnline(e, dqn, *trainSteps, trackers, checkpointers)
	if err := exp.Run(); err != nil {
		log.Fatalf("experiment failed: %v", err)
	}
	if err := exp.Save(); err != nil {
		log.Fatalf("could not save experiment data: %v", err)
	}

	returns, err := tracker.LoadData("./returns.bin")
	if err != nil {
		log.Fatalf("could not load return data: %v", err)
	}
	fmt.Printf("Training finished: %v episodes\n", len(returns))

	// Evaluate the greedy policy
	dqn.Eval()
	game := e.(*wordle.Wordle)

	wins := 0
	totalGuesses := 0
	for episode := 0; episode < *evalEpisodes; episode++ {
		step, err := game.Reset()
		if err != nil {
			log.Fatalf("could not reset environment: %v", err)
		}

		for !step.Last() {
			action := dqn.SelectAction(step)
			step, _, err = game.Step(action)
			if err != nil {
				log.Fatalf("could not step environment: %v", err)
			}
		}

		if game.AtGoal(step.Observation) {
			wins++
		}
		totalGuesses += step.Number
		if *render {
			fmt.Printf("Secret: %v\n", game.Secret())
			game.Render()
		}
	}

	fmt.Printf("Evaluation: won %v of %v episodes (%.1f%%), %.2f guesses "+
		"per episode\n", wins, *evalEpisodes,
		100*float64(wins)/float64(*evalEpisodes),
		float64(totalGuesses)/float64(*evalEpisodes))
}
