package tracker

import (
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	ts "github.com/BrendonShi/wordle-ai-agent/timestep"
)

// episodeSteps builds the timesteps of an episode with the argument
// rewards, starting with a First step of reward 0
func episodeSteps(rewards []float64) []ts.TimeStep {
	obs := mat.NewVecDense(1, nil)
	steps := []ts.TimeStep{ts.New(ts.First, 0, 1, obs, 0)}

	for i, reward := range rewards {
		stepType := ts.Mid
		if i == len(rewards)-1 {
			stepType = ts.Last
		}
		steps = append(steps, ts.New(stepType, reward, 1, obs, i+1))
	}
	return steps
}

func TestReturnTracksEpisodes(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	tracker := NewReturn(filename)

	episodes := [][]float64{
		{-0.1, -0.1, 1.0},
		{-0.1, -0.1, -0.1, -0.1, -0.1, -1.0},
	}
	for _, rewards := range episodes {
		for _, step := range episodeSteps(rewards) {
			tracker.Track(step)
		}
	}

	if err := tracker.Save(); err != nil {
		t.Fatalf("could not save: %v", err)
	}

	data, err := LoadData(filename)
	if err != nil {
		t.Fatalf("could not load: %v", err)
	}

	want := []float64{0.8, -1.5}
	if len(data) != len(want) {
		t.Fatalf("got %v returns, want %v", len(data), len(want))
	}
	if !floats.EqualApprox(data, want, 1e-12) {
		t.Errorf("returns = %v, want %v", data, want)
	}
}

func TestEpisodeLengthTracksEpisodes(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "episodes.bin")
	tracker := NewEpisodeLength(filename)

	episodes := [][]float64{
		{-0.1, 1.0},
		{-0.1, -0.1, -0.1, 1.0},
	}
	for _, rewards := range episodes {
		for _, step := range episodeSteps(rewards) {
			tracker.Track(step)
		}
	}

	if err := tracker.Save(); err != nil {
		t.Fatalf("could not save: %v", err)
	}

	data, err := LoadData(filename)
	if err != nil {
		t.Fatalf("could not load: %v", err)
	}

	want := []float64{2, 4}
	if len(data) != len(want) {
		t.Fatalf("got %v lengths, want %v", len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("length %v = %v, want %v", i, data[i], want[i])
		}
	}
}
