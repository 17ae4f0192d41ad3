package random_test

import (
	"strings"
	"testing"

	"github.com/BrendonShi/wordle-ai-agent/agent/random"
	"github.com/BrendonShi/wordle-ai-agent/environment/wordle"
	"github.com/BrendonShi/wordle-ai-agent/words"
)

func TestSelectActionWithinBounds(t *testing.T) {
	input := strings.Join([]string{"alloy", "crane", "slate"}, "\n")
	dict, err := words.New(strings.NewReader(input))
	if err != nil {
		t.Fatalf("could not create dictionary: %v", err)
	}

	e, firstStep, err := wordle.New(wordle.NewSolve(), dict, 1.0, 11)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}

	a, err := random.New(e, 11)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}

	step := firstStep
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		action := a.SelectAction(step)
		if action.Len() != 1 {
			t.Fatalf("action dims = %v, want 1", action.Len())
		}

		index := int(action.AtVec(0))
		if index < 0 || index >= dict.Len() {
			t.Fatalf("action %v outside [0, %v)", index, dict.Len())
		}
		seen[index] = true

		step, _, err = e.Step(action)
		if err != nil {
			t.Fatalf("could not step environment: %v", err)
		}
		if step.Last() {
			step, err = e.Reset()
			if err != nil {
				t.Fatalf("could not reset environment: %v", err)
			}
		}
	}

	// A uniform policy over 3 actions should visit each within 200
	// selections
	for i := 0; i < dict.Len(); i++ {
		if !seen[i] {
			t.Errorf("action %v never selected", i)
		}
	}
}
