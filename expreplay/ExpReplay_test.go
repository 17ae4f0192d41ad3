package expreplay

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/BrendonShi/wordle-ai-agent/timestep"
)

// testTransition returns a transition whose state vectors are filled
// with the value v
func testTransition(v float64, featureSize, actionSize int) timestep.Transition {
	state := mat.NewVecDense(featureSize, nil)
	nextState := mat.NewVecDense(featureSize, nil)
	action := mat.NewVecDense(actionSize, nil)
	nextAction := mat.NewVecDense(actionSize, nil)

	for i := 0; i < featureSize; i++ {
		state.SetVec(i, v)
		nextState.SetVec(i, v+1)
	}
	action.SetVec(0, v)
	nextAction.SetVec(0, v+1)

	return timestep.Transition{
		State:      state,
		Action:     action,
		Reward:     v,
		Discount:   0.99,
		NextState:  nextState,
		NextAction: nextAction,
	}
}

func TestSampleEmptyBuffer(t *testing.T) {
	buffer, err := New(NewFifoSelector(1), NewFifoSelector(1), 1, 10, 3, 2)
	if err != nil {
		t.Fatalf("could not create buffer: %v", err)
	}

	_, _, _, _, _, _, err = buffer.Sample()
	if err == nil {
		t.Fatal("expected error sampling an empty buffer")
	}
	if !IsEmptyBuffer(err) {
		t.Errorf("expected empty buffer error, got %v", err)
	}
}

func TestSampleInsufficientSamples(t *testing.T) {
	buffer, err := New(NewFifoSelector(1), NewFifoSelector(2), 3, 10, 3, 2)
	if err != nil {
		t.Fatalf("could not create buffer: %v", err)
	}

	if err := buffer.Add(testTransition(1, 3, 2)); err != nil {
		t.Fatalf("could not add transition: %v", err)
	}

	_, _, _, _, _, _, err = buffer.Sample()
	if err == nil {
		t.Fatal("expected error sampling below minimum capacity")
	}
	if !IsInsufficientSamples(err) {
		t.Errorf("expected insufficient samples error, got %v", err)
	}
}

func TestFifoSampleOrder(t *testing.T) {
	buffer, err := New(NewFifoSelector(1), NewFifoSelector(2), 1, 10, 3, 2)
	if err != nil {
		t.Fatalf("could not create buffer: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := buffer.Add(testTransition(float64(i), 3, 2)); err != nil {
			t.Fatalf("could not add transition %v: %v", i, err)
		}
	}

	state, action, reward, discount, nextState, nextAction, err :=
		buffer.Sample()
	if err != nil {
		t.Fatalf("could not sample: %v", err)
	}

	// A FiFo sampler returns the earliest added transitions first
	wantState := []float64{1, 1, 1, 2, 2, 2}
	for i := range wantState {
		if state[i] != wantState[i] {
			t.Errorf("state[%v] = %v, want %v", i, state[i], wantState[i])
		}
	}
	wantReward := []float64{1, 2}
	for i := range wantReward {
		if reward[i] != wantReward[i] {
			t.Errorf("reward[%v] = %v, want %v", i, reward[i], wantReward[i])
		}
		if discount[i] != 0.99 {
			t.Errorf("discount[%v] = %v, want 0.99", i, discount[i])
		}
		if nextState[i*3] != wantReward[i]+1 {
			t.Errorf("nextState[%v] = %v, want %v", i*3, nextState[i*3],
				wantReward[i]+1)
		}
		if action[i*2] != wantReward[i] {
			t.Errorf("action[%v] = %v, want %v", i*2, action[i*2],
				wantReward[i])
		}
		if nextAction[i*2] != wantReward[i]+1 {
			t.Errorf("nextAction[%v] = %v, want %v", i*2, nextAction[i*2],
				wantReward[i]+1)
		}
	}
}

func TestAddEvictsOldestAtCapacity(t *testing.T) {
	buffer, err := New(NewFifoSelector(1), NewFifoSelector(1), 1, 2, 3, 2)
	if err != nil {
		t.Fatalf("could not create buffer: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := buffer.Add(testTransition(float64(i), 3, 2)); err != nil {
			t.Fatalf("could not add transition %v: %v", i, err)
		}
	}

	if buffer.Capacity() != 2 {
		t.Fatalf("capacity = %v, want 2", buffer.Capacity())
	}

	// The first transition was evicted, so the earliest remaining is
	// the second
	_, _, reward, _, _, _, err := buffer.Sample()
	if err != nil {
		t.Fatalf("could not sample: %v", err)
	}
	if reward[0] != 2 {
		t.Errorf("sampled reward = %v, want 2", reward[0])
	}
}

func TestUniformSampleBatchWithinBounds(t *testing.T) {
	buffer, err := New(NewFifoSelector(1), NewUniformSelector(4, 14), 1, 10,
		3, 2)
	if err != nil {
		t.Fatalf("could not create buffer: %v", err)
	}

	for i := 1; i <= 5; i++ {
		if err := buffer.Add(testTransition(float64(i), 3, 2)); err != nil {
			t.Fatalf("could not add transition %v: %v", i, err)
		}
	}

	_, _, reward, _, _, _, err := buffer.Sample()
	if err != nil {
		t.Fatalf("could not sample: %v", err)
	}
	if len(reward) != 4 {
		t.Fatalf("sampled %v rewards, want 4", len(reward))
	}
	for i, r := range reward {
		if r < 1 || r > 5 {
			t.Errorf("reward[%v] = %v outside added range", i, r)
		}
	}
}

func TestAddRejectsWrongSizes(t *testing.T) {
	buffer, err := New(NewFifoSelector(1), NewFifoSelector(1), 1, 10, 3, 2)
	if err != nil {
		t.Fatalf("could not create buffer: %v", err)
	}

	if err := buffer.Add(testTransition(1, 4, 2)); err == nil {
		t.Error("expected error adding transition with wrong feature size")
	}
	if err := buffer.Add(testTransition(1, 3, 1)); err == nil {
		t.Error("expected error adding transition with wrong action size")
	}
	if buffer.Capacity() != 0 {
		t.Errorf("capacity = %v after rejected adds, want 0",
			buffer.Capacity())
	}
}
