package solver

import (
	"encoding/json"
	"testing"
)

func TestAdamJSONRoundTrip(t *testing.T) {
	adam, err := NewAdam(1e-3, 1e-8, 0.9, 0.999, 32)
	if err != nil {
		t.Fatalf("could not create solver: %v", err)
	}

	data, err := json.Marshal(adam)
	if err != nil {
		t.Fatalf("could not marshal solver: %v", err)
	}

	var got Solver
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("could not unmarshal solver: %v", err)
	}

	if got.Type != Adam {
		t.Errorf("type = %v, want %v", got.Type, Adam)
	}
	config, ok := got.Config.(AdamConfig)
	if !ok {
		t.Fatalf("config has type %T, want AdamConfig", got.Config)
	}
	if config.StepSize != 1e-3 {
		t.Errorf("step size = %v, want 1e-3", config.StepSize)
	}
	if config.Batch != 32 {
		t.Errorf("batch size = %v, want 32", config.Batch)
	}
	if got.Solver == nil {
		t.Error("unmarshalling did not reconstruct the wrapped solver")
	}
}

func TestVanillaJSONRoundTrip(t *testing.T) {
	vanilla, err := NewVanilla(0.01, 16, 0.5)
	if err != nil {
		t.Fatalf("could not create solver: %v", err)
	}

	data, err := json.Marshal(vanilla)
	if err != nil {
		t.Fatalf("could not marshal solver: %v", err)
	}

	var got Solver
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("could not unmarshal solver: %v", err)
	}

	if got.Type != Vanilla {
		t.Errorf("type = %v, want %v", got.Type, Vanilla)
	}
	config, ok := got.Config.(VanillaConfig)
	if !ok {
		t.Fatalf("config has type %T, want VanillaConfig", got.Config)
	}
	if config.Clip != 0.5 {
		t.Errorf("clip = %v, want 0.5", config.Clip)
	}
	if got.Solver == nil {
		t.Error("unmarshalling did not reconstruct the wrapped solver")
	}
}

func TestValidType(t *testing.T) {
	if (AdamConfig{}).ValidType(Vanilla) {
		t.Error("Adam config validates the Vanilla type")
	}
	if !(VanillaConfig{}).ValidType(Vanilla) {
		t.Error("Vanilla config does not validate its own type")
	}
	if _, err := newSolver(Vanilla, AdamConfig{}); err == nil {
		t.Error("expected error creating solver with mismatched config")
	}
}
