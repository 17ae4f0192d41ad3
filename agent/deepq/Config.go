package deepq

import (
	"fmt"

	"github.com/BrendonShi/wordle-ai-agent/agent"
	env "github.com/BrendonShi/wordle-ai-agent/environment"
	"github.com/BrendonShi/wordle-ai-agent/expreplay"
	"github.com/BrendonShi/wordle-ai-agent/initwfn"
	"github.com/BrendonShi/wordle-ai-agent/network"
	"github.com/BrendonShi/wordle-ai-agent/solver"
)

// Config implements a configuration for a DeepQ agent
type Config struct {
	PolicyLayers []int                 // Layer sizes in neural net
	Biases       []bool                // Whether each layer should have a bias
	Activations  []*network.Activation // Activation of each layer
	Solver       *solver.Solver        // Solver for learning weights

	// Initialization algorithm for weights
	InitWFn *initwfn.InitWFn

	// Epsilon is the initial exploration rate of the behaviour policy.
	// If EpsilonDecaySteps > 0, the exploration rate is annealed
	// linearly from Epsilon to MinEpsilon over EpsilonDecaySteps
	// environmental steps.
	Epsilon           float64
	MinEpsilon        float64
	EpsilonDecaySteps int

	// Experience replay parameters
	ExpReplay expreplay.Config

	// Target net updates
	Tau                  float64 // Polyak averaging constant
	TargetUpdateInterval int     // Number of steps between target updates
}

// BatchSize returns the batch size of the agent constructed using this
// Config
func (c Config) BatchSize() int {
	return c.ExpReplay.SampleSize
}

// Validate checks a Config to ensure it is a valid configuration of a
// DeepQ agent.
func (c Config) Validate() error {
	if len(c.PolicyLayers) != len(c.Biases) {
		return fmt.Errorf("validate: invalid number of biases\n\twant(%v)"+
			"\n\thave(%v)", len(c.PolicyLayers), len(c.Biases))
	}

	if len(c.PolicyLayers) != len(c.Activations) {
		return fmt.Errorf("validate: invalid number of activations"+
			"\n\twant(%v)\n\thave(%v)", len(c.PolicyLayers),
			len(c.Activations))
	}

	if c.TargetUpdateInterval < 1 {
		return fmt.Errorf("validate: target networks must be updated at "+
			"positive timestep intervals \n\twant(>0) \n\thave(%v)",
			c.TargetUpdateInterval)
	}

	if c.Solver == nil {
		return fmt.Errorf("validate: no solver provided")
	}

	if c.InitWFn == nil {
		return fmt.Errorf("validate: no weight initializer provided")
	}

	if c.EpsilonDecaySteps > 0 && c.MinEpsilon > c.Epsilon {
		return fmt.Errorf("validate: minimum epsilon (%v) cannot exceed "+
			"initial epsilon (%v)", c.MinEpsilon, c.Epsilon)
	}

	return nil
}

// ValidAgent returns whether the agent is valid for the configuration.
// That is, whether Agent a can be constructed with Config c.
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*DeepQ)
	return ok
}

// CreateAgent creates a new DeepQ agent based on the configuration
func (c Config) CreateAgent(e env.Environment, seed uint64) (agent.Agent,
	error) {
	return New(e, c, int64(seed))
}
