// Package random implements an agent that selects actions uniformly
// randomly. It is useful as a baseline to compare learning agents
// against.
package random

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/BrendonShi/wordle-ai-agent/agent"
	env "github.com/BrendonShi/wordle-ai-agent/environment"
	ts "github.com/BrendonShi/wordle-ai-agent/timestep"
)

// Random implements an agent that selects discrete actions uniformly
// randomly on each timestep. Random learns nothing: its Learner
// methods are no-ops.
type Random struct {
	actionDist distuv.Uniform
	eval       bool
}

// New returns a new Random agent acting in the argument environment
func New(e env.Environment, seed uint64) (agent.Agent, error) {
	actionSpec := e.ActionSpec()
	if actionSpec.Cardinality != env.Discrete {
		return nil, fmt.Errorf("new: random agent supports only discrete " +
			"actions")
	}
	if actionSpec.LowerBound.Len() > 1 {
		return nil, fmt.Errorf("new: actions must be 1-dimensional")
	}

	source := rand.NewSource(seed)
	actionDist := distuv.Uniform{
		Min: actionSpec.LowerBound.AtVec(0),
		Max: actionSpec.UpperBound.AtVec(0) + 1.0,
		Src: source,
	}

	return &Random{actionDist: actionDist}, nil
}

// SelectAction selects an action uniformly randomly from the available
// actions
func (r *Random) SelectAction(t ts.TimeStep) *mat.VecDense {
	action := math.Floor(r.actionDist.Rand())
	return mat.NewVecDense(1, []float64{action})
}

// ObserveFirst observes the first timestep of an episode
func (r *Random) ObserveFirst(t ts.TimeStep) error {
	return nil
}

// Observe observes a timestep
func (r *Random) Observe(action mat.Vector, nextStep ts.TimeStep) error {
	return nil
}

// Step is a no-op: a Random agent learns nothing
func (r *Random) Step() error {
	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (r *Random) EndEpisode() {}

// Eval sets the agent into evaluation mode
func (r *Random) Eval() {
	r.eval = true
}

// Train sets the agent into training mode
func (r *Random) Train() {
	r.eval = false
}

// IsEval returns whether the agent is in evaluation mode
func (r *Random) IsEval() bool {
	return r.eval
}
