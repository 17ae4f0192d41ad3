package timestep

import "gonum.org/v1/gonum/mat"

// Transition packages together a single SARSA transition: the state,
// the action taken in that state, the resulting reward, discount, and
// next state, and the action taken in the next state.
type Transition struct {
	State      *mat.VecDense
	Action     *mat.VecDense
	Reward     float64
	Discount   float64
	NextState  *mat.VecDense
	NextAction *mat.VecDense
}

// NewTransition packages two sequential TimeSteps and the actions taken
// at each into a Transition. The reward and discount are those observed
// on the next step, i.e. those resulting from taking action in step.
func NewTransition(step TimeStep, action *mat.VecDense, nextStep TimeStep,
	nextAction *mat.VecDense) Transition {
	return Transition{
		State:      step.Observation,
		Action:     action,
		Reward:     nextStep.Reward,
		Discount:   nextStep.Discount,
		NextState:  nextStep.Observation,
		NextAction: nextAction,
	}
}
