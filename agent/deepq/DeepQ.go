// Package deepq implements the deep Q-learning algorithm
package deepq

import (
	"encoding/gob"
	"fmt"

	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/BrendonShi/wordle-ai-agent/agent"
	"github.com/BrendonShi/wordle-ai-agent/agent/policy"
	"github.com/BrendonShi/wordle-ai-agent/environment"
	"github.com/BrendonShi/wordle-ai-agent/expreplay"
	ts "github.com/BrendonShi/wordle-ai-agent/timestep"
)

// DeepQ implements the deep Q-learning algorithm. This algorithm is
// conceptually similar to DQN, but uses the MSE loss.
type DeepQ struct {
	// Action selection policies
	behaviourPolicy   agent.EGreedyNNPolicy // Behaviour egreedy policy
	behaviourPolicyVM G.VM
	targetPolicy      agent.EGreedyNNPolicy // Target greedy policy
	targetPolicyVM    G.VM

	// Policy for learning weights that takes in batches of inputs
	trainNet   agent.EGreedyNNPolicy // Policy whose weights are adapted
	trainNetVM G.VM
	solver     G.Solver // Adapts the weights of trainNet

	// Policy that provides the update target for a batch of inputs.
	// Note that this is a target network, providing the update target.
	// It is not the network for the target policy.
	targetNet   agent.EGreedyNNPolicy
	targetNetVM G.VM

	// Variables to track target network updates
	tau                  float64 // Polyak averaging constant
	targetUpdateInterval int     // Steps between target updates
	gradientSteps        int

	// Behaviour policy exploration annealing
	initialEpsilon    float64
	minEpsilon        float64
	epsilonDecaySteps int
	environmentSteps  int

	selectedActions *G.Node // Actions taken at the previous states
	numActions      int

	replay expreplay.ExperienceReplayer

	// nextStateActionValues is the input node in the graph of trainNet
	// that is given the action values of the next state. For update:
	//
	// Q(s, a) <- Q(s, a) + α * (r + γ * max[Q(s', a')] - Q(s, a)) ∇Q(s, a)
	//
	// nextStateActionValues provides Q(s', a') for all a' in s' and is
	// computed by targetNet.
	nextStateActionValues *G.Node
	rewards               *G.Node
	discounts             *G.Node

	// Keep track of previous states and actions to add to replay buffer
	prevStep   ts.TimeStep
	prevAction int
	nextStep   ts.TimeStep

	batchSize int
	eval      bool // Whether or not in evaluation mode
}

// New creates and returns a new DeepQ agent
func New(e environment.Environment, config Config,
	seed int64) (*DeepQ, error) {
	// Ensure environment has discrete actions
	if e.ActionSpec().Cardinality != environment.Discrete {
		return &DeepQ{}, fmt.Errorf("deepq: cannot use non-discrete actions")
	}

	// Ensure actions are one-dimensional
	if e.ActionSpec().LowerBound.Len() > 1 {
		return &DeepQ{}, fmt.Errorf("deepq: actions must be 1-dimensional")
	}

	// Ensure actions are enumerated from 0
	if e.ActionSpec().LowerBound.AtVec(0) != 0.0 {
		return &DeepQ{}, fmt.Errorf("deepq: actions must be enumerated " +
			"starting from 0")
	}

	err := config.Validate()
	if err != nil {
		return &DeepQ{}, err
	}

	// Extract configuration variables
	batchSize := config.BatchSize()
	numActions := int(e.ActionSpec().UpperBound.AtVec(0)) + 1
	hiddenSizes := config.PolicyLayers
	biases := config.Biases
	activations := config.Activations
	init := config.InitWFn.InitWFn()
	epsilon := config.Epsilon

	// Behaviour network for selecting actions
	g := G.NewGraph()
	behaviourPolicy, err := policy.NewMultiHeadEGreedyMLP(
		epsilon,
		e,
		1, // For behaviour policy, we only need to select a single action
		g,
		hiddenSizes,
		biases,
		init,
		activations,
		seed,
	)
	if err != nil {
		return &DeepQ{}, err
	}
	behaviourPolicyVM := G.NewTapeMachine(g)

	// Create the target policy for greedy action selection
	targetPolicyClone, err := behaviourPolicy.ClonePolicy()
	if err != nil {
		return &DeepQ{}, fmt.Errorf("new: could not create target policy: %v",
			err)
	}
	targetPolicy := targetPolicyClone.(agent.EGreedyNNPolicy)
	targetPolicy.SetEpsilon(0.0)
	targetPolicyVM := G.NewTapeMachine(targetPolicy.Graph())

	// Create the target network which provides the update target
	targetNetClone, err := behaviourPolicy.ClonePolicyWithBatch(batchSize)
	if err != nil {
		return &DeepQ{}, fmt.Errorf("new: could not create target "+
			"network: %v", err)
	}
	targetNet := targetNetClone.(agent.EGreedyNNPolicy)
	targetNet.SetEpsilon(0.0) // Q-learning update target is greedy
	targetNetVM := G.NewTapeMachine(targetNet.Graph())

	// Create a training network which learns the weights
	trainNetClone, err := behaviourPolicy.ClonePolicyWithBatch(batchSize)
	if err != nil {
		return &DeepQ{}, fmt.Errorf("new: could not create learning "+
			"network: %v", err)
	}
	trainNet := trainNetClone.(agent.EGreedyNNPolicy)
	gTrain := trainNet.Graph()

	// Create nodes to compute the update target: r + γ * max[Q(s', a')]
	nextStateActionValues := G.NewMatrix(gTrain, tensor.Float64,
		G.WithShape(batchSize, numActions), G.WithName("targetActionVals"))
	rewards := G.NewVector(gTrain, tensor.Float64, G.WithShape(batchSize),
		G.WithName("reward"))
	discounts := G.NewVector(gTrain, tensor.Float64, G.WithShape(batchSize),
		G.WithName("discount"))

	// Compute the update target
	updateTarget := G.Must(G.Max(nextStateActionValues, 1))
	updateTarget = G.Must(G.HadamardProd(updateTarget, discounts))
	updateTarget = G.Must(G.Add(updateTarget, rewards))

	// Action selected in the previous state. This is needed to compute
	// the loss using the correct action value since the network outputs
	// N action values, one for each environmental action.
	selectedActions := G.NewMatrix(
		gTrain,
		tensor.Float64,
		G.WithName("actionSelected"),
		G.WithShape(batchSize, numActions),
	)
	selectedActionsValue := G.Must(G.HadamardProd(trainNet.Prediction(),
		selectedActions))
	selectedActionsValue = G.Must(G.Sum(selectedActionsValue, 1))

	// Compute the mean squared TD error
	losses := G.Must(G.Sub(updateTarget, selectedActionsValue))
	losses = G.Must(G.Square(losses))
	cost := G.Must(G.Mean(losses))

	// Compute the gradient with respect to the mean squared TD error
	_, err = G.Grad(cost, trainNet.Learnables()...)
	if err != nil {
		return &DeepQ{}, fmt.Errorf("new: could not compute gradient: %v",
			err)
	}

	// Compile the trainNet graph into a VM
	trainNetVM := G.NewTapeMachine(
		gTrain,
		G.BindDualValues(trainNet.Learnables()...),
	)
	solver := config.Solver

	// Create the experience replay buffer. The replay buffer stores
	// actions selected as one-hot vectors.
	numFeatures := e.ObservationSpec().Shape.Len()
	replay, err := config.ExpReplay.Create(numFeatures, numActions, seed)
	if err != nil {
		return &DeepQ{}, fmt.Errorf("new: could not create experience "+
			"replay buffer: %v", err)
	}

	return &DeepQ{
		behaviourPolicy:       behaviourPolicy,
		behaviourPolicyVM:     behaviourPolicyVM,
		targetPolicy:          targetPolicy,
		targetPolicyVM:        targetPolicyVM,
		trainNet:              trainNet,
		trainNetVM:            trainNetVM,
		solver:                solver,
		targetNet:             targetNet,
		targetNetVM:           targetNetVM,
		tau:                   config.Tau,
		targetUpdateInterval:  config.TargetUpdateInterval,
		gradientSteps:         0,
		initialEpsilon:        config.Epsilon,
		minEpsilon:            config.MinEpsilon,
		epsilonDecaySteps:     config.EpsilonDecaySteps,
		selectedActions:       selectedActions,
		numActions:            numActions,
		replay:                replay,
		nextStateActionValues: nextStateActionValues,
		rewards:               rewards,
		discounts:             discounts,
		batchSize:             batchSize,
	}, nil
}

// ObserveFirst observes and records the first episodic timestep
func (d *DeepQ) ObserveFirst(t ts.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observefirst: timestep %d is not the first "+
			"timestep of an episode", t.Number)
	}
	d.prevStep = ts.TimeStep{}
	d.nextStep = t

	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (d *DeepQ) Observe(action mat.Vector, nextStep ts.TimeStep) error {
	if action.Len() != 1 {
		return fmt.Errorf("observe: value-based methods do not support "+
			"multi-dimensional actions (action dim = %d)", action.Len())
	}

	// Add to replay buffer
	if !d.nextStep.First() {
		prevAction := mat.NewVecDense(d.numActions, nil)
		prevAction.SetVec(d.prevAction, 1.0)

		nextAction := mat.NewVecDense(d.numActions, nil)
		nextAction.SetVec(int(action.AtVec(0)), 1.0)

		transition := ts.NewTransition(d.prevStep, prevAction, d.nextStep,
			nextAction)
		err := d.replay.Add(transition)
		if err != nil {
			return fmt.Errorf("observe: could not add transition to replay "+
				"buffer: %v", err)
		}
	}

	// Update internal variables
	d.prevStep = d.nextStep
	d.nextStep = nextStep
	d.prevAction = int(action.AtVec(0))

	// A terminal timestep has no following Observe call, so the
	// transition into it is flushed now. The next action is a
	// placeholder: terminal timesteps carry a discount of 0, so no
	// value is bootstrapped through it.
	if nextStep.Last() {
		prevAction := mat.NewVecDense(d.numActions, nil)
		prevAction.SetVec(d.prevAction, 1.0)

		transition := ts.NewTransition(d.prevStep, prevAction, d.nextStep,
			mat.NewVecDense(d.numActions, nil))
		err := d.replay.Add(transition)
		if err != nil {
			return fmt.Errorf("observe: could not add terminal transition "+
				"to replay buffer: %v", err)
		}
	}

	// Anneal the behaviour policy's exploration linearly over
	// environmental steps
	d.environmentSteps++
	if d.epsilonDecaySteps > 0 {
		progress := float64(d.environmentSteps) /
			float64(d.epsilonDecaySteps)
		if progress > 1.0 {
			progress = 1.0
		}
		epsilon := d.initialEpsilon -
			(d.initialEpsilon-d.minEpsilon)*progress
		d.behaviourPolicy.SetEpsilon(epsilon)
	}

	return nil
}

// Step updates the weights of the agent's policies
func (d *DeepQ) Step() error {
	// Don't update if the replay buffer has insufficient samples
	S, A, R, discount, NextS, _, err := d.replay.Sample()
	if expreplay.IsEmptyBuffer(err) || expreplay.IsInsufficientSamples(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("step: could not sample from replay buffer: %v",
			err)
	}

	// Previous action one-hot vectors
	prevActions := tensor.New(
		tensor.WithShape(d.batchSize, d.numActions),
		tensor.WithBacking(A),
	)
	err = G.Let(d.selectedActions, prevActions)
	if err != nil {
		return fmt.Errorf("step: could not set selected actions: %v", err)
	}

	// Predict the action values in state S
	err = d.trainNet.SetInput(S)
	if err != nil {
		return fmt.Errorf("step: could not set trainNet input: %v", err)
	}

	// Predict the action values in the next state NextS
	err = d.targetNet.SetInput(NextS)
	if err != nil {
		return fmt.Errorf("step: could not set target net input: %v", err)
	}

	// Compute the next state-action values
	err = d.targetNetVM.RunAll()
	if err != nil {
		return fmt.Errorf("step: could not run target network: %v", err)
	}

	// Set the action values for the actions in the next state
	err = G.Let(d.nextStateActionValues, d.targetNet.Output())
	if err != nil {
		return fmt.Errorf("step: could not set next state-action values: %v",
			err)
	}

	// Set the rewards seen after taking the recorded actions
	rewardTensor := tensor.New(tensor.WithBacking(R),
		tensor.WithShape(d.batchSize))
	err = G.Let(d.rewards, rewardTensor)
	if err != nil {
		return fmt.Errorf("step: could not set reward: %v", err)
	}

	// Set the discounts of the next state-action values
	discountTensor := tensor.New(tensor.WithBacking(discount),
		tensor.WithShape(d.batchSize))
	err = G.Let(d.discounts, discountTensor)
	if err != nil {
		return fmt.Errorf("step: could not set discount: %v", err)
	}

	d.targetNetVM.Reset()

	// Run the learning step
	err = d.trainNetVM.RunAll()
	if err != nil {
		return fmt.Errorf("step: could not run training network: %v", err)
	}
	err = d.solver.Step(d.trainNet.Model())
	if err != nil {
		return fmt.Errorf("step: could not step solver: %v", err)
	}
	d.trainNetVM.Reset()
	d.gradientSteps++

	// Update the target network by setting its weights towards the
	// newly learned weights
	if d.gradientSteps%d.targetUpdateInterval == 0 {
		if d.tau == 1.0 {
			err = d.targetNet.Set(d.trainNet)
		} else {
			err = d.targetNet.Polyak(d.trainNet, d.tau)
		}
		if err != nil {
			return fmt.Errorf("step: could not update target network: %v",
				err)
		}
	}

	err = d.targetPolicy.Set(d.trainNet)
	if err != nil {
		return fmt.Errorf("step: could not update target policy: %v", err)
	}
	err = d.behaviourPolicy.Set(d.trainNet)
	if err != nil {
		return fmt.Errorf("step: could not update behaviour policy: %v", err)
	}

	return nil
}

// SelectAction runs the necessary VMs and then returns an action
// selected by the behaviour policy, or by the greedy target policy
// when in evaluation mode.
func (d *DeepQ) SelectAction(t ts.TimeStep) *mat.VecDense {
	var p agent.NNPolicy
	var vm G.VM

	if d.eval {
		p = d.targetPolicy
		vm = d.targetPolicyVM
	} else {
		p = d.behaviourPolicy
		vm = d.behaviourPolicyVM
	}

	obs := t.Observation.RawVector().Data
	err := p.SetInput(obs)
	if err != nil {
		panic(fmt.Sprintf("selectaction: %v", err))
	}

	// Run the policy's computational graph
	err = vm.RunAll()
	if err != nil {
		panic(fmt.Sprintf("selectaction: could not run policy graph: %v",
			err))
	}

	// Get the policy to select an action using the predictions
	// generated by running the computational graph
	action, _ := p.SelectAction()

	vm.Reset()
	return action
}

// TdError calculates the TD error generated by the learner on some
// transition.
func (d *DeepQ) TdError(t ts.Transition) float64 {
	d.behaviourPolicy.SetInput(t.State.RawVector().Data)
	d.behaviourPolicyVM.RunAll()
	_, actionValue := d.behaviourPolicy.SelectAction()
	d.behaviourPolicyVM.Reset()

	d.targetPolicy.SetInput(t.NextState.RawVector().Data)
	d.targetPolicyVM.RunAll()
	_, nextActionValue := d.targetPolicy.SelectAction()
	d.targetPolicyVM.Reset()

	return t.Reward + t.Discount*nextActionValue - actionValue
}

// Epsilon returns the current exploration rate of the behaviour policy
func (d *DeepQ) Epsilon() float64 {
	return d.behaviourPolicy.Epsilon()
}

// Eval sets the agent into evaluation mode
func (d *DeepQ) Eval() {
	d.eval = true
}

// Train sets the agent into training mode
func (d *DeepQ) Train() {
	d.eval = false
}

// IsEval returns whether the agent is in evaluation mode
func (d *DeepQ) IsEval() bool {
	return d.eval
}

// EndEpisode performs cleanup at the end of an episode
func (d *DeepQ) EndEpisode() {}

// Close cleans up the VMs used to run the agent's computational graphs
func (d *DeepQ) Close() error {
	behaviourErr := d.behaviourPolicyVM.Close()
	targetErr := d.targetPolicyVM.Close()
	targetNetErr := d.targetNetVM.Close()
	trainNetErr := d.trainNetVM.Close()

	for _, err := range []error{behaviourErr, targetErr, targetNetErr,
		trainNetErr} {
		if err != nil {
			return fmt.Errorf("close: could not close VM: %v", err)
		}
	}
	return nil
}

// GobEncode implements the gob.GobEncoder interface by encoding the
// weights of the network being learned.
func (d *DeepQ) GobEncode() ([]byte, error) {
	encoder, ok := d.trainNet.(gob.GobEncoder)
	if !ok {
		return nil, fmt.Errorf("gobencode: training network not serializable")
	}
	return encoder.GobEncode()
}

// GobDecode implements the gob.GobDecoder interface
func (d *DeepQ) GobDecode(in []byte) error {
	decoder, ok := d.trainNet.(gob.GobDecoder)
	if !ok {
		return fmt.Errorf("gobdecode: training network not serializable")
	}
	return decoder.GobDecode(in)
}
