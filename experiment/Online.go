package experiment

import (
	"fmt"

	"github.com/BrendonShi/wordle-ai-agent/agent"
	env "github.com/BrendonShi/wordle-ai-agent/environment"
	"github.com/BrendonShi/wordle-ai-agent/experiment/checkpointer"
	"github.com/BrendonShi/wordle-ai-agent/experiment/tracker"
	ts "github.com/BrendonShi/wordle-ai-agent/timestep"
	"github.com/BrendonShi/wordle-ai-agent/utils/progressbar"
)

// progressUpdateInterval is the number of steps between updates of the
// displayed progress bar
const progressUpdateInterval uint = 1000

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	environment env.Environment
	agent       agent.Agent

	maxSteps     uint
	currentSteps uint

	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer

	progress *progressbar.ProgressBar
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for. The t parameter is a slice
// of tracker.Tracker which determine what data is saved, and the c
// parameter is a slice of checkpointer.Checkpointer which determine
// how the agent is periodically serialized to disk.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	t []tracker.Tracker, c []checkpointer.Checkpointer) *Online {
	return &Online{
		environment:   e,
		agent:         a,
		maxSteps:      steps,
		trackers:      t,
		checkpointers: c,
		progress:      progressbar.New(40, int(steps)),
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment, returning
// whether or not the experiment's timestep limit has been reached
func (o *Online) RunEpisode() (bool, error) {
	step, err := o.environment.Reset()
	if err != nil {
		return true, fmt.Errorf("runepisode: could not reset "+
			"environment: %v", err)
	}
	err = o.agent.ObserveFirst(step)
	if err != nil {
		return true, fmt.Errorf("runepisode: %v", err)
	}
	o.track(step)

	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		// Select an action and step in the environment
		action := o.agent.SelectAction(step)
		step, _, err = o.environment.Step(action)
		if err != nil {
			return true, fmt.Errorf("runepisode: could not step "+
				"environment: %v", err)
		}

		// Cache the environment step in each Tracker
		o.track(step)

		// Observe the timestep and step the agent
		err = o.agent.Observe(action, step)
		if err != nil {
			return true, fmt.Errorf("runepisode: %v", err)
		}
		err = o.agent.Step()
		if err != nil {
			return true, fmt.Errorf("runepisode: could not step agent: %v",
				err)
		}

		err = o.checkpoint(step)
		if err != nil {
			return true, fmt.Errorf("runepisode: %v", err)
		}

		o.progress.Increment()
		if o.currentSteps%progressUpdateInterval == 0 {
			o.progress.Display()
		}
	}
	o.agent.EndEpisode()

	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() error {
	ended := false
	var err error

	for !ended {
		ended, err = o.RunEpisode()
		if err != nil {
			return fmt.Errorf("run: %v", err)
		}
	}
	o.progress.Display()
	fmt.Println()

	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each
// Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

// checkpoint saves the current state of the experiment's agent using
// each Checkpointer
func (o *Online) checkpoint(t ts.TimeStep) error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return fmt.Errorf("checkpoint: %v", err)
		}
	}
	return nil
}
