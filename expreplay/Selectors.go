package expreplay

import (
	"fmt"
	"math/rand"

	"github.com/BrendonShi/wordle-ai-agent/utils/intutils"
)

// SelectorType describes the types of Selectors that are available
type SelectorType string

// Available SelectorTypes
const (
	Fifo    SelectorType = "Fifo"
	Uniform SelectorType = "Uniform"
)

// CreateSelector creates and returns a Selector of the given type that
// selects batchSize elements at a time.
func CreateSelector(selectorType SelectorType, batchSize int,
	seed int64) Selector {
	switch selectorType {
	case Fifo:
		return NewFifoSelector(batchSize)
	case Uniform:
		return NewUniformSelector(batchSize, seed)
	}
	panic(fmt.Sprintf("createselector: no such selector type %v",
		selectorType))
}

// Selector implements functionality for choosing how data should be
// sampled and/or removed from an experience replay buffer
type Selector interface {
	// choose selects the indices at which data should be sampled from
	// the experience replay buffer
	choose(c *cache) []int

	// BatchSize returns the number of elements that will be selected
	BatchSize() int

	// registerAsRemover registers a Selector as a remover
	//
	// Some Selectors require different behaviour if they are removers,
	// so they should be notified if they become a remover to add this
	// additional behaviour
	registerAsRemover()
}

// uniformSelector is a Selector which selects data from an experience
// replay buffer uniformly randomly
type uniformSelector struct {
	samples int
	rng     *rand.Rand
}

// NewUniformSelector returns a new Selector which selects data uniformly
// randomly from an experience replay buffer
func NewUniformSelector(samples int, seed int64) Selector {
	source := rand.NewSource(seed)
	rng := rand.New(source)

	return &uniformSelector{samples: samples, rng: rng}
}

// registerAsRemover implements Selector interface
func (u *uniformSelector) registerAsRemover() {}

// BatchSize gets the number of samples in a batch drawn from the buffer
func (u *uniformSelector) BatchSize() int {
	return u.samples
}

// choose selects a number of indices at which to draw data from the
// buffer
func (u *uniformSelector) choose(c *cache) []int {
	selected := make([]int, u.BatchSize())

	for i := 0; i < u.BatchSize(); i++ {
		index := u.rng.Intn(c.Capacity())
		selected[i] = c.inUseIndices[index]
	}

	return selected
}

// fifoSelector is a Selector which selects data from an experience
// replay buffer as first-in-first-out.
type fifoSelector struct {
	samples int
	remover bool
}

// NewFifoSelector returns a new Selector which draws data from an
// experience replay buffer as FiFo.
func NewFifoSelector(samples int) Selector {
	return &fifoSelector{samples: samples, remover: false}
}

// registerAsRemover implements Selector interface
func (f *fifoSelector) registerAsRemover() {
	f.remover = true
}

// BatchSize gets the number of samples in a batch drawn from the buffer
func (f *fifoSelector) BatchSize() int {
	return f.samples
}

// choose selects a number of indices at which to draw data from the
// buffer
func (f *fifoSelector) choose(c *cache) []int {
	size := intutils.Min(f.BatchSize(), c.Capacity())
	selected := make([]int, size)
	insertOrder := c.insertOrder(f.BatchSize())

	for i := 0; i < size; i++ {
		selected[i] = insertOrder[i]

		if f.remover {
			// In a Fifo remover, the indices at which data was first
			// added get freed first, so we can remove these from the
			// ordering of inserted indices
			c.removeFront()
		}
	}

	return selected
}
