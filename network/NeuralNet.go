// Package network implements neural network function approximators
// using Gorgonia.
package network

import (
	G "gorgonia.org/gorgonia"
)

// NeuralNet implements a neural network function approximator whose
// computational graph is run by an external gorgonia.VM. The VM should
// always be run after SetInput and before reading Output.
type NeuralNet interface {
	Graph() *G.ExprGraph
	Clone() (NeuralNet, error)
	CloneWithBatch(int) (NeuralNet, error)
	BatchSize() int
	Features() int
	Outputs() int
	SetInput([]float64) error
	Set(NeuralNet) error
	Polyak(NeuralNet, float64) error
	Learnables() G.Nodes
	Model() []G.ValueGrad
	Output() G.Value
	Prediction() *G.Node
}

// Layer implements a single layer of a NeuralNet
type Layer interface {
	fwd(*G.Node) (*G.Node, error)
	CloneTo(g *G.ExprGraph) Layer

	Weights() *G.Node
	Bias() *G.Node
	Activation() *Activation
}
