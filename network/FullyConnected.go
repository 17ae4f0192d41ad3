package network

import (
	"bytes"
	"encoding/gob"
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// fcLayer implements a fully connected layer of a feed forward neural
// network
type fcLayer struct {
	weights *G.Node
	bias    *G.Node
	act     *Activation
}

// fwd adds the forward pass of the fcLayer to the computational graph
func (f *fcLayer) fwd(x *G.Node) (*G.Node, error) {
	if f.Weights() != nil {
		x = G.Must(G.Mul(x, f.Weights()))
	}
	if f.Bias() != nil {
		// Broadcast the bias weights to all samples along the batch
		// dimension
		x = G.Must(G.BroadcastAdd(x, f.Bias(), nil, []byte{0}))
	}
	if f.Activation().IsNil() || f.Activation().IsIdentity() {
		return x, nil
	}
	return f.Activation().fwd(x)
}

// CloneTo clones an fcLayer to a new computational graph
func (f *fcLayer) CloneTo(g *G.ExprGraph) Layer {
	var newWeights, newBias *G.Node

	if f.Weights() != nil {
		newWeights = f.Weights().CloneTo(g)
	}
	if f.Bias() != nil {
		newBias = f.Bias().CloneTo(g)
	}

	return &fcLayer{
		weights: newWeights,
		bias:    newBias,
		act:     f.act,
	}
}

func (f *fcLayer) Activation() *Activation {
	return f.act
}

func (f *fcLayer) Bias() *G.Node {
	return f.bias
}

func (f *fcLayer) Weights() *G.Node {
	return f.weights
}

// GobEncode implements the gob.GobEncoder interface. The weight values
// of the layer are encoded so that a decoded layer can restore them
// with Let on its own graph's nodes.
func (f *fcLayer) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	hasWeights := f.weights != nil
	if err := enc.Encode(hasWeights); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode weights flag: %v",
			err)
	}
	if hasWeights {
		err := enc.Encode(f.weights.Value().Data().([]float64))
		if err != nil {
			return nil, fmt.Errorf("gobencode: could not encode weights: %v",
				err)
		}
	}

	hasBias := f.bias != nil
	if err := enc.Encode(hasBias); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode bias flag: %v",
			err)
	}
	if hasBias {
		err := enc.Encode(f.bias.Value().Data().([]float64))
		if err != nil {
			return nil, fmt.Errorf("gobencode: could not encode bias: %v", err)
		}
	}

	if err := enc.Encode(f.act); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode activation: %v",
			err)
	}

	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. The layer must
// already exist on a graph with the same shape as the encoded layer;
// decoding restores the encoded weight values into the existing nodes.
func (f *fcLayer) GobDecode(in []byte) error {
	buf := bytes.NewReader(in)
	dec := gob.NewDecoder(buf)

	var hasWeights bool
	if err := dec.Decode(&hasWeights); err != nil {
		return fmt.Errorf("gobdecode: could not decode weights flag: %v", err)
	}
	if hasWeights {
		if f.weights == nil {
			return fmt.Errorf("gobdecode: layer has no weights node to fill")
		}

		var weights []float64
		if err := dec.Decode(&weights); err != nil {
			return fmt.Errorf("gobdecode: could not decode weights: %v", err)
		}
		weightsTensor := tensor.New(
			tensor.WithBacking(weights),
			tensor.WithShape(f.weights.Shape()...),
		)
		if err := G.Let(f.weights, weightsTensor); err != nil {
			return fmt.Errorf("gobdecode: could not set weights: %v", err)
		}
	}

	var hasBias bool
	if err := dec.Decode(&hasBias); err != nil {
		return fmt.Errorf("gobdecode: could not decode bias flag: %v", err)
	}
	if hasBias {
		if f.bias == nil {
			return fmt.Errorf("gobdecode: layer has no bias node to fill")
		}

		var bias []float64
		if err := dec.Decode(&bias); err != nil {
			return fmt.Errorf("gobdecode: could not decode bias: %v", err)
		}
		biasTensor := tensor.New(
			tensor.WithBacking(bias),
			tensor.WithShape(f.bias.Shape()...),
		)
		if err := G.Let(f.bias, biasTensor); err != nil {
			return fmt.Errorf("gobdecode: could not set bias: %v", err)
		}
	}

	var act Activation
	if err := dec.Decode(&act); err != nil {
		return fmt.Errorf("gobdecode: could not decode activation: %v", err)
	}
	f.act = &act

	return nil
}

// addfcLayers adds fully connected layers to the graph g. For index i,
// hiddenSizes[i] is the number of nodes in layer i, biases[i] is
// whether layer i has a bias unit, and activations[i] is the
// activation function of layer i.
func addfcLayers(g *G.ExprGraph, hiddenSizes []int, biases []bool,
	activations []*Activation, init G.InitWFn, features int) []Layer {
	layers := make([]Layer, 0, len(hiddenSizes))

	for i := range hiddenSizes {
		weightName := fmt.Sprintf("L%dW", i)
		weights := G.NewMatrix(
			g,
			tensor.Float64,
			G.WithShape(features, hiddenSizes[i]),
			G.WithName(weightName),
			G.WithInit(init),
		)
		features = hiddenSizes[i]

		var bias *G.Node
		if biases[i] {
			biasName := fmt.Sprintf("L%dB", i)
			bias = G.NewVector(
				g,
				tensor.Float64,
				G.WithShape(hiddenSizes[i]),
				G.WithName(biasName),
				G.WithInit(G.Zeroes()),
			)
		}

		layers = append(layers, &fcLayer{
			weights: weights,
			bias:    bias,
			act:     activations[i],
		})
	}

	return layers
}
