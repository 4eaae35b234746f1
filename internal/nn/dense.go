package nn

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// WeightMatrix returns a |to| x |from| matrix whose (j, i) entry sums the
// weights of edges running from from[i] to to[j]. Pairs without an edge are 0.
func WeightMatrix(from, to *Layer) (*mat.Dense, error) {
	if from.Len() == 0 || to.Len() == 0 {
		return nil, fmt.Errorf("%w: from=%d to=%d", ErrInvalidLayerSize, from.Len(), to.Len())
	}
	column := make(map[*Neuron]int, from.Len())
	for i, neuron := range from.neurons {
		column[neuron] = i
	}

	weights := mat.NewDense(to.Len(), from.Len(), nil)
	for j, neuron := range to.neurons {
		for _, input := range neuron.inputs {
			i, ok := column[input.source]
			if !ok {
				continue
			}
			weights.Set(j, i, weights.At(j, i)+input.weight)
		}
	}
	return weights, nil
}

// DenseForward evaluates the network layer by layer with matrix products. It
// only sees edges between consecutive layers, so for a network wired by a
// builder it agrees with Propagate; it does not touch any edge signal.
func DenseForward(n *Network) ([]float64, error) {
	if n.Input.Len() == 0 || n.Output.Len() == 0 {
		return nil, ErrIncomplete
	}
	if n.signal == nil {
		return nil, ErrNoSignal
	}
	if len(n.signal) != n.Input.Len() {
		return nil, fmt.Errorf("%w: signal=%d input=%d", ErrSignalWidth, len(n.signal), n.Input.Len())
	}

	layers := n.Layers()
	activations := mat.NewVecDense(n.Input.Len(), nil)
	for i, neuron := range n.Input.neurons {
		z := neuron.bias
		for _, input := range neuron.inputs {
			if input.source == nil {
				z += n.signal[i] * input.weight
			}
		}
		activations.SetVec(i, neuron.Activation().Apply(z))
	}

	for k := 1; k < len(layers); k++ {
		layer := layers[k]
		if layer.Len() == 0 {
			return nil, errors.New("dense evaluation needs non-empty hidden layers")
		}
		weights, err := WeightMatrix(layers[k-1], layer)
		if err != nil {
			return nil, err
		}
		var z mat.VecDense
		z.MulVec(weights, activations)

		next := mat.NewVecDense(layer.Len(), nil)
		for j, neuron := range layer.neurons {
			next.SetVec(j, neuron.Activation().Apply(z.AtVec(j)+neuron.bias))
		}
		activations = next
	}
	return mat.Col(nil, 0, activations), nil
}
