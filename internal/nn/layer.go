package nn

import (
	"errors"
	"fmt"
)

// Defaults used when builders fully connect two layers.
const (
	DefaultConnectSignal = 1.0
	DefaultConnectWeight = 5.0
)

// Layer is an ordered, non-owning group of neurons.
type Layer struct {
	neurons []*Neuron
}

func NewLayer(neurons ...*Neuron) *Layer {
	return &Layer{neurons: append([]*Neuron(nil), neurons...)}
}

func (l *Layer) AddNeurons(neurons []*Neuron) {
	l.neurons = append(l.neurons, neurons...)
}

func (l *Layer) AddNeuron(n *Neuron) {
	l.neurons = append(l.neurons, n)
}

func (l *Layer) Neurons() []*Neuron {
	return append([]*Neuron(nil), l.neurons...)
}

func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.neurons)
}

// ConnectFull creates one edge from every neuron of l to every neuron of
// other, iterating l in order on the outside and other in order on the
// inside. The new edges are returned in that order. Nothing is wired when the
// layers share a neuron.
func (l *Layer) ConnectFull(other *Layer, initialSignal, initialWeight float64) ([]*Synapse, error) {
	if other == nil {
		return nil, errors.New("target layer is required")
	}
	members := make(map[*Neuron]struct{}, len(l.neurons))
	for _, n := range l.neurons {
		members[n] = struct{}{}
	}
	for _, n := range other.neurons {
		if _, shared := members[n]; shared {
			return nil, fmt.Errorf("%w: %s is in both layers", ErrSelfConnection, n.ID())
		}
	}

	created := make([]*Synapse, 0, len(l.neurons)*len(other.neurons))
	for _, from := range l.neurons {
		for _, to := range other.neurons {
			s, err := from.Connect(to, initialSignal, initialWeight)
			if err != nil {
				return nil, err
			}
			created = append(created, s)
		}
	}
	return created, nil
}
