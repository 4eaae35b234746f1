package nn

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidLayerSize = errors.New("layer size must be positive")
	ErrLayerExists      = errors.New("layer already created")
	ErrSignalWidth      = errors.New("signal width does not match input layer")
	ErrNoSignal         = errors.New("no input signal set")
	ErrIncomplete       = errors.New("network needs both input and output layers")
)

// InputPlaceholderWeight lets an injected signal reach an input neuron
// unscaled until a learning algorithm assigns real weights.
const InputPlaceholderWeight = 1.0

// Network owns the layers of a feed-forward topology and the last input
// vector applied to it. Hidden layers are ordered nearest-input first.
type Network struct {
	ID     string
	Input  *Layer
	Output *Layer
	Hidden []*Layer

	signal     []float64
	activation ActivationFunction
	ids        *IDGenerator
}

// NewNetwork returns an empty network whose neurons take ids from ids. A nil
// generator gets a fresh one.
func NewNetwork(ids *IDGenerator) *Network {
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &Network{
		ID:     uuid.NewString(),
		Input:  NewLayer(),
		Output: NewLayer(),
		ids:    ids,
	}
}

func (n *Network) newNeuron() *Neuron {
	neuron := NewNeuron(n.ids)
	if n.activation != nil {
		neuron.SetActivation(n.activation)
	}
	return neuron
}

// CreateInputLayer fills the input layer with count neurons, each fed by one
// dangling placeholder edge that has no source.
func (n *Network) CreateInputLayer(count int) (*Layer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: input=%d", ErrInvalidLayerSize, count)
	}
	if n.Input.Len() > 0 {
		return nil, fmt.Errorf("%w: input", ErrLayerExists)
	}
	if n.signal != nil && len(n.signal) != count {
		return nil, fmt.Errorf("%w: signal=%d input=%d", ErrSignalWidth, len(n.signal), count)
	}
	for i := 0; i < count; i++ {
		neuron := n.newNeuron()
		placeholder, err := NewSynapse(nil, neuron)
		if err != nil {
			return nil, err
		}
		placeholder.SetWeight(InputPlaceholderWeight)
		neuron.AddInput(placeholder)
		n.Input.AddNeuron(neuron)
	}
	return n.Input, nil
}

// CreateOutputLayer fills the output layer with count neurons, each with one
// dangling outgoing edge that has no target.
func (n *Network) CreateOutputLayer(count int) (*Layer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: output=%d", ErrInvalidLayerSize, count)
	}
	if n.Output.Len() > 0 {
		return nil, fmt.Errorf("%w: output", ErrLayerExists)
	}
	for i := 0; i < count; i++ {
		neuron := n.newNeuron()
		placeholder, err := NewSynapse(neuron, nil)
		if err != nil {
			return nil, err
		}
		neuron.AddOutput(placeholder)
		n.Output.AddNeuron(neuron)
	}
	return n.Output, nil
}

func (n *Network) createHiddenLayer(count int) *Layer {
	layer := NewLayer()
	for i := 0; i < count; i++ {
		layer.AddNeuron(n.newNeuron())
	}
	return layer
}

// CreateHiddenLayers appends layerCount bare layers of countPerLayer neurons.
// Wiring is left to the caller.
func (n *Network) CreateHiddenLayers(countPerLayer, layerCount int) ([]*Layer, error) {
	if layerCount < 0 {
		return nil, fmt.Errorf("%w: hidden layers=%d", ErrInvalidLayerSize, layerCount)
	}
	if layerCount > 0 && countPerLayer <= 0 {
		return nil, fmt.Errorf("%w: hidden=%d", ErrInvalidLayerSize, countPerLayer)
	}
	for i := 0; i < layerCount; i++ {
		n.Hidden = append(n.Hidden, n.createHiddenLayer(countPerLayer))
	}
	return append([]*Layer(nil), n.Hidden...), nil
}

// SetSignal stores a copy of the input vector. It does not propagate. A nil
// signal clears the stored one.
func (n *Network) SetSignal(signal []float64) error {
	if signal == nil {
		n.signal = nil
		return nil
	}
	if width := n.Input.Len(); width > 0 && len(signal) != width {
		return fmt.Errorf("%w: signal=%d input=%d", ErrSignalWidth, len(signal), width)
	}
	n.signal = append([]float64{}, signal...)
	return nil
}

// Signal returns a copy of the stored input vector, or nil when none is set.
func (n *Network) Signal() []float64 {
	if n.signal == nil {
		return nil
	}
	return append([]float64{}, n.signal...)
}

// SetActivation fills the network's activation slot and assigns fn to every
// neuron created so far and to neurons created later.
func (n *Network) SetActivation(fn ActivationFunction) {
	n.activation = fn
	for _, neuron := range n.Neurons() {
		neuron.SetActivation(fn)
	}
}

func (n *Network) Activation() ActivationFunction {
	return n.activation
}

// Layers returns the input layer, the hidden layers and the output layer in
// evaluation order. Empty input or output layers are skipped.
func (n *Network) Layers() []*Layer {
	layers := make([]*Layer, 0, len(n.Hidden)+2)
	if n.Input.Len() > 0 {
		layers = append(layers, n.Input)
	}
	layers = append(layers, n.Hidden...)
	if n.Output.Len() > 0 {
		layers = append(layers, n.Output)
	}
	return layers
}

func (n *Network) Neurons() []*Neuron {
	var neurons []*Neuron
	for _, layer := range n.Layers() {
		neurons = append(neurons, layer.neurons...)
	}
	return neurons
}

func (n *Network) NeuronCount() int {
	count := 0
	for _, layer := range n.Layers() {
		count += layer.Len()
	}
	return count
}

// Synapses lists every edge reachable from the network's neurons once, in
// layer order, visiting each neuron's inputs before its outputs.
func (n *Network) Synapses() []*Synapse {
	seen := make(map[*Synapse]struct{})
	var synapses []*Synapse
	visit := func(list []*Synapse) {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			synapses = append(synapses, s)
		}
	}
	for _, neuron := range n.Neurons() {
		visit(neuron.inputs)
		visit(neuron.outputs)
	}
	return synapses
}

// SynapseCount counts edges with both endpoints set, leaving out the input and
// output placeholders.
func (n *Network) SynapseCount() int {
	count := 0
	for _, s := range n.Synapses() {
		if s.source != nil && s.target != nil {
			count++
		}
	}
	return count
}

// Propagate injects the stored signal into the input placeholders, publishes
// every layer in order and returns the output layer's values.
func (n *Network) Propagate() ([]float64, error) {
	if n.Input.Len() == 0 || n.Output.Len() == 0 {
		return nil, ErrIncomplete
	}
	if n.signal == nil {
		return nil, ErrNoSignal
	}
	if len(n.signal) != n.Input.Len() {
		return nil, fmt.Errorf("%w: signal=%d input=%d", ErrSignalWidth, len(n.signal), n.Input.Len())
	}

	for i, neuron := range n.Input.neurons {
		for _, input := range neuron.inputs {
			if input.source == nil {
				input.SetSignal(n.signal[i])
			}
		}
	}
	for _, layer := range n.Layers() {
		for _, neuron := range layer.neurons {
			neuron.Publish()
		}
	}

	outputs := make([]float64, 0, n.Output.Len())
	for _, neuron := range n.Output.neurons {
		outputs = append(outputs, neuron.OutputValue())
	}
	return outputs, nil
}
