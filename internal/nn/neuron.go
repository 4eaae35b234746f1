package nn

// Neuron aggregates its input edges plus a bias and passes the sum through an
// activation function. A neuron without an activation behaves as identity.
type Neuron struct {
	id         string
	seq        uint64
	bias       float64
	activation ActivationFunction
	inputs     []*Synapse
	outputs    []*Synapse
}

// NewNeuron draws the next id from ids, which must not be nil.
func NewNeuron(ids *IDGenerator) *Neuron {
	seq := ids.Next()
	return &Neuron{id: neuronName(seq), seq: seq}
}

func (n *Neuron) ID() string {
	return n.id
}

// Seq is the creation sequence number the id was formatted from.
func (n *Neuron) Seq() uint64 {
	return n.seq
}

func (n *Neuron) AddInput(s *Synapse) {
	n.inputs = append(n.inputs, s)
}

func (n *Neuron) AddOutput(s *Synapse) {
	n.outputs = append(n.outputs, s)
}

func (n *Neuron) Inputs() []*Synapse {
	return append([]*Synapse(nil), n.inputs...)
}

func (n *Neuron) Outputs() []*Synapse {
	return append([]*Synapse(nil), n.outputs...)
}

func (n *Neuron) SetBias(b float64) {
	n.bias = b
}

func (n *Neuron) Bias() float64 {
	return n.bias
}

func (n *Neuron) SetActivation(fn ActivationFunction) {
	n.activation = fn
}

func (n *Neuron) Activation() ActivationFunction {
	if n.activation == nil {
		return Identity{}
	}
	return n.activation
}

// Connect wires a new edge from n to target, registers it on both neurons and
// seeds it with signal and weight.
func (n *Neuron) Connect(target *Neuron, signal, weight float64) (*Synapse, error) {
	s, err := NewSynapse(n, target)
	if err != nil {
		return nil, err
	}
	s.SetSignal(signal)
	s.SetWeight(weight)
	n.AddOutput(s)
	if target != nil {
		target.AddInput(s)
	}
	return s, nil
}

// ActivationPotential is the weighted input sum plus bias.
func (n *Neuron) ActivationPotential() float64 {
	potential := 0.0
	for _, input := range n.inputs {
		potential += input.EffectiveSignal()
	}
	return potential + n.bias
}

func (n *Neuron) OutputValue() float64 {
	return n.Activation().Apply(n.ActivationPotential())
}

// Publish writes the neuron's output value into every outgoing edge.
func (n *Neuron) Publish() float64 {
	value := n.OutputValue()
	for _, output := range n.outputs {
		output.SetSignal(value)
	}
	return value
}
