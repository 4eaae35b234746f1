package nn

import "errors"

var ErrSelfConnection = errors.New("neuron cannot connect to itself")

// Synapse is a directed weighted edge. Source is nil for input placeholders
// and Target is nil for output placeholders. Both endpoint neurons hold the
// same pointer, so a weight set through either one is seen by the other.
type Synapse struct {
	weight float64
	signal float64
	source *Neuron
	target *Neuron
}

// NewSynapse creates an unregistered edge between source and target. Either
// end may be nil; both ends may not be the same neuron.
func NewSynapse(source, target *Neuron) (*Synapse, error) {
	if source != nil && source == target {
		return nil, ErrSelfConnection
	}
	return &Synapse{source: source, target: target}, nil
}

func (s *Synapse) SetWeight(w float64) {
	s.weight = w
}

func (s *Synapse) Weight() float64 {
	return s.weight
}

// SetSignal stores the raw upstream value.
func (s *Synapse) SetSignal(x float64) {
	s.signal = x
}

func (s *Synapse) Signal() float64 {
	return s.signal
}

// EffectiveSignal is the contribution of this edge to its target.
func (s *Synapse) EffectiveSignal() float64 {
	return s.signal * s.weight
}

func (s *Synapse) Source() *Neuron {
	return s.source
}

func (s *Synapse) Target() *Neuron {
	return s.target
}
