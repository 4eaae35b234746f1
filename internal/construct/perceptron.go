package construct

import (
	"neuronet/internal/model"
	"neuronet/internal/nn"
)

// Perceptron wires the input layer straight to the output layer. Hidden layer
// counts in the architecture are not validated and not built.
type Perceptron struct {
	opts options
}

func NewPerceptron(opts ...Option) *Perceptron {
	return &Perceptron{opts: newOptions(opts)}
}

func (p *Perceptron) Name() string { return NamePerceptron }

// Validate checks input and output counts and the size of the input to
// output wiring.
func (p *Perceptron) Validate(arch model.Architecture) error {
	if err := ValidateIO(arch); err != nil {
		return err
	}
	return validateSize(arch, false)
}

func (p *Perceptron) Create(signal []float64, arch model.Architecture) (*nn.Network, error) {
	if err := p.Validate(arch); err != nil {
		return nil, err
	}
	if err := validateSignal(signal, arch); err != nil {
		return nil, err
	}
	return assemble(p.opts, signal, arch, false)
}

// Multilayer chains input, every hidden layer in order, then output.
type Multilayer struct {
	opts options
}

func NewMultilayer(opts ...Option) *Multilayer {
	return &Multilayer{opts: newOptions(opts)}
}

func (m *Multilayer) Name() string { return NameMultilayer }

// Validate checks input, output and hidden sizing and the size of the full
// chain of wiring.
func (m *Multilayer) Validate(arch model.Architecture) error {
	if err := ValidateIO(arch); err != nil {
		return err
	}
	if err := ValidateHidden(arch); err != nil {
		return err
	}
	return validateSize(arch, true)
}

func (m *Multilayer) Create(signal []float64, arch model.Architecture) (*nn.Network, error) {
	if err := m.Validate(arch); err != nil {
		return nil, err
	}
	if err := validateSignal(signal, arch); err != nil {
		return nil, err
	}
	return assemble(m.opts, signal, arch, true)
}
