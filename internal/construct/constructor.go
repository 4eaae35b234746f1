// Package construct turns an architecture and an input signal into a wired
// network.
package construct

import (
	"sort"

	"github.com/pkg/errors"

	"neuronet/internal/model"
	"neuronet/internal/nn"
)

const (
	NamePerceptron = "perceptron"
	NameMultilayer = "multilayer"
)

var ErrUnknownConstructor = errors.New("unknown constructor")

// Constructor builds a network. A failed Create returns a nil network and
// leaves nothing half-built behind. Validate runs the architecture checks of
// Create without allocating anything.
type Constructor interface {
	Name() string
	Validate(arch model.Architecture) error
	Create(signal []float64, arch model.Architecture) (*nn.Network, error)
}

type options struct {
	ids        *nn.IDGenerator
	activation nn.ActivationFunction
}

type Option func(*options)

// WithIDGenerator makes every network built by the constructor draw neuron ids
// from ids. Without it each Create call starts numbering at n1.
func WithIDGenerator(ids *nn.IDGenerator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithActivation replaces the default sigmoid assigned to built networks.
func WithActivation(fn nn.ActivationFunction) Option {
	return func(o *options) {
		if fn != nil {
			o.activation = fn
		}
	}
}

func newOptions(opts []Option) options {
	o := options{activation: nn.Sigmoid{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var factories = map[string]func(...Option) Constructor{
	NamePerceptron: func(opts ...Option) Constructor { return NewPerceptron(opts...) },
	NameMultilayer: func(opts ...Option) Constructor { return NewMultilayer(opts...) },
}

// New resolves a constructor by name. An empty name selects the perceptron.
func New(name string, opts ...Option) (Constructor, error) {
	if name == "" {
		name = NamePerceptron
	}
	factory, ok := factories[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownConstructor, name)
	}
	return factory(opts...), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// assemble stores the signal, creates the layers in order, wires every
// consecutive pair fully and fills the activation slot.
func assemble(o options, signal []float64, arch model.Architecture, withHidden bool) (*nn.Network, error) {
	ids := o.ids
	if ids == nil {
		ids = nn.NewIDGenerator()
	}
	net := nn.NewNetwork(ids)
	if err := net.SetSignal(signal); err != nil {
		return nil, errors.Wrap(err, "store signal")
	}

	input, err := net.CreateInputLayer(arch.InputNeurons)
	if err != nil {
		return nil, errors.Wrap(err, "create input layer")
	}
	chain := []*nn.Layer{input}
	if withHidden {
		hidden, err := net.CreateHiddenLayers(arch.NeuronsPerHiddenLayer, arch.HiddenLayers)
		if err != nil {
			return nil, errors.Wrap(err, "create hidden layers")
		}
		chain = append(chain, hidden...)
	}
	output, err := net.CreateOutputLayer(arch.OutputNeurons)
	if err != nil {
		return nil, errors.Wrap(err, "create output layer")
	}
	chain = append(chain, output)

	for i := 1; i < len(chain); i++ {
		if _, err := chain[i-1].ConnectFull(chain[i], nn.DefaultConnectSignal, nn.DefaultConnectWeight); err != nil {
			return nil, errors.Wrapf(err, "connect layer %d to %d", i-1, i)
		}
	}

	net.SetActivation(o.activation)
	return net, nil
}
