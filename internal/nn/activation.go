package nn

import "math"

const (
	ActivationSigmoid  = "sigmoid"
	ActivationTanh     = "tanh"
	ActivationIdentity = "identity"
	ActivationReLU     = "relu"
)

// ActivationFunction is a scalar transform paired with its derivative.
// Derivative takes the function's output value, not its input, so a caller
// that already holds a neuron's output does not recompute the transform.
type ActivationFunction interface {
	Name() string
	Apply(x float64) float64
	Derivative(y float64) float64
}

type Sigmoid struct{}

func (Sigmoid) Name() string { return ActivationSigmoid }

func (Sigmoid) Apply(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func (Sigmoid) Derivative(y float64) float64 {
	return y * (1.0 - y)
}

type Tanh struct{}

func (Tanh) Name() string { return ActivationTanh }

func (Tanh) Apply(x float64) float64 { return math.Tanh(x) }

func (Tanh) Derivative(y float64) float64 {
	return 1 - (y * y)
}

type Identity struct{}

func (Identity) Name() string { return ActivationIdentity }

func (Identity) Apply(x float64) float64 { return x }

func (Identity) Derivative(float64) float64 { return 1 }

type ReLU struct{}

func (ReLU) Name() string { return ActivationReLU }

func (ReLU) Apply(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

func (ReLU) Derivative(y float64) float64 {
	if y > 0 {
		return 1
	}
	return 0
}
