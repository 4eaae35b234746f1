// Package learning holds training strategies for constructed networks. Only
// weight initialization is implemented; there is no training loop.
package learning

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"neuronet/internal/nn"
)

type Kind string

const (
	Supervised   Kind = "supervised"
	Unsupervised Kind = "unsupervised"
)

const NameBackPropagation = "backprop"

var (
	ErrUnknownAlgorithm = errors.New("unknown learning algorithm")
	ErrNoNetwork        = errors.New("network is required")
)

type Algorithm interface {
	Name() string
	Kind() Kind
}

// SupervisedAlgorithm learns from labelled examples. A training step will
// join InitializeWeights here once one exists.
type SupervisedAlgorithm interface {
	Algorithm
	InitializeWeights(net *nn.Network) error
}

// UnsupervisedAlgorithm has no concrete strategy yet.
type UnsupervisedAlgorithm interface {
	Algorithm
}

// BackPropagation seeds the input layer's placeholder weights uniformly from
// [0, 1). Hidden and output weights keep the values the builder gave them.
type BackPropagation struct {
	rng *rand.Rand
}

// NewBackPropagation uses rng for weight draws; nil falls back to a
// time-seeded source.
func NewBackPropagation(rng *rand.Rand) *BackPropagation {
	return &BackPropagation{rng: ensureRNG(rng)}
}

func (b *BackPropagation) Name() string { return NameBackPropagation }

func (b *BackPropagation) Kind() Kind { return Supervised }

func (b *BackPropagation) InitializeWeights(net *nn.Network) error {
	if net == nil {
		return ErrNoNetwork
	}
	if net.Input.Len() == 0 {
		return errors.Wrap(nn.ErrIncomplete, "initialize weights")
	}
	for _, neuron := range net.Input.Neurons() {
		for _, input := range neuron.Inputs() {
			input.SetWeight(b.rng.Float64())
		}
	}
	return nil
}

// Lookup resolves a supervised algorithm by name.
func Lookup(name string, rng *rand.Rand) (SupervisedAlgorithm, error) {
	switch name {
	case "", NameBackPropagation:
		return NewBackPropagation(rng), nil
	default:
		return nil, errors.Wrap(ErrUnknownAlgorithm, name)
	}
}

func ensureRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
