package nn

import (
	"errors"
	"math"
	"testing"
)

func TestDerivativeBasics(t *testing.T) {
	cases := []struct {
		name string
		y    float64
		want float64
	}{
		{ActivationIdentity, 3, 1},
		{ActivationReLU, 2, 1},
		{ActivationReLU, 0, 0},
		{ActivationTanh, 0.5, 0.75},
		{ActivationSigmoid, 0.5, 0.25},
		{ActivationSigmoid, 0.2, 0.16},
	}
	for _, c := range cases {
		got, err := Derivative(c.name, c.y)
		if err != nil {
			t.Fatalf("derivative %s failed: %v", c.name, err)
		}
		if math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("derivative %s(%f): got=%f want=%f", c.name, c.y, got, c.want)
		}
	}
}

func TestDerivativeUnsupported(t *testing.T) {
	if _, err := Derivative("unknown", 1); !errors.Is(err, ErrActivationNotFound) {
		t.Fatalf("expected ErrActivationNotFound, got: %v", err)
	}
}
