package nn

import "fmt"

// Derivative evaluates the named activation's derivative at output value y.
func Derivative(name string, y float64) (float64, error) {
	fn, err := GetActivation(name)
	if err != nil {
		return 0, fmt.Errorf("%w: unsupported derivative: %s", err, name)
	}
	return fn.Derivative(y), nil
}
