package construct

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigErrorKind names the architecture field that failed validation.
type ConfigErrorKind string

const (
	MissingInputCount        ConfigErrorKind = "missing_input_count"
	MissingOutputCount       ConfigErrorKind = "missing_output_count"
	InvalidHiddenLayerCount  ConfigErrorKind = "invalid_hidden_layer_count"
	MissingHiddenNeuronCount ConfigErrorKind = "missing_hidden_neuron_count"
	SignalWidthMismatch      ConfigErrorKind = "signal_width_mismatch"
	ArchitectureTooLarge     ConfigErrorKind = "architecture_too_large"
)

var (
	ErrMissingInputCount        = errors.New("number of input neurons is not set")
	ErrMissingOutputCount       = errors.New("number of output neurons is not set")
	ErrInvalidHiddenLayerCount  = errors.New("number of hidden layers is negative")
	ErrMissingHiddenNeuronCount = errors.New("number of neurons per hidden layer is not set")
	ErrSignalWidthMismatch      = errors.New("signal width does not match input neuron count")
	ErrArchitectureTooLarge     = errors.New("architecture exceeds size limits")
)

var sentinels = map[ConfigErrorKind]error{
	MissingInputCount:        ErrMissingInputCount,
	MissingOutputCount:       ErrMissingOutputCount,
	InvalidHiddenLayerCount:  ErrInvalidHiddenLayerCount,
	MissingHiddenNeuronCount: ErrMissingHiddenNeuronCount,
	SignalWidthMismatch:      ErrSignalWidthMismatch,
	ArchitectureTooLarge:     ErrArchitectureTooLarge,
}

// ConfigError reports the first architecture field that prevented
// construction. It matches the kind's sentinel under errors.Is.
type ConfigError struct {
	Kind  ConfigErrorKind
	Field string
	Value int
}

func newConfigError(kind ConfigErrorKind, field string, value int) *ConfigError {
	return &ConfigError{Kind: kind, Field: field, Value: value}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%d", e.Unwrap(), e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	if err, ok := sentinels[e.Kind]; ok {
		return err
	}
	return errors.Errorf("invalid architecture (%s)", e.Kind)
}

// AsConfigError extracts a *ConfigError from err's chain.
func AsConfigError(err error) (*ConfigError, bool) {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr, true
	}
	return nil, false
}
