package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Architecture describes the sizing of a layered network. Counts are plain
// ints so callers can hand over parsed user input and let construction reject
// non-positive values.
type Architecture struct {
	InputNeurons          int `json:"count_input_neurons"`
	OutputNeurons         int `json:"count_output_neurons"`
	HiddenLayers          int `json:"count_hidden_layers"`
	NeuronsPerHiddenLayer int `json:"count_neurons_per_hidden_layer"`
}

// ExpectedNeurons is the neuron count a fully wired multilayer network of this
// architecture would hold.
func (a Architecture) ExpectedNeurons() int {
	hidden := 0
	if a.HiddenLayers > 0 && a.NeuronsPerHiddenLayer > 0 {
		hidden = a.HiddenLayers * a.NeuronsPerHiddenLayer
	}
	return a.InputNeurons + hidden + a.OutputNeurons
}

// Profile is a named architecture kept by a store.
type Profile struct {
	VersionedRecord
	Name         string       `json:"name"`
	Architecture Architecture `json:"architecture"`
	UpdatedAtUTC string       `json:"updated_at_utc"`
}

// WeightSummary describes the distribution of synapse weights in a network.
type WeightSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// BuildRecord summarizes a single network construction. It holds counts and
// outputs, never the wired graph itself.
type BuildRecord struct {
	VersionedRecord
	ID           string        `json:"id"`
	Constructor  string        `json:"constructor"`
	Profile      string        `json:"profile,omitempty"`
	Architecture Architecture  `json:"architecture"`
	Signal       []float64     `json:"signal"`
	Activation   string        `json:"activation"`
	InitWeights  bool          `json:"init_weights"`
	Seed         int64         `json:"seed,omitempty"`
	Neurons      int           `json:"neurons"`
	Synapses     int           `json:"synapses"`
	Layers       []int         `json:"layers"`
	Outputs      []float64     `json:"outputs"`
	Derivatives  []float64     `json:"output_derivatives"`
	Weights      WeightSummary `json:"weights"`
	CreatedAtUTC string        `json:"created_at_utc"`
}

// Timestamp formats t the way records store creation times.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
