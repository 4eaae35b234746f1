package construct

import "neuronet/internal/model"

// Size limits applied before any neuron or synapse is allocated.
const (
	MaxLayerNeurons = 4096
	MaxHiddenLayers = 64
	MaxSynapses     = 1 << 22
)

// ValidateIO checks the counts every constructor needs, input first.
func ValidateIO(arch model.Architecture) error {
	if arch.InputNeurons <= 0 {
		return newConfigError(MissingInputCount, "count_input_neurons", arch.InputNeurons)
	}
	if arch.OutputNeurons <= 0 {
		return newConfigError(MissingOutputCount, "count_output_neurons", arch.OutputNeurons)
	}
	return nil
}

// ValidateHidden checks hidden sizing. Zero hidden layers is valid and then
// the per-layer width is ignored.
func ValidateHidden(arch model.Architecture) error {
	if arch.HiddenLayers < 0 {
		return newConfigError(InvalidHiddenLayerCount, "count_hidden_layers", arch.HiddenLayers)
	}
	if arch.HiddenLayers > 0 && arch.NeuronsPerHiddenLayer <= 0 {
		return newConfigError(MissingHiddenNeuronCount, "count_neurons_per_hidden_layer", arch.NeuronsPerHiddenLayer)
	}
	return nil
}

// validateSize bounds every layer width and the number of synapses the build
// would wire. Hidden sizing only counts when withHidden is set.
func validateSize(arch model.Architecture, withHidden bool) error {
	if arch.InputNeurons > MaxLayerNeurons {
		return newConfigError(ArchitectureTooLarge, "count_input_neurons", arch.InputNeurons)
	}
	if arch.OutputNeurons > MaxLayerNeurons {
		return newConfigError(ArchitectureTooLarge, "count_output_neurons", arch.OutputNeurons)
	}
	if !withHidden || arch.HiddenLayers == 0 {
		if synapses := arch.InputNeurons * arch.OutputNeurons; synapses > MaxSynapses {
			return newConfigError(ArchitectureTooLarge, "synapses", synapses)
		}
		return nil
	}
	if arch.HiddenLayers > MaxHiddenLayers {
		return newConfigError(ArchitectureTooLarge, "count_hidden_layers", arch.HiddenLayers)
	}
	if arch.NeuronsPerHiddenLayer > MaxLayerNeurons {
		return newConfigError(ArchitectureTooLarge, "count_neurons_per_hidden_layer", arch.NeuronsPerHiddenLayer)
	}
	width := arch.NeuronsPerHiddenLayer
	synapses := arch.InputNeurons*width + (arch.HiddenLayers-1)*width*width + width*arch.OutputNeurons
	if synapses > MaxSynapses {
		return newConfigError(ArchitectureTooLarge, "synapses", synapses)
	}
	return nil
}

func validateSignal(signal []float64, arch model.Architecture) error {
	if len(signal) != arch.InputNeurons {
		return newConfigError(SignalWidthMismatch, "signal", len(signal))
	}
	return nil
}
