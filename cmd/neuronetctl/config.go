package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"neuronet/pkg/neuronet"
)

// loadBuildRequestFromConfig reads a build request using the same keys as the
// HTTP body.
func loadBuildRequestFromConfig(path string) (neuronet.BuildRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return neuronet.BuildRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return neuronet.BuildRequest{}, err
	}

	var req neuronet.BuildRequest
	if v, ok := asString(raw["constructor"]); ok {
		req.Constructor = v
	}
	if v, ok := asString(raw["profile"]); ok {
		req.Profile = v
	}
	if v, ok := asString(raw["activation"]); ok {
		req.Activation = v
	}
	if v, ok := asString(raw["algorithm"]); ok {
		req.Algorithm = v
	}
	if v, ok := asBool(raw["random_signal"]); ok {
		req.RandomSignal = v
	}
	if v, ok := asBool(raw["init_weights"]); ok {
		req.InitWeights = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if values, ok := raw["signal"].([]any); ok {
		signal := make([]float64, 0, len(values))
		for i, item := range values {
			v, ok := asFloat64(item)
			if !ok {
				return neuronet.BuildRequest{}, fmt.Errorf("signal[%d] is not a number", i)
			}
			signal = append(signal, v)
		}
		req.Signal = signal
	}

	if archMap, ok := raw["architecture"].(map[string]any); ok {
		if v, ok := asInt(archMap["count_input_neurons"]); ok {
			req.Architecture.InputNeurons = v
		}
		if v, ok := asInt(archMap["count_output_neurons"]); ok {
			req.Architecture.OutputNeurons = v
		}
		if v, ok := asInt(archMap["count_hidden_layers"]); ok {
			req.Architecture.HiddenLayers = v
		}
		if v, ok := asInt(archMap["count_neurons_per_hidden_layer"]); ok {
			req.Architecture.NeuronsPerHiddenLayer = v
		}
	}

	return req, nil
}

func loadOrDefaultBuildRequest(configPath string) (neuronet.BuildRequest, error) {
	if configPath == "" {
		return neuronet.BuildRequest{}, nil
	}
	req, err := loadBuildRequestFromConfig(configPath)
	if err != nil {
		return neuronet.BuildRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// overrideFromFlags applies only the flags the user set explicitly.
func overrideFromFlags(req *neuronet.BuildRequest, set map[string]bool, flagValue map[string]any) error {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "constructor":
			req.Constructor = v.(string)
		case "profile":
			req.Profile = v.(string)
		case "activation":
			req.Activation = v.(string)
		case "algorithm":
			req.Algorithm = v.(string)
		case "random-signal":
			req.RandomSignal = v.(bool)
		case "init-weights":
			req.InitWeights = v.(bool)
		case "seed":
			req.Seed = v.(int64)
		case "inputs":
			req.Architecture.InputNeurons = v.(int)
		case "outputs":
			req.Architecture.OutputNeurons = v.(int)
		case "hidden-layers":
			req.Architecture.HiddenLayers = v.(int)
		case "hidden-neurons":
			req.Architecture.NeuronsPerHiddenLayer = v.(int)
		case "signal":
			signal, err := parseSignal(v.(string))
			if err != nil {
				return err
			}
			req.Signal = signal
		default:
			return fmt.Errorf("unsupported override flag: %s", name)
		}
	}
	return nil
}

// parseSignal reads a comma separated list of floats.
func parseSignal(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	signal := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("parse signal value %q: %w", part, err)
		}
		signal = append(signal, v)
	}
	return signal, nil
}
