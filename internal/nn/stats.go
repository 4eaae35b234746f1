package nn

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"neuronet/internal/model"
)

// SummarizeWeights reports the population statistics of the given edge
// weights. An empty list yields a zero summary.
func SummarizeWeights(synapses []*Synapse) model.WeightSummary {
	if len(synapses) == 0 {
		return model.WeightSummary{}
	}
	weights := make([]float64, len(synapses))
	for i, s := range synapses {
		weights[i] = s.weight
	}
	mean, std := stat.PopMeanStdDev(weights, nil)
	return model.WeightSummary{
		Count:  len(weights),
		Min:    floats.Min(weights),
		Max:    floats.Max(weights),
		Mean:   mean,
		StdDev: std,
	}
}
