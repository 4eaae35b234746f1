package construct

import "math/rand"

// RandomSignal draws count values uniformly from [0, 1). It stands in for a
// caller that has no measured input yet.
func RandomSignal(rng *rand.Rand, count int) []float64 {
	if count <= 0 {
		return nil
	}
	signal := make([]float64, count)
	for i := range signal {
		signal[i] = rng.Float64()
	}
	return signal
}
