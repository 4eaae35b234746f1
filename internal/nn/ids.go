package nn

import (
	"strconv"
	"sync/atomic"
)

// IDGenerator hands out neuron sequence numbers. Each network builder owns
// one, so ids are unique and increasing within a construction run without any
// package-level counter.
type IDGenerator struct {
	last atomic.Uint64
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next sequence number, starting at 1.
func (g *IDGenerator) Next() uint64 {
	return g.last.Add(1)
}

// Last returns the most recently issued sequence number, or 0.
func (g *IDGenerator) Last() uint64 {
	return g.last.Load()
}

func neuronName(seq uint64) string {
	return "n" + strconv.FormatUint(seq, 10)
}
