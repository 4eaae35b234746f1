package storage

import (
	"errors"
	"testing"

	"neuronet/internal/model"
)

func TestBuildRecordCodecRoundTrip(t *testing.T) {
	input := model.BuildRecord{
		VersionedRecord: CurrentVersion(),
		ID:              "b1",
		Constructor:     "perceptron",
		Architecture:    model.Architecture{InputNeurons: 2, OutputNeurons: 3},
		Signal:          []float64{0.1, 0.2},
		Neurons:         5,
		Synapses:        6,
		Layers:          []int{2, 3},
		Outputs:         []float64{0.9, 0.9, 0.9},
		Weights:         model.WeightSummary{Count: 11, Min: 1, Max: 5, Mean: 3.2, StdDev: 1.9},
	}
	data, err := EncodeBuildRecord(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeBuildRecord(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.ID != input.ID || output.Synapses != 6 || len(output.Layers) != 2 || output.Weights.Count != 11 {
		t.Fatalf("unexpected decoded record: %+v", output)
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	data, err := EncodeProfile(model.Profile{
		VersionedRecord: model.VersionedRecord{SchemaVersion: 99, CodecVersion: CurrentCodecVersion},
		Name:            "old",
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeProfile(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got: %v", err)
	}

	data, err = EncodeBuildRecord(model.BuildRecord{ID: "unversioned"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeBuildRecord(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got: %v", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeProfile([]byte("{")); err == nil {
		t.Fatal("expected decode error")
	}
}
