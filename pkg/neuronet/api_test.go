package neuronet

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"neuronet/internal/construct"
	"neuronet/internal/model"
	"neuronet/internal/nn"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(Options{
		StoreKind: "memory",
		Now:       func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestBuildPerceptron(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Build(ctx, BuildRequest{
		Architecture: model.Architecture{InputNeurons: 2, OutputNeurons: 3},
		Signal:       []float64{0.1, 0.2},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if summary.Constructor != construct.NamePerceptron || summary.Activation != nn.ActivationSigmoid {
		t.Fatalf("unexpected defaults: %+v", summary)
	}
	if summary.Neurons != 5 || summary.Synapses != 6 {
		t.Fatalf("unexpected counts: neurons=%d synapses=%d", summary.Neurons, summary.Synapses)
	}
	if len(summary.Layers) != 2 || summary.Layers[0] != 2 || summary.Layers[1] != 3 {
		t.Fatalf("unexpected layers: %v", summary.Layers)
	}
	if summary.CreatedAtUTC != "2024-05-06T07:08:09Z" {
		t.Fatalf("unexpected timestamp: %s", summary.CreatedAtUTC)
	}

	sig := nn.Sigmoid{}
	want := sig.Apply((sig.Apply(0.1) + sig.Apply(0.2)) * nn.DefaultConnectWeight)
	for i, got := range summary.Outputs {
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("output %d: got=%f want=%f", i, got, want)
		}
	}

	stored, err := client.BuildRecord(ctx, summary.ID)
	if err != nil {
		t.Fatalf("get build record: %v", err)
	}
	if stored.ID != summary.ID || stored.Synapses != 6 {
		t.Fatalf("unexpected stored record: %+v", stored)
	}
}

func TestBuildConfigErrorPassesThrough(t *testing.T) {
	client := newTestClient(t)
	_, err := client.Build(context.Background(), BuildRequest{
		Architecture: model.Architecture{InputNeurons: 0, OutputNeurons: 1},
	})
	if !errors.Is(err, construct.ErrMissingInputCount) {
		t.Fatalf("expected ErrMissingInputCount, got: %v", err)
	}
	if cfgErr, ok := construct.AsConfigError(err); !ok || cfgErr.Kind != construct.MissingInputCount {
		t.Fatalf("expected config error kind, got: %v", err)
	}

	builds, err := client.Builds(context.Background(), 0)
	if err != nil {
		t.Fatalf("list builds: %v", err)
	}
	if len(builds) != 0 {
		t.Fatalf("failed build must not be recorded: %+v", builds)
	}
}

func TestBuildFromProfileWithRandomSignal(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	arch := model.Architecture{InputNeurons: 3, OutputNeurons: 2, HiddenLayers: 2, NeuronsPerHiddenLayer: 4}
	if _, err := client.SaveProfile(ctx, "deep", arch); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	req := BuildRequest{
		Constructor:  construct.NameMultilayer,
		Profile:      "deep",
		RandomSignal: true,
		InitWeights:  true,
		Seed:         11,
	}
	first, err := client.Build(ctx, req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(first.Signal) != 3 {
		t.Fatalf("unexpected random signal width: %v", first.Signal)
	}
	for _, v := range first.Signal {
		if v < 0 || v >= 1 {
			t.Fatalf("random signal value %f outside [0,1)", v)
		}
	}
	// 3*4 + 4*4 + 4*2
	if first.Synapses != 36 || first.Neurons != 13 {
		t.Fatalf("unexpected counts: neurons=%d synapses=%d", first.Neurons, first.Synapses)
	}
	if first.Profile != "deep" || first.Architecture != arch {
		t.Fatalf("profile not applied: %+v", first)
	}

	second, err := client.Build(ctx, req)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("expected distinct build ids")
	}
	for i := range first.Outputs {
		if first.Outputs[i] != second.Outputs[i] {
			t.Fatalf("same seed produced different outputs: %v vs %v", first.Outputs, second.Outputs)
		}
	}

	builds, err := client.Builds(ctx, 1)
	if err != nil {
		t.Fatalf("list builds: %v", err)
	}
	if len(builds) != 1 || builds[0].ID != second.ID {
		t.Fatalf("expected newest build first: %+v", builds)
	}
}

func TestBuildUnknownInputs(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	arch := model.Architecture{InputNeurons: 1, OutputNeurons: 1}

	if _, err := client.Build(ctx, BuildRequest{Profile: "missing"}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got: %v", err)
	}
	if _, err := client.Build(ctx, BuildRequest{Architecture: arch, Signal: []float64{1}, Constructor: "hopfield"}); !errors.Is(err, construct.ErrUnknownConstructor) {
		t.Fatalf("expected ErrUnknownConstructor, got: %v", err)
	}
	if _, err := client.Build(ctx, BuildRequest{Architecture: arch, Signal: []float64{1}, Activation: "softsign"}); !errors.Is(err, nn.ErrActivationNotFound) {
		t.Fatalf("expected ErrActivationNotFound, got: %v", err)
	}
	if _, err := client.BuildRecord(ctx, "nope"); !errors.Is(err, ErrBuildNotFound) {
		t.Fatalf("expected ErrBuildNotFound, got: %v", err)
	}
}

func TestSaveProfileValidation(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.SaveProfile(ctx, " ", model.Architecture{InputNeurons: 1, OutputNeurons: 1}); err == nil {
		t.Fatal("expected name error")
	}
	_, err := client.SaveProfile(ctx, "bad", model.Architecture{InputNeurons: 1, OutputNeurons: 1, HiddenLayers: 1})
	if !errors.Is(err, construct.ErrMissingHiddenNeuronCount) {
		t.Fatalf("expected ErrMissingHiddenNeuronCount, got: %v", err)
	}

	if _, err := client.SaveProfile(ctx, "ok", model.Architecture{InputNeurons: 1, OutputNeurons: 1}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	profiles, err := client.Profiles(ctx)
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != "ok" {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
	if _, err := client.Profile(ctx, "bad"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got: %v", err)
	}
}

func TestListings(t *testing.T) {
	client := newTestClient(t)
	if len(client.Activations()) < 4 {
		t.Fatalf("expected built-in activations, got %v", client.Activations())
	}
	if len(client.Constructors()) != 2 {
		t.Fatalf("unexpected constructors: %v", client.Constructors())
	}
}

func TestBuildRejectsOversizedArchitecture(t *testing.T) {
	client := newTestClient(t)
	_, err := client.Build(context.Background(), BuildRequest{
		Architecture: model.Architecture{InputNeurons: 100000, OutputNeurons: 100000},
		RandomSignal: true,
	})
	if !errors.Is(err, construct.ErrArchitectureTooLarge) {
		t.Fatalf("expected ErrArchitectureTooLarge, got: %v", err)
	}

	_, err = client.SaveProfile(context.Background(), "huge", model.Architecture{
		InputNeurons: 1, OutputNeurons: 1, HiddenLayers: construct.MaxHiddenLayers + 1, NeuronsPerHiddenLayer: 1,
	})
	if !errors.Is(err, construct.ErrArchitectureTooLarge) {
		t.Fatalf("expected ErrArchitectureTooLarge for profile, got: %v", err)
	}
}

func TestBuildRecordsOutputDerivatives(t *testing.T) {
	client := newTestClient(t)
	summary, err := client.Build(context.Background(), BuildRequest{
		Constructor:  construct.NameMultilayer,
		Architecture: model.Architecture{InputNeurons: 2, OutputNeurons: 2, HiddenLayers: 1, NeuronsPerHiddenLayer: 3},
		Signal:       []float64{0.3, 0.7},
		InitWeights:  true,
		Seed:         5,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(summary.Derivatives) != len(summary.Outputs) {
		t.Fatalf("expected one derivative per output: %v", summary.Derivatives)
	}
	for i, y := range summary.Outputs {
		want := y * (1 - y)
		if math.Abs(summary.Derivatives[i]-want) > 1e-12 {
			t.Fatalf("derivative %d: got=%f want=%f", i, summary.Derivatives[i], want)
		}
	}
}

func TestCheckDense(t *testing.T) {
	if err := checkDense([]float64{0.5, 0.25}, []float64{0.5, 0.25 + 1e-12}); err != nil {
		t.Fatalf("values within tolerance: %v", err)
	}
	if err := checkDense([]float64{0.5}, []float64{0.6}); !errors.Is(err, ErrEvaluationMismatch) {
		t.Fatalf("expected ErrEvaluationMismatch, got: %v", err)
	}
	if err := checkDense([]float64{0.5}, nil); !errors.Is(err, ErrEvaluationMismatch) {
		t.Fatalf("expected ErrEvaluationMismatch for length, got: %v", err)
	}
}
