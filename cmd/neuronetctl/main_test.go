package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"neuronet/internal/construct"
)

func captureStdout(fn func() error) (string, error) {
	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	os.Stdout = w
	runErr := fn()
	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		_ = r.Close()
		return "", err
	}
	_ = r.Close()
	return buf.String(), runErr
}

func TestRunRequiresCommand(t *testing.T) {
	if err := run(context.Background(), nil); err == nil || !strings.Contains(err.Error(), "usage:") {
		t.Fatalf("expected usage error, got: %v", err)
	}
	if err := run(context.Background(), []string{"train"}); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got: %v", err)
	}
}

func TestBuildCommandMemory(t *testing.T) {
	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"build",
			"--store", "memory",
			"--inputs", "2",
			"--outputs", "3",
			"--signal", "0.1,0.2",
		})
	})
	if err != nil {
		t.Fatalf("build command: %v", err)
	}
	if !strings.Contains(out, "constructor=perceptron") || !strings.Contains(out, "synapses=6") {
		t.Fatalf("unexpected output: %s", out)
	}
	if !strings.Contains(out, "output[2]=") {
		t.Fatalf("expected three outputs: %s", out)
	}
}

func TestBuildCommandConfigWithOverride(t *testing.T) {
	path := writeConfig(t, map[string]any{
		"constructor":   "multilayer",
		"random_signal": true,
		"seed":          3,
		"architecture": map[string]any{
			"count_input_neurons":            20,
			"count_output_neurons":           30,
			"count_hidden_layers":            2,
			"count_neurons_per_hidden_layer": 40,
		},
	})
	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"build",
			"--store", "memory",
			"--config", path,
			"--outputs", "50",
		})
	})
	if err != nil {
		t.Fatalf("build command: %v", err)
	}
	// 20*40 + 40*40 + 40*50
	if !strings.Contains(out, "synapses=4,400") || !strings.Contains(out, "neurons=150") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestBuildCommandConfigError(t *testing.T) {
	_, err := captureStdout(func() error {
		return run(context.Background(), []string{"build", "--store", "memory", "--outputs", "1"})
	})
	if !errors.Is(err, construct.ErrMissingInputCount) {
		t.Fatalf("expected ErrMissingInputCount, got: %v", err)
	}
}

func TestProfileAndShowValidation(t *testing.T) {
	if err := run(context.Background(), []string{"profile"}); err == nil {
		t.Fatal("expected profile subcommand error")
	}
	if err := run(context.Background(), []string{"profile", "save", "--store", "memory"}); err == nil {
		t.Fatal("expected missing name error")
	}
	if err := run(context.Background(), []string{"show", "--store", "memory"}); err == nil {
		t.Fatal("expected missing id error")
	}
	_, err := captureStdout(func() error {
		return run(context.Background(), []string{"profile", "save", "--store", "memory", "--name", "x", "--inputs", "1"})
	})
	if !errors.Is(err, construct.ErrMissingOutputCount) {
		t.Fatalf("expected ErrMissingOutputCount, got: %v", err)
	}
}

func TestActivationsCommand(t *testing.T) {
	out, err := captureStdout(func() error {
		return run(context.Background(), []string{"activations"})
	})
	if err != nil {
		t.Fatalf("activations command: %v", err)
	}
	if !strings.Contains(out, "sigmoid") || !strings.Contains(out, "constructors=multilayer,perceptron") {
		t.Fatalf("unexpected output: %s", out)
	}
}
