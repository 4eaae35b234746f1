package nn

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrActivationExists   = errors.New("activation already registered")
	ErrActivationNotFound = errors.New("activation not found")
)

var activationRegistry = struct {
	mu sync.RWMutex
	m  map[string]ActivationFunction
}{
	m: make(map[string]ActivationFunction),
}

func init() {
	initializeBuiltInActivations()
}

func initializeBuiltInActivations() {
	MustRegisterActivation(Identity{})
	MustRegisterActivation(ReLU{})
	MustRegisterActivation(Tanh{})
	MustRegisterActivation(Sigmoid{})
}

func RegisterActivation(fn ActivationFunction) error {
	if fn == nil {
		return errors.New("activation function is required")
	}
	name := strings.TrimSpace(fn.Name())
	if name == "" {
		return errors.New("activation name is required")
	}

	activationRegistry.mu.Lock()
	defer activationRegistry.mu.Unlock()

	if _, exists := activationRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrActivationExists, name)
	}
	activationRegistry.m[name] = fn
	return nil
}

func MustRegisterActivation(fn ActivationFunction) {
	if err := RegisterActivation(fn); err != nil {
		panic(err)
	}
}

func GetActivation(name string) (ActivationFunction, error) {
	activationRegistry.mu.RLock()
	fn, ok := activationRegistry.m[strings.TrimSpace(name)]
	activationRegistry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActivationNotFound, name)
	}
	return fn, nil
}

func ListActivations() []string {
	activationRegistry.mu.RLock()
	defer activationRegistry.mu.RUnlock()

	names := make([]string, 0, len(activationRegistry.m))
	for name := range activationRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resetActivationRegistryForTests() {
	activationRegistry.mu.Lock()
	activationRegistry.m = make(map[string]ActivationFunction)
	activationRegistry.mu.Unlock()
	initializeBuiltInActivations()
}
