package neuronet

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"neuronet/internal/construct"
	"neuronet/internal/learning"
	"neuronet/internal/model"
	"neuronet/internal/nn"
	"neuronet/internal/storage"
)

const (
	defaultDBPath    = "neuronet.db"
	defaultListLimit = 20
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrBuildNotFound   = errors.New("build not found")
	// ErrEvaluationMismatch means graph propagation and the dense matrix pass
	// disagreed on the outputs of a freshly built network.
	ErrEvaluationMismatch = errors.New("graph and dense evaluation disagree")
)

const denseTolerance = 1e-9

type Options struct {
	StoreKind string
	DBPath    string
	// Now overrides the clock used for record timestamps.
	Now func() time.Time
}

type Client struct {
	store storage.Store
	now   func() time.Time

	mu          sync.Mutex
	initialized bool
}

type BuildRequest struct {
	Constructor  string
	Profile      string
	Architecture model.Architecture
	Signal       []float64
	RandomSignal bool
	Activation   string
	InitWeights  bool
	Algorithm    string
	Seed         int64
}

type BuildSummary = model.BuildRecord

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store, now: now}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.ensureStore(ctx)
}

func (c *Client) ensureStore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return errors.Wrap(err, "init store")
	}
	c.initialized = true
	return nil
}

// Build constructs a network, optionally seeds its input weights, propagates
// the signal once and records a summary of the result. Configuration errors
// from construction keep their *construct.ConfigError identity.
func (c *Client) Build(ctx context.Context, req BuildRequest) (BuildSummary, error) {
	if err := c.ensureStore(ctx); err != nil {
		return BuildSummary{}, err
	}

	arch := req.Architecture
	if name := strings.TrimSpace(req.Profile); name != "" {
		profile, ok, err := c.store.GetProfile(ctx, name)
		if err != nil {
			return BuildSummary{}, errors.Wrapf(err, "load profile %s", name)
		}
		if !ok {
			return BuildSummary{}, errors.Wrap(ErrProfileNotFound, name)
		}
		arch = profile.Architecture
	}

	activationName := req.Activation
	if activationName == "" {
		activationName = nn.ActivationSigmoid
	}
	activation, err := nn.GetActivation(activationName)
	if err != nil {
		return BuildSummary{}, err
	}

	ctor, err := construct.New(req.Constructor, construct.WithActivation(activation))
	if err != nil {
		return BuildSummary{}, err
	}
	if err := ctor.Validate(arch); err != nil {
		return BuildSummary{}, errors.Wrap(err, ctor.Name())
	}

	seed := req.Seed
	if seed == 0 {
		seed = c.now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	signal := req.Signal
	if req.RandomSignal {
		signal = construct.RandomSignal(rng, arch.InputNeurons)
	}

	net, err := ctor.Create(signal, arch)
	if err != nil {
		return BuildSummary{}, errors.Wrap(err, ctor.Name())
	}

	if req.InitWeights {
		alg, err := learning.Lookup(req.Algorithm, rng)
		if err != nil {
			return BuildSummary{}, err
		}
		if err := alg.InitializeWeights(net); err != nil {
			return BuildSummary{}, errors.Wrap(err, alg.Name())
		}
	}

	outputs, err := net.Propagate()
	if err != nil {
		return BuildSummary{}, errors.Wrap(err, "propagate")
	}
	dense, err := nn.DenseForward(net)
	if err != nil {
		return BuildSummary{}, errors.Wrap(err, "dense forward")
	}
	if err := checkDense(outputs, dense); err != nil {
		return BuildSummary{}, err
	}
	derivatives, err := outputDerivatives(activation.Name(), outputs)
	if err != nil {
		return BuildSummary{}, err
	}

	layers := make([]int, 0, len(net.Hidden)+2)
	for _, layer := range net.Layers() {
		layers = append(layers, layer.Len())
	}
	record := model.BuildRecord{
		VersionedRecord: storage.CurrentVersion(),
		ID:              net.ID,
		Constructor:     ctor.Name(),
		Profile:         strings.TrimSpace(req.Profile),
		Architecture:    arch,
		Signal:          net.Signal(),
		Activation:      activation.Name(),
		InitWeights:     req.InitWeights,
		Seed:            seed,
		Neurons:         net.NeuronCount(),
		Synapses:        net.SynapseCount(),
		Layers:          layers,
		Outputs:         outputs,
		Derivatives:     derivatives,
		Weights:         nn.SummarizeWeights(net.Synapses()),
		CreatedAtUTC:    model.Timestamp(c.now()),
	}
	if err := c.store.SaveBuildRecord(ctx, record); err != nil {
		return BuildSummary{}, errors.Wrap(err, "save build record")
	}
	return record, nil
}

// checkDense compares graph outputs with the dense pass element by element.
func checkDense(outputs, dense []float64) error {
	if len(outputs) != len(dense) {
		return errors.Wrapf(ErrEvaluationMismatch, "outputs=%d dense=%d", len(outputs), len(dense))
	}
	for i := range outputs {
		if math.Abs(outputs[i]-dense[i]) > denseTolerance {
			return errors.Wrapf(ErrEvaluationMismatch, "output %d: graph=%g dense=%g", i, outputs[i], dense[i])
		}
	}
	return nil
}

// outputDerivatives evaluates the activation derivative at each output value.
func outputDerivatives(activation string, outputs []float64) ([]float64, error) {
	derivatives := make([]float64, len(outputs))
	for i, y := range outputs {
		d, err := nn.Derivative(activation, y)
		if err != nil {
			return nil, err
		}
		derivatives[i] = d
	}
	return derivatives, nil
}

func (c *Client) Builds(ctx context.Context, limit int) ([]BuildSummary, error) {
	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return c.store.ListBuildRecords(ctx, limit)
}

func (c *Client) BuildRecord(ctx context.Context, id string) (BuildSummary, error) {
	if err := c.ensureStore(ctx); err != nil {
		return BuildSummary{}, err
	}
	record, ok, err := c.store.GetBuildRecord(ctx, id)
	if err != nil {
		return BuildSummary{}, err
	}
	if !ok {
		return BuildSummary{}, errors.Wrap(ErrBuildNotFound, id)
	}
	return record, nil
}

// SaveProfile stores arch under name after checking it would build as a
// multilayer network.
func (c *Client) SaveProfile(ctx context.Context, name string, arch model.Architecture) (model.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Profile{}, errors.New("profile name is required")
	}
	if err := construct.NewMultilayer().Validate(arch); err != nil {
		return model.Profile{}, err
	}
	if err := c.ensureStore(ctx); err != nil {
		return model.Profile{}, err
	}

	profile := model.Profile{
		VersionedRecord: storage.CurrentVersion(),
		Name:            name,
		Architecture:    arch,
		UpdatedAtUTC:    model.Timestamp(c.now()),
	}
	if err := c.store.SaveProfile(ctx, profile); err != nil {
		return model.Profile{}, errors.Wrapf(err, "save profile %s", name)
	}
	return profile, nil
}

func (c *Client) Profile(ctx context.Context, name string) (model.Profile, error) {
	if err := c.ensureStore(ctx); err != nil {
		return model.Profile{}, err
	}
	profile, ok, err := c.store.GetProfile(ctx, name)
	if err != nil {
		return model.Profile{}, err
	}
	if !ok {
		return model.Profile{}, errors.Wrap(ErrProfileNotFound, name)
	}
	return profile, nil
}

func (c *Client) Profiles(ctx context.Context) ([]model.Profile, error) {
	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}
	return c.store.ListProfiles(ctx)
}

func (c *Client) Activations() []string {
	return nn.ListActivations()
}

func (c *Client) Constructors() []string {
	return construct.Names()
}
