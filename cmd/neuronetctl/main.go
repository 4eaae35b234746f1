package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"

	"neuronet/internal/httpapi"
	"neuronet/internal/model"
	"neuronet/internal/storage"
	"neuronet/pkg/neuronet"
)

const defaultDBPath = "neuronet.db"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "build":
		return runBuild(ctx, args[1:])
	case "builds":
		return runBuilds(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "profile":
		return runProfile(ctx, args[1:])
	case "activations":
		return runActivations(ctx, args[1:])
	case "serve":
		return runServe(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

type storeFlags struct {
	kind   *string
	dbPath *string
}

func addStoreFlags(fs *flag.FlagSet) storeFlags {
	return storeFlags{
		kind:   fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite"),
		dbPath: fs.String("db-path", defaultDBPath, "sqlite database path"),
	}
}

func (f storeFlags) open() (*neuronet.Client, error) {
	return neuronet.New(neuronet.Options{StoreKind: *f.kind, DBPath: *f.dbPath})
}

func runBuild(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	stores := addStoreFlags(fs)
	configPath := fs.String("config", "", "build config JSON file")
	constructorName := fs.String("constructor", "perceptron", "constructor: perceptron|multilayer")
	profileName := fs.String("profile", "", "stored architecture profile (overrides sizing flags)")
	inputs := fs.Int("inputs", 0, "input neuron count")
	outputs := fs.Int("outputs", 0, "output neuron count")
	hiddenLayers := fs.Int("hidden-layers", 0, "hidden layer count")
	hiddenNeurons := fs.Int("hidden-neurons", 0, "neurons per hidden layer")
	signalValues := fs.String("signal", "", "comma separated input signal")
	randomSignal := fs.Bool("random-signal", false, "draw the input signal uniformly from [0,1)")
	activation := fs.String("activation", "sigmoid", "activation function name")
	initWeights := fs.Bool("init-weights", false, "seed input weights with the learning algorithm")
	algorithm := fs.String("algorithm", "backprop", "learning algorithm used by -init-weights")
	seed := fs.Int64("seed", 0, "random seed (0 uses the clock)")
	asJSON := fs.Bool("json", false, "print the build summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req, err := loadOrDefaultBuildRequest(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		values, err := parseSignal(*signalValues)
		if err != nil {
			return err
		}
		req = neuronet.BuildRequest{
			Constructor: *constructorName,
			Profile:     *profileName,
			Architecture: model.Architecture{
				InputNeurons:          *inputs,
				OutputNeurons:         *outputs,
				HiddenLayers:          *hiddenLayers,
				NeuronsPerHiddenLayer: *hiddenNeurons,
			},
			Signal:       values,
			RandomSignal: *randomSignal,
			Activation:   *activation,
			InitWeights:  *initWeights,
			Algorithm:    *algorithm,
			Seed:         *seed,
		}
	} else {
		err := overrideFromFlags(&req, setFlags, map[string]any{
			"constructor":    *constructorName,
			"profile":        *profileName,
			"inputs":         *inputs,
			"outputs":        *outputs,
			"hidden-layers":  *hiddenLayers,
			"hidden-neurons": *hiddenNeurons,
			"signal":         *signalValues,
			"random-signal":  *randomSignal,
			"activation":     *activation,
			"init-weights":   *initWeights,
			"algorithm":      *algorithm,
			"seed":           *seed,
		})
		if err != nil {
			return err
		}
	}

	client, err := stores.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Build(ctx, req)
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(summary)
	}
	printBuildSummary(summary)
	return nil
}

func runBuilds(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("builds", flag.ContinueOnError)
	stores := addStoreFlags(fs)
	limit := fs.Int("limit", 20, "max builds to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := stores.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	builds, err := client.Builds(ctx, *limit)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		fmt.Println("no builds")
		return nil
	}
	for _, build := range builds {
		fmt.Printf("id=%s constructor=%s neurons=%s synapses=%s created_at=%s\n",
			build.ID,
			build.Constructor,
			humanize.Comma(int64(build.Neurons)),
			humanize.Comma(int64(build.Synapses)),
			build.CreatedAtUTC,
		)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	stores := addStoreFlags(fs)
	id := fs.String("id", "", "build id")
	asJSON := fs.Bool("json", false, "print the build record as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("show requires --id")
	}

	client, err := stores.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, err := client.BuildRecord(ctx, *id)
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(record)
	}
	printBuildSummary(record)
	return nil
}

func runProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("profile requires a subcommand: save|list|show")
	}
	switch args[0] {
	case "save":
		fs := flag.NewFlagSet("profile save", flag.ContinueOnError)
		stores := addStoreFlags(fs)
		name := fs.String("name", "", "profile name")
		inputs := fs.Int("inputs", 0, "input neuron count")
		outputs := fs.Int("outputs", 0, "output neuron count")
		hiddenLayers := fs.Int("hidden-layers", 0, "hidden layer count")
		hiddenNeurons := fs.Int("hidden-neurons", 0, "neurons per hidden layer")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *name == "" {
			return errors.New("profile save requires --name")
		}

		client, err := stores.open()
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		profile, err := client.SaveProfile(ctx, *name, model.Architecture{
			InputNeurons:          *inputs,
			OutputNeurons:         *outputs,
			HiddenLayers:          *hiddenLayers,
			NeuronsPerHiddenLayer: *hiddenNeurons,
		})
		if err != nil {
			return err
		}
		fmt.Printf("saved profile=%s expected_neurons=%s\n", profile.Name, humanize.Comma(int64(profile.Architecture.ExpectedNeurons())))
		return nil
	case "list":
		fs := flag.NewFlagSet("profile list", flag.ContinueOnError)
		stores := addStoreFlags(fs)
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		client, err := stores.open()
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		profiles, err := client.Profiles(ctx)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("no profiles")
			return nil
		}
		for _, profile := range profiles {
			printProfile(profile)
		}
		return nil
	case "show":
		fs := flag.NewFlagSet("profile show", flag.ContinueOnError)
		stores := addStoreFlags(fs)
		name := fs.String("name", "", "profile name")
		asJSON := fs.Bool("json", false, "print the profile as JSON")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *name == "" {
			return errors.New("profile show requires --name")
		}

		client, err := stores.open()
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		profile, err := client.Profile(ctx, *name)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(profile)
		}
		printProfile(profile)
		return nil
	default:
		return fmt.Errorf("unknown profile subcommand: %s", args[0])
	}
}

func runActivations(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("activations", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := neuronet.New(neuronet.Options{StoreKind: "memory"})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	fmt.Printf("activations=%s\n", strings.Join(client.Activations(), ","))
	fmt.Printf("constructors=%s\n", strings.Join(client.Constructors(), ","))
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	stores := addStoreFlags(fs)
	addr := fs.String("addr", ":8080", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := stores.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("serving addr=%s store=%s\n", *addr, *stores.kind)
	return httpapi.NewServer(client, *addr).Run(ctx)
}

func printBuildSummary(summary neuronet.BuildSummary) {
	fmt.Printf("build id=%s constructor=%s activation=%s layers=%v neurons=%s synapses=%s\n",
		summary.ID,
		summary.Constructor,
		summary.Activation,
		summary.Layers,
		humanize.Comma(int64(summary.Neurons)),
		humanize.Comma(int64(summary.Synapses)),
	)
	fmt.Printf("weights mean=%.6f std=%.6f min=%.6f max=%.6f seed=%d\n",
		summary.Weights.Mean,
		summary.Weights.StdDev,
		summary.Weights.Min,
		summary.Weights.Max,
		summary.Seed,
	)
	for i, out := range summary.Outputs {
		fmt.Printf("output[%d]=%.6f\n", i, out)
	}
}

func printProfile(profile model.Profile) {
	arch := profile.Architecture
	fmt.Printf("profile=%s inputs=%d outputs=%d hidden_layers=%d hidden_neurons=%d updated_at=%s\n",
		profile.Name,
		arch.InputNeurons,
		arch.OutputNeurons,
		arch.HiddenLayers,
		arch.NeuronsPerHiddenLayer,
		profile.UpdatedAtUTC,
	)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: neuronetctl <build|builds|show|profile|activations|serve> [flags]", msg)
}
