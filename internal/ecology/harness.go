package ecology

import "fmt"

// TestSim is a headless simulation harness used by tests and the headless
// report binary. It wraps Engine with deterministic seeding, explicit agent
// placement, and structured logging.
type TestSim struct {
	Env      *Environment
	Engine   *Engine
	SimLog   *SimLog
	Reporter *SimReporter

	width   int
	height  int
	seed    int64
	cfg     Config
	verbose bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // grid size, seed, config, verbose — applied first
	simOptAgent                      // add agents — applied after the grid exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridSize sets the grid dimensions.
func WithGridSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.width = w
		ts.height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithConfig replaces the whole driver config.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg = cfg
	}}
}

// WithSicknessThreshold overrides the toxicity level that sickens predators.
func WithSicknessThreshold(v float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.SicknessThreshold = v
	}}
}

// WithMinPreyEaten overrides the kill count predators need to reproduce.
func WithMinPreyEaten(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.MinPreyEaten = n
	}}
}

// WithPredatorAt places a predator with the given traits at (x,y).
func WithPredatorAt(x, y int, traits PredatorTraits) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		if _, err := ts.Env.PlacePredator(traits, Cell{X: x, Y: y}); err != nil {
			panic(fmt.Sprintf("harness: place predator: %v", err))
		}
	}}
}

// WithPreyAt places a prey with the given traits at (x,y).
func WithPreyAt(x, y int, traits PreyTraits) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		if _, err := ts.Env.PlacePrey(traits, Cell{X: x, Y: y}); err != nil {
			panic(fmt.Sprintf("harness: place prey: %v", err))
		}
	}}
}

// WithRandomPredators places n predators with randomized traits on free cells.
func WithRandomPredators(n int) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		rng := ts.Engine.Rand()
		for i := 0; i < n; i++ {
			cell, err := ts.Env.RandomFreeCell(rng)
			if err != nil {
				panic(fmt.Sprintf("harness: place predator: %v", err))
			}
			if _, err := ts.Env.PlacePredator(RandomPredatorTraits(rng), cell); err != nil {
				panic(fmt.Sprintf("harness: place predator: %v", err))
			}
		}
	}}
}

// WithRandomPrey places n prey with randomized traits on free cells.
func WithRandomPrey(n int) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		rng := ts.Engine.Rand()
		for i := 0; i < n; i++ {
			cell, err := ts.Env.RandomFreeCell(rng)
			if err != nil {
				panic(fmt.Sprintf("harness: place prey: %v", err))
			}
			if _, err := ts.Env.PlacePrey(RandomPreyTraits(rng), cell); err != nil {
				panic(fmt.Sprintf("harness: place prey: %v", err))
			}
		}
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered
// passes: infrastructure first (grid size, seed, config, verbose), then
// agents. Agent options see a fully built environment and engine.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		width:  20,
		height: 20,
		seed:   1,
		cfg:    DefaultConfig(),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	env, err := NewEnvironment(ts.width, ts.height)
	if err != nil {
		panic(fmt.Sprintf("harness: %v", err))
	}
	ts.Env = env
	ts.SimLog = NewSimLog(ts.verbose)
	ts.Engine = NewEngine(env, ts.cfg, ts.seed, ts.SimLog)
	ts.Reporter = ts.Engine.Reporter()

	for _, o := range opts {
		if o.kind == simOptAgent {
			o.fn(ts)
		}
	}
	// Agents were added after engine construction; refresh the starting
	// population counts used by outcome classification.
	ts.Engine.predatorsStart = len(env.Predators())
	ts.Engine.preyStart = len(env.Prey())
	env.SyncOccupancy()
	return ts
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	ts.Engine.RunTicks(n)
}

// RunUntil advances up to maxTicks, stopping early when the predicate holds.
// Returns the satisfying tick or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	return ts.Engine.RunUntil(func(*Engine) bool { return predicate(ts) }, maxTicks)
}

// CurrentTick returns the engine tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Engine.Tick()
}

// Outcome classifies the run as it stands.
func (ts *TestSim) Outcome() RunOutcomeReason {
	return ts.Engine.Outcome()
}
