package ecology

import (
	"fmt"
	"math/rand"
)

// Config holds the driver-level parameters of a run: everything the agents
// themselves do not own.
type Config struct {
	// SicknessThreshold is the prey toxicity level above which a successful
	// hunt sickens the predator.
	SicknessThreshold float64
	// LethalToxicity is the toxicity level at or above which a successful
	// hunt kills the predator outright. Set above 1 to disable.
	LethalToxicity float64
	// MinPreyEaten is the kill count a predator needs before it may reproduce.
	MinPreyEaten int
	// ReportInterval is the tick spacing of reporter snapshots.
	ReportInterval int
}

// DefaultConfig returns the standard run parameters.
func DefaultConfig() Config {
	return Config{
		SicknessThreshold: 0.3,
		LethalToxicity:    0.8,
		MinPreyEaten:      3,
		ReportInterval:    10,
	}
}

// Engine drives the simulation one tick at a time. Each tick is a fixed
// sequence — hunts, removals, movement, evolution, reproduction — evaluated
// agent by agent on a single logical timeline. The engine owns the run's RNG;
// no package-global randomness is touched anywhere.
type Engine struct {
	env *Environment
	cfg Config
	rng *rand.Rand

	tick     int
	simLog   *SimLog
	reporter *SimReporter

	predatorsStart int
	preyStart      int
	totalKills     int
	killsSinceRpt  int
}

// NewEngine wraps an already-populated environment. The seed fixes the whole
// run: two engines built with the same environment layout and seed produce
// identical tick sequences.
func NewEngine(env *Environment, cfg Config, seed int64, simLog *SimLog) *Engine {
	if simLog == nil {
		simLog = NewSimLog(false)
	}
	return &Engine{
		env:            env,
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation only
		simLog:         simLog,
		reporter:       NewSimReporter(),
		predatorsStart: len(env.Predators()),
		preyStart:      len(env.Prey()),
	}
}

// Env returns the engine's environment.
func (en *Engine) Env() *Environment { return en.env }

// SimLog returns the engine's structured log.
func (en *Engine) SimLog() *SimLog { return en.simLog }

// Reporter returns the engine's reporter.
func (en *Engine) Reporter() *SimReporter { return en.reporter }

// Tick returns the current tick number.
func (en *Engine) Tick() int { return en.tick }

// TotalKills returns the number of prey eaten since the run started.
func (en *Engine) TotalKills() int { return en.totalKills }

// Rand exposes the run RNG for callers that spawn additional agents mid-run.
func (en *Engine) Rand() *rand.Rand { return en.rng }

// Outcome classifies the run as it stands right now.
func (en *Engine) Outcome() RunOutcomeReason {
	return DetermineRunOutcome(en.env.Predators(), en.env.Prey(), en.predatorsStart, en.preyStart)
}

// RunTicks advances the simulation n ticks.
func (en *Engine) RunTicks(n int) {
	for i := 0; i < n; i++ {
		en.RunTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if the
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (en *Engine) RunUntil(predicate func(*Engine) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		en.RunTick()
		if predicate(en) {
			return en.tick
		}
	}
	return -1
}

// RunTick runs one simulation tick.
func (en *Engine) RunTick() {
	en.tick++

	// 1. OUTCOME RESET: every live prey starts the tick as a survivor.
	for _, y := range en.env.Prey() {
		y.SetOutcome(PreyOutcomeSurvived)
	}
	preyAtStart := len(en.env.Prey())

	// 2. HUNTS: pair each healthy predator with prey in visual range and
	// resolve sequentially. A prey can die once per tick (first claim wins)
	// and a predator stops hunting after its first kill.
	eaten, deadPredators, kills := en.resolveHunts()
	en.totalKills += kills
	en.killsSinceRpt += kills

	// 3. REMOVALS: eaten prey and poisoned predators leave the grid.
	for _, y := range eaten {
		en.env.RemovePrey(y)
	}
	for _, p := range deadPredators {
		en.env.RemovePredator(p)
	}

	// 4. MOVEMENT: every live agent. Sick predators stand still and tick
	// their timer down inside Move.
	en.moveAgents()

	// 5. EVOLUTION: surviving prey feel this tick's predation pressure.
	pressure := 0.0
	if preyAtStart > 0 {
		pressure = float64(kills) / float64(preyAtStart)
	}
	for _, y := range en.env.Prey() {
		before := y.Traits().AposematicPattern
		y.Evolve(en.rng, pressure)
		if after := y.Traits().AposematicPattern; after != before {
			en.simLog.Add(en.tick, y.Label(), "prey", "evolve", "pattern",
				fmt.Sprintf("%.3f → %.3f (pressure %.3f)", before, after, pressure), after)
		}
	}

	// 6. REPRODUCTION: offspring join the grid on fresh unique cells. A full
	// grid just skips the birth.
	en.reproduce()

	// 7. Reconcile occupancy with wherever the agents ended up.
	en.env.SyncOccupancy()

	if en.cfg.ReportInterval > 0 && en.tick%en.cfg.ReportInterval == 0 {
		en.reporter.Collect(en.tick, en.env.Predators(), en.env.Prey(), en.killsSinceRpt)
		en.killsSinceRpt = 0
	}
}

// resolveHunts pairs predators with in-range prey and resolves each encounter.
// Returns the prey eaten this tick, the predators killed by toxic meals, and
// the kill count.
func (en *Engine) resolveHunts() (eaten []*Prey, deadPredators []*Predator, kills int) {
	eatenSet := make(map[*Prey]bool)

	for _, p := range en.env.Predators() {
		if p.IsSick() {
			continue
		}
		for _, y := range en.env.Prey() {
			if eatenSet[y] {
				continue
			}
			dist := Chebyshev(p.Position(), y.Position())
			if dist > p.Traits().VisualRange {
				continue
			}

			if !p.Hunt(en.rng, y, dist) {
				// The prey was engaged and got away: escaped the roll, went
				// unseen, or was actively avoided for its warning signal.
				y.SetOutcome(PreyOutcomeAttacked)
				continue
			}

			kills++
			eatenSet[y] = true
			eaten = append(eaten, y)
			y.SetOutcome(PreyOutcomeEaten)
			en.simLog.Add(en.tick, p.Label(), "predator", "hunt", "kill",
				fmt.Sprintf("ate %s at %v", y.Label(), y.Position()), y.ToxicityLevel())

			if dead := en.digest(p, y); dead {
				deadPredators = append(deadPredators, p)
			}
			// One meal per tick per predator.
			break
		}
	}
	return eaten, deadPredators, kills
}

// digest applies the toxicity consequences of a kill: lethal meals remove the
// predator, toxic meals sicken it, and every survivable meal feeds Learn with
// the prey's pattern and a categorical outcome. Avoided encounters never
// reach Learn — no attempt, no learning signal.
func (en *Engine) digest(p *Predator, y *Prey) (dead bool) {
	tox := y.ToxicityLevel()
	pattern := y.WarningStrength()

	switch {
	case tox >= en.cfg.LethalToxicity:
		en.simLog.Add(en.tick, p.Label(), "predator", "death", "poisoned",
			fmt.Sprintf("lethal meal %s (toxicity %.3f)", y.Label(), tox), tox)
		return true
	case tox > en.cfg.SicknessThreshold:
		p.GetSick()
		p.Learn(pattern, OutcomeSickness)
		en.simLog.Add(en.tick, p.Label(), "predator", "sickness", "onset",
			fmt.Sprintf("toxic meal %s, sick for %d ticks", y.Label(), p.SickTimer()), tox)
	default:
		p.Learn(pattern, OutcomeSatisfied)
	}
	return false
}

// moveAgents advances every live agent one step and logs sickness recoveries
// plus verbose positions.
func (en *Engine) moveAgents() {
	w, h := en.env.Width(), en.env.Height()
	for _, p := range en.env.Predators() {
		wasSick := p.IsSick()
		p.Move(en.rng, w, h)
		if wasSick && !p.IsSick() {
			en.simLog.Add(en.tick, p.Label(), "predator", "sickness", "recovered", "back on the hunt", 0)
		}
		en.simLog.AddVerbose(en.tick, p.Label(), "predator", "move", "position",
			p.Position().String(), 0)
	}
	for _, y := range en.env.Prey() {
		y.Move(en.rng, w, h)
		en.simLog.AddVerbose(en.tick, y.Label(), "prey", "move", "position",
			y.Position().String(), 0)
	}
}

// reproduce runs reproduction for both species and inserts offspring at fresh
// unique cells.
func (en *Engine) reproduce() {
	// Iterate over snapshots so newborns do not reproduce on their birth tick.
	parents := append([]*Predator(nil), en.env.Predators()...)
	for _, p := range parents {
		if !p.Reproduce(en.rng, en.cfg.MinPreyEaten) {
			continue
		}
		cell, err := en.env.RandomFreeCell(en.rng)
		if err != nil {
			en.simLog.Add(en.tick, p.Label(), "predator", "reproduce", "skipped", "grid full", 0)
			continue
		}
		child, err := en.env.PlacePredator(p.Traits(), cell)
		if err != nil {
			en.simLog.Add(en.tick, p.Label(), "predator", "reproduce", "skipped", err.Error(), 0)
			continue
		}
		en.simLog.Add(en.tick, p.Label(), "predator", "reproduce", "birth",
			fmt.Sprintf("offspring %s at %v", child.Label(), cell), 0)
	}

	preyParents := append([]*Prey(nil), en.env.Prey()...)
	for _, y := range preyParents {
		child := y.Reproduce(en.rng)
		if child == nil {
			continue
		}
		adopted, err := en.env.AdoptPreyOffspring(child, en.rng)
		if err != nil {
			en.simLog.Add(en.tick, y.Label(), "prey", "reproduce", "skipped", "grid full", 0)
			continue
		}
		en.simLog.Add(en.tick, y.Label(), "prey", "reproduce", "birth",
			fmt.Sprintf("offspring %s at %v", adopted.Label(), adopted.Position()), 0)
	}
}
