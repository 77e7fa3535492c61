package ecology

import (
	"fmt"
	"math/rand"
)

// learnDecay is the multiplicative penalty applied to hunting_success and
// toxicity_threshold when recent hunts have gone badly.
const learnDecay = 0.9

// Huntable is the prey-side capability a predator needs during an encounter.
// Predators never touch the concrete Prey type, which keeps the two agents
// free of a dependency cycle.
type Huntable interface {
	IsWarning(predatorDistance int) bool
	Camouflage() float64
	IsAposematic() bool
	WarningStrength() float64
	ToxicityLevel() float64
}

// Predator is a hunter with a bounded memory of past hunts. Eating toxic prey
// makes it sick; a sick predator can neither move, detect, nor hunt until its
// sickness timer runs out.
type Predator struct {
	id     int
	label  string // e.g. "P3"
	traits PredatorTraits

	pos       Cell
	preyEaten int
	memory    *HuntMemory
	sickTimer int // ticks of sickness remaining; 0 = healthy
}

// NewPredator creates a predator with a validated trait vector at the given cell.
func NewPredator(id int, traits PredatorTraits, pos Cell) (*Predator, error) {
	if err := traits.Validate(); err != nil {
		return nil, fmt.Errorf("predator traits: %w", err)
	}
	return &Predator{
		id:     id,
		label:  fmt.Sprintf("P%d", id),
		traits: traits,
		pos:    pos,
		memory: NewHuntMemory(traits.MemorySize),
	}, nil
}

// ID returns the predator's numeric ID.
func (p *Predator) ID() int { return p.id }

// Label returns the predator's short log label.
func (p *Predator) Label() string { return p.label }

// Traits returns the current trait vector (learning erodes HuntingSuccess and
// ToxicityThreshold over time).
func (p *Predator) Traits() PredatorTraits { return p.traits }

// Position returns the predator's current cell.
func (p *Predator) Position() Cell { return p.pos }

// PreyEaten returns the number of prey eaten since birth or since the last
// successful reproduction.
func (p *Predator) PreyEaten() int { return p.preyEaten }

// Memory returns the predator's hunt memory.
func (p *Predator) Memory() *HuntMemory { return p.memory }

// IsSick reports whether the predator is currently sick.
func (p *Predator) IsSick() bool { return p.sickTimer > 0 }

// SickTimer returns the remaining sickness ticks.
func (p *Predator) SickTimer() int { return p.sickTimer }

// Move shifts the predator by one random step per axis, clamped to the grid.
// A sick predator stays put and its sickness timer ticks down by exactly one.
func (p *Predator) Move(rng *rand.Rand, gridWidth, gridHeight int) {
	if p.sickTimer > 0 {
		p.sickTimer--
		return
	}
	p.pos = Cell{
		X: clampStep(p.pos.X, rng.Intn(3)-1, gridWidth),
		Y: clampStep(p.pos.Y, rng.Intn(3)-1, gridHeight),
	}
}

// DetectPrey reports whether the predator spots the prey at the given
// distance. Beyond visual range, or while sick, detection always fails.
// Inside the prey's warning distance the signal is unmistakable and detection
// always succeeds; otherwise it is a joint roll of the predator's detection
// probability and the prey's camouflage.
func (p *Predator) DetectPrey(rng *rand.Rand, prey Huntable, distance int) bool {
	if p.sickTimer > 0 {
		return false
	}
	if distance > p.traits.VisualRange {
		return false
	}
	if prey.IsWarning(distance) {
		return true
	}
	return rng.Float64() < p.traits.DetectionProbability*prey.Camouflage()
}

// AvoidPrey reports whether the predator backs off from a warning signal: the
// prey must actually be aposematic and its signal at least as strong as the
// predator's toxicity threshold.
func (p *Predator) AvoidPrey(prey Huntable) bool {
	return prey.IsAposematic() && prey.WarningStrength() >= p.traits.ToxicityThreshold
}

// Hunt attempts to catch the prey: detect, then honour any avoided warning
// signal, then roll hunting_success. A kill increments PreyEaten. Learning and
// sickness are the driver's job — Hunt itself changes nothing else.
func (p *Predator) Hunt(rng *rand.Rand, prey Huntable, distance int) bool {
	if p.sickTimer > 0 {
		return false
	}
	if !p.DetectPrey(rng, prey, distance) {
		return false
	}
	if p.AvoidPrey(prey) {
		return false
	}
	if rng.Float64() < p.traits.HuntingSuccess {
		p.preyEaten++
		return true
	}
	return false
}

// Learn records one hunt in memory. Once memory is at capacity, a satisfied
// rate below the learning rate erodes both hunting_success and
// toxicity_threshold by 10%: a run of bad meals makes the predator both less
// aggressive and more cautious about warning signals.
func (p *Predator) Learn(preyPattern float64, outcome HuntOutcome) {
	p.memory.Record(preyPattern, outcome)
	if !p.memory.Full() {
		return
	}
	if p.memory.SatisfiedRate() < p.traits.LearningRate {
		p.traits.HuntingSuccess = clamp01(p.traits.HuntingSuccess * learnDecay)
		p.traits.ToxicityThreshold = clamp01(p.traits.ToxicityThreshold * learnDecay)
	}
}

// GetSick puts the predator into sickness for its full sickness_duration.
// The timer is reset, not extended, if the predator was already sick.
func (p *Predator) GetSick() {
	p.sickTimer = p.traits.SicknessDuration
}

// Reproduce rolls reproduction_rate once the predator has eaten at least
// minPreyEaten prey. On success the kill counter resets and the caller
// constructs the offspring with this predator's trait vector.
func (p *Predator) Reproduce(rng *rand.Rand, minPreyEaten int) bool {
	if p.preyEaten < minPreyEaten {
		return false
	}
	if rng.Float64() < p.traits.ReproductionRate {
		p.preyEaten = 0
		return true
	}
	return false
}
