package ecology

import (
	"fmt"
	"math/rand"
)

// evolveStepMin/Max bound the per-evolution increase applied to the warning
// pattern and the toxin load.
const (
	evolveStepMin = 0.01
	evolveStepMax = 0.1
)

// Prey is an animal that relies on camouflage at range and, if aposematic, on
// a warning signal up close. It records every cell it has visited and the
// outcome of its most recent tick.
type Prey struct {
	id     int
	label  string // e.g. "Y3"
	traits PreyTraits

	path    []Cell // visited cells, oldest first; last entry is the current position
	outcome PreyOutcome
}

// NewPrey creates a prey with a validated trait vector. The starting cell
// becomes the first path entry.
func NewPrey(id int, traits PreyTraits, start Cell) (*Prey, error) {
	if err := traits.Validate(); err != nil {
		return nil, fmt.Errorf("prey traits: %w", err)
	}
	return &Prey{
		id:     id,
		label:  fmt.Sprintf("Y%d", id),
		traits: traits,
		path:   []Cell{start},
	}, nil
}

// ID returns the prey's numeric ID.
func (y *Prey) ID() int { return y.id }

// Label returns the prey's short log label.
func (y *Prey) Label() string { return y.label }

// Traits returns the current trait vector (pattern and toxicity drift via Evolve).
func (y *Prey) Traits() PreyTraits { return y.traits }

// Position returns the prey's current cell, the last entry of its path.
func (y *Prey) Position() Cell {
	if len(y.path) == 0 {
		return Cell{}
	}
	return y.path[len(y.path)-1]
}

// Path returns every cell the prey has occupied, oldest first.
func (y *Prey) Path() []Cell {
	return append([]Cell(nil), y.path...)
}

// IsVisible reports whether a predator at the given distance sees this prey.
// At or under the camo/aposematic distance the pattern reads as a warning and
// the prey is always visible; beyond it, visibility is a camouflage roll.
func (y *Prey) IsVisible(rng *rand.Rand, predatorDistance int) bool {
	if predatorDistance <= y.traits.CamoAposematicDist {
		return true
	}
	return rng.Float64() < y.traits.Camouflage
}

// IsWarning reports whether the pattern acts as a warning signal at the given
// distance. Pure range predicate, no randomness.
func (y *Prey) IsWarning(predatorDistance int) bool {
	return predatorDistance <= y.traits.CamoAposematicDist
}

// Camouflage returns the camouflage trait consumed by predator detection.
func (y *Prey) Camouflage() float64 { return y.traits.Camouflage }

// IsAposematic reports whether the prey carries a warning signal at all.
func (y *Prey) IsAposematic() bool { return y.traits.Aposematic }

// WarningStrength returns the intensity of the warning signal.
func (y *Prey) WarningStrength() float64 { return y.traits.AposematicPattern }

// ToxicityLevel returns the effective deterrent strength: raw toxin load
// scaled by how strongly the signal advertises it.
func (y *Prey) ToxicityLevel() float64 {
	return y.traits.Toxicity * y.traits.AposematicPattern
}

// Move rolls movement_probability and, on success, appends a new cell shifted
// by one random step per axis, clamped to the grid. The path only grows.
func (y *Prey) Move(rng *rand.Rand, gridWidth, gridHeight int) {
	if rng.Float64() >= y.traits.MovementProbability {
		return
	}
	cur := y.Position()
	y.path = append(y.path, Cell{
		X: clampStep(cur.X, rng.Intn(3)-1, gridWidth),
		Y: clampStep(cur.Y, rng.Intn(3)-1, gridHeight),
	})
}

// Evolve strengthens the warning signal and the toxin load under predation
// pressure. Nothing changes unless pressure strictly exceeds the evolution
// threshold, and then only with evolution_probability. Both traits cap at 1.
func (y *Prey) Evolve(rng *rand.Rand, predationPressure float64) {
	if predationPressure <= y.traits.EvolutionThreshold {
		return
	}
	if rng.Float64() >= y.traits.EvolutionProbability {
		return
	}
	y.traits.AposematicPattern = clamp01(y.traits.AposematicPattern + evolveStep(rng))
	y.traits.Toxicity = clamp01(y.traits.Toxicity + evolveStep(rng))
}

// Reproduce rolls reproduction_rate and returns an offspring carrying this
// prey's exact trait vector, or nil. The caller assigns the child an ID and a
// starting cell; mutation only ever happens through Evolve.
func (y *Prey) Reproduce(rng *rand.Rand) *Prey {
	if rng.Float64() >= y.traits.ReproductionRate {
		return nil
	}
	return &Prey{traits: y.traits}
}

// SetOutcome records how this tick went for the prey.
func (y *Prey) SetOutcome(outcome PreyOutcome) {
	y.outcome = outcome
}

// Outcome returns the most recently recorded tick outcome.
func (y *Prey) Outcome() PreyOutcome { return y.outcome }

// adopt finalises an offspring returned by Reproduce: identity and start cell.
func (y *Prey) adopt(id int, start Cell) {
	y.id = id
	y.label = fmt.Sprintf("Y%d", id)
	y.path = []Cell{start}
}

func evolveStep(rng *rand.Rand) float64 {
	return evolveStepMin + rng.Float64()*(evolveStepMax-evolveStepMin)
}

// clampStep applies a -1/0/+1 step to a coordinate and pins the result to
// [0, bound-1].
func clampStep(v, step, bound int) int {
	n := v + step
	if n < 0 {
		return 0
	}
	if n > bound-1 {
		return bound - 1
	}
	return n
}
