package ecology

import (
	"fmt"
	"math/rand"
)

// --- Predator traits ---

// PredatorTraits is the heritable trait vector of a predator. It is fixed at
// birth; only the learning rule (Predator.Learn) adjusts HuntingSuccess and
// ToxicityThreshold afterwards.
type PredatorTraits struct {
	HuntingSuccess       float64 // 0-1, probability an undetected-unavoided hunt succeeds
	LearningRate         float64 // 0-1, satisfied-rate below which the predator backs off
	ReproductionRate     float64 // 0-1, per-eligible-tick reproduction probability
	DetectionProbability float64 // 0-1, base chance to spot camouflaged prey
	VisualRange          int     // max grid distance at which prey can be detected
	MemorySize           int     // number of past hunts remembered
	ToxicityThreshold    float64 // 0-1, warning strength at which prey is avoided
	SicknessDuration     int     // ticks spent sick after eating toxic prey
}

// Validate checks every field against its domain. Construction goes through
// this so an out-of-range trait fails immediately instead of producing
// nonsense probabilities deep into a run.
func (t PredatorTraits) Validate() error {
	if err := checkProb("hunting_success", t.HuntingSuccess); err != nil {
		return err
	}
	if err := checkProb("learning_rate", t.LearningRate); err != nil {
		return err
	}
	if err := checkProb("reproduction_rate", t.ReproductionRate); err != nil {
		return err
	}
	if err := checkProb("detection_probability", t.DetectionProbability); err != nil {
		return err
	}
	if err := checkProb("toxicity_threshold", t.ToxicityThreshold); err != nil {
		return err
	}
	if t.VisualRange < 0 {
		return fmt.Errorf("visual_range must be >= 0, got %d", t.VisualRange)
	}
	if t.MemorySize <= 0 {
		return fmt.Errorf("memory_size must be > 0, got %d", t.MemorySize)
	}
	if t.SicknessDuration < 0 {
		return fmt.Errorf("sickness_duration must be >= 0, got %d", t.SicknessDuration)
	}
	return nil
}

// DefaultPredatorTraits returns a mid-spectrum predator.
func DefaultPredatorTraits() PredatorTraits {
	return PredatorTraits{
		HuntingSuccess:       0.6,
		LearningRate:         0.4,
		ReproductionRate:     0.1,
		DetectionProbability: 0.7,
		VisualRange:          5,
		MemorySize:           10,
		ToxicityThreshold:    0.5,
		SicknessDuration:     8,
	}
}

// RandomPredatorTraits draws a predator trait vector from the spawn ranges.
func RandomPredatorTraits(rng *rand.Rand) PredatorTraits {
	return PredatorTraits{
		HuntingSuccess:       0.4 + rng.Float64()*0.4, // 0.4 - 0.8
		LearningRate:         0.2 + rng.Float64()*0.4, // 0.2 - 0.6
		ReproductionRate:     0.05 + rng.Float64()*0.15,
		DetectionProbability: 0.5 + rng.Float64()*0.4, // 0.5 - 0.9
		VisualRange:          3 + rng.Intn(4),         // 3 - 6
		MemorySize:           6 + rng.Intn(10),        // 6 - 15
		ToxicityThreshold:    0.3 + rng.Float64()*0.5, // 0.3 - 0.8
		SicknessDuration:     4 + rng.Intn(8),         // 4 - 11
	}
}

// --- Prey traits ---

// PreyTraits is the heritable trait vector of a prey animal. Offspring inherit
// it verbatim; Evolve is the only mutation channel (AposematicPattern and
// Toxicity drift upward under predation pressure).
type PreyTraits struct {
	Camouflage           float64 // 0-1, chance of being seen when relying on camouflage
	Aposematic           bool    // carries a recognisable warning signal
	AposematicPattern    float64 // 0-1, intensity of the warning signal
	Toxicity             float64 // 0-1, raw toxin load
	CamoAposematicDist   int     // distance at or under which the pattern reads as a warning
	MovementProbability  float64 // 0-1, per-tick chance to move
	EvolutionThreshold   float64 // predation pressure above which evolution can trigger
	EvolutionProbability float64 // 0-1, chance to evolve once pressure is exceeded
	ReproductionRate     float64 // 0-1, per-tick reproduction probability
}

// Validate checks every field against its domain. EvolutionThreshold is a
// pressure level, not a probability, so it only needs to be non-negative.
func (t PreyTraits) Validate() error {
	if err := checkProb("camouflage", t.Camouflage); err != nil {
		return err
	}
	if err := checkProb("aposematic_pattern", t.AposematicPattern); err != nil {
		return err
	}
	if err := checkProb("toxicity", t.Toxicity); err != nil {
		return err
	}
	if err := checkProb("movement_probability", t.MovementProbability); err != nil {
		return err
	}
	if err := checkProb("evolution_probability", t.EvolutionProbability); err != nil {
		return err
	}
	if err := checkProb("reproduction_rate", t.ReproductionRate); err != nil {
		return err
	}
	if t.EvolutionThreshold < 0 {
		return fmt.Errorf("evolution_threshold must be >= 0, got %g", t.EvolutionThreshold)
	}
	if t.CamoAposematicDist < 0 {
		return fmt.Errorf("camo_aposematic_distance must be >= 0, got %d", t.CamoAposematicDist)
	}
	return nil
}

// DefaultPreyTraits returns a mid-spectrum aposematic prey.
func DefaultPreyTraits() PreyTraits {
	return PreyTraits{
		Camouflage:           0.4,
		Aposematic:           true,
		AposematicPattern:    0.5,
		Toxicity:             0.5,
		CamoAposematicDist:   2,
		MovementProbability:  0.8,
		EvolutionThreshold:   0.2,
		EvolutionProbability: 0.3,
		ReproductionRate:     0.15,
	}
}

// RandomPreyTraits draws a prey trait vector from the spawn ranges. Roughly
// half of spawned prey carry a warning signal.
func RandomPreyTraits(rng *rand.Rand) PreyTraits {
	return PreyTraits{
		Camouflage:           0.2 + rng.Float64()*0.6, // 0.2 - 0.8
		Aposematic:           rng.Float64() < 0.5,
		AposematicPattern:    rng.Float64() * 0.7,
		Toxicity:             rng.Float64() * 0.7,
		CamoAposematicDist:   1 + rng.Intn(3), // 1 - 3
		MovementProbability:  0.5 + rng.Float64()*0.5,
		EvolutionThreshold:   0.1 + rng.Float64()*0.4,
		EvolutionProbability: 0.1 + rng.Float64()*0.4,
		ReproductionRate:     0.05 + rng.Float64()*0.2,
	}
}

func checkProb(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be in [0,1], got %g", name, v)
	}
	return nil
}

// clamp01 pins a probability-typed trait back into [0,1] after a learning or
// evolution adjustment.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
