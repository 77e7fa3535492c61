package ecology

import "testing"

func TestPrey_AlwaysVisibleInsideWarningDistance(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.Camouflage = 0 // would never be seen by the camouflage roll
	traits.CamoAposematicDist = 2
	y := mustPrey(t, traits)

	rng := testRNG(20)
	for dist := 0; dist <= 2; dist++ {
		if !y.IsVisible(rng, dist) {
			t.Fatalf("prey at distance %d is inside warning range and must be visible", dist)
		}
	}
}

func TestPrey_CamouflageRollBeyondWarningDistance(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.CamoAposematicDist = 2
	rng := testRNG(21)

	traits.Camouflage = 0
	y := mustPrey(t, traits)
	for i := 0; i < 50; i++ {
		if y.IsVisible(rng, 3) {
			t.Fatal("perfectly camouflaged prey was visible beyond warning range")
		}
	}

	traits.Camouflage = 1
	y = mustPrey(t, traits)
	for i := 0; i < 50; i++ {
		if !y.IsVisible(rng, 3) {
			t.Fatal("camouflage 1 prey should always be visible")
		}
	}
}

func TestPrey_IsWarningIsPureRangePredicate(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.CamoAposematicDist = 3
	y := mustPrey(t, traits)

	if !y.IsWarning(3) {
		t.Fatal("distance equal to camo_aposematic_distance must warn")
	}
	if !y.IsWarning(0) {
		t.Fatal("distance 0 must warn")
	}
	if y.IsWarning(4) {
		t.Fatal("distance beyond camo_aposematic_distance must not warn")
	}
}

func TestPrey_ToxicityLevelIsProduct(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.Toxicity = 0.6
	traits.AposematicPattern = 0.5
	y := mustPrey(t, traits)
	if got := y.ToxicityLevel(); got != 0.3 {
		t.Fatalf("expected toxicity level 0.3, got %g", got)
	}
}

func TestPrey_EvolveNeverFiresAtOrBelowThreshold(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.EvolutionThreshold = 0.5
	traits.EvolutionProbability = 1
	y := mustPrey(t, traits)
	before := y.Traits().AposematicPattern

	rng := testRNG(22)
	for i := 0; i < 50; i++ {
		y.Evolve(rng, 0.5) // equal to threshold: not strictly above
		y.Evolve(rng, 0.1)
	}
	if y.Traits().AposematicPattern != before {
		t.Fatal("aposematic pattern changed without pressure exceeding the threshold")
	}
}

func TestPrey_EvolveIncreasesPatternAndToxicity(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.EvolutionThreshold = 0.2
	traits.EvolutionProbability = 1
	traits.AposematicPattern = 0.3
	traits.Toxicity = 0.3
	y := mustPrey(t, traits)

	y.Evolve(testRNG(23), 0.9)
	after := y.Traits()
	if after.AposematicPattern <= 0.3 || after.AposematicPattern > 0.4 {
		t.Fatalf("pattern should rise by [0.01,0.1], got %g", after.AposematicPattern)
	}
	if after.Toxicity <= 0.3 || after.Toxicity > 0.4 {
		t.Fatalf("toxicity should rise by [0.01,0.1], got %g", after.Toxicity)
	}
}

func TestPrey_EvolveClampsAtCeiling(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.EvolutionThreshold = 0
	traits.EvolutionProbability = 1
	traits.AposematicPattern = 0.99
	traits.Toxicity = 0.99
	y := mustPrey(t, traits)

	rng := testRNG(24)
	for i := 0; i < 100; i++ {
		y.Evolve(rng, 10)
	}
	if got := y.Traits().AposematicPattern; got > 1 {
		t.Fatalf("aposematic pattern exceeded 1: %g", got)
	}
	if got := y.Traits().Toxicity; got > 1 {
		t.Fatalf("toxicity exceeded 1: %g", got)
	}
}

func TestPrey_ReproduceClonesTraitVector(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.ReproductionRate = 1
	y := mustPrey(t, traits)

	child := y.Reproduce(testRNG(25))
	if child == nil {
		t.Fatal("rate-1 prey did not reproduce")
	}
	if child.Traits() != y.Traits() {
		t.Fatalf("offspring traits diverged: %+v vs %+v", child.Traits(), y.Traits())
	}
}

func TestPrey_ReproduceRateZeroNeverFires(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.ReproductionRate = 0
	y := mustPrey(t, traits)

	rng := testRNG(26)
	for i := 0; i < 50; i++ {
		if y.Reproduce(rng) != nil {
			t.Fatal("rate-0 prey reproduced")
		}
	}
}

func TestPrey_MovePathStaysInBounds(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.MovementProbability = 1
	y, err := NewPrey(0, traits, Cell{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("NewPrey: %v", err)
	}

	rng := testRNG(27)
	for i := 0; i < 500; i++ {
		y.Move(rng, 7, 5)
	}
	for _, c := range y.Path() {
		if c.X < 0 || c.X >= 7 || c.Y < 0 || c.Y >= 5 {
			t.Fatalf("path cell %v left the 7x5 grid", c)
		}
	}
	if len(y.Path()) != 501 {
		t.Fatalf("expected 501 path entries with certain movement, got %d", len(y.Path()))
	}
}

func TestPrey_MoveDerivesFromLastPathEntry(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.MovementProbability = 1
	y, err := NewPrey(0, traits, Cell{X: 4, Y: 4})
	if err != nil {
		t.Fatalf("NewPrey: %v", err)
	}

	rng := testRNG(28)
	for i := 0; i < 100; i++ {
		before := y.Position()
		y.Move(rng, 10, 10)
		after := y.Position()
		if Chebyshev(before, after) > 1 {
			t.Fatalf("moved more than one king step: %v → %v", before, after)
		}
	}
}

func TestPrey_MoveProbabilityZeroNeverMoves(t *testing.T) {
	traits := DefaultPreyTraits()
	traits.MovementProbability = 0
	y := mustPrey(t, traits)

	rng := testRNG(29)
	for i := 0; i < 50; i++ {
		y.Move(rng, 10, 10)
	}
	if len(y.Path()) != 1 {
		t.Fatalf("immobile prey grew its path to %d entries", len(y.Path()))
	}
}

func TestPrey_SetOutcome(t *testing.T) {
	y := mustPrey(t, DefaultPreyTraits())
	if y.Outcome() != PreyOutcomeUnset {
		t.Fatalf("fresh prey outcome should be unset, got %s", y.Outcome())
	}
	y.SetOutcome(PreyOutcomeAttacked)
	if y.Outcome() != PreyOutcomeAttacked {
		t.Fatalf("expected attacked, got %s", y.Outcome())
	}
	y.SetOutcome(PreyOutcomeEaten)
	if y.Outcome() != PreyOutcomeEaten {
		t.Fatalf("expected eaten, got %s", y.Outcome())
	}
}
