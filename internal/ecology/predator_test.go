package ecology

import (
	"math/rand"
	"testing"
)

func testRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- test
}

func mustPredator(t *testing.T, traits PredatorTraits) *Predator {
	t.Helper()
	p, err := NewPredator(0, traits, Cell{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("NewPredator: %v", err)
	}
	return p
}

func mustPrey(t *testing.T, traits PreyTraits) *Prey {
	t.Helper()
	y, err := NewPrey(1, traits, Cell{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("NewPrey: %v", err)
	}
	return y
}

func TestPredator_SickTimerDecrementsByExactlyOne(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.SicknessDuration = 4
	p := mustPredator(t, traits)
	p.GetSick()

	rng := testRNG(1)
	for want := 3; want >= 0; want-- {
		p.Move(rng, 10, 10)
		if p.SickTimer() != want {
			t.Fatalf("expected sick timer %d, got %d", want, p.SickTimer())
		}
	}
	if p.SickTimer() < 0 {
		t.Fatal("sick timer went negative")
	}
}

func TestPredator_SickMeansNoMoveNoDetectNoHunt(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.DetectionProbability = 1
	traits.HuntingSuccess = 1
	p := mustPredator(t, traits)
	p.GetSick()

	prey := mustPrey(t, DefaultPreyTraits())
	rng := testRNG(2)

	before := p.Position()
	p.Move(rng, 10, 10)
	if p.Position() != before {
		t.Fatalf("sick predator moved from %v to %v", before, p.Position())
	}
	if p.DetectPrey(rng, prey, 0) {
		t.Fatal("sick predator detected prey")
	}
	if p.Hunt(rng, prey, 0) {
		t.Fatal("sick predator hunted prey")
	}
}

func TestPredator_GetSickResetsTimerAbsolutely(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.SicknessDuration = 5
	p := mustPredator(t, traits)
	p.GetSick()
	p.Move(testRNG(3), 10, 10) // timer 4
	p.GetSick()
	if p.SickTimer() != 5 {
		t.Fatalf("expected timer reset to 5, got %d", p.SickTimer())
	}
}

func TestPredator_DetectAlwaysTrueAtWarningDistance(t *testing.T) {
	// Even with a hopeless detection probability, a prey inside its warning
	// distance is unmistakable — including at the exact boundary.
	traits := DefaultPredatorTraits()
	traits.DetectionProbability = 0
	traits.VisualRange = 10
	p := mustPredator(t, traits)

	preyTraits := DefaultPreyTraits()
	preyTraits.Camouflage = 0
	preyTraits.CamoAposematicDist = 3
	prey := mustPrey(t, preyTraits)

	rng := testRNG(4)
	for dist := 0; dist <= 3; dist++ {
		if !p.DetectPrey(rng, prey, dist) {
			t.Fatalf("prey at warning distance %d must always be detected", dist)
		}
	}
}

func TestPredator_DetectNeverBeyondVisualRange(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.DetectionProbability = 1
	traits.VisualRange = 4
	p := mustPredator(t, traits)

	preyTraits := DefaultPreyTraits()
	preyTraits.Camouflage = 1
	preyTraits.CamoAposematicDist = 100 // warning range is irrelevant past visual range
	prey := mustPrey(t, preyTraits)

	rng := testRNG(5)
	for i := 0; i < 50; i++ {
		if p.DetectPrey(rng, prey, 5) {
			t.Fatal("detected prey beyond visual range")
		}
	}
}

func TestPredator_DetectJointProbabilityEndpoints(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.VisualRange = 10
	rng := testRNG(6)

	// detection_probability 0 → camouflaged prey is never seen.
	traits.DetectionProbability = 0
	p := mustPredator(t, traits)
	preyTraits := DefaultPreyTraits()
	preyTraits.Camouflage = 1
	preyTraits.CamoAposematicDist = 1
	prey := mustPrey(t, preyTraits)
	for i := 0; i < 50; i++ {
		if p.DetectPrey(rng, prey, 5) {
			t.Fatal("detection with zero detection probability")
		}
	}

	// camouflage 0 → product is zero regardless of detection probability.
	traits.DetectionProbability = 1
	p = mustPredator(t, traits)
	preyTraits.Camouflage = 0
	prey = mustPrey(t, preyTraits)
	for i := 0; i < 50; i++ {
		if p.DetectPrey(rng, prey, 5) {
			t.Fatal("detection of perfectly hidden prey")
		}
	}
}

func TestPredator_AvoidPreyTable(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.ToxicityThreshold = 0.5
	p := mustPredator(t, traits)

	cases := []struct {
		name       string
		aposematic bool
		pattern    float64
		want       bool
	}{
		{"aposematic strong signal", true, 0.8, true},
		{"aposematic at threshold", true, 0.5, true},
		{"aposematic weak signal", true, 0.49, false},
		{"non-aposematic strong pattern", false, 0.9, false},
		{"non-aposematic weak pattern", false, 0.1, false},
	}
	for _, tc := range cases {
		preyTraits := DefaultPreyTraits()
		preyTraits.Aposematic = tc.aposematic
		preyTraits.AposematicPattern = tc.pattern
		prey := mustPrey(t, preyTraits)
		if got := p.AvoidPrey(prey); got != tc.want {
			t.Fatalf("%s: avoid=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPredator_HuntImpliesDetection(t *testing.T) {
	// With detection impossible, hunt can never succeed no matter how good
	// the hunter is.
	traits := DefaultPredatorTraits()
	traits.DetectionProbability = 0
	traits.HuntingSuccess = 1
	traits.VisualRange = 10
	p := mustPredator(t, traits)

	preyTraits := DefaultPreyTraits()
	preyTraits.Aposematic = false
	preyTraits.Camouflage = 0.9
	preyTraits.CamoAposematicDist = 0
	prey := mustPrey(t, preyTraits)

	rng := testRNG(7)
	for i := 0; i < 100; i++ {
		if p.Hunt(rng, prey, 5) {
			t.Fatal("hunt succeeded where detection was impossible")
		}
	}
	if p.PreyEaten() != 0 {
		t.Fatalf("prey_eaten changed on failed hunts: %d", p.PreyEaten())
	}
}

func TestPredator_HuntCertainKillScenario(t *testing.T) {
	// Detection 1.0, threshold 0.0, hunting success 1.0 against
	// non-aposematic prey at distance 0 → kill, prey_eaten = 1.
	traits := DefaultPredatorTraits()
	traits.DetectionProbability = 1
	traits.ToxicityThreshold = 0
	traits.HuntingSuccess = 1
	p := mustPredator(t, traits)

	preyTraits := DefaultPreyTraits()
	preyTraits.Aposematic = false
	prey := mustPrey(t, preyTraits)

	if !p.Hunt(testRNG(8), prey, 0) {
		t.Fatal("certain hunt failed")
	}
	if p.PreyEaten() != 1 {
		t.Fatalf("expected prey_eaten 1, got %d", p.PreyEaten())
	}
}

func TestPredator_HuntRefusesAvoidedWarningSignal(t *testing.T) {
	// The same certain hunter against an aposematic prey with
	// pattern 0.8 ≥ threshold 0 → avoided, hunt false regardless of skill.
	traits := DefaultPredatorTraits()
	traits.DetectionProbability = 1
	traits.ToxicityThreshold = 0
	traits.HuntingSuccess = 1
	p := mustPredator(t, traits)

	preyTraits := DefaultPreyTraits()
	preyTraits.Aposematic = true
	preyTraits.AposematicPattern = 0.8
	prey := mustPrey(t, preyTraits)

	if !p.AvoidPrey(prey) {
		t.Fatal("expected the warning signal to be avoided")
	}
	if p.Hunt(testRNG(9), prey, 0) {
		t.Fatal("hunt succeeded against an avoided prey")
	}
	if p.PreyEaten() != 0 {
		t.Fatalf("prey_eaten changed on avoided hunt: %d", p.PreyEaten())
	}
}

func TestPredator_LearnDecaysExactlyTenPercentOnAllDeaths(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.MemorySize = 5
	traits.LearningRate = 0.4
	traits.HuntingSuccess = 0.6
	traits.ToxicityThreshold = 0.5
	p := mustPredator(t, traits)

	// Fill memory one short of capacity; nothing decays yet.
	for i := 0; i < 4; i++ {
		p.Learn(0.5, OutcomeDeath)
	}
	if p.Traits().HuntingSuccess != 0.6 {
		t.Fatal("learning rule fired before memory reached capacity")
	}

	// The capacity-reaching call computes success_rate = 0 < 0.4.
	p.Learn(0.5, OutcomeDeath)
	if got := p.Traits().HuntingSuccess; got != 0.6*0.9 {
		t.Fatalf("expected hunting_success %.4f, got %.4f", 0.6*0.9, got)
	}
	if got := p.Traits().ToxicityThreshold; got != 0.5*0.9 {
		t.Fatalf("expected toxicity_threshold %.4f, got %.4f", 0.5*0.9, got)
	}
}

func TestPredator_LearnNoDecayWhenSatisfied(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.MemorySize = 4
	traits.LearningRate = 0.5
	traits.HuntingSuccess = 0.7
	p := mustPredator(t, traits)

	for i := 0; i < 4; i++ {
		p.Learn(0.2, OutcomeSatisfied)
	}
	// success_rate = 1.0 ≥ learning_rate — traits untouched.
	if p.Traits().HuntingSuccess != 0.7 {
		t.Fatalf("hunting_success decayed despite full satisfaction: %g", p.Traits().HuntingSuccess)
	}
}

func TestPredator_LearnRepeatedDecayStaysNonNegative(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.MemorySize = 2
	traits.LearningRate = 1
	p := mustPredator(t, traits)

	for i := 0; i < 500; i++ {
		p.Learn(0.5, OutcomeDeath)
	}
	if p.Traits().HuntingSuccess < 0 {
		t.Fatalf("hunting_success decayed below zero: %g", p.Traits().HuntingSuccess)
	}
	if p.Traits().ToxicityThreshold < 0 {
		t.Fatalf("toxicity_threshold decayed below zero: %g", p.Traits().ToxicityThreshold)
	}
}

func TestPredator_ReproduceBelowMinimumNeverFires(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.ReproductionRate = 1
	p := mustPredator(t, traits)

	rng := testRNG(10)
	for i := 0; i < 50; i++ {
		if p.Reproduce(rng, 3) {
			t.Fatal("reproduced without enough prey eaten")
		}
	}
	if p.PreyEaten() != 0 {
		t.Fatalf("prey_eaten changed: %d", p.PreyEaten())
	}
}

func TestPredator_ReproduceResetsKillCounter(t *testing.T) {
	traits := DefaultPredatorTraits()
	traits.ReproductionRate = 1
	traits.DetectionProbability = 1
	traits.HuntingSuccess = 1
	traits.ToxicityThreshold = 0
	p := mustPredator(t, traits)

	preyTraits := DefaultPreyTraits()
	preyTraits.Aposematic = false
	prey := mustPrey(t, preyTraits)

	rng := testRNG(11)
	for i := 0; i < 3; i++ {
		if !p.Hunt(rng, prey, 0) {
			t.Fatal("certain hunt failed")
		}
	}
	if !p.Reproduce(rng, 3) {
		t.Fatal("eligible predator with rate 1 did not reproduce")
	}
	if p.PreyEaten() != 0 {
		t.Fatalf("expected kill counter reset, got %d", p.PreyEaten())
	}
}

func TestPredator_MoveStaysInBounds(t *testing.T) {
	p := mustPredator(t, DefaultPredatorTraits())
	rng := testRNG(12)
	for i := 0; i < 1000; i++ {
		p.Move(rng, 8, 6)
		pos := p.Position()
		if pos.X < 0 || pos.X >= 8 || pos.Y < 0 || pos.Y >= 6 {
			t.Fatalf("position %v left the 8x6 grid", pos)
		}
	}
}

func TestPredator_MoveClampsAtEdges(t *testing.T) {
	traits := DefaultPredatorTraits()
	p, err := NewPredator(0, traits, Cell{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("NewPredator: %v", err)
	}
	rng := testRNG(13)
	for i := 0; i < 200; i++ {
		p.Move(rng, 3, 3)
		pos := p.Position()
		if pos.X < 0 || pos.Y < 0 || pos.X > 2 || pos.Y > 2 {
			t.Fatalf("position %v left the 3x3 grid", pos)
		}
	}
}
