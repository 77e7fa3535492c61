package ecology

// HuntOutcome classifies one hunt from the predator's point of view. It is
// what gets written into hunt memory and drives the learning rule.
type HuntOutcome int

const (
	OutcomeSatisfied HuntOutcome = iota // ate the prey, no ill effects
	OutcomeDeath                        // the meal was lethally toxic
	OutcomeSickness                     // the meal made the predator sick
)

func (o HuntOutcome) String() string {
	switch o {
	case OutcomeSatisfied:
		return "satisfied"
	case OutcomeDeath:
		return "death"
	case OutcomeSickness:
		return "sickness"
	default:
		return "unknown"
	}
}

// PreyOutcome records how one tick went for a prey animal.
type PreyOutcome int

const (
	PreyOutcomeUnset PreyOutcome = iota
	PreyOutcomeSurvived
	PreyOutcomeEaten
	PreyOutcomeAttacked // a predator committed to a hunt but failed
)

func (o PreyOutcome) String() string {
	switch o {
	case PreyOutcomeSurvived:
		return "survived"
	case PreyOutcomeEaten:
		return "eaten"
	case PreyOutcomeAttacked:
		return "attacked"
	case PreyOutcomeUnset:
		return "unset"
	default:
		return "unknown"
	}
}

// RunOutcome classifies a finished simulation run.
type RunOutcome int

const (
	RunInconclusive RunOutcome = iota
	RunPredatorCollapse
	RunPreyExtinction
	RunCoexistence
)

func (o RunOutcome) String() string {
	switch o {
	case RunPredatorCollapse:
		return "predator_collapse"
	case RunPreyExtinction:
		return "prey_extinction"
	case RunCoexistence:
		return "coexistence"
	case RunInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// RunOutcomeReason bundles the classification with the counts that led to it.
type RunOutcomeReason struct {
	Outcome        RunOutcome
	Predators      int
	PredatorsStart int
	Prey           int
	PreyStart      int
	SickPredators  int
	AposematicPrey int
	Description    string
}

// coexistenceFloor is the surviving fraction of BOTH starting populations
// required to call a run stable coexistence rather than inconclusive.
const coexistenceFloor = 0.25

// DetermineRunOutcome classifies the state of a run from its live populations.
func DetermineRunOutcome(predators []*Predator, prey []*Prey, predatorsStart, preyStart int) RunOutcomeReason {
	sick := 0
	for _, p := range predators {
		if p.IsSick() {
			sick++
		}
	}
	apos := 0
	for _, y := range prey {
		if y.Traits().Aposematic {
			apos++
		}
	}

	reason := RunOutcomeReason{
		Predators:      len(predators),
		PredatorsStart: predatorsStart,
		Prey:           len(prey),
		PreyStart:      preyStart,
		SickPredators:  sick,
		AposematicPrey: apos,
	}

	switch {
	case len(prey) == 0 && len(predators) > 0:
		reason.Outcome = RunPreyExtinction
		reason.Description = "prey_eliminated"
	case len(predators) == 0 && len(prey) > 0:
		reason.Outcome = RunPredatorCollapse
		reason.Description = "predators_starved_out"
	case len(predators) == 0 && len(prey) == 0:
		reason.Outcome = RunInconclusive
		reason.Description = "mutual_extinction"
	case survivingFraction(len(predators), predatorsStart) >= coexistenceFloor &&
		survivingFraction(len(prey), preyStart) >= coexistenceFloor:
		reason.Outcome = RunCoexistence
		reason.Description = "stable_coexistence"
	default:
		reason.Outcome = RunInconclusive
		reason.Description = "populations_still_shifting"
	}
	return reason
}

func survivingFraction(now, start int) float64 {
	if start <= 0 {
		return 0
	}
	return float64(now) / float64(start)
}
