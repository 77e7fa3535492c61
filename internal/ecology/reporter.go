package ecology

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour summaries.
const reportWindowTicks = 100

// SimReport is a population snapshot at one tick.
type SimReport struct {
	Tick int

	Predators      int
	SickPredators  int
	Prey           int
	AposematicPrey int

	// Kills recorded since the previous snapshot.
	Kills int

	// Prey trait means across the live population.
	MeanCamouflage float64
	MeanPattern    float64
	MeanToxicity   float64

	// Predator trait means across the live population.
	MeanHuntingSuccess    float64
	MeanToxicityThreshold float64
	MeanPreyEaten         float64
}

// WindowReport aggregates snapshots over the recent time window.
type WindowReport struct {
	FromTick    int
	ToTick      int
	SampleCount int

	AvgPredators     float64
	AvgSickPredators float64
	AvgPrey          float64
	AvgAposematic    float64
	TotalKills       int

	AvgPattern           float64
	AvgToxicity          float64
	AvgHuntingSuccess    float64
	AvgToxicityThreshold float64
}

// SimReporter collects SimReports over a run and summarises recent windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
}

// NewSimReporter creates a reporter with the default window.
func NewSimReporter() *SimReporter {
	return &SimReporter{windowTicks: reportWindowTicks}
}

// Collect snapshots the live populations at the given tick.
func (r *SimReporter) Collect(tick int, predators []*Predator, prey []*Prey, kills int) {
	rpt := SimReport{
		Tick:      tick,
		Predators: len(predators),
		Prey:      len(prey),
		Kills:     kills,
	}

	for _, p := range predators {
		if p.IsSick() {
			rpt.SickPredators++
		}
		t := p.Traits()
		rpt.MeanHuntingSuccess += t.HuntingSuccess
		rpt.MeanToxicityThreshold += t.ToxicityThreshold
		rpt.MeanPreyEaten += float64(p.PreyEaten())
	}
	if n := float64(len(predators)); n > 0 {
		rpt.MeanHuntingSuccess /= n
		rpt.MeanToxicityThreshold /= n
		rpt.MeanPreyEaten /= n
	}

	for _, y := range prey {
		t := y.Traits()
		if t.Aposematic {
			rpt.AposematicPrey++
		}
		rpt.MeanCamouflage += t.Camouflage
		rpt.MeanPattern += t.AposematicPattern
		rpt.MeanToxicity += t.Toxicity
	}
	if n := float64(len(prey)); n > 0 {
		rpt.MeanCamouflage /= n
		rpt.MeanPattern /= n
		rpt.MeanToxicity /= n
	}

	r.history = append(r.history, rpt)
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns every collected report, oldest first.
func (r *SimReporter) History() []SimReport {
	return r.history
}

// WindowSummary returns an aggregated summary over the recent time window,
// averaging populations and trait means across all reports in the window.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SimReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	wr := &WindowReport{
		FromTick:    window[len(window)-1].Tick,
		ToTick:      window[0].Tick,
		SampleCount: len(window),
	}

	for _, rpt := range window {
		wr.AvgPredators += float64(rpt.Predators)
		wr.AvgSickPredators += float64(rpt.SickPredators)
		wr.AvgPrey += float64(rpt.Prey)
		wr.AvgAposematic += float64(rpt.AposematicPrey)
		wr.AvgPattern += rpt.MeanPattern
		wr.AvgToxicity += rpt.MeanToxicity
		wr.AvgHuntingSuccess += rpt.MeanHuntingSuccess
		wr.AvgToxicityThreshold += rpt.MeanToxicityThreshold
		wr.TotalKills += rpt.Kills
	}

	n := float64(len(window))
	wr.AvgPredators /= n
	wr.AvgSickPredators /= n
	wr.AvgPrey /= n
	wr.AvgAposematic /= n
	wr.AvgPattern /= n
	wr.AvgToxicity /= n
	wr.AvgHuntingSuccess /= n
	wr.AvgToxicityThreshold /= n

	return wr
}

// FormatReport renders one snapshot as fixed-width text for the inspector
// panel and the headless report.
func FormatReport(rpt *SimReport) string {
	if rpt == nil {
		return "no report collected yet\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "tick %d\n", rpt.Tick)
	fmt.Fprintf(&b, "  predators %3d  (sick %d)\n", rpt.Predators, rpt.SickPredators)
	fmt.Fprintf(&b, "  prey      %3d  (aposematic %d)\n", rpt.Prey, rpt.AposematicPrey)
	fmt.Fprintf(&b, "  kills since last report: %d\n", rpt.Kills)
	fmt.Fprintf(&b, "  prey means:     camo=%.3f pattern=%.3f toxicity=%.3f\n",
		rpt.MeanCamouflage, rpt.MeanPattern, rpt.MeanToxicity)
	fmt.Fprintf(&b, "  predator means: hunt=%.3f tox_threshold=%.3f eaten=%.2f\n",
		rpt.MeanHuntingSuccess, rpt.MeanToxicityThreshold, rpt.MeanPreyEaten)
	return b.String()
}
