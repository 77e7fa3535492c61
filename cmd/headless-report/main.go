package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hmontrose/predator-sense/internal/ecology"
)

type runStats struct {
	runIndex int
	seed     int64

	firstKillTick      int
	firstSicknessTick  int
	firstEvolutionTick int
	firstPredBirthTick int
	firstPreyBirthTick int

	kills           int
	sicknessEvents  int
	recoveries      int
	poisonDeaths    int
	evolutionEvents int
	predatorBirths  int
	preyBirths      int

	predatorsStart int
	preyStart      int
	predatorsEnd   int
	preyEnd        int

	outcome       ecology.RunOutcomeReason
	windowSummary *ecology.WindowReport
	finalReport   *ecology.SimReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var gridW int
	var gridH int
	var predators int
	var prey int

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 1000, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&gridW, "grid-width", 48, "grid width in cells")
	flag.IntVar(&gridH, "grid-height", 32, "grid height in cells")
	flag.IntVar(&predators, "predators", 12, "starting predator count")
	flag.IntVar(&prey, "prey", 60, "starting prey count")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if predators+prey > gridW*gridH {
		fmt.Printf("error: %d agents do not fit on a %dx%d grid\n", predators+prey, gridW, gridH)
		return
	}

	fmt.Printf("=== Headless Ecology Report ===\n")
	fmt.Printf("grid=%dx%d predators=%d prey=%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		gridW, gridH, predators, prey, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(i+1, seed, ticks, gridW, gridH, predators, prey)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runScenario(runIndex int, seed int64, ticks, gridW, gridH, predators, prey int) runStats {
	ts := ecology.NewTestSim(
		ecology.WithGridSize(gridW, gridH),
		ecology.WithSeed(seed),
		ecology.WithRandomPredators(predators),
		ecology.WithRandomPrey(prey),
	)
	ts.RunTicks(ticks)

	sl := ts.SimLog
	return runStats{
		runIndex:           runIndex,
		seed:               seed,
		firstKillTick:      sl.FirstTick("hunt", "kill", ""),
		firstSicknessTick:  sl.FirstTick("sickness", "onset", ""),
		firstEvolutionTick: sl.FirstTick("evolve", "pattern", ""),
		firstPredBirthTick: firstBirthTick(sl, "predator"),
		firstPreyBirthTick: firstBirthTick(sl, "prey"),
		kills:              sl.CountCategory("hunt", "kill"),
		sicknessEvents:     sl.CountCategory("sickness", "onset"),
		recoveries:         sl.CountCategory("sickness", "recovered"),
		poisonDeaths:       sl.CountCategory("death", "poisoned"),
		evolutionEvents:    sl.CountCategory("evolve", "pattern"),
		predatorBirths:     birthCount(sl, "predator"),
		preyBirths:         birthCount(sl, "prey"),
		predatorsStart:     predators,
		preyStart:          prey,
		predatorsEnd:       len(ts.Env.Predators()),
		preyEnd:            len(ts.Env.Prey()),
		outcome:            ts.Outcome(),
		windowSummary:      ts.Reporter.WindowSummary(),
		finalReport:        ts.Reporter.Latest(),
	}
}

func firstBirthTick(sl *ecology.SimLog, species string) int {
	for _, e := range sl.Filter("reproduce", "birth") {
		if e.Species == species {
			return e.Tick
		}
	}
	return -1
}

func birthCount(sl *ecology.SimLog, species string) int {
	n := 0
	for _, e := range sl.Filter("reproduce", "birth") {
		if e.Species == species {
			n++
		}
	}
	return n
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_kill=%d first_sickness=%d first_evolution=%d first_predator_birth=%d first_prey_birth=%d\n",
		rs.firstKillTick, rs.firstSicknessTick, rs.firstEvolutionTick, rs.firstPredBirthTick, rs.firstPreyBirthTick)
	fmt.Printf("event_totals: kills=%d sickness=%d recoveries=%d poison_deaths=%d evolutions=%d births_predator=%d births_prey=%d\n",
		rs.kills, rs.sicknessEvents, rs.recoveries, rs.poisonDeaths, rs.evolutionEvents, rs.predatorBirths, rs.preyBirths)
	fmt.Printf("populations: predators %d → %d, prey %d → %d\n",
		rs.predatorsStart, rs.predatorsEnd, rs.preyStart, rs.preyEnd)
	fmt.Printf("outcome: %s (%s)\n", rs.outcome.Outcome, rs.outcome.Description)
	if rs.windowSummary != nil {
		ws := rs.windowSummary
		fmt.Printf("window %d..%d (%d samples): predators=%.1f (sick %.1f) prey=%.1f (aposematic %.1f) kills=%d\n",
			ws.FromTick, ws.ToTick, ws.SampleCount, ws.AvgPredators, ws.AvgSickPredators, ws.AvgPrey, ws.AvgAposematic, ws.TotalKills)
		fmt.Printf("window_trait_means: pattern=%.3f toxicity=%.3f hunt=%.3f tox_threshold=%.3f\n",
			ws.AvgPattern, ws.AvgToxicity, ws.AvgHuntingSuccess, ws.AvgToxicityThreshold)
	}
	if rs.finalReport != nil {
		fmt.Print(ecology.FormatReport(rs.finalReport))
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	fmt.Printf("=== Aggregate over %d runs ===\n", len(all))

	counts := outcomeCounts(all)
	parts := make([]string, 0, len(counts))
	for _, oc := range []ecology.RunOutcome{
		ecology.RunCoexistence, ecology.RunPredatorCollapse,
		ecology.RunPreyExtinction, ecology.RunInconclusive,
	} {
		if n := counts[oc]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", oc, n))
		}
	}
	fmt.Printf("outcomes: %s\n", strings.Join(parts, " "))

	printMinMeanMax("kills", collect(all, func(rs runStats) int { return rs.kills }))
	printMinMeanMax("sickness_events", collect(all, func(rs runStats) int { return rs.sicknessEvents }))
	printMinMeanMax("poison_deaths", collect(all, func(rs runStats) int { return rs.poisonDeaths }))
	printMinMeanMax("evolutions", collect(all, func(rs runStats) int { return rs.evolutionEvents }))
	printMinMeanMax("births_predator", collect(all, func(rs runStats) int { return rs.predatorBirths }))
	printMinMeanMax("births_prey", collect(all, func(rs runStats) int { return rs.preyBirths }))
	printMinMeanMax("final_predators", collect(all, func(rs runStats) int { return rs.predatorsEnd }))
	printMinMeanMax("final_prey", collect(all, func(rs runStats) int { return rs.preyEnd }))

	firstKills := collect(all, func(rs runStats) int { return rs.firstKillTick })
	fmt.Printf("first_kill_ticks: %s\n", formatTicks(firstKills))
	firstEvo := collect(all, func(rs runStats) int { return rs.firstEvolutionTick })
	fmt.Printf("first_evolution_ticks: %s\n", formatTicks(firstEvo))
}

// outcomeCounts tallies run outcomes across all runs.
func outcomeCounts(all []runStats) map[ecology.RunOutcome]int {
	counts := map[ecology.RunOutcome]int{}
	for _, rs := range all {
		counts[rs.outcome.Outcome]++
	}
	return counts
}

func collect(all []runStats, f func(runStats) int) []int {
	out := make([]int, 0, len(all))
	for _, rs := range all {
		out = append(out, f(rs))
	}
	return out
}

// minMeanMax summarizes a series. never-happened markers (-1) are excluded;
// ok is false when nothing remains.
func minMeanMax(values []int) (minV int, mean float64, maxV int, ok bool) {
	sum := 0
	n := 0
	for _, v := range values {
		if v < 0 {
			continue
		}
		if n == 0 || v < minV {
			minV = v
		}
		if n == 0 || v > maxV {
			maxV = v
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, 0, 0, false
	}
	return minV, float64(sum) / float64(n), maxV, true
}

func printMinMeanMax(name string, values []int) {
	minV, mean, maxV, ok := minMeanMax(values)
	if !ok {
		fmt.Printf("%s: n/a\n", name)
		return
	}
	fmt.Printf("%s: min=%d mean=%.1f max=%d\n", name, minV, mean, maxV)
}

func formatTicks(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v < 0 {
			parts[i] = "never"
		} else {
			parts[i] = fmt.Sprintf("%d", v)
		}
	}
	return strings.Join(parts, " ")
}
