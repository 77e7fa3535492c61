package ecology

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// statusTicks is how long a transient panel message stays visible.
const statusTicks = 180

// Inspector holds the agent selected by a grid click. At most one of the two
// pointers is set.
type Inspector struct {
	selectedPredator *Predator
	selectedPrey     *Prey
}

// handleInspectorClick maps a pixel click to a grid cell and selects whatever
// agent currently stands there, predators taking precedence since they draw
// on top. Clicking empty ground clears the selection.
func (g *Game) handleInspectorClick(mx, my int) bool {
	env := g.engine.Env()
	cell := Cell{
		X: (mx - g.offX) / cellPx,
		Y: (my - g.offY) / cellPx,
	}
	if mx < g.offX || my < g.offY || !env.IsWithinBounds(cell) {
		return false
	}

	g.inspector = Inspector{}
	for _, p := range env.Predators() {
		if p.Position() == cell {
			g.inspector.selectedPredator = p
			return true
		}
	}
	for _, y := range env.Prey() {
		if y.Position() == cell {
			g.inspector.selectedPrey = y
			return true
		}
	}
	return false
}

// inspectorLines renders the selected agent's state for the panel.
func (g *Game) inspectorLines() []string {
	switch {
	case g.inspector.selectedPredator != nil:
		p := g.inspector.selectedPredator
		if !g.stillAlivePredator(p) {
			g.inspector = Inspector{}
			return nil
		}
		t := p.Traits()
		lines := []string{
			fmt.Sprintf("-- %s  predator %v --", p.Label(), p.Position()),
			fmt.Sprintf("hunt %.3f  detect %.3f", t.HuntingSuccess, t.DetectionProbability),
			fmt.Sprintf("tox threshold %.3f  learn %.2f", t.ToxicityThreshold, t.LearningRate),
			fmt.Sprintf("range %d  memory %d/%d", t.VisualRange, p.Memory().Len(), p.Memory().Cap()),
			fmt.Sprintf("eaten %d  sick %d", p.PreyEaten(), p.SickTimer()),
		}
		for i, rec := range p.Memory().Records() {
			lines = append(lines, fmt.Sprintf("  m%02d pattern %.3f %s", i, rec.PreyPattern, rec.Outcome))
		}
		return lines
	case g.inspector.selectedPrey != nil:
		y := g.inspector.selectedPrey
		if !g.stillAlivePrey(y) {
			g.inspector = Inspector{}
			return nil
		}
		t := y.Traits()
		return []string{
			fmt.Sprintf("-- %s  prey %v --", y.Label(), y.Position()),
			fmt.Sprintf("camo %.3f  move %.2f", t.Camouflage, t.MovementProbability),
			fmt.Sprintf("aposematic %v  pattern %.3f", t.Aposematic, t.AposematicPattern),
			fmt.Sprintf("toxicity %.3f  level %.3f", t.Toxicity, y.ToxicityLevel()),
			fmt.Sprintf("evolve thr %.2f p %.2f", t.EvolutionThreshold, t.EvolutionProbability),
			fmt.Sprintf("outcome %s  path %d cells", y.Outcome(), len(y.Path())),
		}
	default:
		return []string{"click an agent to inspect"}
	}
}

func (g *Game) stillAlivePredator(target *Predator) bool {
	for _, p := range g.engine.Env().Predators() {
		if p == target {
			return true
		}
	}
	return false
}

func (g *Game) stillAlivePrey(target *Prey) bool {
	for _, y := range g.engine.Env().Prey() {
		if y == target {
			return true
		}
	}
	return false
}

// copyReportToClipboard puts the current report, window summary, and log tail
// on the system clipboard.
func (g *Game) copyReportToClipboard() {
	var b strings.Builder
	b.WriteString("=== Ecology Report ===\n")
	b.WriteString(FormatReport(g.engine.Reporter().Latest()))
	if ws := g.engine.Reporter().WindowSummary(); ws != nil {
		fmt.Fprintf(&b, "window %d..%d (%d samples): predators %.1f prey %.1f kills %d\n",
			ws.FromTick, ws.ToTick, ws.SampleCount, ws.AvgPredators, ws.AvgPrey, ws.TotalKills)
	}
	outcome := g.engine.Outcome()
	fmt.Fprintf(&b, "outcome: %s (%s)\n", outcome.Outcome, outcome.Description)

	entries := g.engine.SimLog().Entries()
	const tail = 40
	start := len(entries) - tail
	if start < 0 {
		start = 0
	}
	b.WriteString("--- recent events ---\n")
	for _, e := range entries[start:] {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	if err := clipboard.WriteAll(b.String()); err != nil {
		g.statusMsg = fmt.Sprintf("clipboard copy failed: %v", err)
	} else {
		g.statusMsg = "report copied to clipboard"
	}
	g.statusAge = statusTicks
}
