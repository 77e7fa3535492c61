package ecology

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colBackground = color.RGBA{R: 18, G: 24, B: 18, A: 255}
	colGridFill   = color.RGBA{R: 30, G: 44, B: 30, A: 255}
	colGridLine   = color.RGBA{R: 40, G: 58, B: 40, A: 120}
	colBorder     = color.RGBA{R: 90, G: 130, B: 90, A: 255}

	colPredator     = color.RGBA{R: 220, G: 60, B: 50, A: 255}
	colPredatorSick = color.RGBA{R: 150, G: 70, B: 190, A: 255}
	colPreyCamo     = color.RGBA{R: 70, G: 170, B: 80, A: 255}
	colPreyWarning  = color.RGBA{R: 240, G: 150, B: 30, A: 255}
	colSelected     = color.RGBA{R: 250, G: 250, B: 140, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)

	env := g.engine.Env()
	ox := float32(g.offX)
	oy := float32(g.offY)
	gw := float32(env.Width() * cellPx)
	gh := float32(env.Height() * cellPx)

	// Grid background and frame.
	vector.FillRect(screen, ox, oy, gw, gh, colGridFill, false)
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, colBorder, false)

	// Cell lines.
	for x := 1; x < env.Width(); x++ {
		sx := ox + float32(x*cellPx)
		vector.StrokeLine(screen, sx, oy, sx, oy+gh, 1.0, colGridLine, false)
	}
	for y := 1; y < env.Height(); y++ {
		sy := oy + float32(y*cellPx)
		vector.StrokeLine(screen, ox, sy, ox+gw, sy, 1.0, colGridLine, false)
	}

	// Prey first so predators draw on top when occupancy has drifted.
	for _, y := range env.Prey() {
		g.drawPrey(screen, y)
	}
	for _, p := range env.Predators() {
		g.drawPredator(screen, p)
	}

	g.drawPanel(screen)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

// drawPrey renders a prey as a filled square: orange when it advertises a
// warning signal, green when it relies on camouflage. Signal intensity sets
// the inset so stronger patterns read bigger.
func (g *Game) drawPrey(screen *ebiten.Image, y *Prey) {
	cell := y.Position()
	px := float32(g.offX + cell.X*cellPx)
	py := float32(g.offY + cell.Y*cellPx)

	fill := colPreyCamo
	inset := float32(5)
	if y.IsAposematic() {
		fill = colPreyWarning
		inset = 5 - float32(y.WarningStrength()*2)
	}
	vector.FillRect(screen, px+inset, py+inset, cellPx-2*inset, cellPx-2*inset, fill, false)

	if g.inspector.selectedPrey == y {
		vector.StrokeRect(screen, px+1, py+1, cellPx-2, cellPx-2, 1.5, colSelected, false)
	}
}

// drawPredator renders a predator as a filled circle, purple while sick.
func (g *Game) drawPredator(screen *ebiten.Image, p *Predator) {
	cell := p.Position()
	cx := float32(g.offX+cell.X*cellPx) + cellPx/2
	cy := float32(g.offY+cell.Y*cellPx) + cellPx/2

	fill := colPredator
	if p.IsSick() {
		fill = colPredatorSick
	}
	vector.FillCircle(screen, cx, cy, cellPx/2-3, fill, false)

	if g.inspector.selectedPredator == p {
		vector.StrokeCircle(screen, cx, cy, cellPx/2-1, 1.5, colSelected, false)
	}
}

// drawPanel renders the status column right of the grid: populations, the
// latest report, and the inspector readout for the selected agent.
func (g *Game) drawPanel(screen *ebiten.Image) {
	env := g.engine.Env()
	px := g.offX + env.Width()*cellPx + borderPx
	py := g.offY

	lines := []string{
		fmt.Sprintf("tick %d   speed %.2fx", g.engine.Tick(), g.simSpeed),
		fmt.Sprintf("predators %d   prey %d", len(env.Predators()), len(env.Prey())),
		fmt.Sprintf("kills %d", g.engine.TotalKills()),
		"",
	}
	if rpt := g.engine.Reporter().Latest(); rpt != nil {
		lines = append(lines,
			fmt.Sprintf("prey camo  %.3f", rpt.MeanCamouflage),
			fmt.Sprintf("prey sig   %.3f", rpt.MeanPattern),
			fmt.Sprintf("prey tox   %.3f", rpt.MeanToxicity),
			fmt.Sprintf("pred hunt  %.3f", rpt.MeanHuntingSuccess),
			fmt.Sprintf("pred thold %.3f", rpt.MeanToxicityThreshold),
			"",
		)
	}
	lines = append(lines, g.inspectorLines()...)
	if g.statusMsg != "" {
		lines = append(lines, "", g.statusMsg)
	}

	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, px, py+i*14)
	}
}

// drawHUD renders the key legend along the bottom edge.
func (g *Game) drawHUD(screen *ebiten.Image) {
	legend := "space pause   n step   [ ] speed   click inspect   r copy report   h hide"
	ebitenutil.DebugPrintAt(screen, legend, g.offX, g.winH-18)
}
