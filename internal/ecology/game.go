package ecology

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// cellPx is the on-screen size of one grid cell.
	cellPx = 18
	// borderPx is the gap between the window edge and the grid.
	borderPx = 24
	// panelW is the width of the inspector/HUD panel right of the grid.
	panelW = 340

	defaultGridW     = 48
	defaultGridH     = 32
	defaultPredators = 12
	defaultPrey      = 60
)

// Game is the ebiten viewer around an Engine. The simulation itself never
// touches ebiten; the viewer only reads state and forwards input.
type Game struct {
	engine *Engine

	winW, winH int
	offX, offY int

	simSpeed  float64 // sim ticks per frame; 0 = paused
	tickAccum float64
	showHUD   bool

	inspector Inspector
	statusMsg string // transient message shown in the panel (e.g. clipboard copy)
	statusAge int

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
}

// New creates a viewer around a freshly populated default run, seeded from
// the wall clock.
func New() *Game {
	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation only

	predTraits := make([]PredatorTraits, defaultPredators)
	for i := range predTraits {
		predTraits[i] = RandomPredatorTraits(rng)
	}
	preyTraits := make([]PreyTraits, defaultPrey)
	for i := range preyTraits {
		preyTraits[i] = RandomPreyTraits(rng)
	}

	env, err := NewPopulatedEnvironment(defaultGridW, defaultGridH, predTraits, preyTraits, rng)
	if err != nil {
		panic(err)
	}
	return NewGameForEngine(NewEngine(env, DefaultConfig(), seed, nil))
}

// NewGameForEngine wraps an existing engine, e.g. a scripted scenario.
func NewGameForEngine(engine *Engine) *Game {
	gw := engine.Env().Width() * cellPx
	gh := engine.Env().Height() * cellPx
	return &Game{
		engine:   engine,
		winW:     gw + borderPx*2 + panelW,
		winH:     gh + borderPx*2,
		offX:     borderPx,
		offY:     borderPx,
		simSpeed: 0.25, // four frames per sim tick: slow enough to watch
		showHUD:  true,
		prevKeys: map[ebiten.Key]bool{},
	}
}

// WindowSize returns the pixel dimensions the viewer wants.
func (g *Game) WindowSize() (int, int) {
	return g.winW, g.winH
}

func (g *Game) Update() error {
	g.handleInput()

	if g.statusAge > 0 {
		g.statusAge--
		if g.statusAge == 0 {
			g.statusMsg = ""
		}
	}

	if g.simSpeed <= 0 {
		return nil
	}
	// For speeds > 1 run multiple sim ticks per frame; for speeds < 1
	// accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.engine.RunTick()
	}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.winW, g.winH
}

// handleInput processes keypresses (edge-triggered) and inspector clicks.
func (g *Game) handleInput() {
	pressed := func(k ebiten.Key) bool {
		now := ebiten.IsKeyPressed(k)
		was := g.prevKeys[k]
		g.prevKeys[k] = now
		return now && !was
	}

	// Space: pause / resume.
	if pressed(ebiten.KeySpace) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 0.25
		}
	}
	// N: single tick while paused.
	if pressed(ebiten.KeyN) && g.simSpeed == 0 {
		g.engine.RunTick()
	}
	// Bracket keys: halve / double speed.
	if pressed(ebiten.KeyBracketLeft) && g.simSpeed > 0 {
		g.simSpeed /= 2
	}
	if pressed(ebiten.KeyBracketRight) {
		if g.simSpeed == 0 {
			g.simSpeed = 0.25
		} else if g.simSpeed < 16 {
			g.simSpeed *= 2
		}
	}
	// H: toggle HUD legend.
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	// R: copy the latest report to the system clipboard.
	if pressed(ebiten.KeyR) {
		g.copyReportToClipboard()
	}

	// Click: select an agent for the inspector.
	mouseLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if mouseLeft && !g.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		g.handleInspectorClick(mx, my)
	}
	g.prevMouseLeft = mouseLeft
}
