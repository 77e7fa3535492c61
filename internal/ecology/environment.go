package ecology

import (
	"errors"
	"fmt"
	"math/rand"
)

// placementAttemptsPerCell bounds rejection sampling during placement. After
// this many misses per grid cell the search falls back to a deterministic
// scan, so placement can never spin forever on a crowded grid.
const placementAttemptsPerCell = 4

// ErrGridFull is returned when an agent needs a cell and none is free.
var ErrGridFull = errors.New("no unoccupied cell available")

// Cell is one grid coordinate.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Chebyshev returns the chessboard distance between two cells — the number of
// king moves between them, matching the one-step-per-axis movement model.
func Chebyshev(a, b Cell) int {
	dx := absInt(a.X - b.X)
	dy := absInt(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Environment owns the grid and the live agent collections. It places agents
// on unique cells and answers bounds queries; every behavioural decision
// belongs to the agents and the tick engine.
//
// Occupancy is exact at placement time only. Agents move on their own during
// a tick, so the occupied set goes stale until the engine calls
// SyncOccupancy — that divergence is a deliberate consistency boundary.
type Environment struct {
	width  int
	height int

	predators []*Predator
	prey      []*Prey
	occupied  map[Cell]bool
	nextID    int
}

// NewEnvironment creates an empty grid of the given dimensions.
func NewEnvironment(width, height int) (*Environment, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	return &Environment{
		width:    width,
		height:   height,
		occupied: make(map[Cell]bool),
	}, nil
}

// NewPopulatedEnvironment creates a grid and places one predator per entry of
// predatorTraits and one prey per entry of preyTraits, each on a unique
// random cell. It fails up front if the agents outnumber the cells.
func NewPopulatedEnvironment(width, height int, predatorTraits []PredatorTraits, preyTraits []PreyTraits, rng *rand.Rand) (*Environment, error) {
	env, err := NewEnvironment(width, height)
	if err != nil {
		return nil, err
	}
	if len(predatorTraits)+len(preyTraits) > width*height {
		return nil, fmt.Errorf("%w: %d agents on a %dx%d grid",
			ErrGridFull, len(predatorTraits)+len(preyTraits), width, height)
	}
	for _, traits := range predatorTraits {
		cell, err := env.RandomFreeCell(rng)
		if err != nil {
			return nil, err
		}
		if _, err := env.PlacePredator(traits, cell); err != nil {
			return nil, err
		}
	}
	for _, traits := range preyTraits {
		cell, err := env.RandomFreeCell(rng)
		if err != nil {
			return nil, err
		}
		if _, err := env.PlacePrey(traits, cell); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// Width returns the grid width.
func (e *Environment) Width() int { return e.width }

// Height returns the grid height.
func (e *Environment) Height() int { return e.height }

// IsWithinBounds reports whether the cell lies on the grid.
func (e *Environment) IsWithinBounds(c Cell) bool {
	return c.X >= 0 && c.X < e.width && c.Y >= 0 && c.Y < e.height
}

// Predators returns the live predator collection.
func (e *Environment) Predators() []*Predator { return e.predators }

// Prey returns the live prey collection.
func (e *Environment) Prey() []*Prey { return e.prey }

// Occupied reports whether a cell was claimed as of the last placement or
// SyncOccupancy call.
func (e *Environment) Occupied(c Cell) bool { return e.occupied[c] }

// PlacePredator constructs a predator at the given free cell and adds it to
// the live set.
func (e *Environment) PlacePredator(traits PredatorTraits, cell Cell) (*Predator, error) {
	if err := e.claim(cell); err != nil {
		return nil, err
	}
	p, err := NewPredator(e.takeID(), traits, cell)
	if err != nil {
		e.release(cell)
		return nil, err
	}
	e.predators = append(e.predators, p)
	return p, nil
}

// PlacePrey constructs a prey at the given free cell and adds it to the live set.
func (e *Environment) PlacePrey(traits PreyTraits, cell Cell) (*Prey, error) {
	if err := e.claim(cell); err != nil {
		return nil, err
	}
	y, err := NewPrey(e.takeID(), traits, cell)
	if err != nil {
		e.release(cell)
		return nil, err
	}
	e.prey = append(e.prey, y)
	return y, nil
}

// AdoptPreyOffspring gives an offspring returned by Prey.Reproduce an
// identity and a fresh unique cell, and adds it to the live set.
func (e *Environment) AdoptPreyOffspring(child *Prey, rng *rand.Rand) (*Prey, error) {
	cell, err := e.RandomFreeCell(rng)
	if err != nil {
		return nil, err
	}
	if err := e.claim(cell); err != nil {
		return nil, err
	}
	child.adopt(e.takeID(), cell)
	e.prey = append(e.prey, child)
	return child, nil
}

// RemovePrey drops a prey from the live set.
func (e *Environment) RemovePrey(target *Prey) {
	for i, y := range e.prey {
		if y == target {
			e.prey = append(e.prey[:i], e.prey[i+1:]...)
			e.release(target.Position())
			return
		}
	}
}

// RemovePredator drops a predator from the live set.
func (e *Environment) RemovePredator(target *Predator) {
	for i, p := range e.predators {
		if p == target {
			e.predators = append(e.predators[:i], e.predators[i+1:]...)
			e.release(target.Position())
			return
		}
	}
}

// RandomFreeCell finds an unoccupied cell: bounded rejection sampling first,
// then a deterministic scan from a random offset. Returns ErrGridFull when
// every cell is taken.
func (e *Environment) RandomFreeCell(rng *rand.Rand) (Cell, error) {
	cells := e.width * e.height
	if len(e.occupied) >= cells {
		return Cell{}, ErrGridFull
	}
	for i := 0; i < cells*placementAttemptsPerCell; i++ {
		c := Cell{X: rng.Intn(e.width), Y: rng.Intn(e.height)}
		if !e.occupied[c] {
			return c, nil
		}
	}
	// Dense grid: walk every cell once starting at a random offset.
	start := rng.Intn(cells)
	for i := 0; i < cells; i++ {
		idx := (start + i) % cells
		c := Cell{X: idx % e.width, Y: idx / e.width}
		if !e.occupied[c] {
			return c, nil
		}
	}
	return Cell{}, ErrGridFull
}

// SyncOccupancy rebuilds the occupied set from the agents' own positions.
// The engine calls this after movement; between moves and sync, occupancy is
// allowed to be stale.
func (e *Environment) SyncOccupancy() {
	clear(e.occupied)
	for _, p := range e.predators {
		e.occupied[p.Position()] = true
	}
	for _, y := range e.prey {
		e.occupied[y.Position()] = true
	}
}

func (e *Environment) claim(cell Cell) error {
	if !e.IsWithinBounds(cell) {
		return fmt.Errorf("cell %v outside %dx%d grid", cell, e.width, e.height)
	}
	if e.occupied[cell] {
		return fmt.Errorf("cell %v already occupied", cell)
	}
	e.occupied[cell] = true
	return nil
}

func (e *Environment) release(cell Cell) {
	delete(e.occupied, cell)
}

func (e *Environment) takeID() int {
	id := e.nextID
	e.nextID++
	return id
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
