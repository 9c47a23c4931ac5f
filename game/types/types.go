package types

import (
	"errors"
	"fmt"
	"time"
)

// Point is an integer grid cell or a unit direction vector.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// IsDirection reports whether p is one of the four unit vectors.
func (p Point) IsDirection() bool {
	switch p {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Unit direction vectors. Y grows downward, as on screen.
var (
	Up    = Point{X: 0, Y: -1}
	Down  = Point{X: 0, Y: 1}
	Left  = Point{X: -1, Y: 0}
	Right = Point{X: 1, Y: 0}
)

// Directions lists the unit vectors in clockwise order starting from Up.
var Directions = [4]Point{Up, Right, Down, Left}

// Map size menu bounds and on-screen layout
const (
	MinSize        = 5
	MaxSize        = 20
	WallMargin     = 2   // one wall cell on each side
	CellSize       = 20  // pixels per grid cell
	VerticalOffset = 110 // pixels reserved above the grid for the HUD
	InitialLength  = 1
)

// Timing, as frame-delta accumulated durations
const (
	NormalSpeed    = 500 * time.Millisecond // movement interval
	BoostedSpeed   = 250 * time.Millisecond // movement interval while boosted
	SpeedDuration  = 5 * time.Second        // speed booster effect
	BoosterRespawn = 6 * time.Second        // cooldown before an eaten booster returns
	WinDivisor     = 10                     // interior cells per food needed to win
	ShrinkAmount   = 2
)

var (
	ErrGridSize           = errors.New("grid size out of range")
	ErrConflictingSystems = errors.New("food and word puzzle cannot both be active")
)

// Rect is a pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

// Grid represents the game grid dimensions, wall ring included.
type Grid struct {
	Width  int
	Height int
}

// NewGrid builds the playing grid from menu dimensions, adding the wall ring.
func NewGrid(width, height int) (Grid, error) {
	if width < MinSize || width > MaxSize || height < MinSize || height > MaxSize {
		return Grid{}, fmt.Errorf("%w: %dx%d not within [%d,%d]", ErrGridSize, width, height, MinSize, MaxSize)
	}
	return Grid{Width: width + WallMargin, Height: height + WallMargin}, nil
}

// Interior reports whether p is a playable (non-wall) cell.
func (g Grid) Interior(p Point) bool {
	return p.X >= 1 && p.X < g.Width-1 && p.Y >= 1 && p.Y < g.Height-1
}

// IsWall reports whether p lies on the border ring.
func (g Grid) IsWall(p Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= g.Width || p.Y >= g.Height {
		return false
	}
	return !g.Interior(p)
}

// Center is where a snake starts and respawns.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// InteriorCells is the number of playable cells.
func (g Grid) InteriorCells() int {
	return (g.Width - WallMargin) * (g.Height - WallMargin)
}

// RandomInterior picks a uniformly random playable cell.
func (g Grid) RandomInterior(rng Rand) Point {
	return Point{
		X: rng.Intn(g.Width-WallMargin) + 1,
		Y: rng.Intn(g.Height-WallMargin) + 1,
	}
}

// CellToRect maps a cell to its draw rectangle.
func (g Grid) CellToRect(p Point) Rect {
	return Rect{
		X: p.X * CellSize,
		Y: p.Y*CellSize + VerticalOffset,
		W: CellSize,
		H: CellSize,
	}
}

// Rand is the random source the simulation draws from.
// *golang.org/x/exp/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}
