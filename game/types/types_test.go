package types

import (
	"errors"
	"testing"
)

// seqRand replays fixed Intn results.
type seqRand struct {
	ints []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.ints[r.i%len(r.ints)] % n
	r.i++
	return v
}

func (r *seqRand) Float64() float64 { return 0 }

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
		wantErr       bool
	}{
		{"smallest", 5, 5, 7, 7, false},
		{"largest", 20, 20, 22, 22, false},
		{"uneven", 7, 12, 9, 14, false},
		{"too narrow", 4, 10, 0, 0, true},
		{"too tall", 10, 21, 0, 0, true},
		{"zero", 0, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.width, tt.height)
			if tt.wantErr {
				if !errors.Is(err, ErrGridSize) {
					t.Fatalf("NewGrid() error = %v, want ErrGridSize", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGrid() error = %v", err)
			}
			if g.Width != tt.wantW || g.Height != tt.wantH {
				t.Errorf("NewGrid() = %dx%d, want %dx%d", g.Width, g.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestGridWalls(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		g, err := NewGrid(size, size)
		if err != nil {
			t.Fatalf("NewGrid(%d) error = %v", size, err)
		}

		last := size + 1
		walls := []Point{{0, 3}, {last, 3}, {3, 0}, {3, last}, {0, 0}, {last, last}}
		for _, p := range walls {
			if !g.IsWall(p) || g.Interior(p) {
				t.Errorf("size %d: %v should be a wall", size, p)
			}
		}

		inner := []Point{{1, 1}, {size, size}, {1, size}, {size, 1}}
		for _, p := range inner {
			if g.IsWall(p) || !g.Interior(p) {
				t.Errorf("size %d: %v should be interior", size, p)
			}
		}

		if g.IsWall(Point{X: -1, Y: 0}) || g.IsWall(Point{X: last + 1, Y: 0}) {
			t.Errorf("size %d: cells outside the grid are not walls", size)
		}

		if got := g.InteriorCells(); got != size*size {
			t.Errorf("size %d: InteriorCells() = %d", size, got)
		}
	}
}

func TestGridCenter(t *testing.T) {
	g, _ := NewGrid(7, 7)
	if got := g.Center(); got != (Point{X: 4, Y: 4}) {
		t.Errorf("Center() = %v, want (4,4)", got)
	}
	g, _ = NewGrid(5, 8)
	if got := g.Center(); got != (Point{X: 3, Y: 5}) {
		t.Errorf("Center() = %v, want (3,5)", got)
	}
}

func TestRandomInteriorBounds(t *testing.T) {
	g, _ := NewGrid(5, 6)
	rng := &seqRand{ints: []int{0, 0, 4, 5, 2, 3}}

	want := []Point{{1, 1}, {5, 6}, {3, 4}}
	for _, w := range want {
		if got := g.RandomInterior(rng); got != w {
			t.Errorf("RandomInterior() = %v, want %v", got, w)
		}
	}
}

func TestCellToRect(t *testing.T) {
	g, _ := NewGrid(5, 5)
	got := g.CellToRect(Point{X: 2, Y: 3})
	want := Rect{X: 2 * CellSize, Y: 3*CellSize + VerticalOffset, W: CellSize, H: CellSize}
	if got != want {
		t.Errorf("CellToRect() = %+v, want %+v", got, want)
	}
}

func TestIsDirection(t *testing.T) {
	for _, d := range Directions {
		if !d.IsDirection() {
			t.Errorf("%v should be a direction", d)
		}
	}
	for _, p := range []Point{{}, {1, 1}, {2, 0}, {0, -2}} {
		if p.IsDirection() {
			t.Errorf("%v should not be a direction", p)
		}
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name    string
		want    Systems
		str     string
		wantErr bool
	}{
		{"plain", Systems{}, "plain", false},
		{"food", Systems{Food: true}, "food", false},
		{" Boosters ", Systems{Food: true, Boosters: true}, "food+boosters", false},
		{"words", Systems{WordPuzzle: true, Boosters: true}, "boosters+words", false},
		{"chess", Systems{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVariant(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVariant() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("ParseVariant() = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.str {
				t.Errorf("String() = %q, want %q", got.String(), tt.str)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestSystemsValidate(t *testing.T) {
	err := Systems{Food: true, WordPuzzle: true}.Validate()
	if !errors.Is(err, ErrConflictingSystems) {
		t.Errorf("Validate() error = %v, want ErrConflictingSystems", err)
	}
}
