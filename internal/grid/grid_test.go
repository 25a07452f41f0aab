// ABOUTME: Tests for the grid model
// ABOUTME: Covers dimension validation, centre start, boundary clamping, and movement scenarios

package grid

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func mustDims(t *testing.T, cols, rows int) Dimensions {
	t.Helper()
	d, err := NewDimensions(cols, rows)
	if err != nil {
		t.Fatalf("NewDimensions(%d, %d) unexpected error: %v", cols, rows, err)
	}
	return d
}

func TestNewDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cols    int
		rows    int
		wantErr bool
	}{
		{name: "default 16x8", cols: 16, rows: 8},
		{name: "single cell", cols: 1, rows: 1},
		{name: "zero cols", cols: 0, rows: 8, wantErr: true},
		{name: "zero rows", cols: 16, rows: 0, wantErr: true},
		{name: "negative", cols: -3, rows: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := NewDimensions(tt.cols, tt.rows)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimensions) {
					t.Fatalf("NewDimensions() error = %v, want %v", err, ErrInvalidDimensions)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDimensions() unexpected error: %v", err)
			}
			if d.Cols != tt.cols || d.Rows != tt.rows {
				t.Errorf("NewDimensions() = %+v, want %dx%d", d, tt.cols, tt.rows)
			}
		})
	}
}

func TestNew_StartsAtCentre(t *testing.T) {
	t.Parallel()

	g := New(mustDims(t, 16, 8))
	if got := g.Position(); got != (Position{Col: 8, Row: 4}) {
		t.Errorf("Position() = %+v, want {8 4}", got)
	}
}

func TestMove_ClampsAtEdges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		steps []Direction
		dir   Direction
		want  Position
	}{
		{name: "left edge", steps: repeat(Left, 20), dir: Left, want: Position{Col: 0, Row: 4}},
		{name: "right edge", steps: repeat(Right, 20), dir: Right, want: Position{Col: 15, Row: 4}},
		{name: "top edge", steps: repeat(Up, 20), dir: Up, want: Position{Col: 8, Row: 0}},
		{name: "bottom edge", steps: repeat(Down, 20), dir: Down, want: Position{Col: 8, Row: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := New(mustDims(t, 16, 8))
			for _, s := range tt.steps {
				g.Move(s)
			}
			before := g.Position()
			if got := g.Move(tt.dir); got != before || got != tt.want {
				t.Errorf("Move(%v) at edge = %+v, want unchanged %+v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestMove_Scenario(t *testing.T) {
	t.Parallel()

	g := New(mustDims(t, 16, 8))

	for range 3 {
		g.Move(Left)
	}
	if got := g.Position(); got != (Position{Col: 5, Row: 4}) {
		t.Fatalf("after h,h,h = %+v, want {5 4}", got)
	}

	if got := g.Move(Down); got != (Position{Col: 5, Row: 5}) {
		t.Fatalf("after j = %+v, want {5 5}", got)
	}

	for range 6 {
		g.Move(Right)
	}
	if got := g.Position(); got.Col != 11 {
		t.Errorf("after l x6 col = %d, want 11", got.Col)
	}
}

func TestMove_SingleCellNeverMoves(t *testing.T) {
	t.Parallel()

	g := New(mustDims(t, 1, 1))
	for _, d := range []Direction{Up, Down, Left, Right} {
		if got := g.Move(d); got != (Position{}) {
			t.Errorf("Move(%v) on 1x1 = %+v, want {0 0}", d, got)
		}
	}
}

func TestMove_RandomWalkStaysInBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	for _, dims := range []Dimensions{{Cols: 16, Rows: 8}, {Cols: 3, Rows: 1}, {Cols: 1, Rows: 5}} {
		g := New(dims)
		for i := range 2000 {
			p := g.Move(Direction(rng.IntN(4)))
			if p.Col < 0 || p.Col >= dims.Cols || p.Row < 0 || p.Row >= dims.Rows {
				t.Fatalf("%+v step %d: position %+v out of bounds", dims, i, p)
			}
		}
	}
}

func TestDirectionString(t *testing.T) {
	t.Parallel()

	if Left.String() != "left" || Direction(9).String() != "Direction(9)" {
		t.Errorf("unexpected Direction strings: %q %q", Left.String(), Direction(9).String())
	}
}

func repeat(d Direction, n int) []Direction {
	out := make([]Direction, n)
	for i := range out {
		out[i] = d
	}
	return out
}
