// ABOUTME: Grid model: fixed dimensions and a cursor position clamped to them
// ABOUTME: Move applies unit steps; steps that would leave the grid leave that axis unchanged

package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned for grids with a non-positive side.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// Direction is a unit step on the grid.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Dimensions is the immutable size of a grid in cells.
type Dimensions struct {
	Cols int
	Rows int
}

// NewDimensions validates and returns grid dimensions.
func NewDimensions(cols, rows int) (Dimensions, error) {
	if cols < 1 || rows < 1 {
		return Dimensions{}, fmt.Errorf("%w: %dx%d (columns and rows must be at least 1)", ErrInvalidDimensions, cols, rows)
	}
	return Dimensions{Cols: cols, Rows: rows}, nil
}

// Position is a zero-based cell coordinate.
type Position struct {
	Col int
	Row int
}

// Grid holds the dimensions and the cursor. The cursor always satisfies
// 0 <= Col < Cols and 0 <= Row < Rows.
type Grid struct {
	dims Dimensions
	pos  Position
}

// New returns a grid with the cursor at its centre (Cols/2, Rows/2).
func New(d Dimensions) *Grid {
	return &Grid{
		dims: d,
		pos:  Position{Col: d.Cols / 2, Row: d.Rows / 2},
	}
}

// Dimensions returns the grid size.
func (g *Grid) Dimensions() Dimensions {
	return g.dims
}

// Position returns the cursor position.
func (g *Grid) Position() Position {
	return g.pos
}

// Move steps the cursor one cell in dir and returns the new position.
// At a boundary the position is left unchanged; it never wraps.
func (g *Grid) Move(dir Direction) Position {
	switch dir {
	case Up:
		if g.pos.Row > 0 {
			g.pos.Row--
		}
	case Down:
		if g.pos.Row < g.dims.Rows-1 {
			g.pos.Row++
		}
	case Left:
		if g.pos.Col > 0 {
			g.pos.Col--
		}
	case Right:
		if g.pos.Col < g.dims.Cols-1 {
			g.pos.Col++
		}
	}
	return g.pos
}
