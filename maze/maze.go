/*
Package maze provides tools for creating perfect rectangular mazes.

A Generator carves a spanning tree over a Grid of Cells with an iterative,
randomized depth-first backtracker. Every Cell keeps its wall state as a
bitmask and its own shuffled trial order of the four directions.

The package also offers flood fill over opened walls, path lookup, and
ASCII visualization of a grid.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimension = errors.New("invalid maze dimension")
	ErrInvalidLayout    = errors.New("invalid maze layout")
	ErrBadRandomSource  = errors.New("random source returned an index out of range")
)

// Grid is a height x width collection of cells stored row-major in a single slice.
// Neighbors are found by arithmetic on the position, cells never point at each other.
type Grid struct {
	height int
	width  int
	cells  []Cell
}

// FromWalls rebuilds a grid from row-major wall bitmasks as returned by Cell.Walls.
// Cells of the rebuilt grid have no trial order and are meant for reading only.
func FromWalls(height, width int, walls []uint8) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, height, width)
	}
	if len(walls) != height*width {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidLayout, height*width, len(walls))
	}

	g := &Grid{}
	g.allocate(height, width)
	for i, w := range walls {
		if w&^allWalls != 0 {
			return nil, fmt.Errorf("%w: cell %d has mask %#x", ErrInvalidLayout, i, w)
		}
		g.cells[i].walls = w
		g.cells[i].cursor = len(g.cells[i].order)
	}
	return g, nil
}

// Dimensions returns the height and width of the grid.
func (g *Grid) Dimensions() (height, width int) {
	return g.height, g.width
}

// InBound reports whether (row, col) lies inside the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// CellAt returns the cell at (row, col), or nil when the position is outside the grid.
func (g *Grid) CellAt(row, col int) *Cell {
	if !g.InBound(row, col) {
		return nil
	}
	return &g.cells[row*g.width+col]
}

// Cells returns every cell in row-major order.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Walls returns the row-major wall bitmasks of all cells.
func (g *Grid) Walls() []uint8 {
	walls := make([]uint8, len(g.cells))
	for i := range g.cells {
		walls[i] = g.cells[i].walls
	}
	return walls
}

// Neighbor returns the cell next to c in direction d, or nil if it would fall outside the grid.
// Wall state is not consulted.
func (g *Grid) Neighbor(c *Cell, d Direction) *Cell {
	dRow, dCol := d.Delta()
	if dRow == 0 && dCol == 0 {
		return nil
	}
	return g.CellAt(c.pos.Row+dRow, c.pos.Col+dCol)
}

// reinitialize reallocates the cells when the size changes and resets every cell.
func (g *Grid) reinitialize(height, width int, r RandomSource) {
	if height != g.height || width != g.width || g.cells == nil {
		g.allocate(height, width)
	}
	for i := range g.cells {
		g.cells[i].reset(r)
	}
}

func (g *Grid) allocate(height, width int) {
	g.height, g.width = height, width
	g.cells = make([]Cell, height*width)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			g.cells[row*width+col] = Cell{
				pos:   CellPosition{Row: row, Col: col},
				walls: allWalls,
				order: Directions(),
			}
		}
	}
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	var sb strings.Builder

	// Top boundary
	sb.WriteString("+")
	for col := 0; col < g.width; col++ {
		if g.CellAt(0, col).HasNorthWall() {
			sb.WriteString("---+")
		} else {
			sb.WriteString("   +")
		}
	}
	sb.WriteString("\n")

	for row := 0; row < g.height; row++ {
		if g.CellAt(row, 0).HasWestWall() {
			sb.WriteString("|")
		} else {
			sb.WriteString(" ")
		}
		for col := 0; col < g.width; col++ {
			if g.CellAt(row, col).HasEastWall() {
				sb.WriteString("   |")
			} else {
				sb.WriteString("    ")
			}
		}
		sb.WriteString("\n")

		sb.WriteString("+")
		for col := 0; col < g.width; col++ {
			if g.CellAt(row, col).HasSouthWall() {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
