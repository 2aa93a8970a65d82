package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/backtracking-maze/maze"
	"github.com/google/uuid"
)

var ErrMazeNotFound = errors.New("maze not found")

// Maze is a stored snapshot of a generated grid.
// Walls holds one bitmask per cell in row-major order, bit 1<<maze.Direction set when that side is closed.
type Maze struct {
	ID        uuid.UUID  `bson:"_id"`
	OwnerID   *uuid.UUID `bson:"ownerId,omitempty"`
	Height    int        `bson:"height"`
	Width     int        `bson:"width"`
	Seed      int64      `bson:"seed"`
	Walls     []uint8    `bson:"walls"`
	CreatedAt time.Time  `bson:"createdAt"`
}

// NewMaze snapshots the wall state of a grid. The grid may be reused afterwards.
func NewMaze(id uuid.UUID, owner *uuid.UUID, seed int64, grid *maze.Grid) *Maze {
	height, width := grid.Dimensions()
	return &Maze{
		ID:        id,
		OwnerID:   owner,
		Height:    height,
		Width:     width,
		Seed:      seed,
		Walls:     grid.Walls(),
		CreatedAt: time.Now().UTC(),
	}
}

// HasWall reports whether the cell at (row, col) is closed on side d.
// Positions outside the maze are treated as solid.
func (m *Maze) HasWall(row, col int, d maze.Direction) bool {
	if row < 0 || row >= m.Height || col < 0 || col >= m.Width || !d.IsValid() {
		return true
	}
	return m.Walls[row*m.Width+col]&(1<<d) != 0
}

// Grid rebuilds a read-only grid for rendering and path queries.
func (m *Maze) Grid() (*maze.Grid, error) {
	return maze.FromWalls(m.Height, m.Width, m.Walls)
}
