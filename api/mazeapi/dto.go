// Package mazeapi exposes maze generation and lookup over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/backtracking-maze/domain"
	"github.com/beka-birhanu/backtracking-maze/maze"
)

// GenerateRequest asks for a maze of the given size.
type GenerateRequest struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

// CellResponse describes one cell the way renderers consume it.
type CellResponse struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	North bool `json:"north"`
	East  bool `json:"east"`
	South bool `json:"south"`
	West  bool `json:"west"`
}

// MazeResponse is the JSON form of a stored maze.
// Walls lists one bitmask per cell in row-major order: 1 north, 2 east, 4 south, 8 west.
type MazeResponse struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"owner_id,omitempty"`
	Height    int            `json:"height"`
	Width     int            `json:"width"`
	Seed      int64          `json:"seed"`
	Walls     []int          `json:"walls"`
	Cells     []CellResponse `json:"cells,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// PathResponse lists the cells of the passage between two positions.
type PathResponse struct {
	From  maze.CellPosition   `json:"from"`
	To    maze.CellPosition   `json:"to"`
	Steps int                 `json:"steps"`
	Cells []maze.CellPosition `json:"cells"`
}

func newMazeResponse(m *dmn.Maze, withCells bool) *MazeResponse {
	res := &MazeResponse{
		ID:        m.ID.String(),
		Height:    m.Height,
		Width:     m.Width,
		Seed:      m.Seed,
		Walls:     make([]int, len(m.Walls)),
		CreatedAt: m.CreatedAt,
	}
	if m.OwnerID != nil {
		res.OwnerID = m.OwnerID.String()
	}
	for idx, w := range m.Walls {
		res.Walls[idx] = int(w)
	}

	if withCells {
		res.Cells = make([]CellResponse, 0, len(m.Walls))
		for row := 0; row < m.Height; row++ {
			for col := 0; col < m.Width; col++ {
				res.Cells = append(res.Cells, CellResponse{
					Row:   row,
					Col:   col,
					North: m.HasWall(row, col, maze.North),
					East:  m.HasWall(row, col, maze.East),
					South: m.HasWall(row, col, maze.South),
					West:  m.HasWall(row, col, maze.West),
				})
			}
		}
	}
	return res
}

func newMazeResponses(mazes []*dmn.Maze) []*MazeResponse {
	res := make([]*MazeResponse, 0, len(mazes))
	for _, m := range mazes {
		res = append(res, newMazeResponse(m, false))
	}
	return res
}
