package i

import (
	"context"

	dmn "github.com/beka-birhanu/backtracking-maze/domain"
	"github.com/google/uuid"
)

// MazeService generates, stores and looks up mazes.
type MazeService interface {
	// Generate builds a maze, saves it and records it as recent. A nil owner stores an anonymous maze.
	Generate(ctx context.Context, owner *uuid.UUID, height, width int) (*dmn.Maze, error)

	// Preview builds a maze without storing it.
	Preview(ctx context.Context, height, width int) (*dmn.Maze, error)

	ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error)
	ByOwner(ctx context.Context, owner uuid.UUID, limit int64) ([]*dmn.Maze, error)
	Recent(ctx context.Context, n int64) ([]*dmn.Maze, error)
}
