package i

import (
	"context"

	dmn "github.com/beka-birhanu/backtracking-maze/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(ctx context.Context, user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(ctx context.Context, username string) (*dmn.User, error)
}

// MazeRepo persists generated mazes.
type MazeRepo interface {
	Save(ctx context.Context, m *dmn.Maze) error
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error)
	ByOwner(ctx context.Context, owner uuid.UUID, limit int64) ([]*dmn.Maze, error)
}

// MazeIndex keeps the IDs of the most recently generated mazes.
type MazeIndex interface {
	// Push records a maze ID with its creation time as score.
	Push(ctx context.Context, id uuid.UUID, score float64) error

	// Latest returns up to n IDs, newest first.
	Latest(ctx context.Context, n int64) ([]uuid.UUID, error)
}
