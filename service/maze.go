package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	dmn "github.com/beka-birhanu/backtracking-maze/domain"
	"github.com/beka-birhanu/backtracking-maze/maze"
	"github.com/beka-birhanu/backtracking-maze/service/i"
	"github.com/google/uuid"
)

// Maze service errors.
var (
	ErrMazeTooLarge        = errors.New("maze dimension exceeds the allowed maximum")
	ErrInvalidMaxDimension = errors.New("maximum maze dimension must be positive")
	ErrMissingDependency   = errors.New("missing service dependency")
)

const defaultRecentLimit = 50

var _ i.MazeService = &MazeService{}

// MazeConfig holds the collaborators of a MazeService.
type MazeConfig struct {
	Repo         i.MazeRepo
	Index        i.MazeIndex
	Logger       i.Logger
	MaxDimension int           // largest height or width accepted
	RecentLimit  int64         // upper bound for Recent, defaults to 50

	// NewGenerator builds each pooled generator, defaults to maze.NewGenerator().
	// Every call must return a generator with its own random source.
	NewGenerator func() *maze.Generator
}

// MazeService generates mazes on pooled generators and stores their snapshots.
// Each generation runs on its own Generator so concurrent requests never share one.
type MazeService struct {
	repo         i.MazeRepo
	index        i.MazeIndex
	logger       i.Logger
	maxDimension int
	recentLimit  int64
	generators   sync.Pool
}

// NewMazeService validates the configuration and builds a MazeService.
func NewMazeService(config MazeConfig) (*MazeService, error) {
	if config.Repo == nil || config.Index == nil || config.Logger == nil {
		return nil, ErrMissingDependency
	}
	if config.MaxDimension <= 0 {
		return nil, ErrInvalidMaxDimension
	}
	if config.RecentLimit <= 0 {
		config.RecentLimit = defaultRecentLimit
	}

	s := &MazeService{
		repo:         config.Repo,
		index:        config.Index,
		logger:       config.Logger,
		maxDimension: config.MaxDimension,
		recentLimit:  config.RecentLimit,
	}
	newGenerator := config.NewGenerator
	if newGenerator == nil {
		newGenerator = func() *maze.Generator { return maze.NewGenerator() }
	}
	s.generators.New = func() any {
		return newGenerator()
	}
	return s, nil
}

// Generate builds a maze, saves it and records it in the recent index.
// A failure to index is logged but does not fail the call since the maze is already saved.
func (s *MazeService) Generate(ctx context.Context, owner *uuid.UUID, height, width int) (*dmn.Maze, error) {
	m, err := s.generate(ctx, height, width)
	if err != nil {
		return nil, err
	}
	m.OwnerID = owner

	if err := s.repo.Save(ctx, m); err != nil {
		s.logger.Error(fmt.Sprintf("Saving maze %s: %v", m.ID, err))
		return nil, err
	}

	if err := s.index.Push(ctx, m.ID, float64(m.CreatedAt.UnixMilli())); err != nil {
		s.logger.Warning(fmt.Sprintf("Indexing maze %s: %v", m.ID, err))
	}

	s.logger.Info(fmt.Sprintf("Generated %dx%d maze %s (seed %d)", height, width, m.ID, m.Seed))
	return m, nil
}

// Preview builds a maze without saving it.
func (s *MazeService) Preview(ctx context.Context, height, width int) (*dmn.Maze, error) {
	return s.generate(ctx, height, width)
}

// ByID returns a stored maze.
func (s *MazeService) ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error) {
	return s.repo.ByID(ctx, id)
}

// ByOwner returns up to limit mazes saved by owner, newest first.
func (s *MazeService) ByOwner(ctx context.Context, owner uuid.UUID, limit int64) ([]*dmn.Maze, error) {
	return s.repo.ByOwner(ctx, owner, s.clamp(limit))
}

// Recent returns up to n of the latest generated mazes, newest first.
// IDs left in the index after their maze disappeared are skipped.
func (s *MazeService) Recent(ctx context.Context, n int64) ([]*dmn.Maze, error) {
	ids, err := s.index.Latest(ctx, s.clamp(n))
	if err != nil {
		return nil, err
	}

	mazes := make([]*dmn.Maze, 0, len(ids))
	for _, id := range ids {
		m, err := s.repo.ByID(ctx, id)
		if errors.Is(err, dmn.ErrMazeNotFound) {
			s.logger.Debug(fmt.Sprintf("Recent maze %s no longer stored", id))
			continue
		}
		if err != nil {
			return nil, err
		}
		mazes = append(mazes, m)
	}
	return mazes, nil
}

// generate runs one generation on a pooled generator in its own goroutine.
// The goroutine owns the generator until it finishes, so giving up on ctx
// never hands a busy generator back to the pool.
func (s *MazeService) generate(ctx context.Context, height, width int) (*dmn.Maze, error) {
	if height > s.maxDimension || width > s.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d, maximum is %d", ErrMazeTooLarge, height, width, s.maxDimension)
	}

	type result struct {
		maze *dmn.Maze
		err  error
	}
	done := make(chan result, 1)

	go func() {
		gen := s.generators.Get().(*maze.Generator)
		defer s.generators.Put(gen)

		grid, err := gen.Generate(height, width)
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{maze: dmn.NewMaze(uuid.New(), nil, gen.Stats().Seed, grid)}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.maze, r.err
	}
}

func (s *MazeService) clamp(n int64) int64 {
	if n <= 0 || n > s.recentLimit {
		return s.recentLimit
	}
	return n
}
