package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	dmn "github.com/beka-birhanu/backtracking-maze/domain"
	"github.com/beka-birhanu/backtracking-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMazeService(t *testing.T, repo *memMazeRepo, index *memIndex, newGenerator func() *maze.Generator) *MazeService {
	t.Helper()
	svc, err := NewMazeService(MazeConfig{
		Repo:         repo,
		Index:        index,
		Logger:       nopLogger{},
		MaxDimension: 50,
		RecentLimit:  10,
		NewGenerator: newGenerator,
	})
	require.NoError(t, err)
	return svc
}

func TestNewMazeService(t *testing.T) {
	_, err := NewMazeService(MazeConfig{Index: &memIndex{}, Logger: nopLogger{}, MaxDimension: 5})
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = NewMazeService(MazeConfig{Repo: newMemMazeRepo(), Index: &memIndex{}, Logger: nopLogger{}})
	assert.ErrorIs(t, err, ErrInvalidMaxDimension)
}

func TestMazeServiceGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves and indexes the maze", func(t *testing.T) {
		repo, index := newMemMazeRepo(), &memIndex{}
		svc := newTestMazeService(t, repo, index, func() *maze.Generator {
			return maze.NewGenerator(maze.WithSeed(9))
		})
		owner := uuid.New()

		m, err := svc.Generate(ctx, &owner, 6, 7)
		require.NoError(t, err)
		assert.Equal(t, 6, m.Height)
		assert.Equal(t, 7, m.Width)
		assert.Equal(t, int64(9), m.Seed)
		assert.Equal(t, &owner, m.OwnerID)
		assert.Len(t, m.Walls, 42)

		stored, err := svc.ByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m, stored)
		assert.Equal(t, []uuid.UUID{m.ID}, index.ids)

		grid, err := m.Grid()
		require.NoError(t, err)
		assert.True(t, grid.IsPerfect())
	})

	t.Run("Rejects oversized and invalid dimensions", func(t *testing.T) {
		repo := newMemMazeRepo()
		svc := newTestMazeService(t, repo, &memIndex{}, nil)

		_, err := svc.Generate(ctx, nil, 51, 3)
		assert.ErrorIs(t, err, ErrMazeTooLarge)

		_, err = svc.Generate(ctx, nil, 0, 3)
		assert.ErrorIs(t, err, maze.ErrInvalidDimension)
		assert.Empty(t, repo.mazes)
	})

	t.Run("Index failure keeps the saved maze", func(t *testing.T) {
		repo := newMemMazeRepo()
		svc := newTestMazeService(t, repo, &memIndex{pushErr: errors.New("redis down")}, nil)

		m, err := svc.Generate(ctx, nil, 3, 3)
		require.NoError(t, err)
		assert.Contains(t, repo.mazes, m.ID)
	})

	t.Run("Save failure is returned", func(t *testing.T) {
		repo := newMemMazeRepo()
		repo.saveErr = errors.New("mongo down")
		index := &memIndex{}
		svc := newTestMazeService(t, repo, index, nil)

		_, err := svc.Generate(ctx, nil, 3, 3)
		assert.EqualError(t, err, "mongo down")
		assert.Empty(t, index.ids)
	})

	t.Run("Gives up when the context ends", func(t *testing.T) {
		src := &blockingSource{release: make(chan struct{})}
		svc := newTestMazeService(t, newMemMazeRepo(), &memIndex{}, func() *maze.Generator {
			return maze.NewGenerator(maze.WithRandomSource(src))
		})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.Preview(cancelled, 4, 4)
		assert.ErrorIs(t, err, context.Canceled)
		close(src.release)
	})

	t.Run("Concurrent calls use separate generators", func(t *testing.T) {
		repo := newMemMazeRepo()
		svc := newTestMazeService(t, repo, &memIndex{}, nil)

		var wg sync.WaitGroup
		for n := 0; n < 16; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				m, err := svc.Generate(ctx, nil, 20, 20)
				if assert.NoError(t, err) {
					grid, err := m.Grid()
					assert.NoError(t, err)
					assert.True(t, grid.IsPerfect())
				}
			}()
		}
		wg.Wait()
		assert.Len(t, repo.mazes, 16)
	})
}

func TestMazeServiceConcurrentPreview(t *testing.T) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	sources := map[*rand.Rand]bool{}
	svc := newTestMazeService(t, newMemMazeRepo(), &memIndex{}, func() *maze.Generator {
		r := rand.New(rand.NewSource(1))
		mu.Lock()
		sources[r] = true
		mu.Unlock()
		return maze.NewGenerator(maze.WithRandomSource(r))
	})

	for n := 0; n < 64; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := svc.Preview(context.Background(), 50, 50)
			if assert.NoError(t, err) {
				grid, err := m.Grid()
				assert.NoError(t, err)
				assert.True(t, grid.IsPerfect())
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, sources)
}

func TestMazeServicePreview(t *testing.T) {
	repo, index := newMemMazeRepo(), &memIndex{}
	svc := newTestMazeService(t, repo, index, nil)

	m, err := svc.Preview(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, m.Walls, 4)
	assert.Empty(t, repo.mazes)
	assert.Empty(t, index.ids)
}

func TestMazeServiceRecent(t *testing.T) {
	ctx := context.Background()
	repo, index := newMemMazeRepo(), &memIndex{}
	svc := newTestMazeService(t, repo, index, nil)

	first, err := svc.Generate(ctx, nil, 2, 2)
	require.NoError(t, err)
	second, err := svc.Generate(ctx, nil, 3, 3)
	require.NoError(t, err)
	index.ids = append([]uuid.UUID{uuid.New()}, index.ids...)

	t.Run("Skips vanished mazes", func(t *testing.T) {
		recent, err := svc.Recent(ctx, 5)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, second.ID, recent[0].ID)
		assert.Equal(t, first.ID, recent[1].ID)
	})

	t.Run("Clamps the requested count", func(t *testing.T) {
		_, err := svc.Recent(ctx, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(10), index.asked)

		_, err = svc.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(10), index.asked)
	})
}

func TestMazeServiceByOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTestMazeService(t, newMemMazeRepo(), &memIndex{}, nil)
	owner := uuid.New()

	_, err := svc.Generate(ctx, &owner, 2, 2)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, nil, 2, 2)
	require.NoError(t, err)

	mine, err := svc.ByOwner(ctx, owner, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, &owner, mine[0].OwnerID)

	_, err = svc.ByID(ctx, uuid.New())
	assert.ErrorIs(t, err, dmn.ErrMazeNotFound)
}
