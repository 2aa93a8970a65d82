package maze

import (
	"fmt"
	"math/rand"
	"time"
)

// RandomSource supplies the randomness of a generation run. *rand.Rand satisfies it.
// Intn(n) must return a value in [0, n) and Shuffle must only swap indexes below n.
// A RandomSource is used by one generation at a time.
type RandomSource interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// State is the phase a Generator is in.
type State uint8

const (
	Idle State = iota
	Traversing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Traversing:
		return "Traversing"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// Stats describes the last generation run.
type Stats struct {
	Seed       int64 // seed drawn from the seeder, 0 when a RandomSource was injected
	Draws      int   // directions handed out by cells
	Backtracks int   // cells popped off the path
	MaxDepth   int   // longest path held during the run
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeeder sets the function drawing the seed at the start of every Generate call.
func WithSeeder(seeder func() int64) Option {
	return func(g *Generator) {
		g.seeder = seeder
	}
}

// WithSeed makes every Generate call start from the same seed.
func WithSeed(seed int64) Option {
	return WithSeeder(func() int64 { return seed })
}

// WithRandomSource makes the generator draw from r without ever reseeding it.
func WithRandomSource(r RandomSource) Option {
	return func(g *Generator) {
		g.random = r
	}
}

// Generator carves perfect mazes with an iterative randomized backtracker.
// A Generator is not safe for concurrent use; use one instance per goroutine.
type Generator struct {
	grid   *Grid
	path   []*Cell
	seeder func() int64
	random RandomSource
	state  State
	stats  Stats
}

// NewGenerator creates a Generator seeded from the clock unless configured otherwise.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		grid:   &Grid{},
		seeder: func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a maze of the given size and returns its grid.
// The grid belongs to the generator and is overwritten by the next call.
func (g *Generator) Generate(height, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, height, width)
	}

	r, seed := g.source()
	g.grid.reinitialize(height, width, r)
	g.stats = Stats{Seed: seed, MaxDepth: 1}
	g.state = Traversing

	row, col := r.Intn(height), r.Intn(width)
	start := g.grid.CellAt(row, col)
	if start == nil {
		g.state = Idle
		return nil, fmt.Errorf("%w: start (%d,%d) in %dx%d grid", ErrBadRandomSource, row, col, height, width)
	}

	g.path = append(g.path[:0], start)
	for len(g.path) > 0 {
		current := g.path[len(g.path)-1]
		dir := current.nextCandidateDirection()
		if dir == NoDirection {
			g.pop()
			continue
		}
		g.stats.Draws++

		next := g.grid.Neighbor(current, dir)
		if next == nil || !next.IsClosed() {
			continue
		}
		current.openWall(dir)
		next.openWall(dir.Opposite())
		g.path = append(g.path, next)
		g.stats.MaxDepth = max(g.stats.MaxDepth, len(g.path))
	}

	g.state = Done
	return g.grid, nil
}

// State returns the phase of the generator.
func (g *Generator) State() State {
	return g.state
}

// Stats returns the counters of the last Generate call.
func (g *Generator) Stats() Stats {
	return g.stats
}

func (g *Generator) pop() {
	last := len(g.path) - 1
	g.path[last] = nil
	g.path = g.path[:last]
	g.stats.Backtracks++
}

// source returns the randomness for one run, reseeding unless a source was injected.
func (g *Generator) source() (RandomSource, int64) {
	if g.random != nil {
		return g.random, 0
	}
	seed := g.seeder()
	return rand.New(rand.NewSource(seed)), seed
}
