package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/backtracking-maze/domain"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string)   {}
func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type memMazeRepo struct {
	mu      sync.Mutex
	mazes   map[uuid.UUID]*dmn.Maze
	saveErr error
}

func newMemMazeRepo() *memMazeRepo {
	return &memMazeRepo{mazes: map[uuid.UUID]*dmn.Maze{}}
}

func (r *memMazeRepo) Save(_ context.Context, m *dmn.Maze) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mazes[m.ID] = m
	return nil
}

func (r *memMazeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Maze, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mazes[id]
	if !ok {
		return nil, dmn.ErrMazeNotFound
	}
	return m, nil
}

func (r *memMazeRepo) ByOwner(_ context.Context, owner uuid.UUID, limit int64) ([]*dmn.Maze, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*dmn.Maze
	for _, m := range r.mazes {
		if m.OwnerID != nil && *m.OwnerID == owner {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memIndex struct {
	mu      sync.Mutex
	ids     []uuid.UUID
	pushErr error
	asked   int64
}

func (x *memIndex) Push(_ context.Context, id uuid.UUID, _ float64) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.pushErr != nil {
		return x.pushErr
	}
	x.ids = append([]uuid.UUID{id}, x.ids...)
	return nil
}

func (x *memIndex) Latest(_ context.Context, n int64) ([]uuid.UUID, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.asked = n
	if int64(len(x.ids)) < n {
		n = int64(len(x.ids))
	}
	return append([]uuid.UUID(nil), x.ids[:n]...), nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*dmn.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*dmn.User{}}
}

func (r *memUserRepo) Save(_ context.Context, u *dmn.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, dmn.ErrUserNotFound
}

func (r *memUserRepo) ByUsername(_ context.Context, username string) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

type fakeTokenizer struct {
	claims map[string]interface{}
	ttl    time.Duration
	err    error
}

func (f *fakeTokenizer) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	f.claims, f.ttl = claims, ttl
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + claims["username"].(string), nil
}

func (f *fakeTokenizer) Decode(string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// blockingSource holds every shuffle until release is closed.
type blockingSource struct {
	release chan struct{}
}

func (b *blockingSource) Intn(int) int { return 0 }

func (b *blockingSource) Shuffle(int, func(i, j int)) { <-b.release }
