package cryptox

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of Argon2 computations running at once so that a
// burst of logins cannot occupy every CPU and starve request handling. Callers
// block on a context-aware acquire; the computation itself runs on the calling
// goroutine once a slot is held.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a pool allowing up to workers concurrent computations.
// A non-positive value sizes the pool to GOMAXPROCS-1, keeping at least one
// CPU free for I/O-bound work.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0) - 1
		if workers < 1 {
			workers = 1
		}
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers))}
}

// Hash is HashPassword behind the pool bound.
func (p *Pool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)
	return HashPassword(password)
}

// Verify is VerifyPassword behind the pool bound.
func (p *Pool) Verify(ctx context.Context, password, encodedHash string) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	return VerifyPassword(password, encodedHash)
}
