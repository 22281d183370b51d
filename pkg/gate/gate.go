// Package gate provides the bounded admission control primitive that limits
// simultaneous external tool invocations.
package gate

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/javascriptjoey/cloudlint/pkg/constants"
	"github.com/javascriptjoey/cloudlint/pkg/envutil"
	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var log = logger.New("gate:gate")

// Gate is a counting semaphore bounding concurrent tool invocations. At any
// instant the number of acquired-but-unreleased permits never exceeds the
// configured capacity.
type Gate struct {
	sem      *semaphore.Weighted
	capacity int
}

// New creates a Gate with the given capacity. A capacity below 1 falls back
// to the default.
func New(capacity int) *Gate {
	if capacity < 1 {
		log.Printf("Invalid capacity %d, using default %d", capacity, constants.DefaultMaxConcurrency)
		capacity = constants.DefaultMaxConcurrency
	}
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
}

// NewFromEnv creates a Gate whose capacity is read from
// CLOUDLINT_MAX_CONCURRENCY, falling back to the default when unset or
// invalid.
func NewFromEnv() *Gate {
	capacity := envutil.GetIntFromEnv(
		constants.MaxConcurrencyEnvVar,
		constants.DefaultMaxConcurrency,
		1,
		constants.MaxConcurrencyLimit,
		log,
	)
	log.Printf("Gate capacity: %d", capacity)
	return New(capacity)
}

// Capacity returns the configured capacity.
func (g *Gate) Capacity() int {
	return g.capacity
}

// Acquire blocks until a permit is available or ctx is done. On success the
// caller must call Release exactly once, on every exit path.
func (g *Gate) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// Release returns a permit to the gate.
func (g *Gate) Release() {
	g.sem.Release(1)
}
