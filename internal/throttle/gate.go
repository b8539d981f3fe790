package throttle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/concave-dev/crpt/internal/logging"
)

// Limiter is an additional wait applied after the gate slot is acquired and
// before the call starts. Implementations must be safe for concurrent use.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Observer receives gate timing events. All methods are called synchronously
// and must not block.
type Observer interface {
	// ObserveWait reports how long a caller queued for the slot.
	ObserveWait(d time.Duration)
	// ObserveHold reports how long the slot was held, call plus spacing.
	ObserveHold(d time.Duration)
	// SetWaiting reports the number of callers queued for the slot.
	SetWaiting(n int64)
}

// Stats is a point-in-time snapshot of a Gate.
type Stats struct {
	Waiting     int64         `json:"waiting"`
	InFlight    bool          `json:"in_flight"`
	Completed   uint64        `json:"completed"`
	MinInterval time.Duration `json:"min_interval"`
	LastWait    time.Duration `json:"last_wait"`
	LastHold    time.Duration `json:"last_hold"`
}

// Option configures a Gate.
type Option func(*Gate)

// WithLimiter adds a shared limiter waited on inside the slot.
func WithLimiter(l Limiter) Option {
	return func(g *Gate) { g.limiter = l }
}

// WithObserver registers an Observer for wait/hold events.
func WithObserver(o Observer) Option {
	return func(g *Gate) { g.observer = o }
}

// Gate serializes calls and enforces the minimum interval between their starts.
type Gate struct {
	slot     chan struct{}
	interval time.Duration
	limiter  Limiter
	observer Observer

	// waitMu orders waiting updates with the observer publishes
	waitMu    sync.Mutex
	waiting   atomic.Int64
	inFlight  atomic.Bool
	completed atomic.Uint64
	lastWait  atomic.Int64
	lastHold  atomic.Int64
}

// NewGate creates a Gate for rate. It fails with *ConfigurationError when the
// rate is invalid.
func NewGate(rate Rate, opts ...Option) (*Gate, error) {
	if err := rate.Validate(); err != nil {
		return nil, err
	}

	g := &Gate{
		slot:     make(chan struct{}, 1),
		interval: rate.MinInterval(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// MinInterval returns the enforced spacing between call starts.
func (g *Gate) MinInterval() time.Duration {
	return g.interval
}

// Do runs fn while holding the slot and then keeps the slot until MinInterval
// has passed since fn started.
//
// ctx only bounds the time spent queueing and in the shared limiter: when it
// ends first, Do returns its error without running fn. The trailing spacing
// wait always completes so the next caller cannot start early. The slot is
// released on every path, including a panic in fn.
func (g *Gate) Do(ctx context.Context, fn func(ctx context.Context)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	queued := time.Now()
	g.addWaiting(1)

	select {
	case g.slot <- struct{}{}:
		g.addWaiting(-1)
	case <-ctx.Done():
		g.addWaiting(-1)
		return ctx.Err()
	}

	acquired := time.Now()
	defer func() {
		hold := time.Since(acquired)
		g.lastHold.Store(int64(hold))
		if g.observer != nil {
			g.observer.ObserveHold(hold)
		}
		<-g.slot
	}()

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("shared limiter: %w", err)
		}
	}

	wait := time.Since(queued)
	g.lastWait.Store(int64(wait))
	if g.observer != nil {
		g.observer.ObserveWait(wait)
	}

	start := time.Now()
	g.inFlight.Store(true)
	func() {
		defer g.inFlight.Store(false)
		fn(ctx)
	}()
	g.completed.Add(1)

	g.holdUntil(start.Add(g.interval))
	return nil
}

// holdUntil blocks until deadline. time.Now carries a monotonic reading, so
// wall clock jumps do not shorten or stretch the wait.
func (g *Gate) holdUntil(deadline time.Time) {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return
	}
	logging.Debug("Throttle: holding slot for %v", remaining)

	timer := time.NewTimer(remaining)
	defer timer.Stop()
	<-timer.C
}

func (g *Gate) addWaiting(delta int64) {
	g.waitMu.Lock()
	defer g.waitMu.Unlock()

	n := g.waiting.Add(delta)
	if g.observer != nil {
		g.observer.SetWaiting(n)
	}
}

// Stats returns a snapshot of the gate state.
func (g *Gate) Stats() Stats {
	return Stats{
		Waiting:     g.waiting.Load(),
		InFlight:    g.inFlight.Load(),
		Completed:   g.completed.Load(),
		MinInterval: g.interval,
		LastWait:    time.Duration(g.lastWait.Load()),
		LastHold:    time.Duration(g.lastHold.Load()),
	}
}
