// Package reactive tracks which reactive state a computation reads and re-runs
// it when that state is written.
package reactive

import (
	"log/slog"

	"github.com/AnatoleLucet/reactive/internal"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Observer receives engine events (subscriber runs, triggers, flushes).
type Observer = internal.Observer

// Kind tells which kind of subscriber an Observer event is about.
type Kind = internal.Kind

const (
	KindEffect   = internal.KindEffect
	KindComputed = internal.KindComputed
	KindWatch    = internal.KindWatch
)

// Option configures the runtime of the calling goroutine.
type Option func(*internal.Runtime)

// WithLogger sets the logger engine debug records are written to.
// A nil logger discards them, which is the default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *internal.Runtime) {
		r.SetLogger(logger)
	}
}

// WithObserver sets the observers notified of engine events.
func WithObserver(observers ...Observer) Option {
	return func(r *internal.Runtime) {
		switch len(observers) {
		case 0:
			r.SetObserver(nil)
		case 1:
			r.SetObserver(observers[0])
		default:
			r.SetObserver(internal.MultiObserver(observers))
		}
	}
}

// Configure applies options to the runtime of the calling goroutine.
// Each goroutine gets its own runtime, so call it where the reactive code runs.
func Configure(opts ...Option) {
	r := internal.GetRuntime()
	for _, opt := range opts {
		opt(r)
	}
}

// Release forgets the calling goroutine's runtime, e.g. before returning a
// goroutine to a pool. Values created on it keep working.
func Release() {
	internal.DropRuntime()
}

// Flush runs the deferred jobs (post-flush watchers, batched effects) queued
// on the calling goroutine's runtime. Hosts call it once per turn of their
// own loop; each subscriber runs at most once per flush.
func Flush() {
	internal.GetRuntime().Flush()
}

// NewBatch batches multiple writes into a single update cycle,
// instead of triggering updates after each write.
func NewBatch(fn func()) {
	internal.GetRuntime().NewBatch(fn)
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// OnCleanup registers a function to be called before the current effect
// re-runs, or when the current owner is disposed.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}

// Stats is a snapshot of a runtime's bookkeeping.
type Stats struct {
	// Subscribers is the number of live (not disposed) subscribers.
	Subscribers int
	// Pending is the number of jobs waiting for the next Flush.
	Pending int
}

func CurrentStats() Stats {
	r := internal.GetRuntime()

	return Stats{
		Subscribers: r.Subscribers(),
		Pending:     r.Pending(),
	}
}
