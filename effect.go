package reactive

import "github.com/AnatoleLucet/reactive/internal"

// ID identifies a subscriber within its runtime.
type ID = internal.Handle

// Job is a pending re-run of a subscriber, handed to custom schedulers.
type Job struct {
	job internal.Job
}

// Run re-runs the subscriber. It does nothing once the subscriber is disposed.
func (j Job) Run() { j.job.Run() }

// ID of the subscriber the job re-runs.
func (j Job) ID() ID { return j.job.ID() }

type EffectOption func(*internal.SubscriberOptions)

// Lazy skips the initial run. Call Run to execute and start tracking.
func Lazy() EffectOption {
	return func(o *internal.SubscriberOptions) {
		o.Lazy = true
	}
}

// WithScheduler hands each triggered job to fn instead of running it inline.
// fn decides if and when to call job.Run.
func WithScheduler(fn func(Job)) EffectOption {
	return func(o *internal.SubscriberOptions) {
		o.Scheduler = func(job internal.Job) {
			fn(Job{job})
		}
	}
}

func subscriberOptions(opts []EffectOption) internal.SubscriberOptions {
	var o internal.SubscriberOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Runner is an effect whose computation returns a value.
type Runner[T any] struct {
	sub *internal.Subscriber
}

// NewRunner creates a reactive computation that re-runs whenever the state it
// read during its last run changes.
func NewRunner[T any](fn func() T, opts ...EffectOption) *Runner[T] {
	return &Runner[T]{
		internal.GetRuntime().NewSubscriber(internal.KindEffect, func() any {
			return fn()
		}, subscriberOptions(opts)),
	}
}

// Run executes the computation now and returns its result.
func (r *Runner[T]) Run() T { return as[T](r.sub.Run()) }

// Value returns the result of the last run.
func (r *Runner[T]) Value() T { return as[T](r.sub.Value()) }

func (r *Runner[T]) ID() ID { return r.sub.Handle() }

// Dispose stops the runner and its children from ever re-running.
func (r *Runner[T]) Dispose() { r.sub.Dispose() }

func (r *Runner[T]) Disposed() bool { return r.sub.Disposed() }

// Effect is a reactive side effect.
type Effect struct {
	sub *internal.Subscriber
}

// NewEffect creates a reactive effect that runs the given function
// whenever its dependencies change.
func NewEffect(fn func(), opts ...EffectOption) *Effect {
	return &Effect{
		internal.GetRuntime().NewSubscriber(internal.KindEffect, func() any {
			fn()
			return nil
		}, subscriberOptions(opts)),
	}
}

// Run executes the effect now.
func (e *Effect) Run() { e.sub.Run() }

func (e *Effect) ID() ID { return e.sub.Handle() }

// Dispose stops the effect, runs its cleanups and disposes its children.
func (e *Effect) Dispose() { e.sub.Dispose() }

func (e *Effect) Disposed() bool { return e.sub.Disposed() }
