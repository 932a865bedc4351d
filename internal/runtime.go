package internal

import (
	"log/slog"
	"slices"
	"time"
)

// Runtime is one independent reactive engine. It is not safe for concurrent
// use; GetRuntime hands out one per goroutine.
type Runtime struct {
	arena    *Arena
	registry *Registry
	tracker  *Tracker
	batcher  *Batcher

	queue *JobQueue // synchronous jobs held back by an open batch
	post  *JobQueue // jobs waiting for the host's Flush

	logger   *slog.Logger
	observer Observer
}

func NewRuntime() *Runtime {
	return &Runtime{
		arena:    NewArena(),
		registry: NewRegistry(),
		tracker:  NewTracker(),
		batcher:  NewBatcher(),

		queue: NewJobQueue(),
		post:  NewJobQueue(),

		logger:   slog.New(slog.DiscardHandler),
		observer: NopObserver{},
	}
}

func (r *Runtime) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r.logger = logger
}

func (r *Runtime) SetObserver(observer Observer) {
	if observer == nil {
		observer = NopObserver{}
	}
	r.observer = observer
}

func (r *Runtime) Observer() Observer {
	return r.observer
}

// Trigger schedules every subscriber of the given sets once, except the
// subscriber currently running: it is the one writing, tracked or not.
//
// Scheduling happens inside a batch so every computed in the graph is marked
// dirty before the first synchronous job runs; the jobs then run when the
// outermost batch closes, still before the write returns.
func (r *Runtime) Trigger(deps ...*DepSet) {
	active := r.tracker.Running()

	var handles []Handle
	for _, dep := range deps {
		if dep == nil {
			continue
		}

		for _, h := range dep.subs {
			if active != nil && h == active.handle {
				continue
			}
			if !slices.Contains(handles, h) {
				handles = append(handles, h)
			}
		}
	}

	if len(handles) == 0 {
		return
	}

	r.observer.Triggered(len(handles))
	r.logger.Debug("reactive: trigger", "subscribers", len(handles), "batching", r.batcher.IsBatching())

	r.batcher.Batch(func() {
		for _, h := range handles {
			// an earlier job may have disposed it
			sub := r.arena.Get(h)
			if sub == nil {
				continue
			}

			r.schedule(sub)
		}
	}, r.runQueued)
}

func (r *Runtime) schedule(sub *Subscriber) {
	job := sub.job()

	if sub.opts.Scheduler != nil {
		sub.opts.Scheduler(job)
		return
	}

	r.Enqueue(job)
}

// Enqueue runs the job now, or queues it while a batch is open.
func (r *Runtime) Enqueue(job Job) {
	if r.batcher.IsBatching() {
		r.queue.Push(job)
		return
	}

	job.Run()
}

// Defer queues the job for the next Flush.
func (r *Runtime) Defer(job Job) {
	r.post.Push(job)
}

func (r *Runtime) runQueued() {
	r.queue.Drain(Job.Run)
}

// Flush runs the jobs held back by batches, then every deferred job.
// Calling it while a flush is running does nothing.
func (r *Runtime) Flush() {
	if r.post.IsFlushing() || r.queue.Len()+r.post.Len() == 0 {
		return
	}

	start := time.Now()
	ran := r.queue.Drain(Job.Run)
	ran += r.post.Drain(Job.Run)
	elapsed := time.Since(start)

	r.observer.Flushed(ran, elapsed)
	r.logger.Debug("reactive: flush", "jobs", ran, "elapsed", elapsed)
}

func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

// Active returns the subscriber reads are currently attributed to.
func (r *Runtime) Active() *Subscriber {
	return r.tracker.Active()
}

// Subscribers returns the number of live subscribers.
func (r *Runtime) Subscribers() int {
	return r.arena.Len()
}

// Pending returns the number of deferred jobs waiting for a flush.
func (r *Runtime) Pending() int {
	return r.queue.Len() + r.post.Len()
}
