package internal

import "time"

type Kind int

const (
	KindEffect Kind = iota
	KindComputed
	KindWatch
)

func (k Kind) String() string {
	switch k {
	case KindEffect:
		return "effect"
	case KindComputed:
		return "computed"
	case KindWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// Job is a pending re-run of one subscriber.
type Job struct {
	handle Handle
	run    func()
}

func (j Job) ID() Handle { return j.handle }

func (j Job) Run() {
	if j.run != nil {
		j.run()
	}
}

type SubscriberOptions struct {
	// Lazy skips the initial run; the owner of the subscriber calls Run itself.
	Lazy bool

	// Scheduler receives the job on trigger instead of running it.
	Scheduler func(Job)
}

// Subscriber is a computation that re-runs when a location it read is written.
type Subscriber struct {
	*Owner

	handle Handle
	kind   Kind

	fn   func() any
	opts SubscriberOptions

	// dependency sets this subscriber is a member of, from its last run
	deps []*DepSet

	value    any
	disposed bool
}

func (r *Runtime) NewSubscriber(kind Kind, fn func() any, opts SubscriberOptions) *Subscriber {
	s := &Subscriber{
		Owner: r.NewOwner(),
		kind:  kind,
		fn:    fn,
		opts:  opts,
	}
	s.handle = r.arena.Insert(s)
	s.OnDispose(s.release)

	if !opts.Lazy {
		s.Run()
	}

	return s
}

func (s *Subscriber) Handle() Handle { return s.handle }

func (s *Subscriber) Kind() Kind { return s.kind }

func (s *Subscriber) Value() any { return s.value }

func (s *Subscriber) Disposed() bool { return s.disposed }

// Deps returns the number of dependency sets recorded by the last run.
func (s *Subscriber) Deps() int { return len(s.deps) }

// Run executes the computation, recording the locations it reads.
// A disposed subscriber still computes, but tracks nothing.
func (s *Subscriber) Run() any {
	if s.disposed {
		var value any
		s.rt.tracker.RunUntracked(func() { value = s.fn() })
		return value
	}

	defer s.Owner.recover()

	s.cleanup()

	start := time.Now()
	s.rt.tracker.RunWithSubscriber(s, func() {
		s.value = s.fn()
	})

	elapsed := time.Since(start)

	s.rt.observer.SubscriberRan(s.kind, elapsed)
	s.rt.logger.Debug("reactive: run", "kind", s.kind, "deps", len(s.deps), "elapsed", elapsed)

	return s.value
}

func (s *Subscriber) job() Job {
	return Job{
		handle: s.handle,
		run: func() {
			if !s.disposed {
				s.Run()
			}
		},
	}
}

// cleanup forgets the previous run: dependency sets, children and
// registered cleanups.
func (s *Subscriber) cleanup() {
	s.unlink()

	s.rt.tracker.RunUntracked(s.Owner.Reset)
}

func (s *Subscriber) unlink() {
	for _, dep := range s.deps {
		dep.Remove(s.handle)
	}

	clear(s.deps)
	s.deps = s.deps[:0]
}

func (s *Subscriber) release() {
	if s.disposed {
		return
	}
	s.disposed = true

	s.unlink()
	s.deps = nil

	s.rt.arena.Release(s.handle)
}

// Track records the active subscriber as a reader of dep.
func (r *Runtime) Track(dep *DepSet) {
	sub := r.tracker.Active()
	if sub == nil || sub.disposed {
		return
	}

	if dep.Add(sub.handle) {
		sub.deps = append(sub.deps, dep)
	}
}
