package internal

type FlushMode int

const (
	// FlushSync runs the callback inline with the write.
	FlushSync FlushMode = iota
	// FlushPost defers the callback to the next Flush.
	FlushPost
)

type WatchOptions struct {
	Immediate bool
	Flush     FlushMode
}

type WatchCallback func(newValue, oldValue any, onInvalidate func(func()))

// Watcher calls back with old and new values whenever its getter's
// dependencies change.
type Watcher struct {
	rt   *Runtime
	sub  *Subscriber
	cb   WatchCallback
	opts WatchOptions

	oldValue any

	// registered by the previous callback, called before the next one
	invalidate func()
}

func (r *Runtime) NewWatcher(getter func() any, cb WatchCallback, opts WatchOptions) *Watcher {
	w := &Watcher{
		rt:   r,
		cb:   cb,
		opts: opts,
	}

	w.sub = r.NewSubscriber(KindWatch, getter, SubscriberOptions{
		Lazy:      true,
		Scheduler: w.schedule,
	})
	w.sub.OnDispose(w.runInvalidate)

	if opts.Immediate {
		w.run()
	} else {
		w.oldValue = w.sub.Run()
	}

	return w
}

func (w *Watcher) schedule(Job) {
	job := Job{handle: w.sub.handle, run: w.run}

	if w.opts.Flush == FlushPost {
		w.rt.Defer(job)
		return
	}

	w.rt.Enqueue(job)
}

func (w *Watcher) run() {
	if w.sub.disposed {
		return
	}

	newValue := w.sub.Run()

	w.runInvalidate()

	// cleanups and subscribers created by the callback belong to the
	// watcher, not to whichever subscriber wrote
	w.rt.tracker.RunUntracked(func() {
		w.rt.tracker.RunWithOwner(w.sub.Owner, func() {
			w.cb(newValue, w.oldValue, w.onInvalidate)
		})
	})

	w.oldValue = newValue
}

func (w *Watcher) onInvalidate(fn func()) {
	w.invalidate = fn
}

func (w *Watcher) runInvalidate() {
	if w.invalidate == nil {
		return
	}

	fn := w.invalidate
	w.invalidate = nil
	fn()
}

func (w *Watcher) Subscriber() *Subscriber {
	return w.sub
}

// Stop disposes the watcher and calls the pending invalidation, if any.
func (w *Watcher) Stop() {
	w.sub.Dispose()
}
