package reactive

import "github.com/AnatoleLucet/reactive/internal"

// OnInvalidate registers a function called before the next callback of the
// same watcher, or when the watcher stops. Use it to discard the result of
// work started by a callback that has since been superseded.
type OnInvalidate func(fn func())

type WatchOption func(*internal.WatchOptions)

// Immediate calls the callback once on creation, with a zero old value.
func Immediate() WatchOption {
	return func(o *internal.WatchOptions) {
		o.Immediate = true
	}
}

// FlushPost defers the callback to the next Flush. Several writes before the
// flush produce a single callback with the latest value.
func FlushPost() WatchOption {
	return func(o *internal.WatchOptions) {
		o.Flush = internal.FlushPost
	}
}

// FlushSync calls the callback inline with the write. This is the default.
func FlushSync() WatchOption {
	return func(o *internal.WatchOptions) {
		o.Flush = internal.FlushSync
	}
}

type Watcher struct {
	watcher *internal.Watcher
}

// Stop the watcher. A pending invalidation is called.
func (w *Watcher) Stop() {
	w.watcher.Stop()
}

func (w *Watcher) ID() ID {
	return w.watcher.Subscriber().Handle()
}

func watchOptions(opts []WatchOption) internal.WatchOptions {
	var o internal.WatchOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Watch calls cb with the new and previous result of getter each time a value
// getter read changes.
func Watch[T any](getter func() T, cb func(newValue, oldValue T, onInvalidate OnInvalidate), opts ...WatchOption) *Watcher {
	return &Watcher{
		internal.GetRuntime().NewWatcher(
			func() any { return getter() },
			func(newValue, oldValue any, onInvalidate func(func())) {
				cb(as[T](newValue), as[T](oldValue), onInvalidate)
			},
			watchOptions(opts),
		),
	}
}

// WatchValue watches everything reachable from source: a write to any key of
// any Object, Ref or Computed found while walking it calls cb. A func() any
// source is used as the getter instead. For a walked source, new and old
// values are the source itself.
func WatchValue(source any, cb func(newValue, oldValue any, onInvalidate OnInvalidate), opts ...WatchOption) *Watcher {
	getter, ok := source.(func() any)
	if !ok {
		getter = func() any {
			traverse(source, make(map[any]struct{}))
			return source
		}
	}

	return &Watcher{
		internal.GetRuntime().NewWatcher(
			getter,
			func(newValue, oldValue any, onInvalidate func(func())) {
				cb(newValue, oldValue, onInvalidate)
			},
			watchOptions(opts),
		),
	}
}
