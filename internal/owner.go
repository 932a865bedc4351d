package internal

import (
	"iter"
)

type Owner struct {
	rt *Runtime

	// cleanup functions to be called on the next dispose (or re-run for subscribers)
	cleanups []func()

	// called on every dispose
	disposers []func()

	// panic error handlers
	catchers []func(any)

	// the context values of this owner
	context map[any]any

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

// NewOwner creates an owner attached to the current owner, if any.
func (r *Runtime) NewOwner() *Owner {
	o := &Owner{rt: r}

	if parent := r.tracker.CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return o
}

func (o *Owner) Run(fn func() error) (err error) {
	defer o.recover()

	o.rt.tracker.RunWithOwner(o, func() {
		err = fn()
	})

	return err
}

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

func (parent *Owner) removeChild(child *Owner) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else if parent.childrenHead == child {
		parent.childrenHead = child.nextSibling
	}

	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	}

	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

func (o *Owner) Parent() *Owner {
	return o.parent
}

func (o *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		child := o.childrenHead

		for child != nil {
			next := child.nextSibling
			if !yield(child) {
				return
			}

			child = next
		}
	}
}

// Dispose disposes every child, then runs this owner's cleanups and disposers,
// and detaches it from its parent. The owner can be reused afterwards.
func (o *Owner) Dispose() {
	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.Reset()

	for _, fn := range o.disposers {
		fn()
	}
}

// Reset disposes children and runs pending cleanups, keeping the owner attached.
func (o *Owner) Reset() {
	o.DisposeChildren()

	cleanups := o.cleanups
	o.cleanups = nil

	for _, fn := range cleanups {
		fn()
	}
}

func (o *Owner) DisposeChildren() {
	child := o.childrenHead
	o.childrenHead = nil

	for child != nil {
		next := child.nextSibling

		child.parent = nil
		child.prevSibling = nil
		child.nextSibling = nil
		child.Dispose()

		child = next
	}
}

func (o *Owner) OnCleanup(fn func()) {
	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) OnDispose(fn func()) {
	o.disposers = append(o.disposers, fn)
}

func (o *Owner) OnError(fn func(any)) {
	o.catchers = append(o.catchers, fn)
}

// handle hands a recovered panic to the closest owner with error listeners.
func (o *Owner) handle(err any) bool {
	for owner := o; owner != nil; owner = owner.parent {
		if len(owner.catchers) == 0 {
			continue
		}

		for _, catcher := range owner.catchers {
			catcher(err)
		}
		return true
	}

	return false
}

func (o *Owner) recover() {
	if err := recover(); err != nil {
		if !o.handle(err) {
			panic(err)
		}

		o.rt.logger.Debug("reactive: recovered panic", "panic", err)
	}
}

func (r *Runtime) OnCleanup(fn func()) {
	if owner := r.tracker.CurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}
