package internal

// Tracker is the active subscriber stack of a runtime.
// The top of the stack is the subscriber reads are attributed to; a nil
// entry marks an untracked section.
type Tracker struct {
	stack []*Subscriber

	currentOwner *Owner // for lifecycle/cleanup tracking
}

func NewTracker() *Tracker {
	return &Tracker{
		stack: make([]*Subscriber, 0, 8),
	}
}

func (t *Tracker) RunWithOwner(owner *Owner, fn func()) {
	prev := t.currentOwner
	t.currentOwner = owner
	defer func() { t.currentOwner = prev }()

	fn()
}

func (t *Tracker) RunWithSubscriber(sub *Subscriber, fn func()) {
	depth := len(t.stack)
	prevOwner := t.currentOwner

	t.stack = append(t.stack, sub)
	t.currentOwner = sub.Owner

	defer func() {
		clear(t.stack[depth:])
		t.stack = t.stack[:depth]
		t.currentOwner = prevOwner
	}()

	fn()
}

func (t *Tracker) RunUntracked(fn func()) {
	depth := len(t.stack)
	t.stack = append(t.stack, nil)

	defer func() {
		clear(t.stack[depth:])
		t.stack = t.stack[:depth]
	}()

	fn()
}

// Active returns the subscriber on top of the stack, if any.
func (t *Tracker) Active() *Subscriber {
	if len(t.stack) == 0 {
		return nil
	}

	return t.stack[len(t.stack)-1]
}

// Running returns the innermost subscriber being executed, looking through
// untracked sections.
func (t *Tracker) Running() *Subscriber {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if sub := t.stack[i]; sub != nil {
			return sub
		}
	}

	return nil
}

func (t *Tracker) ShouldTrack() bool {
	return t.Active() != nil
}

func (t *Tracker) Depth() int {
	return len(t.stack)
}

func (t *Tracker) CurrentOwner() *Owner {
	return t.currentOwner
}
