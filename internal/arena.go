package internal

// Handle is a stable reference to a subscriber slot in an Arena.
// The zero Handle never resolves.
type Handle struct {
	index uint32
	gen   uint32
}

func (h Handle) IsZero() bool { return h.gen == 0 }

type slot struct {
	gen uint32
	sub *Subscriber
}

// Arena owns every live subscriber of a runtime.
// Dependency sets only hold handles into it, so a disposed subscriber is
// unreachable from the graph as soon as its slot is released.
type Arena struct {
	slots []slot
	free  []uint32
	live  int
}

func NewArena() *Arena {
	return &Arena{
		slots: make([]slot, 0, 64),
	}
}

func (a *Arena) Insert(sub *Subscriber) Handle {
	a.live++

	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]

		s := &a.slots[index]
		s.sub = sub
		return Handle{index: index, gen: s.gen}
	}

	a.slots = append(a.slots, slot{gen: 1, sub: sub})
	return Handle{index: uint32(len(a.slots) - 1), gen: 1}
}

// Get resolves a handle, returning nil once the slot was released.
func (a *Arena) Get(h Handle) *Subscriber {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil
	}

	s := a.slots[h.index]
	if s.gen != h.gen {
		return nil
	}

	return s.sub
}

func (a *Arena) Release(h Handle) {
	if a.Get(h) == nil {
		return
	}

	s := &a.slots[h.index]
	s.sub = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1 // keep the zero generation reserved
	}

	a.free = append(a.free, h.index)
	a.live--
}

// Len returns the number of live subscribers.
func (a *Arena) Len() int {
	return a.live
}
