package internal

// Computed is a cached derivation. Its subscriber is lazy and never re-runs on
// trigger: it only marks the cache dirty and notifies the computed's own
// readers. The value is recomputed on the next Read.
type Computed struct {
	*Signal

	sub   *Subscriber
	dirty bool
}

func (r *Runtime) NewComputed(getter func() any) *Computed {
	c := &Computed{
		Signal: r.NewSignal(nil),
		dirty:  true,
	}

	c.sub = r.NewSubscriber(KindComputed, getter, SubscriberOptions{
		Lazy:      true,
		Scheduler: c.invalidate,
	})

	return c
}

func (c *Computed) invalidate(Job) {
	if c.dirty {
		return
	}
	c.dirty = true

	c.rt.Trigger(c.dep)
}

func (c *Computed) Read() any {
	if c.dirty {
		c.value = c.sub.Run()
		c.dirty = false
	}

	c.rt.Track(c.dep)

	return c.value
}

func (c *Computed) Dirty() bool {
	return c.dirty
}

func (c *Computed) Subscriber() *Subscriber {
	return c.sub
}

func (c *Computed) Dispose() {
	c.sub.Dispose()
}
