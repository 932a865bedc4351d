package internal

// Context is a value scoped to the owner tree. Lookups walk up from the
// current owner and fall back to the initial value.
type Context struct {
	rt      *Runtime
	initial any
}

func (r *Runtime) NewContext(initial any) *Context {
	return &Context{rt: r, initial: initial}
}

func (c *Context) Value() any {
	for owner := c.rt.tracker.CurrentOwner(); owner != nil; owner = owner.parent {
		if v, ok := owner.context[c]; ok {
			return v
		}
	}

	return c.initial
}

// Set stores the value on the current owner. Without an owner there is
// nowhere to hold it and the call does nothing.
func (c *Context) Set(value any) {
	owner := c.rt.tracker.CurrentOwner()
	if owner == nil {
		return
	}

	if owner.context == nil {
		owner.context = make(map[any]any)
	}
	owner.context[c] = value
}
