package internal

// Signal is a single observable value with its own readers.
type Signal struct {
	rt  *Runtime
	dep *DepSet

	value any
}

func (r *Runtime) NewSignal(initial any) *Signal {
	return &Signal{
		rt:    r,
		dep:   NewDepSet(),
		value: initial,
	}
}

// Read returns the value, tracking the dependency if within a reactive context.
func (s *Signal) Read() any {
	s.rt.Track(s.dep)

	return s.value
}

// Write stores v and triggers every reader, even if v is unchanged.
func (s *Signal) Write(v any) {
	s.value = v

	s.rt.Trigger(s.dep)
}

// Peek returns the value without tracking.
func (s *Signal) Peek() any {
	return s.value
}

func (s *Signal) Dep() *DepSet {
	return s.dep
}
