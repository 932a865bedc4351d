package reactive

import "github.com/AnatoleLucet/reactive/internal"

// Ref is a single observable value.
type Ref[T any] struct {
	signal *internal.Signal
}

// NewRef creates a read/write reactive value.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{
		internal.GetRuntime().NewSignal(initial),
	}
}

// Read the current value, tracking the dependency if within a reactive context.
func (r *Ref[T]) Read() T {
	return as[T](r.signal.Read())
}

// Write a new value, triggering updates to any dependents.
func (r *Ref[T]) Write(v T) {
	r.signal.Write(v)
}

// Peek reads the value without tracking it.
func (r *Ref[T]) Peek() T {
	return as[T](r.signal.Peek())
}

func (r *Ref[T]) readAny() any {
	return r.signal.Read()
}
