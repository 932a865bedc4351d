package reactive

import "github.com/AnatoleLucet/reactive/internal"

type Computed[T any] struct {
	computed *internal.Computed
}

// NewComputed creates a lazily evaluated, cached derivation (a memo).
// compute does not run until the first Read, and after a dependency changes
// it only runs again on the next Read.
func NewComputed[T any](compute func() T) *Computed[T] {
	return &Computed[T]{
		internal.GetRuntime().NewComputed(func() any {
			return compute()
		}),
	}
}

// Read the current value of the computed signal, tracking the dependency if within a reactive context.
func (c *Computed[T]) Read() T {
	return as[T](c.computed.Read())
}

// Dirty reports whether the next Read will recompute.
func (c *Computed[T]) Dirty() bool {
	return c.computed.Dirty()
}

func (c *Computed[T]) Dispose() {
	c.computed.Dispose()
}

func (c *Computed[T]) readAny() any {
	return c.computed.Read()
}
