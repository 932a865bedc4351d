package reactive

import (
	"maps"
	"slices"

	"github.com/AnatoleLucet/reactive/internal"
)

// Container is a raw keyed record. Implement it to make your own record
// types observable; Record covers the map case.
type Container = internal.Container

// Record is a map-backed Container.
type Record map[string]any

func (r Record) Load(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

func (r Record) Store(key string, value any) { r[key] = value }

func (r Record) Delete(key string) { delete(r, key) }

// Keys returns the keys in sorted order.
func (r Record) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

// Object is an observable view of a Container. Reads inside an effect,
// computed or watcher subscribe it to the key; writes re-run the subscribers
// of the key.
type Object struct {
	target *internal.Target
}

// New wraps a container. The container is not copied: writes go straight
// through to it. Wrapping the same map or pointer again observes the same
// dependencies.
func New(c Container) *Object {
	return &Object{
		internal.GetRuntime().Wrap(c),
	}
}

// Get the value at key, tracking the dependency if within a reactive context.
func (o *Object) Get(key string) any {
	return o.target.Get(key)
}

// Has reports whether key is set, tracking the dependency like Get.
func (o *Object) Has(key string) bool {
	return o.target.Has(key)
}

// Keys returns the container's keys. Subscribers reading them are re-run when
// a key is added or deleted.
func (o *Object) Keys() []string {
	return o.target.Keys()
}

// Set a value, triggering updates to the subscribers of key.
func (o *Object) Set(key string, value any) {
	o.target.Set(key, value)
}

// Delete a key, triggering updates if it was set.
func (o *Object) Delete(key string) {
	o.target.Delete(key)
}

// Raw returns the wrapped container. Access through it is not tracked.
func (o *Object) Raw() Container {
	return o.target.Raw()
}

// Value reads key from o as a T. A missing key gives the zero value.
func Value[T any](o *Object, key string) T {
	return as[T](o.Get(key))
}
