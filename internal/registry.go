package internal

import (
	"reflect"
	"runtime"
	"sync"
	"weak"
)

// Container is the raw keyed record a Target observes.
type Container interface {
	Load(key string) (any, bool)
	Store(key string, value any)
	Delete(key string)
	Keys() []string
}

// Registry maps raw containers to their Target so every wrapper of the same
// container shares one set of dependencies. Entries are weak: a Target is
// dropped once no wrapper refers to it and none of its keys has a reader.
// Each non-empty DepSet points back at its Target.
type Registry struct {
	mu      sync.Mutex
	targets map[targetKey]weak.Pointer[Target]
}

// targetKey includes the type: a struct and its first field share an address.
type targetKey struct {
	typ reflect.Type
	ptr uintptr
}

func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[targetKey]weak.Pointer[Target]),
	}
}

func (r *Runtime) Wrap(raw Container) *Target {
	return r.registry.wrap(r, raw)
}

func (reg *Registry) wrap(rt *Runtime, raw Container) *Target {
	id, ok := identity(raw)
	if !ok {
		// value containers have no identity to share
		return newTarget(rt, raw)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if wp, ok := reg.targets[id]; ok {
		if t := wp.Value(); t != nil {
			return t
		}
	}

	t := newTarget(rt, raw)
	wp := weak.Make(t)
	reg.targets[id] = wp

	runtime.AddCleanup(t, func(id targetKey) { reg.forget(id, wp) }, id)

	return t
}

func (reg *Registry) forget(id targetKey, wp weak.Pointer[Target]) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if cur, ok := reg.targets[id]; ok && cur == wp {
		delete(reg.targets, id)
	}
}

// Len returns the number of cached targets, dead or alive.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return len(reg.targets)
}

func identity(raw Container) (targetKey, bool) {
	v := reflect.ValueOf(raw)

	switch v.Kind() {
	case reflect.Map, reflect.Pointer:
		if v.IsNil() {
			return targetKey{}, false
		}
		return targetKey{typ: v.Type(), ptr: v.Pointer()}, true
	}

	return targetKey{}, false
}

// Target is the observable side of a Container: one DepSet per key, plus one
// for readers of the key set itself.
type Target struct {
	rt  *Runtime
	raw Container

	deps map[string]*DepSet
	keys *DepSet
}

func newTarget(rt *Runtime, raw Container) *Target {
	t := &Target{
		rt:   rt,
		raw:  raw,
		deps: make(map[string]*DepSet),
		keys: NewDepSet(),
	}
	t.keys.target = t

	return t
}

func (t *Target) Raw() Container {
	return t.raw
}

// Dep returns the dependency set of key, nil if nothing ever read it.
func (t *Target) Dep(key string) *DepSet {
	return t.deps[key]
}

func (t *Target) track(key string) {
	if !t.rt.tracker.ShouldTrack() {
		return
	}

	dep, ok := t.deps[key]
	if !ok {
		dep = NewDepSet()
		dep.target = t
		t.deps[key] = dep
	}

	t.rt.Track(dep)
}

func (t *Target) Get(key string) any {
	t.track(key)

	v, _ := t.raw.Load(key)
	return v
}

func (t *Target) Has(key string) bool {
	t.track(key)

	_, ok := t.raw.Load(key)
	return ok
}

func (t *Target) Keys() []string {
	t.rt.Track(t.keys)

	return t.raw.Keys()
}

func (t *Target) Set(key string, value any) {
	_, existed := t.raw.Load(key)
	t.raw.Store(key, value)

	if existed {
		t.rt.Trigger(t.deps[key])
	} else {
		t.rt.Trigger(t.deps[key], t.keys)
	}
}

func (t *Target) Delete(key string) {
	if _, ok := t.raw.Load(key); !ok {
		return
	}
	t.raw.Delete(key)

	t.rt.Trigger(t.deps[key], t.keys)
}
