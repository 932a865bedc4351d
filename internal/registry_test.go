package internal

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record map[string]any

func (r record) Load(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

func (r record) Store(key string, value any) { r[key] = value }

func (r record) Delete(key string) { delete(r, key) }

func (r record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	return keys
}

type pair struct{ a, b any }

func (p pair) Load(key string) (any, bool) {
	switch key {
	case "a":
		return p.a, true
	case "b":
		return p.b, true
	}
	return nil, false
}

func (p pair) Store(string, any) {}

func (p pair) Delete(string) {}

func (p pair) Keys() []string { return []string{"a", "b"} }

// cell and cellPair are pointer containers; &pair.first has the same address
// as pair.
type cell struct{ v any }

func (c *cell) Load(key string) (any, bool) { return c.v, key == "v" }

func (c *cell) Store(_ string, value any) { c.v = value }

func (c *cell) Delete(string) {}

func (c *cell) Keys() []string { return []string{"v"} }

type cellPair struct {
	first  cell
	second cell
}

func (p *cellPair) Load(key string) (any, bool) { return p.first.Load(key) }

func (p *cellPair) Store(key string, value any) { p.first.Store(key, value) }

func (p *cellPair) Delete(string) {}

func (p *cellPair) Keys() []string { return []string{"v"} }

func TestRegistry(t *testing.T) {
	t.Run("same container shares a target", func(t *testing.T) {
		r := NewRuntime()
		raw := record{"a": 1}

		assert.Same(t, r.Wrap(raw), r.Wrap(raw))
		assert.NotSame(t, r.Wrap(raw), r.Wrap(record{"a": 1}))
	})

	t.Run("containers at the same address are told apart by type", func(t *testing.T) {
		r := NewRuntime()
		p := &cellPair{}

		outer := r.Wrap(p)
		inner := r.Wrap(&p.first)

		assert.NotSame(t, outer, inner)
		assert.Same(t, outer, r.Wrap(p))
		assert.Same(t, inner, r.Wrap(&p.first))
	})

	t.Run("value containers are not shared", func(t *testing.T) {
		r := NewRuntime()
		raw := pair{a: 1}

		assert.NotSame(t, r.Wrap(raw), r.Wrap(raw))
	})

	t.Run("collected targets leave the cache", func(t *testing.T) {
		r := NewRuntime()

		func() {
			r.Wrap(record{"a": 1})
		}()
		require.Equal(t, 1, r.registry.Len())

		assert.Eventually(t, func() bool {
			runtime.GC()
			return r.registry.Len() == 0
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("targets with readers survive collection", func(t *testing.T) {
		r := NewRuntime()
		raw := record{"a": 1}

		runs := 0
		r.NewSubscriber(KindEffect, func() any {
			runs++
			return r.Wrap(raw).Get("a")
		}, SubscriberOptions{})

		runtime.GC()
		runtime.GC()

		r.Wrap(raw).Set("a", 2)
		assert.Equal(t, 2, runs)
		assert.Equal(t, 1, r.registry.Len())
	})

	t.Run("get creates dependency sets only while tracking", func(t *testing.T) {
		r := NewRuntime()
		target := r.Wrap(record{"a": 1})

		assert.Equal(t, 1, target.Get("a"))
		assert.Nil(t, target.Dep("a"))

		sub := r.NewSubscriber(KindEffect, func() any { return target.Get("a") }, SubscriberOptions{})

		require.NotNil(t, target.Dep("a"))
		assert.True(t, target.Dep("a").Has(sub.Handle()))
		assert.Equal(t, 1, sub.Deps())
	})

	t.Run("adding a key triggers key-set readers", func(t *testing.T) {
		r := NewRuntime()
		target := r.Wrap(record{"a": 1})

		runs := 0
		r.NewSubscriber(KindEffect, func() any {
			runs++
			return target.Keys()
		}, SubscriberOptions{})

		target.Set("a", 2) // existing key
		assert.Equal(t, 1, runs)

		target.Set("b", 1)
		assert.Equal(t, 2, runs)

		target.Delete("missing")
		assert.Equal(t, 2, runs)

		target.Delete("a")
		assert.Equal(t, 3, runs)
	})
}
