package reactive

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// user is a Container backed by struct fields.
type user struct {
	name string
	age  int
}

func (u *user) Load(key string) (any, bool) {
	switch key {
	case "name":
		return u.name, true
	case "age":
		return u.age, true
	}
	return nil, false
}

func (u *user) Store(key string, value any) {
	switch key {
	case "name":
		u.name = value.(string)
	case "age":
		u.age = value.(int)
	}
}

func (u *user) Delete(string) {}

func (u *user) Keys() []string { return []string{"name", "age"} }

func TestObject(t *testing.T) {
	t.Run("reads and writes through to the container", func(t *testing.T) {
		raw := Record{"a": 1}
		obj := New(raw)

		assert.Equal(t, 1, obj.Get("a"))
		assert.True(t, obj.Has("a"))
		assert.False(t, obj.Has("b"))
		assert.Nil(t, obj.Get("b"))

		obj.Set("b", "two")
		assert.Equal(t, Record{"a": 1, "b": "two"}, raw)
		assert.Equal(t, []string{"a", "b"}, obj.Keys())

		obj.Delete("a")
		assert.Equal(t, Record{"b": "two"}, raw)
		assert.Equal(t, raw, obj.Raw())
	})

	t.Run("typed reads", func(t *testing.T) {
		obj := New(Record{"count": 3, "name": "x"})

		assert.Equal(t, 3, Value[int](obj, "count"))
		assert.Equal(t, "x", Value[string](obj, "name"))
		assert.Equal(t, 0, Value[int](obj, "missing"))
	})

	t.Run("wrapping the same container shares dependencies", func(t *testing.T) {
		runs := 0

		raw := Record{"a": 1}
		first := New(raw)
		second := New(raw)

		NewEffect(func() {
			runs++
			first.Get("a")
		})

		second.Set("a", 2)
		assert.Equal(t, 2, runs)
	})

	t.Run("re-wrapping after a collection keeps dependencies", func(t *testing.T) {
		runs := 0

		raw := Record{"a": 1}

		NewEffect(func() {
			runs++
			New(raw).Get("a")
		})

		runtime.GC()
		runtime.GC()

		New(raw).Set("a", 2)
		assert.Equal(t, 2, runs)
	})

	t.Run("different containers do not share dependencies", func(t *testing.T) {
		runs := 0

		first := New(Record{"a": 1})
		second := New(Record{"a": 1})

		NewEffect(func() {
			runs++
			first.Get("a")
		})

		second.Set("a", 2)
		assert.Equal(t, 1, runs)
	})

	t.Run("keys are re-read when a key is added or deleted", func(t *testing.T) {
		log := []string{}

		obj := New(Record{"a": 1})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("%v", obj.Keys()))
		})

		obj.Set("a", 2) // existing key
		obj.Set("b", 1)
		obj.Delete("a")
		obj.Delete("missing")

		assert.Equal(t, []string{
			"[a]",
			"[a b]",
			"[b]",
		}, log)
	})

	t.Run("has is re-read when the key appears", func(t *testing.T) {
		log := []bool{}

		obj := New(Record{})

		NewEffect(func() {
			log = append(log, obj.Has("a"))
		})

		obj.Set("a", 1)
		obj.Delete("a")

		assert.Equal(t, []bool{false, true, false}, log)
	})

	t.Run("custom containers", func(t *testing.T) {
		log := []string{}

		u := &user{name: "ada", age: 36}
		obj := New(u)

		NewEffect(func() {
			log = append(log, fmt.Sprintf("%s %d", Value[string](obj, "name"), Value[int](obj, "age")))
		})

		obj.Set("age", 37)

		assert.Equal(t, 37, u.age)
		assert.Equal(t, []string{"ada 36", "ada 37"}, log)
		assert.Same(t, u, New(u).Raw())
	})

	t.Run("nested objects track separately", func(t *testing.T) {
		log := []string{}

		inner := New(Record{"x": 1})
		outer := New(Record{"inner": inner, "y": 1})

		NewEffect(func() {
			in := outer.Get("inner").(*Object)
			log = append(log, fmt.Sprintf("x=%v", in.Get("x")))
		})

		inner.Set("x", 2)
		outer.Set("y", 2) // not read

		assert.Equal(t, []string{"x=1", "x=2"}, log)
	})
}
