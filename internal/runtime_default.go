//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// runtimes holds one engine per goroutine, keyed by goroutine id.
var runtimes sync.Map

func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// DropRuntime forgets the runtime of the current goroutine. Anything created
// on it keeps working through its own references; the next GetRuntime call
// on this goroutine starts a fresh engine.
func DropRuntime() {
	runtimes.Delete(goid.Get())
}
