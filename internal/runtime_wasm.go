//go:build wasm

package internal

import "sync"

// wasm runs on a single goroutine, so one engine serves everything.
var (
	once          sync.Once
	globalRuntime *Runtime
)

func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime()
	})

	return globalRuntime
}

func DropRuntime() {
	once.Do(func() {})
	globalRuntime = NewRuntime()
}
