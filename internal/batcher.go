package internal

type Batcher struct {
	// each nested batch increases the depth by 1
	// if depth > 0, synchronous jobs are queued until the outermost batch is complete
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

// Batch runs fn with the depth raised. When the outermost batch ends, even by
// a panic, onComplete runs: Runtime.Flush for NewBatch, or the drain of the
// synchronous queue for the implicit batch around each Trigger.
func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}

// NewBatch holds synchronous jobs back until fn returns, then flushes both
// queues.
func (r *Runtime) NewBatch(fn func()) {
	r.batcher.Batch(fn, r.Flush)
}
