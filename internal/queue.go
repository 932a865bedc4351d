package internal

import "slices"

// JobQueue holds deferred jobs, at most one per subscriber, in insertion order.
type JobQueue struct {
	jobs    []Job
	pending map[Handle]struct{}

	// jobs of the batch being drained that did not run yet
	rest []Job

	flushing bool
}

func NewJobQueue() *JobQueue {
	return &JobQueue{
		jobs:    make([]Job, 0),
		pending: make(map[Handle]struct{}),
	}
}

// Push queues the job unless one for the same subscriber is already pending.
func (q *JobQueue) Push(job Job) bool {
	if _, ok := q.pending[job.handle]; ok {
		return false
	}

	q.pending[job.handle] = struct{}{}
	q.jobs = append(q.jobs, job)
	return true
}

func (q *JobQueue) Len() int {
	return len(q.jobs)
}

func (q *JobQueue) Pending(h Handle) bool {
	_, ok := q.pending[h]
	return ok
}

func (q *JobQueue) IsFlushing() bool {
	return q.flushing
}

// Drain runs queued jobs until the queue is empty, including jobs queued by
// the jobs themselves. Nested calls return immediately.
// If a job panics, the jobs that did not run stay queued.
func (q *JobQueue) Drain(run func(Job)) int {
	if q.flushing {
		return 0
	}
	q.flushing = true

	defer func() {
		q.flushing = false

		if len(q.rest) > 0 {
			q.jobs = slices.Concat(q.rest, q.jobs)
			q.rest = nil
		}
	}()

	ran := 0
	for len(q.jobs) > 0 {
		batch := q.jobs
		q.jobs = make([]Job, 0, len(batch))

		for i, job := range batch {
			q.rest = batch[i+1:]
			delete(q.pending, job.handle)

			run(job)
			ran++
		}
		q.rest = nil
	}

	return ran
}
