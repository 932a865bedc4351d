package internal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobQueue(t *testing.T) {
	job := func(index uint32, log *[]string) Job {
		return Job{
			handle: Handle{index: index, gen: 1},
			run:    func() { *log = append(*log, fmt.Sprintf("job %d", index)) },
		}
	}

	t.Run("dedups by subscriber", func(t *testing.T) {
		log := []string{}
		q := NewJobQueue()

		assert.True(t, q.Push(job(1, &log)))
		assert.True(t, q.Push(job(2, &log)))
		assert.False(t, q.Push(job(1, &log)))

		ran := q.Drain(Job.Run)

		assert.Equal(t, 2, ran)
		assert.Equal(t, []string{"job 1", "job 2"}, log)
		assert.Equal(t, 0, q.Len())
	})

	t.Run("runs jobs queued while draining", func(t *testing.T) {
		log := []string{}
		q := NewJobQueue()

		q.Push(Job{
			handle: Handle{index: 1, gen: 1},
			run: func() {
				log = append(log, "first")
				q.Push(job(2, &log))
			},
		})

		q.Drain(Job.Run)

		assert.Equal(t, []string{"first", "job 2"}, log)
	})

	t.Run("a job can queue itself again", func(t *testing.T) {
		runs := 0
		q := NewJobQueue()

		var self Job
		self = Job{
			handle: Handle{index: 1, gen: 1},
			run: func() {
				runs++
				if runs < 3 {
					q.Push(self)
				}
			},
		}
		q.Push(self)

		q.Drain(Job.Run)

		assert.Equal(t, 3, runs)
	})

	t.Run("nested drain does nothing", func(t *testing.T) {
		log := []string{}
		q := NewJobQueue()

		q.Push(Job{
			handle: Handle{index: 1, gen: 1},
			run: func() {
				q.Push(job(2, &log))
				assert.Equal(t, 0, q.Drain(Job.Run))
				log = append(log, "outer")
			},
		})

		q.Drain(Job.Run)

		assert.Equal(t, []string{"outer", "job 2"}, log)
	})

	t.Run("keeps remaining jobs when one panics", func(t *testing.T) {
		log := []string{}
		q := NewJobQueue()

		q.Push(Job{handle: Handle{index: 1, gen: 1}, run: func() { panic("boom") }})
		q.Push(job(2, &log))

		assert.PanicsWithValue(t, "boom", func() { q.Drain(Job.Run) })
		assert.False(t, q.IsFlushing())
		assert.Equal(t, 1, q.Len())
		assert.True(t, q.Pending(Handle{index: 2, gen: 1}))

		q.Drain(Job.Run)
		assert.Equal(t, []string{"job 2"}, log)
	})
}
