package internal

import "time"

// Observer receives engine events. Implementations are called inline and
// must not touch reactive state.
type Observer interface {
	// SubscriberRan is called after each completed subscriber run.
	SubscriberRan(kind Kind, elapsed time.Duration)

	// Triggered is called when a write schedules at least one subscriber.
	Triggered(scheduled int)

	// Flushed is called after a flush that ran at least one deferred job.
	Flushed(jobs int, elapsed time.Duration)
}

type NopObserver struct{}

func (NopObserver) SubscriberRan(Kind, time.Duration) {}

func (NopObserver) Triggered(int) {}

func (NopObserver) Flushed(int, time.Duration) {}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

func (m MultiObserver) SubscriberRan(kind Kind, elapsed time.Duration) {
	for _, o := range m {
		o.SubscriberRan(kind, elapsed)
	}
}

func (m MultiObserver) Triggered(scheduled int) {
	for _, o := range m {
		o.Triggered(scheduled)
	}
}

func (m MultiObserver) Flushed(jobs int, elapsed time.Duration) {
	for _, o := range m {
		o.Flushed(jobs, elapsed)
	}
}
