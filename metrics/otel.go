package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AnatoleLucet/reactive"
)

// OTel is a reactive.Observer recording engine activity with OpenTelemetry instruments.
type OTel struct {
	runs          metric.Int64Counter
	runDuration   metric.Float64Histogram
	scheduled     metric.Int64Counter
	flushedJobs   metric.Int64Counter
	flushDuration metric.Float64Histogram
}

var _ reactive.Observer = (*OTel)(nil)

// NewOTel creates the instruments on meter, or on the global meter provider
// if meter is nil.
func NewOTel(meter metric.Meter) (*OTel, error) {
	if meter == nil {
		meter = otel.Meter("github.com/AnatoleLucet/reactive")
	}

	o := &OTel{}
	var err error

	o.runs, err = meter.Int64Counter(
		"reactive.subscriber.runs",
		metric.WithDescription("Number of subscriber executions"),
	)
	if err != nil {
		return nil, err
	}

	o.runDuration, err = meter.Float64Histogram(
		"reactive.subscriber.duration",
		metric.WithDescription("Duration of subscriber executions"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	o.scheduled, err = meter.Int64Counter(
		"reactive.trigger.scheduled",
		metric.WithDescription("Number of subscribers scheduled by writes"),
	)
	if err != nil {
		return nil, err
	}

	o.flushedJobs, err = meter.Int64Counter(
		"reactive.flush.jobs",
		metric.WithDescription("Number of deferred jobs run by flushes"),
	)
	if err != nil {
		return nil, err
	}

	o.flushDuration, err = meter.Float64Histogram(
		"reactive.flush.duration",
		metric.WithDescription("Duration of flushes"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return o, nil
}

// Observer callbacks run inline with reactive code, which carries no context.
func (o *OTel) SubscriberRan(kind reactive.Kind, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("kind", kind.String()))

	o.runs.Add(context.Background(), 1, attrs)
	o.runDuration.Record(context.Background(), elapsed.Seconds(), attrs)
}

func (o *OTel) Triggered(scheduled int) {
	o.scheduled.Add(context.Background(), int64(scheduled))
}

func (o *OTel) Flushed(jobs int, elapsed time.Duration) {
	o.flushedJobs.Add(context.Background(), int64(jobs))
	o.flushDuration.Record(context.Background(), elapsed.Seconds())
}
