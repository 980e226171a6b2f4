package reliability

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"scratchrobin-hq/advanced/pkg/reject"
)

// Component is the reject component name for delivery failures.
const Component = "reliability"

// StatusPublished is returned by RunEvent when an attempt succeeds.
const StatusPublished = "published"

// PublishFunc offers a payload to the downstream sink and reports success.
type PublishFunc func(payload string) bool

// DeadLetterFunc receives a payload that exhausted its attempts.
type DeadLetterFunc func(payload string)

// Waiter receives the advisory delay between two attempts.
type Waiter func(time.Duration)

// Observer is notified of delivery progress. metrics.CDCMetrics implements it.
type Observer interface {
	Attempt()
	Published()
	DeadLettered()
}

// BatchResult summarizes a batch delivery.
type BatchResult struct {
	Published    int `json:"published"`
	DeadLettered int `json:"dead_lettered"`
}

// Option configures a delivery run.
type Option func(*runOptions)

type runOptions struct {
	waiter   Waiter
	observer Observer
}

// WithWaiter hands every inter-attempt delay to w.
func WithWaiter(w Waiter) Option {
	return func(o *runOptions) { o.waiter = w }
}

// WithObserver reports attempts and outcomes to obs.
func WithObserver(obs Observer) Option {
	return func(o *runOptions) { o.observer = obs }
}

// RunEvent delivers a single payload. It returns StatusPublished on the first
// successful attempt. When all attempts fail, deadLetter is called once and a
// SRB1-R-7004 reject is returned. A maxAttempts below one dead-letters the
// payload without calling publish.
func RunEvent(payload string, maxAttempts int, delay time.Duration, publish PublishFunc, deadLetter DeadLetterFunc, opts ...Option) (string, error) {
	o := runOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	schedule := backoff.NewConstantBackOff(delay)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if o.observer != nil {
			o.observer.Attempt()
		}
		if publish(payload) {
			if o.observer != nil {
				o.observer.Published()
			}
			return StatusPublished, nil
		}
		if attempt < maxAttempts && o.waiter != nil {
			o.waiter(schedule.NextBackOff())
		}
	}

	if deadLetter != nil {
		deadLetter(payload)
	}
	if o.observer != nil {
		o.observer.DeadLettered()
	}

	attempts := maxAttempts
	if attempts < 0 {
		attempts = 0
	}
	return "", reject.New(reject.CodeCdcExhausted, "cdc publish failed after retries", Component, "run_cdc_event").
		WithDetail(fmt.Sprintf("attempts=%d", attempts)).
		WithRetryable(true)
}

// Pipeline runs deliveries against a dead-letter queue.
type Pipeline struct {
	queue *Queue
	opts  []Option
}

// NewPipeline creates a pipeline that dead-letters into queue. A nil queue
// gets a fresh one.
func NewPipeline(queue *Queue, opts ...Option) *Pipeline {
	if queue == nil {
		queue = NewQueue()
	}
	return &Pipeline{queue: queue, opts: opts}
}

// Queue returns the pipeline's dead-letter queue.
func (p *Pipeline) Queue() *Queue {
	return p.queue
}

// RunEvent delivers payload, appending it to the queue before calling
// deadLetter when every attempt fails.
func (p *Pipeline) RunEvent(payload string, maxAttempts int, delay time.Duration, publish PublishFunc, deadLetter DeadLetterFunc) (string, error) {
	return RunEvent(payload, maxAttempts, delay, publish, func(dead string) {
		p.queue.Append(dead)
		if deadLetter != nil {
			deadLetter(dead)
		}
	}, p.opts...)
}

// RunBatch delivers events in input order. Exhausted events are appended to
// the queue.
func (p *Pipeline) RunBatch(events []string, maxAttempts int, delay time.Duration, publish PublishFunc) BatchResult {
	var res BatchResult
	for _, payload := range events {
		if _, err := RunEvent(payload, maxAttempts, delay, publish, p.queue.Append, p.opts...); err != nil {
			res.DeadLettered++
			continue
		}
		res.Published++
	}
	return res
}
