package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendwise/expense-api/internal/api/metrics"
	"github.com/spendwise/expense-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher relays feedback submissions to the external endpoint through a
// fixed set of workers, sharded by submitter email so one sender's
// submissions arrive in order. Delivery is fire-and-forget: failures are
// logged and counted, never retried.
type Dispatcher struct {
	workers   []chan ports.FeedbackSubmission
	forwarder ports.FeedbackForwarder
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, forwarder ports.FeedbackForwarder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.FeedbackSubmission, numWorkers),
		forwarder: forwarder,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.FeedbackSubmission, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a submission to the worker responsible for its sender.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(submission ports.FeedbackSubmission) {
	d.workers[d.shardIndex(submission.Email)] <- submission
}

// shardIndex maps a sender email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.FeedbackSubmission) {
	for {
		select {
		case <-ctx.Done():
			return
		case submission, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			if err := d.forwarder.Forward(ctx, submission); err != nil {
				metrics.FeedbackRelayTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("email", submission.Email).
					Int("worker_id", id).
					Msg("feedback relay failed")
				continue
			}
			metrics.FeedbackRelayTotal.WithLabelValues("ok").Inc()
			metrics.FeedbackRelayDuration.Observe(time.Since(start).Seconds())
		}
	}
}
