package dispatch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/concave-dev/crpt/internal/crpt"
	"github.com/concave-dev/crpt/internal/document"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/concave-dev/crpt/internal/metrics"
)

// Submitter is the part of crpt.Submitter the dispatcher needs.
type Submitter interface {
	Submit(ctx context.Context, doc any, signature string) crpt.Result
}

// Job is a queued document submission.
type Job struct {
	ID        string
	Document  *document.Document
	Signature string
	Enqueued  time.Time

	ctx    context.Context
	result chan crpt.Result
}

// QueueFullError is returned when the queue is at capacity. The gateway turns
// it into HTTP 429.
type QueueFullError struct {
	Current  int
	Capacity int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("document queue full: %d/%d", e.Current, e.Capacity)
}

// Stats is a snapshot of the queue.
type Stats struct {
	Depth     int    `json:"depth"`
	Capacity  int    `json:"capacity"`
	Workers   int    `json:"workers"`
	Processed uint64 `json:"processed"`
	Rejected  uint64 `json:"rejected"`
}

// Dispatcher feeds queued jobs to a Submitter from a fixed set of workers.
type Dispatcher struct {
	queue     chan *Job
	submitter Submitter
	workers   int

	processed atomic.Uint64
	rejected  atomic.Uint64

	// Lifecycle management
	mu      sync.RWMutex
	stopped bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher; call Start to launch the workers.
func NewDispatcher(submitter Submitter, config *Config) *Dispatcher {
	return &Dispatcher{
		queue:     make(chan *Job, config.QueueSize),
		submitter: submitter,
		workers:   config.Workers,
		stopCh:    make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	d.wg.Add(d.workers)
	for i := 0; i < d.workers; i++ {
		go d.run(i)
	}
	logging.Info("Dispatcher: Started %d worker(s), queue capacity %d", d.workers, cap(d.queue))
}

// Stop rejects new jobs, lets the workers drain what is already queued and
// waits for them to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.stopCh)
	d.mu.Unlock()

	d.wg.Wait()
	logging.Info("Dispatcher: Stopped after processing %d document(s)", d.processed.Load())
}

// Enqueue queues doc for submission and returns a channel that receives the
// Result once a worker has submitted it. ctx is passed to Submit, so a caller
// that gives up before its turn does not reach the registry.
func (d *Dispatcher) Enqueue(ctx context.Context, id string, doc *document.Document, signature string) (<-chan crpt.Result, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return nil, fmt.Errorf("dispatcher stopped")
	}

	job := &Job{
		ID:        id,
		Document:  doc,
		Signature: signature,
		Enqueued:  time.Now(),
		ctx:       ctx,
		result:    make(chan crpt.Result, 1),
	}

	select {
	case d.queue <- job:
		metrics.QueueDepth.Set(float64(len(d.queue)))
		logging.Debug("Dispatcher: Queued document %s (queue: %d)", id, len(d.queue))
		return job.result, nil
	default:
		d.rejected.Add(1)
		metrics.QueueRejected.Inc()
		return nil, &QueueFullError{
			Current:  len(d.queue),
			Capacity: cap(d.queue),
		}
	}
}

// run processes jobs until Stop, then drains the remaining queue.
func (d *Dispatcher) run(worker int) {
	defer d.wg.Done()

	for {
		select {
		case job := <-d.queue:
			d.process(worker, job)
		case <-d.stopCh:
			for {
				select {
				case job := <-d.queue:
					d.process(worker, job)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) process(worker int, job *Job) {
	metrics.QueueDepth.Set(float64(len(d.queue)))
	logging.Debug("Dispatcher: Worker %d submitting document %s (queued %v)",
		worker, job.ID, time.Since(job.Enqueued))

	result := d.submitter.Submit(job.ctx, job.Document, job.Signature)
	d.processed.Add(1)
	job.result <- result
}

// Stats returns a snapshot of the queue.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Depth:     len(d.queue),
		Capacity:  cap(d.queue),
		Workers:   d.workers,
		Processed: d.processed.Load(),
		Rejected:  d.rejected.Load(),
	}
}
