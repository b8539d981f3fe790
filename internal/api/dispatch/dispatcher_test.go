package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/concave-dev/crpt/internal/crpt"
	"github.com/concave-dev/crpt/internal/document"
)

// fakeSubmitter records submissions and optionally blocks until released
type fakeSubmitter struct {
	mu      sync.Mutex
	docs    []string
	release chan struct{}
}

func (f *fakeSubmitter) Submit(ctx context.Context, doc any, signature string) crpt.Result {
	if f.release != nil {
		<-f.release
	}
	if ctx.Err() != nil {
		return crpt.Result{Outcome: crpt.OutcomeCanceled, Err: ctx.Err()}
	}
	f.mu.Lock()
	f.docs = append(f.docs, doc.(*document.Document).DocID)
	f.mu.Unlock()
	return crpt.Result{Outcome: crpt.OutcomeSuccess, StatusCode: 200}
}

func newDoc(id string) *document.Document {
	doc := document.Sample(time.Now())
	doc.DocID = id
	return doc
}

// TestConfig_Validate tests queue configuration bounds
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		valid  bool
	}{
		{name: "defaults", config: *DefaultConfig(), valid: true},
		{name: "zero queue", config: Config{QueueSize: 0, Workers: 1}},
		{name: "huge queue", config: Config{QueueSize: 200000, Workers: 1}},
		{name: "zero workers", config: Config{QueueSize: 10, Workers: 0}},
		{name: "too many workers", config: Config{QueueSize: 10, Workers: 17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.valid != (err == nil) {
				t.Errorf("Validate() = %v, valid %v", err, tt.valid)
			}
		})
	}
}

// TestDispatcher_DeliversResults tests the enqueue to result path
func TestDispatcher_DeliversResults(t *testing.T) {
	sub := &fakeSubmitter{}
	d := NewDispatcher(sub, &Config{QueueSize: 4, Workers: 1})
	d.Start()
	defer d.Stop()

	ch, err := d.Enqueue(context.Background(), "job-1", newDoc("doc-1"), "")
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case r := <-ch:
		if !r.OK() {
			t.Errorf("result outcome = %s", r.Outcome)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}

	if stats := d.Stats(); stats.Processed != 1 || stats.Capacity != 4 {
		t.Errorf("Stats() = %+v", stats)
	}
}

// TestDispatcher_QueueFull tests backpressure once capacity is reached
func TestDispatcher_QueueFull(t *testing.T) {
	sub := &fakeSubmitter{release: make(chan struct{})}
	d := NewDispatcher(sub, &Config{QueueSize: 2, Workers: 1})
	d.Start()

	// The worker takes the first job and blocks in Submit
	first, err := d.Enqueue(context.Background(), "job-0", newDoc("doc-0"), "")
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for d.Stats().Depth != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	for i := 1; i <= 2; i++ {
		if _, err := d.Enqueue(context.Background(), "job", newDoc("doc"), ""); err != nil {
			t.Fatalf("Enqueue() %d error = %v", i, err)
		}
	}

	_, err = d.Enqueue(context.Background(), "job-3", newDoc("doc-3"), "")
	var full *QueueFullError
	if !errors.As(err, &full) {
		t.Fatalf("Enqueue() error = %v, want *QueueFullError", err)
	}
	if full.Current != 2 || full.Capacity != 2 {
		t.Errorf("QueueFullError = %+v", full)
	}
	if d.Stats().Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", d.Stats().Rejected)
	}

	close(sub.release)
	<-first
	d.Stop()

	sub.mu.Lock()
	defer sub.mu.Unlock()
	if len(sub.docs) != 3 {
		t.Errorf("submitted %d documents, want 3 (drained on stop)", len(sub.docs))
	}
}

// TestDispatcher_StoppedRejects tests that no work is accepted after Stop
func TestDispatcher_StoppedRejects(t *testing.T) {
	d := NewDispatcher(&fakeSubmitter{}, DefaultConfig())
	d.Start()
	d.Stop()
	d.Stop()

	if _, err := d.Enqueue(context.Background(), "late", newDoc("late"), ""); err == nil {
		t.Error("Enqueue() after Stop = nil error, want error")
	}
}

// TestDispatcher_CanceledJob tests that a caller who gave up is not submitted
func TestDispatcher_CanceledJob(t *testing.T) {
	sub := &fakeSubmitter{}
	d := NewDispatcher(sub, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := d.Enqueue(ctx, "job", newDoc("doc"), "")
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	cancel()

	d.Start()
	defer d.Stop()

	r := <-ch
	if r.Outcome != crpt.OutcomeCanceled {
		t.Errorf("Outcome = %s, want %s", r.Outcome, crpt.OutcomeCanceled)
	}
}
