package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRegisterCollectors tests that all collectors register on a fresh registry
func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	Submissions.WithLabelValues("success").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "crpt_submissions_total" {
			found = true
		}
	}
	if !found {
		t.Error("crpt_submissions_total not gathered")
	}
}

// TestGateObserver tests the throttle observer adapter
func TestGateObserver(t *testing.T) {
	var obs GateObserver

	obs.SetWaiting(3)
	if got := testutil.ToFloat64(GateWaiting); got != 3 {
		t.Errorf("GateWaiting = %v, want 3", got)
	}

	before := testutil.CollectAndCount(GateHold)
	obs.ObserveHold(250 * time.Millisecond)
	obs.ObserveWait(time.Millisecond)
	if after := testutil.CollectAndCount(GateHold); after != before {
		t.Errorf("histogram series count changed from %d to %d", before, after)
	}
}
