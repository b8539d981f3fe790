package api

import (
	"testing"
	"time"
)

// TestClientLimiter_Allow tests burst consumption and retry delay
func TestClientLimiter_Allow(t *testing.T) {
	l := newClientLimiter(1, 2)

	for i := 0; i < 2; i++ {
		if ok, _ := l.allow("a"); !ok {
			t.Fatalf("allow() #%d = false, want true within burst", i+1)
		}
	}

	ok, retry := l.allow("a")
	if ok {
		t.Fatal("allow() = true after burst, want false")
	}
	if retry <= 0 || retry > time.Second {
		t.Errorf("allow() retry = %v, want (0, 1s]", retry)
	}

	if ok, _ := l.allow("b"); !ok {
		t.Error("allow() for a new key = false, want true")
	}
}

// TestClientLimiter_DeniedDoesNotConsume tests that a denied request leaves the bucket intact
func TestClientLimiter_DeniedDoesNotConsume(t *testing.T) {
	l := newClientLimiter(20, 1)

	if ok, _ := l.allow("a"); !ok {
		t.Fatal("allow() = false, want true")
	}
	for i := 0; i < 5; i++ {
		l.allow("a")
	}

	time.Sleep(60 * time.Millisecond)
	if ok, _ := l.allow("a"); !ok {
		t.Error("allow() = false after refill, denied requests consumed tokens")
	}
}

// TestClientLimiter_Cleanup tests eviction of idle clients
func TestClientLimiter_Cleanup(t *testing.T) {
	l := newClientLimiter(1, 1)
	l.idleTTL = 10 * time.Millisecond

	l.allow("a")
	l.allow("b")
	if l.size() != 2 {
		t.Fatalf("size() = %d, want 2", l.size())
	}

	time.Sleep(20 * time.Millisecond)
	l.allow("c")
	l.cleanup()

	if l.size() != 1 {
		t.Errorf("size() after cleanup = %d, want 1", l.size())
	}
}
