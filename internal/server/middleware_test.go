package server

import (
	"testing"
	"time"
)

func TestRateLimiter_RefillsAndSweeps(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := newRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	if !rl.allow("a") || !rl.allow("a") {
		t.Fatal("burst of 2 should be allowed")
	}
	if rl.allow("a") {
		t.Fatal("third request should be limited")
	}
	if !rl.allow("b") {
		t.Fatal("other IPs have their own bucket")
	}

	now = now.Add(30 * time.Second)
	if !rl.allow("a") {
		t.Fatal("one token should refill after window/requests")
	}

	now = now.Add(10 * time.Minute)
	rl.allow("c")
	if _, ok := rl.visitors["b"]; ok {
		t.Fatal("idle visitor should be swept")
	}
}
