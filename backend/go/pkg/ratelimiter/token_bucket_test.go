package ratelimiter

import "testing"

func TestTokenBucketAllowsBurstUpToCapacity(t *testing.T) {
	tb := NewTokenBucket(0.001, 2)

	if !tb.Allow() || !tb.Allow() {
		t.Fatal("Expected the initial burst to be allowed up to capacity")
	}
	if tb.Allow() {
		t.Error("Expected the request beyond capacity to be denied")
	}
}

func TestTokenBucketRefills(t *testing.T) {
	tb := NewTokenBucket(1000, 1)

	if !tb.Allow() {
		t.Fatal("Expected the first request to be allowed")
	}
	// At 1000 tokens/s the bucket refills within a millisecond; spin until a
	// token is available again.
	allowed := false
	for i := 0; i < 100000; i++ {
		if tb.Allow() {
			allowed = true
			break
		}
	}
	if !allowed {
		t.Error("Expected the bucket to refill over time")
	}
}
