package application

import (
	"testing"
	"time"

	"sku-gateway/sku/domain"
)

type fakeLimiter struct {
	allow bool
}

func (f fakeLimiter) Allow() bool { return f.allow }

type fakeStore struct {
	lim domain.Limiter
}

func (s fakeStore) Get(domain.Key) domain.Limiter { return s.lim }

func TestThrottle_Decide_AllowsWhenNoStore(t *testing.T) {
	dec := Throttle{}.Decide("k")
	if !dec.Allowed {
		t.Fatalf("expected allowed")
	}
	if dec.RetryAfter != 0 {
		t.Fatalf("expected RetryAfter=0 when allowed, got %s", dec.RetryAfter)
	}
}

func TestThrottle_Decide_AllowsWhenStoreHasNoLimiter(t *testing.T) {
	dec := Throttle{Store: fakeStore{}}.Decide("k")
	if !dec.Allowed {
		t.Fatalf("expected allowed")
	}
}

func TestThrottle_Decide_AllowsWhenLimiterAllows(t *testing.T) {
	th := Throttle{Store: fakeStore{lim: fakeLimiter{allow: true}}, RetryAfter: 5 * time.Second}
	if dec := th.Decide("k"); !dec.Allowed {
		t.Fatalf("expected allowed")
	}
}

func TestThrottle_Decide_BlocksWithRetryAfterDefault(t *testing.T) {
	dec := Throttle{Store: fakeStore{lim: fakeLimiter{allow: false}}}.Decide("k")
	if dec.Allowed {
		t.Fatalf("expected blocked")
	}
	if dec.RetryAfter != time.Second {
		t.Fatalf("expected default RetryAfter=1s, got %s", dec.RetryAfter)
	}
}

func TestThrottle_Decide_BlocksWithConfiguredRetryAfter(t *testing.T) {
	th := Throttle{Store: fakeStore{lim: fakeLimiter{allow: false}}, RetryAfter: 2500 * time.Millisecond}
	dec := th.Decide("k")
	if dec.Allowed {
		t.Fatalf("expected blocked")
	}
	if dec.RetryAfter != 2500*time.Millisecond {
		t.Fatalf("expected RetryAfter=2.5s, got %s", dec.RetryAfter)
	}
}
