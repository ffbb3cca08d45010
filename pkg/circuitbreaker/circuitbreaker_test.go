package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func failing() error { return errBoom }
func succeeding() error { return nil }

func TestOpensAfterFailureThreshold(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    3,
		SuccessThreshold:    1,
		Timeout:             time.Minute,
		HalfOpenMaxRequests: 1,
	})

	for i := 0; i < 3; i++ {
		if err := cb.Execute(failing); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: got %v, want errBoom", i, err)
		}
	}

	if err := cb.Execute(succeeding); !errors.Is(err, ErrCircuitBreakerOpen) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if cb.GetState() != StateOpen {
		t.Errorf("state = %v, want StateOpen", cb.GetState())
	}
}

func TestTripIsImmediate(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    2,
		SuccessThreshold:    1,
		Timeout:             10 * time.Millisecond,
		HalfOpenMaxRequests: 1,
	})

	cb.Execute(failing)
	cb.Execute(failing)

	// The breaker must report Open right after the tripping failure,
	// without waiting for another Execute to observe it.
	if cb.GetState() != StateOpen {
		t.Fatalf("state = %v, want StateOpen immediately after trip", cb.GetState())
	}

	// The open window starts at the trip, so after Timeout the very next
	// call is the probe, not a rejection.
	time.Sleep(20 * time.Millisecond)
	if err := cb.Execute(succeeding); err != nil {
		t.Fatalf("first call after timeout should probe, got %v", err)
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    2,
		SuccessThreshold:    1,
		Timeout:             time.Minute,
		HalfOpenMaxRequests: 1,
	})

	cb.Execute(failing)
	cb.Execute(succeeding)
	cb.Execute(failing)

	// Two non-consecutive failures should not trip a threshold of 2.
	if err := cb.Execute(succeeding); err != nil {
		t.Fatalf("breaker should still be closed, got %v", err)
	}
}

func TestHalfOpenProbeAndRecovery(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    1,
		SuccessThreshold:    1,
		Timeout:             10 * time.Millisecond,
		HalfOpenMaxRequests: 1,
	})

	cb.Execute(failing)
	if cb.GetState() != StateOpen {
		t.Fatalf("state = %v, want StateOpen", cb.GetState())
	}

	time.Sleep(20 * time.Millisecond)

	if err := cb.Execute(succeeding); err != nil {
		t.Fatalf("probe should pass after timeout, got %v", err)
	}
	if err := cb.Execute(succeeding); err != nil {
		t.Fatalf("breaker should be closed again, got %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("state = %v, want StateClosed", cb.GetState())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    1,
		SuccessThreshold:    2,
		Timeout:             10 * time.Millisecond,
		HalfOpenMaxRequests: 1,
	})

	cb.Execute(failing)
	time.Sleep(20 * time.Millisecond)

	if err := cb.Execute(failing); !errors.Is(err, errBoom) {
		t.Fatalf("probe should run, got %v", err)
	}
	if cb.GetState() != StateOpen {
		t.Errorf("state = %v, want StateOpen after failed probe", cb.GetState())
	}
}

func TestReset(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    1,
		SuccessThreshold:    1,
		Timeout:             time.Minute,
		HalfOpenMaxRequests: 1,
	})

	cb.Execute(failing)
	cb.Reset()

	if cb.GetState() != StateClosed {
		t.Errorf("state = %v, want StateClosed after reset", cb.GetState())
	}
	if err := cb.Execute(succeeding); err != nil {
		t.Errorf("call after reset should pass, got %v", err)
	}
}
