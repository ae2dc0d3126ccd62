package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetOrComputeIdempotentWithinTTL(t *testing.T) {
	c := New[string](10 * time.Minute)

	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrCompute("springfield\x00metric", compute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "value" {
			t.Fatalf("got %q, want %q", got, "value")
		}
	}

	if calls != 1 {
		t.Errorf("compute calls = %d, want 1", calls)
	}
}

func TestGetOrComputeRecomputesAfterTTL(t *testing.T) {
	c := New[int](10 * time.Minute)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	calls := 0
	compute := func() (int, error) {
		calls++
		return calls, nil
	}

	if v, _ := c.GetOrCompute("k", compute); v != 1 {
		t.Fatalf("first value = %d, want 1", v)
	}

	// Just inside the window: still cached.
	now = now.Add(9 * time.Minute)
	if v, _ := c.GetOrCompute("k", compute); v != 1 {
		t.Errorf("value inside TTL = %d, want cached 1", v)
	}

	// Past the window: recomputed and re-stored.
	now = now.Add(2 * time.Minute)
	if v, _ := c.GetOrCompute("k", compute); v != 2 {
		t.Errorf("value after TTL = %d, want recomputed 2", v)
	}
	if calls != 2 {
		t.Errorf("compute calls = %d, want 2", calls)
	}
}

func TestGetOrComputeErrorNotStored(t *testing.T) {
	c := New[string](time.Minute)

	wantErr := errors.New("compute failed")
	if _, err := c.GetOrCompute("k", func() (string, error) {
		return "", wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
	if c.Len() != 0 {
		t.Errorf("entries = %d, want 0 after failed compute", c.Len())
	}

	got, err := c.GetOrCompute("k", func() (string, error) {
		return "recovered", nil
	})
	if err != nil || got != "recovered" {
		t.Errorf("got %q (%v), want recovered", got, err)
	}
}

func TestPruneExpired(t *testing.T) {
	c := New[int](10 * time.Minute)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.GetOrCompute("old", func() (int, error) { return 1, nil })
	now = now.Add(5 * time.Minute)
	c.GetOrCompute("fresh", func() (int, error) { return 2, nil })

	now = now.Add(6 * time.Minute)
	if removed := c.PruneExpired(); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if c.Len() != 1 {
		t.Errorf("entries = %d, want 1", c.Len())
	}
}
