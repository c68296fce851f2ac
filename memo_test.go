package tiercache

import (
	"context"
	"errors"
	"testing"
)

// TestMemoizeComputesOnce: invoking the wrapped form twice with identical
// arguments runs the computation exactly once.
func TestMemoizeComputesOnce(t *testing.T) {
	ctx := context.Background()
	cc, _ := newTestCache(t, nil)

	calls := 0
	lookup := Memoize(cc, "ranked", func(_ context.Context, args Args) (string, error) {
		calls++
		return "ranked-" + args["user"].(string), nil
	})

	for i := 0; i < 2; i++ {
		got, err := lookup(ctx, Args{"user": "u1"})
		if err != nil || got != "ranked-u1" {
			t.Fatalf("call %d: got=%q err=%v", i, got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("computation should run once, ran %d times", calls)
	}

	// A different argument set is a different key.
	if _, err := lookup(ctx, Args{"user": "u2"}); err != nil {
		t.Fatalf("lookup u2: %v", err)
	}
	if calls != 2 {
		t.Fatalf("distinct args should recompute, ran %d times", calls)
	}
}

// TestMemoizeDoesNotCacheErrors: a failed computation is retried on the
// next call rather than poisoning the cache.
func TestMemoizeDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	cc, _ := newTestCache(t, nil)

	boom := errors.New("upstream down")
	calls := 0
	lookup := Memoize(cc, "ranked", func(context.Context, Args) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "ok", nil
	})

	if _, err := lookup(ctx, Args{"id": 1}); !errors.Is(err, boom) {
		t.Fatalf("expected computation error, got %v", err)
	}
	got, err := lookup(ctx, Args{"id": 1})
	if err != nil || got != "ok" {
		t.Fatalf("retry: got=%q err=%v", got, err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 invocations, got %d", calls)
	}
}

func TestMemoizePropagatesKeyErrors(t *testing.T) {
	ctx := context.Background()
	cc, _ := newTestCache(t, nil)

	lookup := Memoize(cc, "ranked", func(context.Context, Args) (string, error) {
		t.Fatalf("computation must not run when the key is underivable")
		return "", nil
	})

	var kerr *KeyEncodingError
	if _, err := lookup(ctx, Args{"f": func() {}}); !errors.As(err, &kerr) {
		t.Fatalf("expected *KeyEncodingError, got %v", err)
	}
}

func TestPositionalArgs(t *testing.T) {
	a := PositionalArgs("u1", 10, true)
	if len(a) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(a))
	}
	if a["0"] != "u1" || a["1"] != 10 || a["2"] != true {
		t.Fatalf("unexpected mapping: %v", a)
	}

	// Positional sets feed the same canonicalization as named args.
	k1, err := encodeKey("ns", PositionalArgs("a", "b"))
	if err != nil {
		t.Fatalf("encodeKey: %v", err)
	}
	k2, _ := encodeKey("ns", PositionalArgs("b", "a"))
	if k1 == k2 {
		t.Fatalf("swapped positional values must produce different keys")
	}
}
