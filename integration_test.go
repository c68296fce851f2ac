package tiercache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/propsvc/tiercache/store/remote"
)

type proposition struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// End-to-end over a real wire: values survive the remote round-trip, the
// shared tier answers first, and killing the server degrades the cache to
// its local shadow without surfacing errors.
func TestTwoTierWithRedis(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	cc, err := New[proposition](Options[proposition]{
		TTL:             time.Minute,
		MaxLocalEntries: 10,
		Remote:          remote.New(remote.Config{Addr: mr.Addr()}),
		CloseRemote:     true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cc.Close(ctx)

	if !cc.Stats().RemoteConnected {
		t.Fatalf("probe against a live server should connect")
	}

	want := proposition{ID: "p1", Title: "match winner", Score: 0.87}
	args := Args{"prop_id": "p1", "user": "u1"}
	if err := cc.Set(ctx, "propositions", want, args); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// The server holds a framed entry under the derived key, with TTL.
	key, err := encodeKey("propositions", args)
	if err != nil {
		t.Fatalf("encodeKey: %v", err)
	}
	raw, err := mr.Get(key)
	if err != nil {
		t.Fatalf("entry missing from redis: %v", err)
	}
	if !strings.HasPrefix(raw, "TCHE") {
		t.Fatalf("remote entry should carry the wire envelope")
	}
	if mr.TTL(key) != time.Minute {
		t.Fatalf("remote TTL not applied, got %v", mr.TTL(key))
	}

	// Drop the local shadow; the remote tier alone must answer.
	cc.Clear()
	got, ok, err := cc.Get(ctx, "propositions", args)
	if err != nil || !ok || got != want {
		t.Fatalf("remote round-trip: got=%+v ok=%v err=%v", got, ok, err)
	}

	// Re-seed the local shadow, then kill the server: reads keep working
	// from local data and writes keep succeeding, errors absorbed.
	if err := cc.Set(ctx, "propositions", want, args); err != nil {
		t.Fatalf("Set before outage: %v", err)
	}
	mr.Close()

	got, ok, err = cc.Get(ctx, "propositions", args)
	if err != nil || !ok || got != want {
		t.Fatalf("outage fallback: got=%+v ok=%v err=%v", got, ok, err)
	}
	other := proposition{ID: "p2", Title: "total points", Score: 0.41}
	if err := cc.Set(ctx, "propositions", other, Args{"prop_id": "p2"}); err != nil {
		t.Fatalf("Set during outage must not error: %v", err)
	}
	got, ok, err = cc.Get(ctx, "propositions", Args{"prop_id": "p2"})
	if err != nil || !ok || got != other {
		t.Fatalf("local write during outage: got=%+v ok=%v err=%v", got, ok, err)
	}
}
