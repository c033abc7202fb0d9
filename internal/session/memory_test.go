package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(30)
	ctx := context.Background()

	token, err := s.Create(ctx, Identity{UserID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	id, ok, err := s.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || id.UserID != 1 || id.Username != "alice" {
		t.Fatalf("unexpected identity: ok=%v id=%+v", ok, id)
	}
}

func TestMemoryStoreTokensAreUnique(t *testing.T) {
	s := NewMemoryStore(30)
	ctx := context.Background()

	t1, err := s.Create(ctx, Identity{UserID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	t2, err := s.Create(ctx, Identity{UserID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if t1 == t2 {
		t.Fatal("expected distinct tokens for separate sessions")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore(30)
	ctx := context.Background()

	token, err := s.Create(ctx, Identity{UserID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Delete(ctx, token); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, token); ok {
		t.Fatal("expected deleted session to stop resolving")
	}
	// Deleting again is not an error.
	if err := s.Delete(ctx, token); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	s := NewMemoryStore(30)

	if _, ok, err := s.Get(context.Background(), "no-such-token"); ok || err != nil {
		t.Fatalf("expected anonymous resolution, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(30)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }

	token, err := s.Create(ctx, Identity{UserID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Just before the deadline the session still resolves.
	s.now = func() time.Time { return base.Add(29 * time.Minute) }
	if _, ok, _ := s.Get(ctx, token); !ok {
		t.Fatal("expected session to resolve before expiry")
	}

	// Past the deadline it is gone, and the entry is dropped.
	s.now = func() time.Time { return base.Add(31 * time.Minute) }
	if _, ok, _ := s.Get(ctx, token); ok {
		t.Fatal("expected session to expire")
	}
	s.mu.Lock()
	_, still := s.data[token]
	s.mu.Unlock()
	if still {
		t.Fatal("expected expired entry to be removed")
	}
}
