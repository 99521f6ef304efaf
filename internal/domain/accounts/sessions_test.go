package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"vetco/internal/ports/auth"
)

type fakeVerifier struct {
	verifyCalls int
	failAll     bool
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	f.verifyCalls++
	if f.failAll {
		return auth.Claims{}, errors.New("invalid token")
	}
	return auth.Claims{UserID: "uid-for-" + token}, nil
}

func TestSessionCache_HitAvoidsUpstream(t *testing.T) {
	fv := &fakeVerifier{}
	cache := NewSessionCache(fv)

	// primer Resolve: miss => verifica upstream
	if _, ok := cache.Resolve(context.Background(), "tok-1"); !ok {
		t.Fatalf("expected resolve to succeed")
	}
	if fv.verifyCalls != 1 {
		t.Fatalf("expected 1 verify call, got %d", fv.verifyCalls)
	}

	// segundo Resolve dentro del TTL: hit => sin red
	if _, ok := cache.Resolve(context.Background(), "tok-1"); !ok {
		t.Fatalf("expected cached resolve to succeed")
	}
	if fv.verifyCalls != 1 {
		t.Fatalf("cache hit must not hit upstream, got %d calls", fv.verifyCalls)
	}
}

func TestSessionCache_ExpiredEntryReverifies(t *testing.T) {
	fv := &fakeVerifier{}
	cache := NewSessionCache(fv)

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Resolve(context.Background(), "tok-1")

	// pasa el TTL
	current = current.Add(defaultSessionTTL + time.Second)

	cache.Resolve(context.Background(), "tok-1")
	if fv.verifyCalls != 2 {
		t.Fatalf("expired entry must re-verify, got %d calls", fv.verifyCalls)
	}
}

func TestSessionCache_FailedVerifyInvalidates(t *testing.T) {
	fv := &fakeVerifier{failAll: true}
	cache := NewSessionCache(fv)

	if _, ok := cache.Resolve(context.Background(), "tok-bad"); ok {
		t.Fatalf("expected resolve to fail for rejected token")
	}

	// Put manual y luego verificación fallida: queda invalidado
	cache.Put("tok-2", auth.Claims{UserID: "uid-2"})
	cache.Invalidate("tok-2")
	if _, e := cache.entries["tok-2"]; e {
		t.Fatalf("invalidated token still cached")
	}
}

func TestSessionCache_NilIsNoOp(t *testing.T) {
	var cache *SessionCache

	// modo dev: no hay cache; Put/Invalidate no deben explotar
	cache.Put("tok", auth.Claims{UserID: "uid"})
	cache.Invalidate("tok")
}
