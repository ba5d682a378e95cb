package store

import (
	"testing"
	"time"
)

func TestJWTSessionRoundTrip(t *testing.T) {
	issuer := NewJWTSessionIssuer("test-secret", time.Hour)
	token, err := issuer.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	uid, status := issuer.Verify(token)
	if status != TokenValid {
		t.Fatalf("expected valid token, got status %v", status)
	}
	if uid != "user-1" {
		t.Fatalf("expected subject user-1, got %q", uid)
	}
}

func TestJWTSessionExpiredIsTaggedExpired(t *testing.T) {
	issuer := NewJWTSessionIssuer("test-secret", -time.Minute)
	token, err := issuer.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, status := issuer.Verify(token); status != TokenExpired {
		t.Fatalf("expected expired status, got %v", status)
	}
}

func TestJWTSessionWrongSecretIsTaggedInvalid(t *testing.T) {
	issuer := NewJWTSessionIssuer("secret-a", time.Hour)
	other := NewJWTSessionIssuer("secret-b", time.Hour)
	token, err := issuer.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, status := other.Verify(token); status != TokenInvalid {
		t.Fatalf("expected invalid status for forged signature, got %v", status)
	}
}

func TestJWTSessionGarbageIsTaggedInvalid(t *testing.T) {
	issuer := NewJWTSessionIssuer("test-secret", time.Hour)
	for _, token := range []string{"", "not.a.jwt", "a.b"} {
		if _, status := issuer.Verify(token); status != TokenInvalid {
			t.Fatalf("expected invalid status for %q, got %v", token, status)
		}
	}
}
