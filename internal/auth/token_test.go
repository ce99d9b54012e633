package auth

import (
	"errors"
	"testing"
	"time"

	"vetclinic/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService("test-secret")

	token, err := ts.Issue(42, domain.RoleVeterinarian)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	ident, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if ident.UserID != 42 {
		t.Fatalf("user id: got %d want 42", ident.UserID)
	}
	if ident.Role != domain.RoleVeterinarian {
		t.Fatalf("role: got %q", ident.Role)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	token, err := issuer.Issue(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected signature error, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), TTL: -time.Minute}

	token, err := ts.Issue(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := ts.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	ts := NewTokenService("test-secret")

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := ts.Validate(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("input %q: expected malformed error, got %v", raw, err)
		}
	}
}

func TestTokenUnknownRoleRejected(t *testing.T) {
	ts := NewTokenService("test-secret")

	token, err := ts.Issue(1, "Janitor")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := ts.Validate(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected malformed error for unknown role, got %v", err)
	}
}
