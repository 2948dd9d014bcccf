package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewManager_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewManager("")
	if !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	m, err := NewManager("super-secret")
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	tok, expiresAt, err := m.Issue(42, "alice@x.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if got := time.Until(expiresAt); got < 59*time.Minute || got > time.Hour {
		t.Fatalf("expiry out of expected window: %v", got)
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID mismatch: got %d want 42", claims.UserID)
	}
	if claims.Email != "alice@x.com" {
		t.Fatalf("Email mismatch: got %q", claims.Email)
	}
}

func TestParse_ZeroTTLIsExpired(t *testing.T) {
	t.Parallel()

	m, _ := NewManager("secret")
	tok, _, err := m.Issue(1, "u@x.com", 0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = m.Parse(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer, _ := NewManager("right-secret")
	verifier, _ := NewManager("wrong-secret")

	tok, _, err := issuer.Issue(1, "u@x.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Parse(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParse_TamperedSignature(t *testing.T) {
	t.Parallel()

	m, _ := NewManager("secret")
	tok, _, err := m.Issue(1, "u@x.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip the last signature character.
	last := tok[len(tok)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := tok[:len(tok)-1] + string(flipped)

	_, err = m.Parse(tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestParse_MalformedString(t *testing.T) {
	t.Parallel()

	m, _ := NewManager("secret")
	for _, tok := range []string{"", "not.a.jwt", strings.Repeat("x", 100)} {
		if _, err := m.Parse(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}
