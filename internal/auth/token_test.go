package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != 42 {
		t.Fatalf("got user %d, want 42", userID)
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(59 * time.Minute) }
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("verify at +59m: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(61 * time.Minute) }
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("verify at +61m: got %v, want ErrTokenExpired", err)
	}
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	token, err := NewTokenService([]byte("secret-a"), time.Hour).Issue(1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc := NewTokenService([]byte("secret-b"), time.Hour)
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("got %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("Verify(%q): got %v, want ErrMalformedToken", tok, err)
		}
	}
}

func TestTokensAreIndependent(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	first, err := svc.Issue(9)
	if err != nil {
		t.Fatalf("issue first: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(10 * time.Minute) }
	second, err := svc.Issue(9)
	if err != nil {
		t.Fatalf("issue second: %v", err)
	}

	// Issuing a newer token does not invalidate the older one.
	for _, tok := range []string{first, second} {
		if _, err := svc.Verify(tok); err != nil {
			t.Fatalf("verify: %v", err)
		}
	}

	// The first expires on its own schedule, the second lives on.
	svc.now = func() time.Time { return issued.Add(65 * time.Minute) }
	if _, err := svc.Verify(first); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("first token: got %v, want ErrTokenExpired", err)
	}
	if _, err := svc.Verify(second); err != nil {
		t.Fatalf("second token: %v", err)
	}
}
