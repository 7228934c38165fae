package security

import (
	"errors"
	"testing"
	"time"
)

func TestSignAndParseAccessToken(t *testing.T) {
	mgr := NewJWTManager("catalog-backend", "catalog-clients", "test-secret-test-secret-32-bytes!")

	token, err := mgr.SignAccessToken(42, time.Minute)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	claims, err := mgr.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	mgr := NewJWTManager("catalog-backend", "catalog-clients", "test-secret-test-secret-32-bytes!")

	issuedAt := time.Now().Add(-time.Hour)
	mgr.now = func() time.Time { return issuedAt }
	token, err := mgr.SignAccessToken(1, time.Minute)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	mgr.now = time.Now
	if _, err := mgr.ParseAccessToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	signer := NewJWTManager("catalog-backend", "catalog-clients", "secret-a-secret-a-secret-a-32by!")
	verifier := NewJWTManager("catalog-backend", "catalog-clients", "secret-b-secret-b-secret-b-32by!")

	token, err := signer.SignAccessToken(7, time.Minute)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	if _, err := verifier.ParseAccessToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseAccessTokenWrongAudience(t *testing.T) {
	signer := NewJWTManager("catalog-backend", "other-clients", "test-secret-test-secret-32-bytes!")
	verifier := NewJWTManager("catalog-backend", "catalog-clients", "test-secret-test-secret-32-bytes!")

	token, err := signer.SignAccessToken(7, time.Minute)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	if _, err := verifier.ParseAccessToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hashing failed: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := VerifyPassword(hash, "hunter22"); err != nil {
		t.Fatalf("verify failed for correct password: %v", err)
	}
	if err := VerifyPassword(hash, "hunter23"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}
