package auth

import (
	"errors"
	"testing"
	"time"
)

func testManager(expiry time.Duration) *TokenManager {
	return NewTokenManager(JWTConfig{
		Secret: "test-secret-key",
		Expiry: expiry,
		Issuer: "willowgate-test",
	})
}

func TestIssueAndVerify(t *testing.T) {
	m := testManager(time.Hour)

	token, err := m.Issue(42, "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if claims.AdminID != 42 {
		t.Errorf("admin id = %d, want 42", claims.AdminID)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q, want admin", claims.Role)
	}
	if claims.Issuer != "willowgate-test" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("token should carry a unique id")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.Issue(1, "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = m.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("got %v, want ErrExpiredToken", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := testManager(time.Hour)
	other := NewTokenManager(JWTConfig{Secret: "different-secret", Expiry: time.Hour, Issuer: "willowgate-test"})

	token, err := m.Issue(1, "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = other.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := testManager(time.Hour)

	if _, err := m.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
	if _, err := m.Verify(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestExpirySeconds(t *testing.T) {
	m := testManager(24 * time.Hour)
	if got := m.ExpirySeconds(); got != 86400 {
		t.Errorf("expiry seconds = %d, want 86400", got)
	}
}
