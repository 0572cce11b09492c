package service

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("s1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.SessionID != "s1" {
		t.Fatalf("expected session s1, got %q", claims.SessionID)
	}
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, _ := NewTokenService("one", time.Hour).Issue("s1")

	if _, err := NewTokenService("two", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }
	token, _ := svc.Issue("s1")

	svc.now = time.Now
	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
