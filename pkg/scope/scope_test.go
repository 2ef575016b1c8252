package scope_test

import (
	"errors"
	"testing"
	"time"

	"push-to-memory/pkg/scope"
)

func TestManager_RoundTrip(t *testing.T) {
	m := scope.New("test-secret", time.Hour)

	token, err := m.CreateToken("user-1")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	payload, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if payload.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", payload.UserID)
	}
}

func TestManager_Rejects(t *testing.T) {
	m := scope.New("test-secret", time.Hour)
	other := scope.New("other-secret", time.Hour)

	foreign, _ := other.CreateToken("user-1")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", foreign},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(tt.token); !errors.Is(err, scope.ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}

	if _, err := m.CreateToken(""); !errors.Is(err, scope.ErrMissingUser) {
		t.Errorf("expected ErrMissingUser, got %v", err)
	}
}

func TestManager_Expired(t *testing.T) {
	m := scope.New("test-secret", time.Nanosecond)
	token, err := m.CreateToken("user-1")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)

	if _, err := m.Verify(token); err == nil {
		t.Errorf("expected expired token to be rejected")
	}
}
