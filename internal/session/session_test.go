package session

import (
	"context"
	"testing"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()
	if s.Active() {
		t.Fatal("new session should be inactive")
	}

	s.Begin("user-1", "token-abc")
	if !s.Active() {
		t.Fatal("session should be active after Begin")
	}
	token, ok := s.Token()
	if !ok || token != "token-abc" {
		t.Fatalf("Token() = %q, %v", token, ok)
	}
	if s.UserID() != "user-1" {
		t.Fatalf("UserID() = %q", s.UserID())
	}

	s.End()
	if s.Active() {
		t.Fatal("session should be inactive after End")
	}
	if _, ok := s.Token(); ok {
		t.Fatal("token should be cleared after End")
	}
}

func TestUserIDContext(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-9")
	userID, ok := UserIDFromContext(ctx)
	if !ok || userID != "user-9" {
		t.Fatalf("UserIDFromContext = %q, %v", userID, ok)
	}

	if _, ok := UserIDFromContext(context.Background()); ok {
		t.Fatal("expected no user id in empty context")
	}

	if _, ok := UserIDFromContext(WithUserID(context.Background(), "")); ok {
		t.Fatal("empty user id should not resolve")
	}
}
