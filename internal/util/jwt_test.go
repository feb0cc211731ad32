package util

import (
	"testing"
	"time"

	"eduplatform_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		UID:   "u-123",
		Email: "doe jane@example.com",
		Role:  model.RoleInstructor,
	}

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT() error: %v", err)
	}

	if claims.UID != user.UID {
		t.Errorf("uid = %q, want %q", claims.UID, user.UID)
	}
	if claims.Role != model.RoleInstructor {
		t.Errorf("role = %q, want instructor", claims.Role)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{UID: "u-123", Role: model.RoleStudent}

	token, err := GenerateJWT(user, "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error: %v", err)
	}

	if _, err := ParseJWT(token, "secret-b"); err == nil {
		t.Error("ParseJWT accepted a token signed with a different secret")
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{UID: "u-123", Role: model.RoleStudent}

	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT() error: %v", err)
	}

	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Error("ParseJWT accepted an expired token")
	}
}
