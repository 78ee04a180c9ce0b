package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("507f1f77bcf86cd799439011", "alice", "Staff", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken() error: %v", err)
	}

	if claims.UserID != "507f1f77bcf86cd799439011" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "507f1f77bcf86cd799439011")
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
	if claims.Role != "Staff" {
		t.Errorf("Role = %q, want %q", claims.Role, "Staff")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("id", "alice", "Guest", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	if _, err := ParseToken(token, []byte("other-secret")); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("id", "alice", "Guest", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	if _, err := ParseToken(token, testSecret); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token", testSecret); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("s3cret!Pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "s3cret!Pass" {
		t.Error("hash must not equal plaintext")
	}

	if !CheckPassword(hash, "s3cret!Pass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
}
