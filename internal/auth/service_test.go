package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, password string) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return NewService("test-secret", string(hash))
}

func TestLoginAndValidate(t *testing.T) {
	svc := newTestService(t, "correct horse")

	result, err := svc.Login("correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("empty token")
	}
	if !strings.HasPrefix(result.SessionID, "sess_") {
		t.Errorf("sessionID = %q, want sess_ prefix", result.SessionID)
	}

	sessionID, err := svc.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sessionID != result.SessionID {
		t.Errorf("token subject = %q, want %q", sessionID, result.SessionID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t, "correct horse")

	_, err := svc.Login("battery staple")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService(t, "pw")

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token validated")
	}

	// Tokens from another secret fail too.
	other := NewService("other-secret", "")
	result, err := newTestService(t, "pw2").Login("pw2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := other.ValidateToken(result.Token); err == nil {
		t.Error("cross-secret token validated")
	}
}

func TestOpenService(t *testing.T) {
	svc := NewService("secret", "")
	if !svc.Open() {
		t.Fatal("service with no hash should be open")
	}
	if _, err := svc.Login("anything"); err == nil {
		t.Error("login on an open service should fail")
	}
}
