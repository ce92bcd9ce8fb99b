package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID, "contractor", "mira")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID || claims.Role != "contractor" || claims.Username != "mira" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	token, err := svc.Generate(uuid.New(), "client", "old")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewHMACService("secret-a", time.Hour).Generate(uuid.New(), "client", "x")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewHMACService("secret-b", time.Hour).Validate(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidate_Garbage(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	if _, err := svc.Validate("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
