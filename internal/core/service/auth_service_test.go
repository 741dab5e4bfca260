package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skillswap/skillswap-api/internal/core/domain"
)

const testSecret = "test-secret"

func TestAuthService_Register_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a generated id")
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	for _, c := range []struct{ username, email, password string }{
		{"", "a@example.com", "secret123"},
		{"alice", "", "secret123"},
		{"alice", "a@example.com", ""},
	} {
		_, err := svc.Register(context.Background(), c.username, c.email, c.password)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%+v: expected ErrInvalidCredentials, got %v", c, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "alice", "other@example.com", "secret123")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_RoundTrip(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	registered, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Errorf("expected sub %s, got %v", registered.ID, claims["sub"])
	}
	if claims["username"] != "alice" {
		t.Errorf("expected username claim alice, got %v", claims["username"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost", "secret123")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
