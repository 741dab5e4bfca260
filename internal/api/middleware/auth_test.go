package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func invoke(authHeader string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/skills", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestAuth_ValidTokenSetsIdentity(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":      "user_1",
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	c, err := invoke("Bearer " + token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Get("user_id"); got != "user_1" {
		t.Errorf("expected user_id user_1, got %v", got)
	}
	if got := c.Get("username"); got != "alice" {
		t.Errorf("expected username alice, got %v", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := invoke("")
	assertUnauthorized(t, err)
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, err := invoke("Token abc")
	assertUnauthorized(t, err)
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user_1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := invoke("Bearer " + token)
	assertUnauthorized(t, err)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user_1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	_, err := invoke("Bearer " + token)
	assertUnauthorized(t, err)
}

func TestAuth_TokenWithoutSubject(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	_, err := invoke("Bearer " + token)
	assertUnauthorized(t, err)
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", httpErr.Code)
	}
}
