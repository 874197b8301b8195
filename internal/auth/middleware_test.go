package auth

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func newProtectedApp(tokens *TokenService) *fiber.App {
	app := fiber.New()
	app.Get("/protected", Middleware(tokens), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "no user in locals")
		}
		return c.SendString(strconv.FormatInt(id, 10))
	})
	return app
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	app := newProtectedApp(NewTokenService([]byte("s"), time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", resp.StatusCode)
	}
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	app := newProtectedApp(NewTokenService([]byte("s"), time.Hour))

	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("test: %v", err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("header %q: status %d, want 401", header, resp.StatusCode)
		}
	}
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	tokens := NewTokenService([]byte("s"), -time.Minute)
	token, err := tokens.Issue(5)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	app := newProtectedApp(tokens)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", resp.StatusCode)
	}
}

func TestMiddlewareAttachesUserID(t *testing.T) {
	tokens := NewTokenService([]byte("s"), time.Hour)
	token, err := tokens.Issue(123)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	app := newProtectedApp(tokens)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
}
