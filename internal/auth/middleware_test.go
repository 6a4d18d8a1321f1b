package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-soultrip/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

func TestRequireSession(t *testing.T) {
	svc := NewService("secret", nil, testRedis(t))

	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	app.Get("/private", RequireSession(svc), func(c *fiber.Ctx) error {
		if CurrentUserID(c) != 42 {
			return fiber.NewError(fiber.StatusInternalServerError, "wrong user id")
		}
		return c.SendStatus(http.StatusOK)
	})

	// missing cookie
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}

	// garbage cookie
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}

	// live session
	token, err := svc.createSession(context.Background(), 42)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok, got %d", resp.StatusCode)
	}
}
