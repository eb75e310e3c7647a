package middleware_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/wortquiz/progression/internal/config"
	"github.com/wortquiz/progression/internal/middleware"
)

// TestVersionMiddleware tests header parsing and version aliases
func TestVersionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.VersionMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})

	tests := []struct {
		header string
		want   string
	}{
		{"", "1.0.0"},
		{"1", "1.0.0"},
		{"1.0", "1.0.0"},
		{"1.0.0", "1.0.0"},
		{"2.3.1", "2.3.1"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			req.Header.Set("X-Api-Version", tt.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		if got := string(body); got != tt.want {
			t.Errorf("header %q resolved to %q, want %q", tt.header, got, tt.want)
		}
	}
}

// TestAuthUserDisabled tests the pass-through when no authorizer is configured
func TestAuthUserDisabled(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.AuthUser(&config.Config{}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status 200 without auth configured, got %d", resp.StatusCode)
	}
}
