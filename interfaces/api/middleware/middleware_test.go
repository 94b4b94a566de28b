package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tasktrack/pkg/utils"
)

type fakeValidator struct {
	ValidateTokenFunc func(ctx context.Context, token string) (*utils.UserContext, error)
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (*utils.UserContext, error) {
	return f.ValidateTokenFunc(ctx, token)
}

type fakeVerifier struct {
	VerifySignatureFunc func(path, expires, signature string) error
}

func (f *fakeVerifier) VerifySignature(path, expires, signature string) error {
	return f.VerifySignatureFunc(path, expires, signature)
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, _ := io.ReadAll(resp.Body)
	var body utils.Response
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == nil {
		return ""
	}
	return body.Error.Message
}

func TestProtected(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{ValidateTokenFunc: func(ctx context.Context, token string) (*utils.UserContext, error) {
		switch token {
		case "good":
			return &utils.UserContext{ID: userID, Role: "user"}, nil
		case "old":
			return nil, utils.ErrExpiredToken
		case "revoked":
			return nil, errors.New("token revoked")
		}
		return nil, utils.ErrInvalidToken
	}}

	app := fiber.New()
	app.Get("/me", Protected(validator), func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return err
		}
		return c.SendString(user.ID.String())
	})

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"valid", "Bearer good", http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "Missing authorization header"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "Invalid authorization header format"},
		{"expired", "Bearer old", http.StatusUnauthorized, "Token has expired"},
		{"invalid", "Bearer junk", http.StatusUnauthorized, "Invalid token"},
		{"revoked", "Bearer revoked", http.StatusUnauthorized, "Token validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				raw, _ := io.ReadAll(resp.Body)
				if string(raw) != userID.String() {
					t.Errorf("body = %q, want the user id", raw)
				}
				return
			}
			if got := errorMessage(t, resp); got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-Test-Role"); role != "" {
			c.Locals("user", &utils.UserContext{ID: uuid.New(), Role: role})
		}
		return c.Next()
	})
	app.Get("/users", AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"user", http.StatusForbidden},
		{"", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		if tt.role != "" {
			req.Header.Set("X-Test-Role", tt.role)
		}
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("role %q: status = %d, want %d", tt.role, resp.StatusCode, tt.want)
		}
	}
}

func TestSignedFiles(t *testing.T) {
	var seen string
	verifier := &fakeVerifier{VerifySignatureFunc: func(path, expires, signature string) error {
		seen = path
		if expires == "1700000000" && signature == "ok" {
			return nil
		}
		return errors.New("bad signature")
	}}

	app := fiber.New()
	app.Use("/files", SignedFiles("/files", verifier))
	app.Get("/files/*", func(c *fiber.Ctx) error {
		return c.SendString("content")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/files/tasks/t1/report%20final.pdf?expires=1700000000&signature=ok", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("signed request status = %d, want 200", resp.StatusCode)
	}
	if seen != "/tasks/t1/report final.pdf" {
		t.Errorf("verified path = %q", seen)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/files/tasks/t1/a.pdf?expires=1700000000&signature=forged", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("forged request status = %d, want 403", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); !strings.Contains(msg, "signature") {
		t.Errorf("message = %q", msg)
	}
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestIDFromContext(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(raw) != "abc-123" || resp.Header.Get(RequestIDHeader) != "abc-123" {
		t.Errorf("reused id: body = %q, header = %q", raw, resp.Header.Get(RequestIDHeader))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("oversized id should be replaced, got %q", resp.Header.Get(RequestIDHeader))
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("kaboom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	var body utils.Response
	_ = json.Unmarshal(raw, &body)
	if resp.StatusCode != http.StatusNotFound || body.Error == nil || body.Error.Code != utils.ErrCodeNotFound {
		t.Errorf("404: status = %d, body = %s", resp.StatusCode, raw)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError || strings.Contains(string(raw), "kaboom") {
		t.Errorf("500: status = %d, body = %s", resp.StatusCode, raw)
	}
}
