package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	user := UserContext{ID: uuid.New(), Username: "ada", Email: "ada@example.com", Role: "user"}
	now := time.Now()

	signed, err := GenerateToken(user, TokenTypeAccess, testSecret, 15*time.Minute, now)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	got, err := ValidateTokenStringToUUID(signed.Token, testSecret)
	if err != nil {
		t.Fatalf("ValidateTokenStringToUUID() error = %v", err)
	}
	if got.ID != user.ID || got.Email != user.Email || got.TokenID != signed.ID {
		t.Errorf("claims = %+v, want user %+v with jti %s", got, user, signed.ID)
	}
	if got.ExpiresAt.Unix() != signed.ExpiresAt.Unix() {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, signed.ExpiresAt)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	user := UserContext{ID: uuid.New()}
	now := time.Now()

	refresh, _ := GenerateToken(user, TokenTypeRefresh, testSecret, time.Hour, now)
	expired, _ := GenerateToken(user, TokenTypeAccess, testSecret, time.Minute, now.Add(-time.Hour))
	access, _ := GenerateToken(user, TokenTypeAccess, testSecret, time.Hour, now)

	tests := []struct {
		name   string
		token  string
		secret string
		want   error
	}{
		{"empty", "", testSecret, ErrMissingToken},
		{"refresh used as access", refresh.Token, testSecret, ErrInvalidToken},
		{"expired", expired.Token, testSecret, ErrExpiredToken},
		{"wrong secret", access.Token, "other", ErrInvalidToken},
		{"garbage", "not.a.jwt", testSecret, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateTokenStringToUUID(tt.token, tt.secret)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ValidateTokenOfType(refresh.Token, testSecret, TokenTypeRefresh); err != nil {
		t.Errorf("refresh token rejected as refresh: %v", err)
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := map[string]string{
		"Bearer abc": "abc",
		"bearer abc": "",
		"Bearer":     "",
		"Token abc":  "",
		"":           "",
		"Bearer a b": "",
	}
	for header, want := range tests {
		if got := ExtractTokenFromHeader(header); got != want {
			t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestDomainValidationTags(t *testing.T) {
	type payload struct {
		Priority string `json:"priority" validate:"omitempty,priority"`
		Column   string `json:"columnId" validate:"omitempty,column"`
		Unit     string `json:"unit" validate:"omitempty,reminder_unit"`
		Color    string `json:"color" validate:"omitempty,category_color"`
	}

	if err := ValidateStruct(payload{Priority: "Urgente", Column: "done", Unit: "hours", Color: "pink"}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	err := ValidateStruct(payload{Priority: "High", Column: "later", Unit: "weeks", Color: "teal"})
	errs := GetValidationErrors(err)
	if len(errs) != 4 {
		t.Fatalf("got %d errors, want 4: %+v", len(errs), errs)
	}
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"priority", "columnId", "unit", "color"} {
		if !fields[f] {
			t.Errorf("missing error for %s in %+v", f, errs)
		}
	}
}

func TestBuildAttachmentPath(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"slugged", "Report Final.PDF", "t1/1700000000000-report-final.pdf"},
		{"path stripped", "../../etc/passwd", "t1/1700000000000-passwd"},
		{"no base", ".pdf", "t1/1700000000000-file.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildAttachmentPath("t1", tt.in, now); got != tt.want {
				t.Errorf("BuildAttachmentPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
