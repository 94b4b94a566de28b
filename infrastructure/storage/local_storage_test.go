package storage

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(LocalStorageConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/files/",
		Secret:   "s3cret",
	})
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}
	return s
}

func TestLocalUploadAndDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	got, err := s.UploadFile(ctx, strings.NewReader("hello"), 0, "task-1/123-notes.txt", "text/plain")
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
	if got != "http://localhost:8080/files/task-1/123-notes.txt" {
		t.Errorf("UploadFile() url = %q", got)
	}

	full := filepath.Join(s.BasePath(), "task-1", "123-notes.txt")
	raw, err := os.ReadFile(full)
	if err != nil || string(raw) != "hello" {
		t.Fatalf("stored content = %q, %v", raw, err)
	}

	if err := s.DeleteFiles(ctx, []string{"task-1/123-notes.txt", "task-1/missing.txt"}); err != nil {
		t.Fatalf("DeleteFiles() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.BasePath(), "task-1")); !os.IsNotExist(err) {
		t.Error("empty task directory should be removed")
	}
}

func TestLocalUploadRejectsTraversal(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.UploadFile(context.Background(), strings.NewReader("x"), 1, "../escape.txt", "text/plain"); err == nil {
		t.Error("UploadFile() accepted a path outside the base directory")
	}
}

func TestSignedURLVerification(t *testing.T) {
	s := newTestStorage(t)
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }

	signed, err := s.GetSignedURL(context.Background(), "task-1/report.pdf", 10*time.Minute)
	if err != nil {
		t.Fatalf("GetSignedURL() error = %v", err)
	}
	u, err := url.Parse(signed)
	if err != nil {
		t.Fatal(err)
	}
	if u.Path != "/files/task-1/report.pdf" {
		t.Errorf("path = %q", u.Path)
	}
	expires, signature := u.Query().Get("expires"), u.Query().Get("signature")
	if expires != "1700000600" {
		t.Errorf("expires = %q, want now+10m", expires)
	}

	tests := []struct {
		name      string
		path      string
		expires   string
		signature string
		at        time.Time
		wantErr   bool
	}{
		{"valid", "/task-1/report.pdf", expires, signature, now, false},
		{"valid at expiry", "task-1/report.pdf", expires, signature, now.Add(10 * time.Minute), false},
		{"expired", "/task-1/report.pdf", expires, signature, now.Add(11 * time.Minute), true},
		{"other file", "/task-1/other.pdf", expires, signature, now, true},
		{"extended expiry", "/task-1/report.pdf", "1800000000", signature, now, true},
		{"garbage expiry", "/task-1/report.pdf", "soon", signature, now, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := tt.at
			s.now = func() time.Time { return at }
			err := s.VerifySignature(tt.path, tt.expires, tt.signature)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifySignature() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClampExpiry(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{0, time.Second},
		{-time.Hour, time.Second},
		{time.Hour, time.Hour},
		{30 * 24 * time.Hour, maxPresignExpiry},
	}
	for _, tt := range tests {
		if got := clampExpiry(tt.in); got != tt.want {
			t.Errorf("clampExpiry(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
