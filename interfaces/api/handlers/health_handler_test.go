package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

type healthBody struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
	Jobs       map[string]JobStatus       `json:"jobs"`
}

func getHealth(t *testing.T, h *HealthHandler) (int, healthBody) {
	t.Helper()
	app := fiber.New()
	app.Get("/health", h.Health)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	var body healthBody
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     []HealthCheck
		wantCode   int
		wantStatus string
	}{
		{"all up", []HealthCheck{{Name: "database", Required: true, Check: ok}, {Name: "redis", Check: ok}}, http.StatusOK, "ok"},
		{"optional down", []HealthCheck{{Name: "database", Required: true, Check: ok}, {Name: "redis", Check: down}}, http.StatusOK, "degraded"},
		{"required down", []HealthCheck{{Name: "database", Required: true, Check: down}, {Name: "redis", Check: ok}}, http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := getHealth(t, NewHealthHandler("TaskTrack", nil, tt.checks...))
			if code != tt.wantCode || body.Status != tt.wantStatus {
				t.Errorf("got %d %q, want %d %q", code, body.Status, tt.wantCode, tt.wantStatus)
			}
			if len(body.Components) != len(tt.checks) {
				t.Errorf("components = %+v", body.Components)
			}
			if body.Jobs != nil {
				t.Errorf("jobs reported without a job source: %+v", body.Jobs)
			}
		})
	}
}

func TestHealthListsJobs(t *testing.T) {
	next := time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC)
	jobs := func() map[string]JobStatus {
		return map[string]JobStatus{"reminders.dispatch": {Cron: "*/5 * * * *", Active: true, NextRun: &next}}
	}

	_, body := getHealth(t, NewHealthHandler("TaskTrack", jobs))
	job, ok := body.Jobs["reminders.dispatch"]
	if !ok {
		t.Fatalf("jobs = %+v", body.Jobs)
	}
	if job.Cron != "*/5 * * * *" || !job.Active || job.NextRun == nil || !job.NextRun.Equal(next) {
		t.Errorf("job = %+v", job)
	}
}
