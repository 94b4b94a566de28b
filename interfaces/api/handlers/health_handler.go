package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"tasktrack/pkg/logger"
)

// HealthCheck one dependency probed by GET /health
type HealthCheck struct {
	Name string
	// Required failing turns the response into a 503
	Required bool
	Check    func(ctx context.Context) error
}

// JobStatus one scheduled job as reported by GET /health
type JobStatus struct {
	Cron    string     `json:"cron"`
	Active  bool       `json:"active"`
	LastRun *time.Time `json:"lastRun,omitempty"`
	NextRun *time.Time `json:"nextRun,omitempty"`
}

type HealthHandler struct {
	appName string
	checks  []HealthCheck
	jobs    func() map[string]JobStatus
	timeout time.Duration
}

func NewHealthHandler(appName string, jobs func() map[string]JobStatus, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		appName: appName,
		checks:  checks,
		jobs:    jobs,
		timeout: 3 * time.Second,
	}
}

type componentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	status := "ok"
	code := fiber.StatusOK
	components := make(map[string]componentStatus, len(h.checks))

	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			logger.WarnContext(ctx, "Health check failed", "component", check.Name, "error", err)
			components[check.Name] = componentStatus{Status: "down", Error: err.Error()}
			if check.Required {
				status = "unavailable"
				code = fiber.StatusServiceUnavailable
			} else if status == "ok" {
				status = "degraded"
			}
			continue
		}
		components[check.Name] = componentStatus{Status: "up"}
	}

	body := fiber.Map{
		"status":     status,
		"service":    h.appName,
		"components": components,
		"time":       time.Now().UTC().Format(time.RFC3339),
	}
	if h.jobs != nil {
		body["jobs"] = h.jobs()
	}
	return c.Status(code).JSON(body)
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to " + h.appName + " API",
		"version": "1.0.0",
		"docs":    "/api/v1",
		"health":  "/health",
	})
}
