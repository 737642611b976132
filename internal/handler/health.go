package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is the minimal contract I need from a dependency to check readiness.
// I keep it local to the handler package to avoid coupling and simplify tests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function, e.g. a redis client ping, to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Check is one named readiness dependency.
type Check struct {
	Name   string
	Pinger Pinger
}

// HealthHandler exposes liveness and readiness endpoints.
type HealthHandler struct {
	checks []Check
}

// NewHealthHandler wires the storage pinger plus any optional extras
// (the event feed) that must answer before the service is ready.
func NewHealthHandler(store Pinger, extra ...Check) *HealthHandler {
	checks := make([]Check, 0, 1+len(extra))
	if store != nil {
		checks = append(checks, Check{Name: "store", Pinger: store})
	}
	checks = append(checks, extra...)
	return &HealthHandler{checks: checks}
}

// Liveness responds OK if the process is up; it doesn't check dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness pings every dependency in order and reports each one.
func (h *HealthHandler) Readiness(c *gin.Context) {
	status := http.StatusOK
	results := make(gin.H, len(h.checks))
	for _, chk := range h.checks {
		if err := chk.Pinger.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			results[chk.Name] = err.Error()
			continue
		}
		results[chk.Name] = "ok"
	}
	if status != http.StatusOK {
		c.JSON(status, gin.H{"status": "unavailable", "checks": results})
		return
	}
	c.JSON(status, gin.H{"status": "ready", "checks": results})
}
