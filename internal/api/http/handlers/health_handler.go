package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/harmony-ledger/harmony/internal/api/dto"
	"github.com/harmony-ledger/harmony/internal/clock"
	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    Pinger
	redis       Pinger
	clock       clock.Clock
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres, redis Pinger, clk clock.Clock) *HealthHandler {
	if clk == nil {
		clk = clock.New()
	}
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis, clock: clk}
}

// Ping handles GET /ping.
func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	return apperrors.OK(c, dto.PingResponse{Timestamp: clock.NowMillis(h.clock)})
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return apperrors.OK(c, fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := map[string]any{}
	ready := true

	for name, dep := range map[string]Pinger{"postgres": h.postgres, "redis": h.redis} {
		if err := dep.Ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
			continue
		}
		depStatus[name] = "ok"
	}

	if ready {
		return apperrors.OK(c, fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return apperrors.NewDomainError("DEPENDENCY_UNAVAILABLE", "one or more dependencies unavailable", http.StatusServiceUnavailable, depStatus)
}
