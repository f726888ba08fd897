package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler serves the liveness and readiness probes. The mail backend
// has a single hard dependency, the mail store, so both probes reduce to
// whether it answers a ping.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// pingStore checks the connection behind the GORM handle. The returned
// reason is safe to expose in probe responses.
func (h *HealthHandler) pingStore() (string, bool) {
	sqlDB, err := h.db.DB()
	if err != nil {
		return "database connection failed", false
	}
	if err := sqlDB.Ping(); err != nil {
		return "database ping failed", false
	}
	return "", true
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	services := make(map[string]string)
	status := "healthy"
	statusCode := http.StatusOK

	if _, ok := h.pingStore(); ok {
		services["database"] = "healthy"
	} else {
		services["database"] = "unhealthy"
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, HealthResponse{
		Status:   status,
		Services: services,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	if reason, ok := h.pingStore(); !ok {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": reason,
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}
