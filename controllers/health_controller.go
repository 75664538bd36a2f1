package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthController answers the liveness probe with storage
// connectivity included.
type HealthController struct {
	client  *mongo.Client
	started time.Time
}

func NewHealthController(client *mongo.Client) *HealthController {
	return &HealthController{
		client:  client,
		started: time.Now(),
	}
}

// Health handles GET /api/health: 200 when MongoDB answers a ping,
// 503 otherwise.
func (hc *HealthController) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	database := "connected"
	code := http.StatusOK

	if err := hc.client.Ping(ctx, nil); err != nil {
		status = "degraded"
		database = "disconnected"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, echo.Map{
		"status":    status,
		"database":  database,
		"uptime":    time.Since(hc.started).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
