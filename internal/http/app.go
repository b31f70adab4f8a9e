// Package http wires domain modules into the gin engine.
package http

import (
	"context"
	"net/http"

	"propboost_backend/platform/config"
	"propboost_backend/platform/logger"
)

// RouterConfig is the slice of configuration the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is assembled by the composition root and handed to router.New.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health backs /api/health; nil reports ok without a database check.
	Health HealthChecker
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	Modules []Module
}
