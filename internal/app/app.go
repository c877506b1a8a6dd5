// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/construsol/proposal-service/config"
	"github.com/construsol/proposal-service/internal/catalog"
	"github.com/construsol/proposal-service/internal/http"
)

// InitializeApp creates and wires all application dependencies. The
// returned cleanup stops the audit recorder and closes the database; call
// it after the server has shut down.
func InitializeApp(cfg config.Config) (*gin.Engine, func()) {
	// Initialize logger first (needed by other components)
	InitializeLogger()

	// Initialize database components (repositories, audit, circuit breakers)
	dbComponents := InitializeDatabase(cfg.Database, cfg.Audit)

	// Initialize the pipeline over the database catalog, or the seeded
	// in-memory one when the database is unavailable.
	var source catalog.Catalog
	if dbComponents != nil {
		source = dbComponents.Products
	}
	engine := InitializeEngine(cfg, source)

	// Initialize router components (handlers and configuration)
	routerComponents := InitializeRouter(engine, dbComponents, cfg)

	router := http.NewRouter(routerComponents.Routes, routerComponents.HealthHandler, routerComponents.Config)

	cleanup := func() {
		if dbComponents == nil {
			return
		}
		if dbComponents.AuditRecorder != nil {
			dbComponents.AuditRecorder.Stop()
		}
		_ = dbComponents.DB.Close(context.Background())
	}

	return router, cleanup
}
