// Package app provides router configuration.
package app

import (
	"github.com/construsol/proposal-service/config"
	"github.com/construsol/proposal-service/internal/composition"
	"github.com/construsol/proposal-service/internal/http"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Routes        *http.ProposalRoutes
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
// Composition and catalog management routes exist only when the database
// is available; quote computation always works.
func InitializeRouter(
	engine *EngineComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var handlerOpts []http.HandlerOption
	if dbComponents != nil {
		if dbComponents.AuditRecorder != nil {
			handlerOpts = append(handlerOpts, http.WithAuditRecorder(dbComponents.AuditRecorder))
		}
		if dbComponents.AuditService != nil {
			handlerOpts = append(handlerOpts, http.WithAuditService(dbComponents.AuditService))
		}
	}

	quotes := http.NewHandler(engine.Orchestrator, engine.Pipeline, engine.Registry, handlerOpts...)

	var compositionsHandler *http.CompositionsHandler
	var catalogHandler *http.CatalogHandler
	if dbComponents != nil {
		aggregator := composition.NewAggregator(dbComponents.Compositions, engine.Catalog)
		compositionsHandler = http.NewCompositionsHandler(aggregator)
		catalogHandler = http.NewCatalogHandler(dbComponents.Products, engine.Cache)
	}

	healthHandler := http.NewHealthHandler()
	if dbComponents != nil {
		healthHandler.RegisterChecker("mongodb", mongoChecker{db: dbComponents.DB})
		if dbComponents.ProductsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_products", dbComponents.ProductsCircuitBreaker)
		}
		if dbComponents.CompositionsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_compositions", dbComponents.CompositionsCircuitBreaker)
		}
		if dbComponents.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_quote_logs", dbComponents.LogsCircuitBreaker)
		}
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
	}

	return &RouterComponents{
		Routes:        http.NewProposalRoutes(quotes, compositionsHandler, catalogHandler),
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
