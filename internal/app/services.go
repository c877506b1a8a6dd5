// Package app provides engine initialization.
package app

import (
	"github.com/construsol/proposal-service/config"
	"github.com/construsol/proposal-service/internal/catalog"
	"github.com/construsol/proposal-service/internal/orchestrator"
	"github.com/construsol/proposal-service/internal/pipeline"
)

// EngineComponents holds the quantitative pipeline and its orchestrator.
type EngineComponents struct {
	Catalog      catalog.Catalog
	Cache        *catalog.Cached
	Registry     *pipeline.Registry
	Pipeline     *pipeline.Pipeline
	Orchestrator *orchestrator.Orchestrator
}

// InitializeEngine builds the pipeline over the given catalog source.
// When the source is nil the seeded in-memory catalog is used, which keeps
// the service fully functional without a database.
func InitializeEngine(cfg config.Config, source catalog.Catalog) *EngineComponents {
	if source == nil {
		source = catalog.NewInMemory(catalog.SeedProducts()...)
	}

	components := &EngineComponents{Catalog: source}

	if cfg.Catalog.CacheSize > 0 {
		components.Cache = catalog.NewCached(source, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL)
		components.Catalog = components.Cache
	}

	components.Registry = pipeline.DefaultRegistry()
	components.Pipeline = pipeline.New(components.Catalog, components.Registry)
	components.Orchestrator = orchestrator.New(components.Pipeline,
		orchestrator.WithDebounce(cfg.Engine.Debounce),
		orchestrator.WithTimeout(cfg.Engine.Timeout),
	)

	return components
}
