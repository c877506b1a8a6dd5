// Package app provides database initialization and setup.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/construsol/proposal-service/config"
	"github.com/construsol/proposal-service/internal/catalog"
	"github.com/construsol/proposal-service/internal/circuitbreaker"
	"github.com/construsol/proposal-service/internal/domain/errs"
	"github.com/construsol/proposal-service/internal/repository"
	"github.com/construsol/proposal-service/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB            *repository.MongoDB
	Products      repository.ProductsRepositoryInterface
	Compositions  repository.CompositionsRepositoryInterface
	AuditService  service.QuoteAuditService
	AuditRecorder *service.AsyncAuditRecorder

	ProductsCircuitBreaker     *circuitbreaker.CircuitBreaker
	CompositionsCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker         *circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes the MongoDB connection and creates the
// repositories and services backed by it. Returns nil if the database is
// disabled or the connection fails; the service then runs on the seeded
// in-memory catalog without compositions or quote history.
func InitializeDatabase(cfg config.DatabaseConfig, auditCfg config.AuditConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetQuoteLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set quote logs TTL index (may already exist)")
	}

	cbConfig := func(name string) circuitbreaker.Config {
		return circuitbreaker.Config{
			FailureThreshold: cfg.CircuitBreakerFailureThreshold,
			SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
			Timeout:          cfg.CircuitBreakerTimeout,
			Name:             name,
		}
	}

	productsCB := circuitbreaker.New(cbConfig("mongodb-products"))
	compositionsCB := circuitbreaker.New(cbConfig("mongodb-compositions"))
	logsCB := circuitbreaker.New(cbConfig("mongodb-quote-logs"))

	productsRepo := repository.NewProductsRepository(db)
	products := repository.NewProductsRepositoryWithCircuitBreaker(productsRepo, productsCB)

	compositionsRepo := repository.NewCompositionsRepository(db)
	compositions := repository.NewCompositionsRepositoryWithCircuitBreaker(compositionsRepo, compositionsCB)

	components := &DatabaseComponents{
		DB:                         db,
		Products:                   products,
		Compositions:               compositions,
		ProductsCircuitBreaker:     productsCB,
		CompositionsCircuitBreaker: compositionsCB,
		LogsCircuitBreaker:         logsCB,
	}

	if auditCfg.Enabled {
		logsRepo := repository.NewQuoteLogsRepository(db)
		auditService := service.NewQuoteAuditService(repository.NewQuoteLogsRepositoryWithCircuitBreaker(logsRepo, logsCB))
		components.AuditService = auditService
		components.AuditRecorder = service.NewAsyncAuditRecorder(auditService, service.AsyncAuditConfig{
			BufferSize:   auditCfg.BufferSize,
			NumWorkers:   auditCfg.NumWorkers,
			WriteTimeout: auditCfg.WriteTimeout,
		})
	}

	if err := seedDefaultProducts(products); err != nil {
		log.Warn().Err(err).Msg("Failed to seed default catalog products")
	}

	return components
}

// seedDefaultProducts loads the default product set into an empty catalog
// collection. An existing catalog is left untouched.
func seedDefaultProducts(products repository.ProductsRepositoryInterface) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seeds := catalog.SeedProducts()
	if len(seeds) == 0 {
		return nil
	}

	_, err := products.GetProduct(ctx, seeds[0].Code)
	if err == nil {
		return nil
	}
	var lookupErr *errs.CatalogLookupError
	if !errors.As(err, &lookupErr) {
		return err
	}

	for _, p := range seeds {
		if err := products.Upsert(ctx, p); err != nil {
			return err
		}
	}
	log.Info().Int("products", len(seeds)).Msg("Seeded default catalog products")
	return nil
}

// mongoChecker adapts the MongoDB ping to the readiness probe.
type mongoChecker struct {
	db *repository.MongoDB
}

func (c mongoChecker) Check() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.db.HealthCheck(ctx)
}
