// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construsol/proposal-service/internal/circuitbreaker"
	"github.com/construsol/proposal-service/internal/domain/model"
)

// ProductsRepositoryWithCircuitBreaker wraps ProductsRepository with circuit breaker protection.
type ProductsRepositoryWithCircuitBreaker struct {
	repo           *ProductsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewProductsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewProductsRepositoryWithCircuitBreaker(repo *ProductsRepository, cb *circuitbreaker.CircuitBreaker) *ProductsRepositoryWithCircuitBreaker {
	return &ProductsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetProduct returns the product snapshot with circuit breaker protection.
func (r *ProductsRepositoryWithCircuitBreaker) GetProduct(ctx context.Context, code string) (model.ProductRecord, error) {
	var result model.ProductRecord
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetProduct(ctx, code)
		return cbErr
	})
	return result, err
}

// ListProductsByCategory returns the category's products with circuit breaker protection.
func (r *ProductsRepositoryWithCircuitBreaker) ListProductsByCategory(ctx context.Context, category string) ([]model.ProductRecord, error) {
	var result []model.ProductRecord
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.ListProductsByCategory(ctx, category)
		return cbErr
	})
	return result, err
}

// Upsert writes the product with circuit breaker protection.
func (r *ProductsRepositoryWithCircuitBreaker) Upsert(ctx context.Context, product model.ProductRecord) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Upsert(ctx, product)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ProductsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// CompositionsRepositoryWithCircuitBreaker wraps CompositionsRepository with circuit breaker protection.
type CompositionsRepositoryWithCircuitBreaker struct {
	repo           *CompositionsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCompositionsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCompositionsRepositoryWithCircuitBreaker(repo *CompositionsRepository, cb *circuitbreaker.CircuitBreaker) *CompositionsRepositoryWithCircuitBreaker {
	return &CompositionsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// CreateComposition creates an empty composition with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) CreateComposition(ctx context.Context, name string) (*model.Composition, error) {
	var result *model.Composition
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.CreateComposition(ctx, name)
		return cbErr
	})
	return result, err
}

// GetComposition returns the composition with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) GetComposition(ctx context.Context, id primitive.ObjectID) (*model.Composition, error) {
	var result *model.Composition
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetComposition(ctx, id)
		return cbErr
	})
	return result, err
}

// ListCompositions returns all compositions with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) ListCompositions(ctx context.Context) ([]model.Composition, error) {
	var result []model.Composition
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.ListCompositions(ctx)
		return cbErr
	})
	return result, err
}

// DeleteComposition removes the composition and its items with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) DeleteComposition(ctx context.Context, id primitive.ObjectID) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.DeleteComposition(ctx, id)
	})
}

// UpdateTotal persists the recomputed total with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) UpdateTotal(ctx context.Context, id primitive.ObjectID, total decimal.Decimal) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.UpdateTotal(ctx, id, total)
	})
}

// InsertItem inserts a line item with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) InsertItem(ctx context.Context, item *model.CompositionLineItem) (*model.CompositionLineItem, error) {
	var result *model.CompositionLineItem
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.InsertItem(ctx, item)
		return cbErr
	})
	return result, err
}

// GetItem returns the line item with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) GetItem(ctx context.Context, id primitive.ObjectID) (*model.CompositionLineItem, error) {
	var result *model.CompositionLineItem
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetItem(ctx, id)
		return cbErr
	})
	return result, err
}

// ListItems returns the composition's items with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) ListItems(ctx context.Context, compositionID primitive.ObjectID) ([]model.CompositionLineItem, error) {
	var result []model.CompositionLineItem
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.ListItems(ctx, compositionID)
		return cbErr
	})
	return result, err
}

// UpdateItem replaces the stored line item with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) UpdateItem(ctx context.Context, item *model.CompositionLineItem) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.UpdateItem(ctx, item)
	})
}

// DeleteItem removes the line item with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.DeleteItem(ctx, id)
	})
}

// MaxOrder returns the highest item order with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) MaxOrder(ctx context.Context, compositionID primitive.ObjectID) (int, error) {
	var result int
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.MaxOrder(ctx, compositionID)
		return cbErr
	})
	return result, err
}

// UpdateOrders bulk-assigns display orders with circuit breaker protection.
func (r *CompositionsRepositoryWithCircuitBreaker) UpdateOrders(ctx context.Context, compositionID primitive.ObjectID, assignments []OrderAssignment) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.UpdateOrders(ctx, compositionID, assignments)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CompositionsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// QuoteLogsRepositoryWithCircuitBreaker wraps QuoteLogsRepository with circuit breaker protection.
type QuoteLogsRepositoryWithCircuitBreaker struct {
	repo           *QuoteLogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewQuoteLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewQuoteLogsRepositoryWithCircuitBreaker(repo *QuoteLogsRepository, cb *circuitbreaker.CircuitBreaker) *QuoteLogsRepositoryWithCircuitBreaker {
	return &QuoteLogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a quote log entry with circuit breaker protection.
// If circuit is open, silently fails (audit logging is non-critical).
func (r *QuoteLogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *QuoteLogDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (audit logging is non-critical)
		return nil
	}
	return err
}

// Query retrieves quote log entries with circuit breaker protection.
func (r *QuoteLogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts QuoteLogQueryOptions) ([]*QuoteLogDocument, error) {
	var result []*QuoteLogDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of quote log entries with circuit breaker protection.
func (r *QuoteLogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts QuoteLogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *QuoteLogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
