// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construsol/proposal-service/internal/domain/model"
)

// ProductsRepositoryInterface defines the interface for catalog product
// repository operations.
type ProductsRepositoryInterface interface {
	GetProduct(ctx context.Context, code string) (model.ProductRecord, error)
	ListProductsByCategory(ctx context.Context, category string) ([]model.ProductRecord, error)
	Upsert(ctx context.Context, product model.ProductRecord) error
}

// OrderAssignment pairs a line item with its new display order.
type OrderAssignment struct {
	ItemID primitive.ObjectID `json:"item_id"`
	Order  int                `json:"order"`
}

// CompositionsRepositoryInterface defines the interface for composition and
// line item repository operations.
type CompositionsRepositoryInterface interface {
	CreateComposition(ctx context.Context, name string) (*model.Composition, error)
	GetComposition(ctx context.Context, id primitive.ObjectID) (*model.Composition, error)
	ListCompositions(ctx context.Context) ([]model.Composition, error)
	// DeleteComposition removes the composition and every item it owns.
	DeleteComposition(ctx context.Context, id primitive.ObjectID) error
	UpdateTotal(ctx context.Context, id primitive.ObjectID, total decimal.Decimal) error

	InsertItem(ctx context.Context, item *model.CompositionLineItem) (*model.CompositionLineItem, error)
	GetItem(ctx context.Context, id primitive.ObjectID) (*model.CompositionLineItem, error)
	ListItems(ctx context.Context, compositionID primitive.ObjectID) ([]model.CompositionLineItem, error)
	UpdateItem(ctx context.Context, item *model.CompositionLineItem) error
	DeleteItem(ctx context.Context, id primitive.ObjectID) error
	// MaxOrder returns the highest order among the composition's items,
	// or 0 when it has none. Must be atomic with respect to inserts.
	MaxOrder(ctx context.Context, compositionID primitive.ObjectID) (int, error)
	UpdateOrders(ctx context.Context, compositionID primitive.ObjectID, assignments []OrderAssignment) error
}

// QuoteLogsRepositoryInterface defines the interface for quote audit log
// repository operations.
type QuoteLogsRepositoryInterface interface {
	Create(ctx context.Context, entry *QuoteLogDocument) error
	Query(ctx context.Context, opts QuoteLogQueryOptions) ([]*QuoteLogDocument, error)
	Count(ctx context.Context, opts QuoteLogQueryOptions) (int64, error)
}
