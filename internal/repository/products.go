// Package repository provides data access for catalog products.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/construsol/proposal-service/internal/domain/errs"
	"github.com/construsol/proposal-service/internal/domain/model"
)

// productDocument maps a catalog product to MongoDB. Decimal fields are
// stored as strings so no precision is lost on the round trip.
type productDocument struct {
	Code          string    `bson:"code"`
	Description   string    `bson:"description"`
	UnitPrice     string    `bson:"unit_price"`
	PackageSize   string    `bson:"package_size"`
	UnitOfMeasure string    `bson:"unit_of_measure"`
	Category      string    `bson:"category"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func (d productDocument) toModel() (model.ProductRecord, error) {
	unitPrice, err := decimal.NewFromString(d.UnitPrice)
	if err != nil {
		return model.ProductRecord{}, err
	}
	packageSize, err := decimal.NewFromString(d.PackageSize)
	if err != nil {
		return model.ProductRecord{}, err
	}
	return model.ProductRecord{
		Code:          d.Code,
		Description:   d.Description,
		UnitPrice:     unitPrice,
		PackageSize:   packageSize,
		UnitOfMeasure: d.UnitOfMeasure,
		Category:      d.Category,
	}, nil
}

func productToDocument(p model.ProductRecord) productDocument {
	return productDocument{
		Code:          p.Code,
		Description:   p.Description,
		UnitPrice:     p.UnitPrice.String(),
		PackageSize:   p.PackageSize.String(),
		UnitOfMeasure: p.UnitOfMeasure,
		Category:      p.Category,
		UpdatedAt:     time.Now().UTC(),
	}
}

// ProductsRepository provides catalog product operations backed by MongoDB.
type ProductsRepository struct {
	collection *mongo.Collection
}

// NewProductsRepository creates a new products repository.
func NewProductsRepository(db *MongoDB) *ProductsRepository {
	return &ProductsRepository{
		collection: db.Products,
	}
}

// GetProduct returns the product snapshot for the given code. A missing
// code is reported as a CatalogLookupError, not a bare driver error.
func (r *ProductsRepository) GetProduct(ctx context.Context, code string) (model.ProductRecord, error) {
	var doc productDocument
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.ProductRecord{}, &errs.CatalogLookupError{Code: code}
	}
	if err != nil {
		return model.ProductRecord{}, &errs.CatalogLookupError{Code: code, Err: err}
	}
	product, err := doc.toModel()
	if err != nil {
		return model.ProductRecord{}, &errs.CatalogLookupError{Code: code, Err: err}
	}
	return product, nil
}

// ListProductsByCategory returns the products in a category sorted by code.
func (r *ProductsRepository) ListProductsByCategory(ctx context.Context, category string) ([]model.ProductRecord, error) {
	opts := options.Find().SetSort(bson.M{"code": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var products []model.ProductRecord
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		product, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, cursor.Err()
}

// Upsert inserts or replaces the product with the same code.
func (r *ProductsRepository) Upsert(ctx context.Context, product model.ProductRecord) error {
	doc := productToDocument(product)
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"code": product.Code}, doc, opts)
	return err
}
