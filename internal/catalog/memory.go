package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/construsol/proposal-service/internal/domain/errs"
	"github.com/construsol/proposal-service/internal/domain/model"
)

// InMemory is a map-backed catalog. It backs the service when the product
// database is disabled or unreachable, and doubles as the test fixture.
type InMemory struct {
	mu       sync.RWMutex
	products map[string]model.ProductRecord
}

// NewInMemory creates an in-memory catalog preloaded with the given products.
func NewInMemory(products ...model.ProductRecord) *InMemory {
	c := &InMemory{products: make(map[string]model.ProductRecord, len(products))}
	for _, p := range products {
		c.products[p.Code] = p
	}
	return c
}

// GetProduct implements Catalog.
func (c *InMemory) GetProduct(_ context.Context, code string) (model.ProductRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[code]
	if !ok {
		return model.ProductRecord{}, &errs.CatalogLookupError{Code: code}
	}
	return p, nil
}

// ListProductsByCategory implements Catalog. Results are sorted by code so
// output is deterministic.
func (c *InMemory) ListProductsByCategory(_ context.Context, category string) ([]model.ProductRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []model.ProductRecord
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// Upsert adds or replaces a product.
func (c *InMemory) Upsert(p model.ProductRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.Code] = p
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SeedProducts returns the built-in demo catalog matching the default
// material system registry.
func SeedProducts() []model.ProductRecord {
	return []model.ProductRecord{
		{Code: "OSB-11", Description: "Placa OSB 11mm 1,20x2,40m", UnitPrice: dec("145.90"), PackageSize: dec("1"), UnitOfMeasure: "pc", Category: "ESTRUTURA"},
		{Code: "RIPA-5X2", Description: "Ripa pinus 5x2cm 3m", UnitPrice: dec("8.90"), PackageSize: dec("3"), UnitOfMeasure: "pc", Category: "ESTRUTURA"},
		{Code: "CAIBRO-5X6", Description: "Caibro pinus 5x6cm 3m", UnitPrice: dec("21.50"), PackageSize: dec("3"), UnitOfMeasure: "pc", Category: "ESTRUTURA"},
		{Code: "MANTA-ASF", Description: "Manta asfáltica 1x10m", UnitPrice: dec("189.00"), PackageSize: dec("10"), UnitOfMeasure: "rolo", Category: "IMPERMEABILIZACAO"},
		{Code: "FITA-AUTO", Description: "Fita autoadesiva aluminizada 10m", UnitPrice: dec("54.90"), PackageSize: dec("10"), UnitOfMeasure: "rolo", Category: "IMPERMEABILIZACAO"},
		{Code: "TELHA-SUP", Description: "Telha shingle Supreme cinza", UnitPrice: dec("119.90"), PackageSize: dec("3.1"), UnitOfMeasure: "fardo", Category: "COBERTURA"},
		{Code: "TELHA-DUR", Description: "Telha shingle Duration verde", UnitPrice: dec("159.90"), PackageSize: dec("3.05"), UnitOfMeasure: "fardo", Category: "COBERTURA"},
		{Code: "TELHA-PORT", Description: "Telha cerâmica portuguesa natural", UnitPrice: dec("2.49"), PackageSize: dec("1"), UnitOfMeasure: "pc", Category: "COBERTURA"},
		{Code: "CUM-SUP", Description: "Cumeeira shingle Supreme cinza", UnitPrice: dec("42.90"), PackageSize: dec("3"), UnitOfMeasure: "pc", Category: "COBERTURA"},
		{Code: "CUM-DUR", Description: "Cumeeira shingle Duration verde", UnitPrice: dec("52.90"), PackageSize: dec("3"), UnitOfMeasure: "pc", Category: "COBERTURA"},
		{Code: "CUM-CERAM", Description: "Cumeeira cerâmica natural", UnitPrice: dec("3.85"), PackageSize: dec("1"), UnitOfMeasure: "pc", Category: "COBERTURA"},
		{Code: "PREGO-17X27", Description: "Prego rolete 17x27 galvanizado 1kg", UnitPrice: dec("32.90"), PackageSize: dec("1"), UnitOfMeasure: "kg", Category: "FIXACAO"},
		{Code: "PREGO-18X30", Description: "Prego 18x30 galvanizado 1kg", UnitPrice: dec("28.50"), PackageSize: dec("1"), UnitOfMeasure: "kg", Category: "FIXACAO"},
		{Code: "GRAMPO-80", Description: "Grampo 80 para grampeador 5000un", UnitPrice: dec("44.90"), PackageSize: dec("1"), UnitOfMeasure: "cx", Category: "FIXACAO"},
		{Code: "RUFO-GALV", Description: "Rufo galvanizado 28cm 3m", UnitPrice: dec("39.90"), PackageSize: dec("3"), UnitOfMeasure: "pc", Category: "ACABAMENTO"},
	}
}
