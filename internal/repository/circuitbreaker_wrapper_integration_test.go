//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construsol/proposal-service/internal/circuitbreaker"
	"github.com/construsol/proposal-service/internal/domain/model"
)

func TestProductsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database name
	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewProductsRepository(db)
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	wrappedRepo := NewProductsRepositoryWithCircuitBreaker(repo, cb)

	product := model.ProductRecord{
		Code:          "OSB-11",
		Description:   "Placa OSB 11mm 1,20x2,40m",
		UnitPrice:     decimal.RequireFromString("45.00"),
		PackageSize:   decimal.NewFromInt(1),
		UnitOfMeasure: "pc",
		Category:      "ESTRUTURA",
	}
	require.NoError(t, wrappedRepo.Upsert(ctx, product))

	t.Run("get product through wrapper", func(t *testing.T) {
		got, err := wrappedRepo.GetProduct(ctx, "OSB-11")
		require.NoError(t, err)
		assert.True(t, got.UnitPrice.Equal(product.UnitPrice))
		assert.Equal(t, "ESTRUTURA", got.Category)
	})

	t.Run("list by category through wrapper", func(t *testing.T) {
		products, err := wrappedRepo.ListProductsByCategory(ctx, "ESTRUTURA")
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("circuit breaker accessible for monitoring", func(t *testing.T) {
		assert.NotNil(t, wrappedRepo.GetCircuitBreaker())
		assert.Equal(t, circuitbreaker.StateClosed, wrappedRepo.GetCircuitBreaker().State())
	})
}

func TestCompositionsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewCompositionsRepository(db)
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	wrappedRepo := NewCompositionsRepositoryWithCircuitBreaker(repo, cb)

	comp, err := wrappedRepo.CreateComposition(ctx, "Parede Shingle Supreme")
	require.NoError(t, err)
	require.NotNil(t, comp)

	item := &model.CompositionLineItem{
		CompositionID:          comp.ID,
		ProductCode:            "OSB-11",
		ConsumptionPerUnitArea: decimal.NewFromInt(1),
		BreakagePercent:        decimal.NewFromInt(10),
		CorrectionFactor:       decimal.NewFromInt(1),
		CalculationMode:        model.CalcModeDirect,
		Order:                  1,
		UnitValue:              decimal.RequireFromString("45.00"),
		ValuePerUnitArea:       decimal.RequireFromString("49.50"),
	}

	inserted, err := wrappedRepo.InsertItem(ctx, item)
	require.NoError(t, err)
	assert.False(t, inserted.ID.IsZero())

	t.Run("max order through wrapper", func(t *testing.T) {
		maxOrder, err := wrappedRepo.MaxOrder(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, maxOrder)
	})

	t.Run("update total through wrapper", func(t *testing.T) {
		require.NoError(t, wrappedRepo.UpdateTotal(ctx, comp.ID, decimal.RequireFromString("49.50")))

		got, err := wrappedRepo.GetComposition(ctx, comp.ID)
		require.NoError(t, err)
		assert.True(t, got.TotalValuePerUnitArea.Equal(decimal.RequireFromString("49.50")))
	})
}
