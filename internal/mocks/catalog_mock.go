// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/construsol/proposal-service/internal/domain/model"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetProduct(ctx context.Context, code string) (model.ProductRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return model.ProductRecord{}, args.Error(1)
	}
	return args.Get(0).(model.ProductRecord), args.Error(1)
}

func (m *MockCatalog) ListProductsByCategory(ctx context.Context, category string) ([]model.ProductRecord, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductRecord), args.Error(1)
}
