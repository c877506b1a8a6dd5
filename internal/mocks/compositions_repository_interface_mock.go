// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/repository"
)

type MockCompositionsRepositoryInterface struct {
	mock.Mock
}

func (m *MockCompositionsRepositoryInterface) CreateComposition(ctx context.Context, name string) (*model.Composition, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Composition), args.Error(1)
}

func (m *MockCompositionsRepositoryInterface) GetComposition(ctx context.Context, id primitive.ObjectID) (*model.Composition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Composition), args.Error(1)
}

func (m *MockCompositionsRepositoryInterface) ListCompositions(ctx context.Context) ([]model.Composition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Composition), args.Error(1)
}

func (m *MockCompositionsRepositoryInterface) DeleteComposition(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompositionsRepositoryInterface) UpdateTotal(ctx context.Context, id primitive.ObjectID, total decimal.Decimal) error {
	args := m.Called(ctx, id, total)
	return args.Error(0)
}

func (m *MockCompositionsRepositoryInterface) InsertItem(ctx context.Context, item *model.CompositionLineItem) (*model.CompositionLineItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompositionLineItem), args.Error(1)
}

func (m *MockCompositionsRepositoryInterface) GetItem(ctx context.Context, id primitive.ObjectID) (*model.CompositionLineItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompositionLineItem), args.Error(1)
}

func (m *MockCompositionsRepositoryInterface) ListItems(ctx context.Context, compositionID primitive.ObjectID) ([]model.CompositionLineItem, error) {
	args := m.Called(ctx, compositionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CompositionLineItem), args.Error(1)
}

func (m *MockCompositionsRepositoryInterface) UpdateItem(ctx context.Context, item *model.CompositionLineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCompositionsRepositoryInterface) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompositionsRepositoryInterface) MaxOrder(ctx context.Context, compositionID primitive.ObjectID) (int, error) {
	args := m.Called(ctx, compositionID)
	return args.Int(0), args.Error(1)
}

func (m *MockCompositionsRepositoryInterface) UpdateOrders(ctx context.Context, compositionID primitive.ObjectID, assignments []repository.OrderAssignment) error {
	args := m.Called(ctx, compositionID, assignments)
	return args.Error(0)
}
