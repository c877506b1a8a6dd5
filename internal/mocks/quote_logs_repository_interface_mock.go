// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/construsol/proposal-service/internal/repository"
)

type MockQuoteLogsRepositoryInterface struct {
	mock.Mock
}

func (m *MockQuoteLogsRepositoryInterface) Create(ctx context.Context, entry *repository.QuoteLogDocument) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockQuoteLogsRepositoryInterface) Query(ctx context.Context, opts repository.QuoteLogQueryOptions) ([]*repository.QuoteLogDocument, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.QuoteLogDocument), args.Error(1)
}

func (m *MockQuoteLogsRepositoryInterface) Count(ctx context.Context, opts repository.QuoteLogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
