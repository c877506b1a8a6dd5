//go:build !integration

package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/construsol/proposal-service/internal/catalog"
	"github.com/construsol/proposal-service/internal/domain/errs"
	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/mocks"
)

func TestSeedDefaultProducts(t *testing.T) {
	seedCount := len(catalog.SeedProducts())

	tests := []struct {
		name      string
		setupMock func(*mocks.MockProductsRepositoryInterface)
		wantError bool
	}{
		{
			name: "empty catalog gets the full seed set",
			setupMock: func(m *mocks.MockProductsRepositoryInterface) {
				m.On("GetProduct", mock.Anything, "OSB-11").
					Return(model.ProductRecord{}, &errs.CatalogLookupError{Code: "OSB-11"}).Once()
				m.On("Upsert", mock.Anything, mock.Anything).Return(nil).Times(seedCount)
			},
		},
		{
			name: "populated catalog is left untouched",
			setupMock: func(m *mocks.MockProductsRepositoryInterface) {
				m.On("GetProduct", mock.Anything, "OSB-11").
					Return(model.ProductRecord{Code: "OSB-11"}, nil).Once()
			},
		},
		{
			name: "upsert error aborts seeding",
			setupMock: func(m *mocks.MockProductsRepositoryInterface) {
				m.On("GetProduct", mock.Anything, "OSB-11").
					Return(model.ProductRecord{}, &errs.CatalogLookupError{Code: "OSB-11"}).Once()
				m.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("write failed")).Once()
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockProductsRepositoryInterface)
			mockRepo.Test(t)
			tt.setupMock(mockRepo)

			err := seedDefaultProducts(mockRepo)

			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
