package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	mockRepo "bazaar/internal/mocks/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// productServiceFixtures holds all test dependencies for product tests.
type productServiceFixtures struct {
	service   usecase.ProductUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestProductService(t *testing.T) productServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewProductService(txManager, logger)

	return productServiceFixtures{
		service:   service,
		txManager: txManager,
	}
}

func TestProductService_CreateProduct_DefaultsActive(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	vendor := entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleVendor}}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Product")).
				Run(func(ctx context.Context, product *entity.Product) {
					product.ID = uuid.New()
				}).
				Return(nil)

			return fn(mockFactory)
		})

	product, err := fx.service.CreateProduct(ctx, vendor, &usecase.CreateProductInput{
		Name:  "Clay Teapot",
		Price: 45000,
	})

	require.NoError(t, err)
	assert.Equal(t, vendor.UserID, product.VendorID)
	assert.True(t, product.IsActive)
	assert.NotEqual(t, uuid.Nil, product.ID)
}

func TestProductService_CreateProduct_ExplicitInactive(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	vendor := entity.Actor{UserID: uuid.New()}
	inactive := false

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Product")).
				Return(nil)

			return fn(mockFactory)
		})

	product, err := fx.service.CreateProduct(ctx, vendor, &usecase.CreateProductInput{
		Name:     "Draft Listing",
		Price:    100,
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.False(t, product.IsActive)
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	ghostID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().FindByID(ctx, ghostID).Return(nil, repository.ErrProductNotFound)

			return fn(mockFactory)
		})

	_, err := fx.service.GetProduct(ctx, ghostID)

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_ListProducts(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	expected := []*entity.Product{
		{ID: uuid.New(), Name: "Clay Teapot", Price: 45000, IsActive: true},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().ListActive(ctx).Return(expected, nil)

			return fn(mockFactory)
		})

	products, err := fx.service.ListProducts(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, products)
}

func TestProductService_ListVendorProducts(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	vendor := entity.Actor{UserID: uuid.New()}
	expected := []*entity.Product{
		{ID: uuid.New(), VendorID: vendor.UserID, Name: "Draft Listing", IsActive: false},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().ListByVendor(ctx, vendor.UserID).Return(expected, nil)

			return fn(mockFactory)
		})

	products, err := fx.service.ListVendorProducts(ctx, vendor)

	require.NoError(t, err)
	assert.Equal(t, expected, products)
}
