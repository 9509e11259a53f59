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

// cartServiceFixtures holds all test dependencies for cart tests.
type cartServiceFixtures struct {
	service   usecase.CartUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCartService(txManager, logger)

	return cartServiceFixtures{
		service:   service,
		txManager: txManager,
	}
}

func TestCartService_AddItem_UpsertsLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
	product := &entity.Product{ID: uuid.New(), VendorID: uuid.New(), Name: "Clay Teapot", Price: 45000, IsActive: true}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)

			mockProductRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
			mockCartRepo.EXPECT().
				UpsertLine(ctx, actor.UserID, entity.CartLine{ProductID: product.ID, Quantity: 3}).
				Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.AddItem(ctx, actor, &usecase.AddCartItemInput{ProductID: product.ID, Quantity: 3})

	require.NoError(t, err)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	fx := createTestCartService(t)

	err := fx.service.AddItem(context.Background(), entity.Actor{UserID: uuid.New()}, &usecase.AddCartItemInput{
		ProductID: uuid.New(),
		Quantity:  0,
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
}

func TestCartService_AddItem_InactiveProduct(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
	product := &entity.Product{ID: uuid.New(), VendorID: uuid.New(), Name: "Retired Lamp", Price: 5000, IsActive: false}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

			return fn(mockFactory)
		})

	err := fx.service.AddItem(ctx, actor, &usecase.AddCartItemInput{ProductID: product.ID, Quantity: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Retired Lamp")
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
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

	err := fx.service.AddItem(ctx, actor, &usecase.AddCartItemInput{ProductID: ghostID, Quantity: 1})

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_RemoveItem_MissingLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
	productID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockCartRepo.EXPECT().
				RemoveLine(ctx, actor.UserID, productID).
				Return(repository.ErrCartLineNotFound)

			return fn(mockFactory)
		})

	err := fx.service.RemoveItem(ctx, actor, productID)

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCartService_GetCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
	expected := &entity.Cart{
		UserID: actor.UserID,
		Lines:  []entity.CartLine{{ProductID: uuid.New(), Quantity: 2}},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockCartRepo.EXPECT().FindByUser(ctx, actor.UserID).Return(expected, nil)

			return fn(mockFactory)
		})

	cart, err := fx.service.GetCart(ctx, actor)

	require.NoError(t, err)
	assert.Equal(t, expected, cart)
}

func TestCartService_ClearCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockCartRepo.EXPECT().Clear(ctx, actor.UserID).Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.ClearCart(ctx, actor)

	require.NoError(t, err)
}
