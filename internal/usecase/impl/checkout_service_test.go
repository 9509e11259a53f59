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
	mockSvc "bazaar/internal/mocks/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// checkoutServiceFixtures holds all test dependencies for checkout tests.
type checkoutServiceFixtures struct {
	service   usecase.CheckoutUsecase
	txManager *mockRepo.MockTransactionManager
	publisher *mockSvc.MockEventPublisher
}

func createTestCheckoutService(t *testing.T) checkoutServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCheckoutService(txManager, publisher, logger)

	return checkoutServiceFixtures{
		service:   service,
		txManager: txManager,
		publisher: publisher,
	}
}

func validCheckoutInput() *usecase.CheckoutInput {
	return &usecase.CheckoutInput{
		ShippingAddressInput: usecase.ShippingAddressInput{
			FullName:     "Asha Nair",
			Phone:        "+91-9800000000",
			AddressLine1: "14 Temple Street",
			City:         "Kochi",
			State:        "Kerala",
			PostalCode:   "682001",
		},
	}
}

// checkoutCatalog is a pair of vendors with three products between them.
type checkoutCatalog struct {
	vendorA  uuid.UUID
	vendorB  uuid.UUID
	products []*entity.Product
	lines    []entity.CartLine
}

func newCheckoutCatalog() checkoutCatalog {
	vendorA := uuid.New()
	vendorB := uuid.New()

	products := []*entity.Product{
		{ID: uuid.New(), VendorID: vendorA, Name: "Clay Teapot", Price: 45000, IsActive: true},
		{ID: uuid.New(), VendorID: vendorB, Name: "Brass Diya", Price: 12500, IsActive: true},
		{ID: uuid.New(), VendorID: vendorA, Name: "Silk Scarf", Price: 89000, IsActive: true},
	}

	lines := []entity.CartLine{
		{ProductID: products[0].ID, Quantity: 2},
		{ProductID: products[1].ID, Quantity: 1},
		{ProductID: products[2].ID, Quantity: 1},
	}

	return checkoutCatalog{vendorA: vendorA, vendorB: vendorB, products: products, lines: lines}
}

func TestCheckoutService_Checkout_FansOutPerVendor(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleUser}}
	catalog := newCheckoutCatalog()

	var created []*entity.Order

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)

			mockCartRepo.EXPECT().
				FindByUser(ctx, actor.UserID).
				Return(&entity.Cart{UserID: actor.UserID, Lines: catalog.lines}, nil)

			mockProductRepo.EXPECT().
				FindByIDs(ctx, mock.AnythingOfType("[]uuid.UUID")).
				Return(catalog.products, nil)

			mockOrderRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Order")).
				Run(func(ctx context.Context, order *entity.Order) {
					order.ID = uuid.New()
					created = append(created, order)
				}).
				Return(nil)

			mockCartRepo.EXPECT().Clear(ctx, actor.UserID).Return(nil)

			require.NoError(t, fn(mockFactory))
		}).
		Return(nil)

	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	output, err := fx.service.Checkout(ctx, actor, validCheckoutInput())

	require.NoError(t, err)
	require.Len(t, output.Orders, 2)

	// Vendor groups keep first-occurrence order.
	first, second := output.Orders[0], output.Orders[1]
	assert.Equal(t, catalog.vendorA, first.VendorID)
	assert.Equal(t, catalog.vendorB, second.VendorID)

	// Vendor purity: every item in an order belongs to that order's vendor.
	require.Len(t, first.Items, 2)
	require.Len(t, second.Items, 1)

	// Totals come from snapshot prices, plus the flat shipping charge.
	assert.Equal(t, int64(45000*2+89000), first.Subtotal)
	assert.Equal(t, int64(45000*2+89000)+entity.FlatShippingFee, first.TotalAmount)
	assert.Equal(t, int64(12500), second.Subtotal)
	assert.Equal(t, int64(12500)+entity.FlatShippingFee, second.TotalAmount)

	// Each order starts pending with one synthesized history entry.
	for _, order := range created {
		assert.Equal(t, entity.OrderStatusPending, order.Status)
		assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
		assert.Len(t, order.StatusHistory, 1)
	}
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockCartRepo.EXPECT().
				FindByUser(ctx, actor.UserID).
				Return(&entity.Cart{UserID: actor.UserID}, nil)

			return fn(mockFactory)
		})

	output, err := fx.service.Checkout(ctx, actor, validCheckoutInput())

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
}

func TestCheckoutService_Checkout_UnavailableProductAborts(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
	inactive := &entity.Product{ID: uuid.New(), VendorID: uuid.New(), Name: "Retired Lamp", Price: 5000, IsActive: false}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)

			mockCartRepo.EXPECT().
				FindByUser(ctx, actor.UserID).
				Return(&entity.Cart{
					UserID: actor.UserID,
					Lines:  []entity.CartLine{{ProductID: inactive.ID, Quantity: 1}},
				}, nil)

			mockProductRepo.EXPECT().
				FindByIDs(ctx, mock.AnythingOfType("[]uuid.UUID")).
				Return([]*entity.Product{inactive}, nil)

			// No order creation, no cart clear: the transaction fails whole.
			return fn(mockFactory)
		})

	output, err := fx.service.Checkout(ctx, actor, validCheckoutInput())

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "Retired Lamp")
}

func TestCheckoutService_Checkout_MissingProductAborts(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
	ghostID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)

			mockCartRepo.EXPECT().
				FindByUser(ctx, actor.UserID).
				Return(&entity.Cart{
					UserID: actor.UserID,
					Lines:  []entity.CartLine{{ProductID: ghostID, Quantity: 1}},
				}, nil)

			mockProductRepo.EXPECT().
				FindByIDs(ctx, mock.AnythingOfType("[]uuid.UUID")).
				Return(nil, nil)

			return fn(mockFactory)
		})

	output, err := fx.service.Checkout(ctx, actor, validCheckoutInput())

	require.Error(t, err)
	assert.Nil(t, output)
}

func TestCheckoutService_Checkout_MissingAddressFields(t *testing.T) {
	fx := createTestCheckoutService(t)

	input := validCheckoutInput()
	input.Phone = ""
	input.PostalCode = "  "

	output, err := fx.service.Checkout(context.Background(), entity.Actor{UserID: uuid.New()}, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrAddressIncomplete)
	assert.Contains(t, err.Error(), "phone")
	assert.Contains(t, err.Error(), "postalCode")
}

func TestCheckoutService_Checkout_InvalidPaymentMethod(t *testing.T) {
	fx := createTestCheckoutService(t)

	input := validCheckoutInput()
	input.PaymentMethod = "barter"

	output, err := fx.service.Checkout(context.Background(), entity.Actor{UserID: uuid.New()}, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPaymentMethod)
}

func TestCheckoutService_Checkout_SaveAddress(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
	product := &entity.Product{ID: uuid.New(), VendorID: uuid.New(), Name: "Clay Teapot", Price: 45000, IsActive: true}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)

			mockCartRepo.EXPECT().
				FindByUser(ctx, actor.UserID).
				Return(&entity.Cart{
					UserID: actor.UserID,
					Lines:  []entity.CartLine{{ProductID: product.ID, Quantity: 1}},
				}, nil)
			mockProductRepo.EXPECT().
				FindByIDs(ctx, mock.AnythingOfType("[]uuid.UUID")).
				Return([]*entity.Product{product}, nil)
			mockOrderRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Order")).
				Return(nil)

			mockAddressRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Address")).
				Run(func(ctx context.Context, address *entity.Address) {
					assert.Equal(t, actor.UserID, address.UserID)
					assert.Equal(t, "Asha Nair", address.FullName)
					assert.Equal(t, entity.DefaultCountry, address.Country)
					assert.False(t, address.IsDefault)
				}).
				Return(nil)

			mockCartRepo.EXPECT().Clear(ctx, actor.UserID).Return(nil)

			return fn(mockFactory)
		})

	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	input := validCheckoutInput()
	input.SaveAddress = true

	output, err := fx.service.Checkout(ctx, actor, input)

	require.NoError(t, err)
	require.Len(t, output.Orders, 1)
}

func TestCheckoutService_Checkout_TransactionFailureReturnsError(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(assert.AnError)

	output, err := fx.service.Checkout(ctx, actor, validCheckoutInput())

	require.Error(t, err)
	assert.Nil(t, output)
	// No events for a rolled-back checkout.
	fx.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}
