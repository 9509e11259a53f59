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

// orderServiceFixtures holds all test dependencies for order tests.
type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	publisher *mockSvc.MockEventPublisher
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewOrderService(txManager, publisher, logger)

	return orderServiceFixtures{
		service:   service,
		txManager: txManager,
		publisher: publisher,
	}
}

func testOrder(vendorID uuid.UUID) *entity.Order {
	return &entity.Order{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		VendorID:      vendorID,
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		TotalAmount:   45000,
		Version:       3,
	}
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func TestOrderService_UpdateStatusAsVendor_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	vendor := entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleVendor}}
	order := testOrder(vendor.UserID)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().
				FindByIDForVendor(ctx, order.ID, vendor.UserID).
				Return(order, nil)
			mockOrderRepo.EXPECT().
				Update(ctx, order).
				Return(nil)

			return fn(mockFactory)
		})

	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	updated, err := fx.service.UpdateStatusAsVendor(ctx, vendor, order.ID, &usecase.UpdateStatusInput{
		Status: strPtr("confirmed"),
		Note:   "Confirmed by vendor, packing tomorrow",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, updated.Status)
	require.Len(t, updated.StatusHistory, 1)
	entry := updated.StatusHistory[0]
	assert.Equal(t, entity.OrderStatusPending, entry.PreviousStatus)
	assert.Equal(t, entity.OrderStatusConfirmed, entry.NewStatus)
	assert.Equal(t, entity.ChangedByVendor, entry.ChangedBy)
}

func TestOrderService_UpdateStatus_NoteMandatory(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
	input := &usecase.UpdateStatusInput{Status: strPtr("confirmed"), Note: "  ok "}

	_, err := fx.service.UpdateStatusAsVendor(ctx, actor, uuid.New(), input)
	assert.ErrorIs(t, err, domainerrors.ErrNoteMandatory)

	_, err = fx.service.UpdateStatusAsAdmin(ctx, actor, uuid.New(), input)
	assert.ErrorIs(t, err, domainerrors.ErrAdminNoteMandatory)

	// Length is counted in characters, not bytes.
	multibyte := &usecase.UpdateStatusInput{Status: strPtr("confirmed"), Note: "好的"}
	_, err = fx.service.UpdateStatusAsVendor(ctx, actor, uuid.New(), multibyte)
	assert.ErrorIs(t, err, domainerrors.ErrNoteMandatory)
}

func TestOrderService_UpdateStatus_InvalidEnums(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}

	_, err := fx.service.UpdateStatusAsVendor(ctx, actor, uuid.New(), &usecase.UpdateStatusInput{
		Status: strPtr("teleported"),
		Note:   "note long enough",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)

	_, err = fx.service.UpdateStatusAsVendor(ctx, actor, uuid.New(), &usecase.UpdateStatusInput{
		PaymentStatus: strPtr("maybe"),
		Note:          "note long enough",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPaymentStatus)
}

func TestOrderService_UpdateStatus_NoFields(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.UpdateStatusAsVendor(context.Background(), entity.Actor{UserID: uuid.New()}, uuid.New(), &usecase.UpdateStatusInput{
		Note: "note long enough",
	})

	assert.ErrorIs(t, err, domainerrors.ErrNoStatusFields)
}

func TestOrderService_UpdateStatusAsVendor_ForeignOrderIsNotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	vendor := entity.Actor{UserID: uuid.New()}
	orderID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().
				FindByIDForVendor(ctx, orderID, vendor.UserID).
				Return(nil, repository.ErrOrderNotFound)

			return fn(mockFactory)
		})

	_, err := fx.service.UpdateStatusAsVendor(ctx, vendor, orderID, &usecase.UpdateStatusInput{
		Status: strPtr("confirmed"),
		Note:   "note long enough",
	})

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	fx.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_VersionMismatch(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	vendor := entity.Actor{UserID: uuid.New()}
	order := testOrder(vendor.UserID)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().
				FindByIDForVendor(ctx, order.ID, vendor.UserID).
				Return(order, nil)

			return fn(mockFactory)
		})

	_, err := fx.service.UpdateStatusAsVendor(ctx, vendor, order.ID, &usecase.UpdateStatusInput{
		Status:          strPtr("confirmed"),
		Note:            "note long enough",
		ExpectedVersion: int64Ptr(order.Version + 1),
	})

	assert.ErrorIs(t, err, domainerrors.ErrOrderVersionConflict)
}

func TestOrderService_UpdateStatus_ConcurrentWriteConflict(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	admin := entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleAdmin}}
	order := testOrder(uuid.New())

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().
				FindByID(ctx, order.ID).
				Return(order, nil)
			mockOrderRepo.EXPECT().
				Update(ctx, order).
				Return(repository.ErrOrderVersionConflict)

			return fn(mockFactory)
		})

	_, err := fx.service.UpdateStatusAsAdmin(ctx, admin, order.ID, &usecase.UpdateStatusInput{
		PaymentStatus: strPtr("paid"),
		Note:          "payment reconciled manually",
	})

	assert.ErrorIs(t, err, domainerrors.ErrOrderVersionConflict)
}

func TestOrderService_GetMyOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
	orderID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().
				FindByIDForUser(ctx, orderID, actor.UserID).
				Return(nil, repository.ErrOrderNotFound)

			return fn(mockFactory)
		})

	_, err := fx.service.GetMyOrder(ctx, actor, orderID)

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_ListMyOrders(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New()}
	expected := []*entity.Order{testOrder(uuid.New()), testOrder(uuid.New())}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().
				ListByUser(ctx, actor.UserID).
				Return(expected, nil)

			return fn(mockFactory)
		})

	orders, err := fx.service.ListMyOrders(ctx, actor)

	require.NoError(t, err)
	assert.Equal(t, expected, orders)
}

func TestOrderService_ListVendorOrders(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	vendor := entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleVendor}}
	expected := []*entity.Order{testOrder(vendor.UserID)}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().
				ListByVendor(ctx, vendor.UserID).
				Return(expected, nil)

			return fn(mockFactory)
		})

	orders, err := fx.service.ListVendorOrders(ctx, vendor)

	require.NoError(t, err)
	assert.Equal(t, expected, orders)
}

func TestOrderService_ListAllOrders(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	expected := []*entity.Order{testOrder(uuid.New())}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().
				ListAll(ctx).
				Return(expected, nil)

			return fn(mockFactory)
		})

	orders, err := fx.service.ListAllOrders(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, orders)
}
