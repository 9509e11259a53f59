// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// ListMyOrders returns the customer's own orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, actor entity.Actor) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().ListByUser(ctx, actor.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user orders")
	}

	return orders, nil
}

// GetMyOrder returns one of the customer's own orders, items and history
// included. An order belonging to someone else is a plain 404.
func (srv *orderService) GetMyOrder(ctx context.Context, actor entity.Actor, orderID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().FindByIDForUser(ctx, orderID, actor.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.WithStack(domainerrors.ErrOrderNotFound)
			}

			return errors.Wrap(err, "failed to find order")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user order")
	}

	return order, nil
}

// ListVendorOrders returns the orders owned by the acting vendor.
func (srv *orderService) ListVendorOrders(ctx context.Context, actor entity.Actor) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().ListByVendor(ctx, actor.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendor orders")
	}

	return orders, nil
}

// ListAllOrders returns every order on the platform, newest first.
func (srv *orderService) ListAllOrders(ctx context.Context) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().ListAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list all orders")
	}

	return orders, nil
}

// UpdateStatusAsVendor applies a transition to an order the acting vendor
// owns. The lookup is scoped to (orderID, vendorID): another vendor's order
// cannot even be discovered by id.
func (srv *orderService) UpdateStatusAsVendor(ctx context.Context, actor entity.Actor, orderID uuid.UUID, input *usecase.UpdateStatusInput) (*entity.Order, error) {
	return srv.updateStatus(ctx, orderID, input, entity.ChangedByVendor, domainerrors.ErrNoteMandatory,
		func(ctx context.Context, repo repository.OrderRepository) (*entity.Order, error) {
			return repo.FindByIDForVendor(ctx, orderID, actor.UserID)
		})
}

// UpdateStatusAsAdmin applies a transition to any order by id. The history
// entry records the change as made by an admin.
func (srv *orderService) UpdateStatusAsAdmin(ctx context.Context, actor entity.Actor, orderID uuid.UUID, input *usecase.UpdateStatusInput) (*entity.Order, error) {
	srv.logger.Info("Admin status update", "adminID", actor.UserID, "orderID", orderID)

	return srv.updateStatus(ctx, orderID, input, entity.ChangedByAdmin, domainerrors.ErrAdminNoteMandatory,
		func(ctx context.Context, repo repository.OrderRepository) (*entity.Order, error) {
			return repo.FindByID(ctx, orderID)
		})
}

// updateStatus is the shared transition path. The note and enum values are
// validated before any read; the scoped lookup, the in-memory transition and
// the compare-and-swap write share one transaction.
func (srv *orderService) updateStatus(
	ctx context.Context,
	orderID uuid.UUID,
	input *usecase.UpdateStatusInput,
	by entity.ChangedBy,
	noteErr domainerrors.AppError,
	find func(ctx context.Context, repo repository.OrderRepository) (*entity.Order, error),
) (*entity.Order, error) {
	if utf8.RuneCountInString(strings.TrimSpace(input.Note)) < entity.MinNoteLength {
		return nil, errors.WithStack(noteErr)
	}

	var status *entity.OrderStatus
	if input.Status != nil {
		s := entity.OrderStatus(*input.Status)
		if !s.IsValid() {
			return nil, errors.WithStack(domainerrors.ErrInvalidStatus)
		}
		status = &s
	}

	var payment *entity.PaymentStatus
	if input.PaymentStatus != nil {
		p := entity.PaymentStatus(*input.PaymentStatus)
		if !p.IsValid() {
			return nil, errors.WithStack(domainerrors.ErrInvalidPaymentStatus)
		}
		payment = &p
	}

	if status == nil && payment == nil {
		return nil, errors.WithStack(domainerrors.ErrNoStatusFields)
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := find(ctx, repoFactory.OrderRepo())
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.WithStack(domainerrors.ErrOrderNotFound)
			}

			return errors.Wrap(err, "failed to find order")
		}

		if input.ExpectedVersion != nil && *input.ExpectedVersion != found.Version {
			return errors.WithStack(domainerrors.ErrOrderVersionConflict)
		}

		if err := found.ApplyTransition(entity.TransitionRequest{
			Status:        status,
			PaymentStatus: payment,
			Note:          input.Note,
			By:            by,
			At:            time.Now(),
		}); err != nil {
			// Already prevalidated; a failure here is a programming error.
			return errors.Wrap(err, "transition rejected")
		}

		if err := repoFactory.OrderRepo().Update(ctx, found); err != nil {
			if errors.Is(err, repository.ErrOrderVersionConflict) {
				return errors.WithStack(domainerrors.ErrOrderVersionConflict)
			}

			return errors.Wrap(err, "failed to persist order")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.publishStatusChanged(ctx, order, by, input.Note)

	return order, nil
}

// publishStatusChanged emits an order.status_changed event. Best effort: the
// transition has committed, so a publish failure is only logged.
func (srv *orderService) publishStatusChanged(ctx context.Context, order *entity.Order, by entity.ChangedBy, note string) {
	event := &service.OrderEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		EventType:     service.EventOrderStatusChanged,
		OrderID:       order.ID.String(),
		UserID:        order.UserID.String(),
		VendorID:      order.VendorID.String(),
		Status:        order.Status.String(),
		PaymentStatus: order.PaymentStatus.String(),
		ChangedBy:     string(by),
		Note:          strings.TrimSpace(note),
		TotalAmount:   order.TotalAmount,
		OccurredAt:    time.Now(),
	}

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish order.status_changed event",
			"orderID", order.ID,
			"error", err,
		)
	}
}
