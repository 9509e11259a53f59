// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager repository.TransactionManager
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(
	txManager repository.TransactionManager,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// Checkout reads the actor's cart, resolves and validates every line,
// partitions the lines by vendor, and creates one order per vendor group.
// Order creation, the optional address save, and the cart clear run inside
// one transaction: a failure anywhere leaves no partial vendor-order set and
// keeps the cart intact for retry.
func (srv *checkoutService) Checkout(ctx context.Context, actor entity.Actor, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	srv.logger.Info("Processing checkout", "userID", actor.UserID)

	addr, err := shippingAddressFromInput(&input.ShippingAddressInput)
	if err != nil {
		return nil, err
	}

	method := entity.PaymentMethod(input.PaymentMethod)
	if input.PaymentMethod == "" {
		method = entity.PaymentMethodCOD
	}
	if !method.IsValid() {
		return nil, errors.WithStack(domainerrors.ErrInvalidPaymentMethod)
	}

	var orders []*entity.Order

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// 1. Snapshot the cart.
		lines, err := srv.resolveCart(ctx, actor, repoFactory)
		if err != nil {
			return err
		}

		// 2. Fan out: one vendor-pure order per vendor group.
		now := time.Now()
		for _, group := range entity.PartitionByVendor(lines) {
			items := make([]entity.OrderItem, 0, len(group.Lines))
			for _, line := range group.Lines {
				items = append(items, line.OrderItem())
			}

			order, err := entity.NewOrder(actor.UserID, group.VendorID, items, addr, method, now)
			if err != nil {
				return errors.Wrap(err, "failed to assemble order")
			}

			if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
				return errors.Wrap(err, "failed to create order")
			}

			orders = append(orders, order)
		}

		// 3. Optionally persist the shipping address to the address book.
		if input.SaveAddress {
			if err := repoFactory.AddressRepo().Create(ctx, entity.FromShipping(actor.UserID, addr)); err != nil {
				return errors.Wrap(err, "failed to save shipping address")
			}
		}

		// 4. Clear the cart last, in the same transaction.
		if err := repoFactory.CartRepo().Clear(ctx, actor.UserID); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "checkout failed")
	}

	srv.logger.Info("Checkout complete",
		"userID", actor.UserID,
		"orderCount", len(orders),
	)

	for _, order := range orders {
		srv.publishPlaced(ctx, order)
	}

	return &usecase.CheckoutOutput{Orders: orders}, nil
}

// resolveCart reads the actor's cart and resolves each line against the
// catalog, snapshotting name/price/image. Any missing, inactive or
// vendor-less product aborts the entire checkout; partial checkouts are not
// supported.
func (srv *checkoutService) resolveCart(ctx context.Context, actor entity.Actor, repoFactory repository.RepositoryFactory) ([]entity.ResolvedLine, error) {
	cart, err := repoFactory.CartRepo().FindByUser(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cart")
	}
	if cart.IsEmpty() {
		return nil, errors.WithStack(domainerrors.ErrCartEmpty)
	}

	ids := make([]uuid.UUID, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.ProductID)
	}

	products, err := repoFactory.ProductRepo().FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve products")
	}

	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	resolved := make([]entity.ResolvedLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, errors.WithStack(domainerrors.NewProductUnavailableError(line.ProductID.String()))
		}
		if !product.Purchasable() {
			return nil, errors.WithStack(domainerrors.NewProductUnavailableError(product.Name))
		}

		resolved = append(resolved, entity.ResolvedLine{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			ProductImage: product.Image,
			VendorID:     product.VendorID,
			Quantity:     line.Quantity,
		})
	}

	return resolved, nil
}

// publishPlaced emits an order.placed event. Best effort: the orders are
// already committed, so a publish failure is only logged.
func (srv *checkoutService) publishPlaced(ctx context.Context, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		EventType:     service.EventOrderPlaced,
		OrderID:       order.ID.String(),
		UserID:        order.UserID.String(),
		VendorID:      order.VendorID.String(),
		Status:        order.Status.String(),
		PaymentStatus: order.PaymentStatus.String(),
		TotalAmount:   order.TotalAmount,
		OccurredAt:    order.CreatedAt,
	}

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish order.placed event",
			"orderID", order.ID,
			"error", err,
		)
	}
}

// shippingAddressFromInput validates the required address fields and copies
// the input into the embedded value type.
func shippingAddressFromInput(input *usecase.ShippingAddressInput) (entity.ShippingAddress, error) {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"fullName", input.FullName},
		{"phone", input.Phone},
		{"addressLine1", input.AddressLine1},
		{"city", input.City},
		{"state", input.State},
		{"postalCode", input.PostalCode},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return entity.ShippingAddress{}, errors.WithStack(
			domainerrors.ErrAddressIncomplete.WithDetails("missing: " + strings.Join(missing, ", ")),
		)
	}

	// Default here so the order copy and a saved address-book entry agree.
	country := input.Country
	if country == "" {
		country = entity.DefaultCountry
	}

	return entity.ShippingAddress{
		FullName:       input.FullName,
		Phone:          input.Phone,
		AlternatePhone: input.AlternatePhone,
		Email:          input.Email,
		State:          input.State,
		City:           input.City,
		Locality:       input.Locality,
		AddressLine1:   input.AddressLine1,
		PostalCode:     input.PostalCode,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		Country:        country,
	}, nil
}
