// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(txManager repository.TransactionManager, logger *slog.Logger) usecase.CartUsecase {
	return &cartService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetCart retrieves the actor's current cart.
func (srv *cartService) GetCart(ctx context.Context, actor entity.Actor) (*entity.Cart, error) {
	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.CartRepo().FindByUser(ctx, actor.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to read cart")
		}
		cart = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cart")
	}

	return cart, nil
}

// AddItem adds a product line to the cart, or replaces its quantity if the
// product is already there. The product must exist and be purchasable at add
// time; checkout re-validates at its own read time.
func (srv *cartService) AddItem(ctx context.Context, actor entity.Actor, input *usecase.AddCartItemInput) error {
	if input.Quantity < 1 {
		return errors.WithStack(domainerrors.ErrInvalidQuantity)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		product, err := repoFactory.ProductRepo().FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.WithStack(domainerrors.ErrProductNotFound)
			}

			return errors.Wrap(err, "failed to find product")
		}
		if !product.Purchasable() {
			return errors.WithStack(domainerrors.NewProductUnavailableError(product.Name))
		}

		line := entity.CartLine{ProductID: input.ProductID, Quantity: input.Quantity}
		if err := repoFactory.CartRepo().UpsertLine(ctx, actor.UserID, line); err != nil {
			return errors.Wrap(err, "failed to upsert cart line")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to add cart item")
	}

	return nil
}

// RemoveItem deletes one product's line from the cart.
func (srv *cartService) RemoveItem(ctx context.Context, actor entity.Actor, productID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CartRepo().RemoveLine(ctx, actor.UserID, productID); err != nil {
			if errors.Is(err, repository.ErrCartLineNotFound) {
				return errors.WithStack(domainerrors.ErrNotFound)
			}

			return errors.Wrap(err, "failed to remove cart line")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to remove cart item")
	}

	return nil
}

// ClearCart removes every line from the actor's cart.
func (srv *cartService) ClearCart(ctx context.Context, actor entity.Actor) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.CartRepo().Clear(ctx, actor.UserID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}
