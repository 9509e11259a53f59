// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/pkg/errors"
)

// addressService implements the AddressUsecase interface.
type addressService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(txManager repository.TransactionManager, logger *slog.Logger) usecase.AddressUsecase {
	return &addressService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListMyAddresses returns the actor's saved addresses, default first.
func (srv *addressService) ListMyAddresses(ctx context.Context, actor entity.Actor) ([]*entity.Address, error) {
	var addresses []*entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AddressRepo().ListByUser(ctx, actor.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to list addresses")
		}
		addresses = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list my addresses")
	}

	return addresses, nil
}
