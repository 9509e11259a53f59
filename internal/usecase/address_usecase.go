// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bazaar/internal/domain/entity"
)

// AddressUsecase exposes the user's saved address book. Entries are created
// through checkout's saveAddress flag, not through a dedicated write API.
type AddressUsecase interface {
	ListMyAddresses(ctx context.Context, actor entity.Actor) ([]*entity.Address, error)
}
