// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// addressRepository implements the domain.AddressRepository interface using GORM.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

// Create persists a new address-book entry.
func (repo *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required address information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}

	address.ID = addressM.ID
	address.CreatedAt = addressM.CreatedAt
	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// ListByUser retrieves all saved addresses for a user, default first.
func (repo *addressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	var addressModels []*model.AddressModel

	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addressModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	addresses := make([]*entity.Address, 0, len(addressModels))
	for _, addressM := range addressModels {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return addresses, nil
}

// --- Mapper Functions ---

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:             data.ID,
		UserID:         data.UserID,
		FullName:       data.FullName,
		Phone:          data.Phone,
		AlternatePhone: data.AlternatePhone,
		Email:          data.Email,
		State:          data.State,
		City:           data.City,
		Locality:       data.Locality,
		AddressLine1:   data.AddressLine1,
		PostalCode:     data.PostalCode,
		Latitude:       data.Latitude,
		Longitude:      data.Longitude,
		Country:        data.Country,
		IsDefault:      data.IsDefault,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromAddressDomain converts a domain Address entity to a GORM AddressModel.
func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		ID:             data.ID,
		UserID:         data.UserID,
		FullName:       data.FullName,
		Phone:          data.Phone,
		AlternatePhone: data.AlternatePhone,
		Email:          data.Email,
		State:          data.State,
		City:           data.City,
		Locality:       data.Locality,
		AddressLine1:   data.AddressLine1,
		PostalCode:     data.PostalCode,
		Latitude:       data.Latitude,
		Longitude:      data.Longitude,
		Country:        data.Country,
		IsDefault:      data.IsDefault,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
