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
	"gorm.io/gorm/clause"
)

// cartRepository implements the domain.CartRepository interface using GORM.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindByUser retrieves the user's cart lines, oldest line first so checkout
// fan-out order is stable. No lines means an empty cart, not an error.
func (repo *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var lineModels []*model.CartLineModel

	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lineModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart lines")
	}

	cart := &entity.Cart{UserID: userID, Lines: make([]entity.CartLine, 0, len(lineModels))}
	for _, lineM := range lineModels {
		cart.Lines = append(cart.Lines, entity.CartLine{
			ProductID: lineM.ProductID,
			Quantity:  lineM.Quantity,
		})
		if lineM.UpdatedAt.After(cart.UpdatedAt) {
			cart.UpdatedAt = lineM.UpdatedAt
		}
	}

	return cart, nil
}

// UpsertLine inserts the line or replaces the quantity of the existing
// (user, product) row.
func (repo *cartRepository) UpsertLine(ctx context.Context, userID uuid.UUID, line entity.CartLine) error {
	lineM := &model.CartLineModel{
		UserID:    userID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(lineM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("invalid product reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert cart line")
	}

	return nil
}

// RemoveLine deletes one product's line from the user's cart.
func (repo *cartRepository) RemoveLine(ctx context.Context, userID, productID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartLineModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove cart line")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartLineNotFound
	}

	return nil
}

// Clear removes every line from the user's cart. Clearing an already-empty
// cart is not an error.
func (repo *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLineModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}
