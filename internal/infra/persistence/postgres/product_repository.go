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

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a new product and copies generated values back.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid vendor reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindByIDs retrieves the products matching the given ids; missing ids are
// simply absent from the result.
func (repo *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var productModels []*model.ProductModel

	err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&productModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find products by ids")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// ListActive returns all active products, newest first.
func (repo *productRepository) ListActive(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&productModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// ListByVendor returns a vendor's products, newest first, active or not.
func (repo *productRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	err := repo.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&productModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendor products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	vendorID := uuid.Nil
	if data.VendorID != nil {
		vendorID = *data.VendorID
	}

	return &entity.Product{
		ID:          data.ID,
		VendorID:    vendorID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Image:       data.Image,
		IsActive:    data.IsActive,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	var vendorID *uuid.UUID
	if data.VendorID != uuid.Nil {
		id := data.VendorID
		vendorID = &id
	}

	return &model.ProductModel{
		ID:          data.ID,
		VendorID:    vendorID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Image:       data.Image,
		IsActive:    data.IsActive,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
