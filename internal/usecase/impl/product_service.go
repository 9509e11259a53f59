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

// productService implements the ProductUsecase interface.
type productService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(txManager repository.TransactionManager, logger *slog.Logger) usecase.ProductUsecase {
	return &productService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListProducts returns all active products.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().ListActive(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct returns a single product by id.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.WithStack(domainerrors.ErrProductNotFound)
			}

			return errors.Wrap(err, "failed to find product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// CreateProduct persists a new product owned by the acting vendor.
func (srv *productService) CreateProduct(ctx context.Context, actor entity.Actor, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.logger.Info("Creating product", "vendorID", actor.UserID, "name", input.Name)

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	product := &entity.Product{
		VendorID:    actor.UserID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		IsActive:    active,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProductRepo().Create(ctx, product)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// ListVendorProducts returns the acting vendor's own products, active or not.
func (srv *productService) ListVendorProducts(ctx context.Context, actor entity.Actor) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().ListByVendor(ctx, actor.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to list vendor products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendor products")
	}

	return products, nil
}
