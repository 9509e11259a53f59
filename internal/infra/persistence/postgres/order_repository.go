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

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order row, JSONB items/history/address included, and
// copies the generated values back onto the entity.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user or vendor reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.Version = orderM.Version
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves any order by id. Admin-scoped.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByIDForUser retrieves an order only if the customer owns it.
func (repo *orderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "id = ? AND user_id = ?", id, userID)
}

// FindByIDForVendor retrieves an order only if the vendor owns it. The
// vendor scope is part of the WHERE clause, so a foreign order id behaves
// exactly like a missing one.
func (repo *orderRepository) FindByIDForVendor(ctx context.Context, id, vendorID uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "id = ? AND vendor_id = ?", id, vendorID)
}

func (repo *orderRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	var orderM model.OrderModel

	err := repo.db.WithContext(ctx).Where(query, args...).First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

// ListByUser returns the customer's orders, newest first.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return repo.list(ctx, "user_id = ?", userID)
}

// ListByVendor returns the vendor's orders, newest first.
func (repo *orderRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Order, error) {
	return repo.list(ctx, "vendor_id = ?", vendorID)
}

// ListAll returns every order, newest first. Admin-scoped.
func (repo *orderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return repo.list(ctx, "")
}

func (repo *orderRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	tx := repo.db.WithContext(ctx).Order("created_at DESC")
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// Update persists the mutable fields with a compare-and-swap on the version
// column. Zero rows affected means another writer won the race.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Select("status", "payment_status", "status_history", "version").
		Updates(&model.OrderModel{
			Status:        orderM.Status,
			PaymentStatus: orderM.PaymentStatus,
			StatusHistory: orderM.StatusHistory,
			Version:       order.Version + 1,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderVersionConflict
	}

	order.Version++

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.OrderItem{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
		})
	}

	history := make([]entity.StatusHistoryEntry, 0, len(data.StatusHistory))
	for _, entry := range data.StatusHistory {
		history = append(history, entity.StatusHistoryEntry{
			ChangedBy:             entity.ChangedBy(entry.ChangedBy),
			PreviousStatus:        entity.OrderStatus(entry.PreviousStatus),
			NewStatus:             entity.OrderStatus(entry.NewStatus),
			PreviousPaymentStatus: entity.PaymentStatus(entry.PreviousPaymentStatus),
			NewPaymentStatus:      entity.PaymentStatus(entry.NewPaymentStatus),
			Note:                  entry.Note,
			ChangedAt:             entry.ChangedAt,
		})
	}

	return &entity.Order{
		ID:            data.ID,
		UserID:        data.UserID,
		VendorID:      data.VendorID,
		Items:         items,
		Subtotal:      data.Subtotal,
		ShippingFee:   data.ShippingFee,
		TotalAmount:   data.TotalAmount,
		PaymentMethod: entity.PaymentMethod(data.PaymentMethod),
		Status:        entity.OrderStatus(data.Status),
		PaymentStatus: entity.PaymentStatus(data.PaymentStatus),
		StatusHistory: history,
		ShippingAddress: entity.ShippingAddress{
			FullName:       data.ShippingAddress.FullName,
			Phone:          data.ShippingAddress.Phone,
			AlternatePhone: data.ShippingAddress.AlternatePhone,
			Email:          data.ShippingAddress.Email,
			State:          data.ShippingAddress.State,
			City:           data.ShippingAddress.City,
			Locality:       data.ShippingAddress.Locality,
			AddressLine1:   data.ShippingAddress.AddressLine1,
			PostalCode:     data.ShippingAddress.PostalCode,
			Latitude:       data.ShippingAddress.Latitude,
			Longitude:      data.ShippingAddress.Longitude,
			Country:        data.ShippingAddress.Country,
		},
		Version:   data.Version,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemJSON, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemJSON{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
		})
	}

	history := make([]model.StatusHistoryJSON, 0, len(data.StatusHistory))
	for _, entry := range data.StatusHistory {
		history = append(history, model.StatusHistoryJSON{
			ChangedBy:             string(entry.ChangedBy),
			PreviousStatus:        entry.PreviousStatus.String(),
			NewStatus:             entry.NewStatus.String(),
			PreviousPaymentStatus: entry.PreviousPaymentStatus.String(),
			NewPaymentStatus:      entry.NewPaymentStatus.String(),
			Note:                  entry.Note,
			ChangedAt:             entry.ChangedAt,
		})
	}

	return &model.OrderModel{
		ID:            data.ID,
		UserID:        data.UserID,
		VendorID:      data.VendorID,
		Items:         items,
		Subtotal:      data.Subtotal,
		ShippingFee:   data.ShippingFee,
		TotalAmount:   data.TotalAmount,
		PaymentMethod: string(data.PaymentMethod),
		Status:        data.Status.String(),
		PaymentStatus: data.PaymentStatus.String(),
		StatusHistory: history,
		ShippingAddress: model.ShippingAddressJSON{
			FullName:       data.ShippingAddress.FullName,
			Phone:          data.ShippingAddress.Phone,
			AlternatePhone: data.ShippingAddress.AlternatePhone,
			Email:          data.ShippingAddress.Email,
			State:          data.ShippingAddress.State,
			City:           data.ShippingAddress.City,
			Locality:       data.ShippingAddress.Locality,
			AddressLine1:   data.ShippingAddress.AddressLine1,
			PostalCode:     data.ShippingAddress.PostalCode,
			Latitude:       data.ShippingAddress.Latitude,
			Longitude:      data.ShippingAddress.Longitude,
			Country:        data.ShippingAddress.Country,
		},
		Version:   data.Version,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
