package orderrepo

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProjectionIndex serves the role-keyed order views from the orders
// table. The indexed actor columns stand in for materialized views; reads
// rehydrate full aggregates so view rows stay field-equal to the
// authoritative order.
type GormProjectionIndex struct {
	db *gorm.DB
}

// NewGormProjectionIndex creates a projection index over the connection.
func NewGormProjectionIndex(db *gorm.DB) *GormProjectionIndex {
	return &GormProjectionIndex{db: db}
}

// ByCustomer returns the orders placed by the customer.
func (x *GormProjectionIndex) ByCustomer(ctx context.Context, customerID string) ([]*order.Order, error) {
	return x.find(ctx, "customer_id = ?", customerID)
}

// ByStore returns the orders fulfilled by the store.
func (x *GormProjectionIndex) ByStore(ctx context.Context, storeID string) ([]*order.Order, error) {
	return x.find(ctx, "store_id = ?", storeID)
}

// ByWorker returns the orders assigned to the worker in the given role.
func (x *GormProjectionIndex) ByWorker(
	ctx context.Context, role services.WorkerRole, workerID string,
) ([]*order.Order, error) {
	switch role {
	case services.RolePicker:
		return x.find(ctx, "picker_id = ?", workerID)
	case services.RolePacker:
		return x.find(ctx, "packer_id = ?", workerID)
	case services.RoleRider:
		return x.find(ctx, "rider_id = ?", workerID)
	default:
		return nil, errs.NewValueIsInvalidError("role")
	}
}

// All returns every order in placement order.
func (x *GormProjectionIndex) All(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := x.db.WithContext(ctx).Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

func (x *GormProjectionIndex) find(ctx context.Context, cond string, arg string) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := x.db.WithContext(ctx).Order("created_at").Find(&dtos, cond, arg).Error; err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}
