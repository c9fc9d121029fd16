package repo

import (
	"context"

	"gorm.io/gorm"

	"storefront-gateway/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return storeErr(r.db.WithContext(ctx).Create(o).Error)
}

func (r *OrderRepo) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return first[domain.Order](ctx, r.db, id)
}

func (r *OrderRepo) List(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	return list[domain.Order](ctx, r.db, offset, limit)
}
