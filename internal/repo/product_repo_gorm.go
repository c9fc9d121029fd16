package repo

import (
	"context"

	"gorm.io/gorm"

	"storefront-gateway/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return storeErr(r.db.WithContext(ctx).Create(p).Error)
}

func (r *ProductRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	return first[domain.Product](ctx, r.db, id)
}

func (r *ProductRepo) List(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	return list[domain.Product](ctx, r.db, offset, limit)
}
