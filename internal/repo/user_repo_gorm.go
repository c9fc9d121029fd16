package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storefront-gateway/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err != nil && isDupKey(err) {
		return fmt.Errorf("%w: email %q already registered", domain.ErrConflict, u.Email)
	}
	return storeErr(err)
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return first[domain.User](ctx, r.db, id)
}

func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	return list[domain.User](ctx, r.db, offset, limit)
}
