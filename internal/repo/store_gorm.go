package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"storefront-gateway/internal/domain"
)

// Store 基于 gorm 的数据层实现
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() domain.UserRepository       { return &UserRepo{db: s.db} }
func (s *Store) Products() domain.ProductRepository { return &ProductRepo{db: s.db} }
func (s *Store) Orders() domain.OrderRepository     { return &OrderRepo{db: s.db} }

// Atomic 在同一个事务里执行 fn；fn 出错整体回滚
func (s *Store) Atomic(ctx context.Context, fn func(tx domain.Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	if err == nil || isDomainErr(err) {
		return err
	}
	return storeErr(err)
}

// Migrate 建表（users/products/orders）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Order{})
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func isDomainErr(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrReferenceNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrStoreUnavailable)
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey（需要开 TranslateError），按驱动错误文本判断
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

// first 查单条；查不到返回 (nil, nil)
func first[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var m T
	err := db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &m, nil
}

// list 按 id 升序分页，结果不为 nil；limit <= 0 返回空页，负 offset 按 0 处理
func list[T any](ctx context.Context, db *gorm.DB, offset, limit int) ([]T, error) {
	if limit <= 0 {
		return []T{}, nil
	}
	items := make([]T, 0, limit)
	err := db.WithContext(ctx).
		Model(new(T)).
		Order("id ASC").
		Offset(max(offset, 0)).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}
