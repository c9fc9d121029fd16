package service

import (
	"context"
	"fmt"

	"storefront-gateway/internal/domain"
)

type OrderService struct {
	store domain.Store
	pages domain.PageLimits
}

func NewOrderService(store domain.Store, pages domain.PageLimits) *OrderService {
	return &OrderService{store: store, pages: pages}
}

// Create 在一个事务里校验商品存在、计算总价并落库；任一步失败都不留下订单
func (s *OrderService) Create(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", domain.ErrValidation)
	}
	// 0 不可能是已存在的商品，不必进存储
	if in.ProductID == 0 {
		return nil, fmt.Errorf("%w: product 0", domain.ErrReferenceNotFound)
	}
	var created *domain.Order
	err := s.store.Atomic(ctx, func(tx domain.Store) error {
		p, err := tx.Products().FindByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: product %d", domain.ErrReferenceNotFound, in.ProductID)
		}
		o := &domain.Order{
			ProductID:   p.ID,
			Quantity:    in.Quantity,
			Status:      domain.OrderStatusCreated,
			TotalAmount: p.Price * float64(in.Quantity),
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*domain.Order, error) {
	o, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context, p domain.Page) ([]domain.Order, error) {
	p = s.pages.Clamp(p)
	return s.store.Orders().List(ctx, p.Skip, p.Limit)
}
