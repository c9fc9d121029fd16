package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"storefront-gateway/internal/core/cache"
	"storefront-gateway/internal/domain"
)

type ProductService struct {
	store    domain.Store
	pages    domain.PageLimits
	cache    *cache.Cache
	cacheTTL time.Duration
}

type ProductOption func(*ProductService)

// WithCache 商品读穿缓存；范围内商品创建后不可变，只缓存查到的记录
func WithCache(c *cache.Cache, ttl time.Duration) ProductOption {
	return func(s *ProductService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func NewProductService(store domain.Store, pages domain.PageLimits, opts ...ProductOption) *ProductService {
	s := &ProductService{store: store, pages: pages, cacheTTL: 5 * time.Minute}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ProductService) Create(ctx context.Context, in domain.CreateProductInput) (*domain.Product, error) {
	p := &domain.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
	}
	switch {
	case p.Name == "":
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	case p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0):
		return nil, fmt.Errorf("%w: price must be a non-negative number", domain.ErrValidation)
	case p.StockQuantity < 0:
		return nil, fmt.Errorf("%w: stock_quantity must be >= 0", domain.ErrValidation)
	}
	if err := s.store.Products().Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	load := func(ctx context.Context) (*domain.Product, error) {
		p, err := s.store.Products().FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
		}
		return p, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, "product:"+strconv.FormatUint(uint64(id), 10), s.cacheTTL, load)
}

func (s *ProductService) List(ctx context.Context, p domain.Page) ([]domain.Product, error) {
	p = s.pages.Clamp(p)
	return s.store.Products().List(ctx, p.Skip, p.Limit)
}
