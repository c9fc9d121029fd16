package service

import (
	"context"
	"fmt"
	"strings"

	"storefront-gateway/internal/domain"
	"storefront-gateway/pkg/utils"
)

type UserService struct {
	store domain.Store
	pages domain.PageLimits
}

func NewUserService(store domain.Store, pages domain.PageLimits) *UserService {
	return &UserService{store: store, pages: pages}
}

func (s *UserService) Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	u := &domain.User{
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
		Name:  strings.TrimSpace(in.Name),
	}
	if u.Email == "" || u.Name == "" {
		return nil, fmt.Errorf("%w: email and name are required", domain.ErrValidation)
	}
	if in.Password != "" {
		h, err := utils.HashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		u.PasswordHash = h
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, p domain.Page) ([]domain.User, error) {
	p = s.pages.Clamp(p)
	return s.store.Users().List(ctx, p.Skip, p.Limit)
}
