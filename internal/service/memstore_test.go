package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"storefront-gateway/internal/domain"
)

// memStore 测试用内存实现；Atomic 在副本上执行，成功才整体替换
type memStore struct {
	mu    sync.Mutex
	state *memState

	failOrderCreate error
}

type memState struct {
	nextID   uint
	users    map[uint]domain.User
	products map[uint]domain.Product
	orders   map[uint]domain.Order
}

func newMemStore() *memStore {
	return &memStore{state: &memState{
		users:    map[uint]domain.User{},
		products: map[uint]domain.Product{},
		orders:   map[uint]domain.Order{},
	}}
}

func (s *memState) clone() *memState {
	c := &memState{
		nextID:   s.nextID,
		users:    make(map[uint]domain.User, len(s.users)),
		products: make(map[uint]domain.Product, len(s.products)),
		orders:   make(map[uint]domain.Order, len(s.orders)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	return c
}

func (s *memStore) Users() domain.UserRepository       { return memUsers{s} }
func (s *memStore) Products() domain.ProductRepository { return memProducts{s} }
func (s *memStore) Orders() domain.OrderRepository     { return memOrders{s} }

func (s *memStore) Atomic(ctx context.Context, fn func(tx domain.Store) error) error {
	s.mu.Lock()
	tx := &memStore{state: s.state.clone(), failOrderCreate: s.failOrderCreate}
	s.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = tx.state
	s.mu.Unlock()
	return nil
}

func (s *memStore) id() uint {
	s.state.nextID++
	return s.state.nextID
}

func page[T any](m map[uint]T, offset, limit int) []T {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, limit)
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, m[ids[i]])
	}
	return out
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.state.users {
		if existing.Email == u.Email {
			return fmt.Errorf("%w: email %q", domain.ErrConflict, u.Email)
		}
	}
	u.ID = r.s.id()
	r.s.state.users[u.ID] = *u
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.state.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r memUsers) List(_ context.Context, offset, limit int) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.s.state.users, offset, limit), nil
}

type memProducts struct{ s *memStore }

func (r memProducts) Create(_ context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	r.s.state.products[p.ID] = *p
	return nil
}

func (r memProducts) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.state.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r memProducts) List(_ context.Context, offset, limit int) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.s.state.products, offset, limit), nil
}

type memOrders struct{ s *memStore }

func (r memOrders) Create(_ context.Context, o *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failOrderCreate != nil {
		return r.s.failOrderCreate
	}
	o.ID = r.s.id()
	r.s.state.orders[o.ID] = *o
	return nil
}

func (r memOrders) FindByID(_ context.Context, id uint) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.state.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r memOrders) List(_ context.Context, offset, limit int) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.s.state.orders, offset, limit), nil
}
