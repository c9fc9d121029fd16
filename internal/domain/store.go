package domain

import "context"

// Store 是数据层的窄接口。
//
// FindByID 查不到时返回 (nil, nil)；其它失败一律包装成 ErrStoreUnavailable。
// Atomic 内 fn 返回错误则整体回滚，不留下任何写入。
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Orders() OrderRepository
	Atomic(ctx context.Context, fn func(tx Store) error) error
}
