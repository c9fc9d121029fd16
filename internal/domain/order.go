package domain

import (
	"context"
	"time"
)

type OrderStatus string

// 目前只有创建态，没有状态流转
const OrderStatusCreated OrderStatus = "created"

// Order 不关联 User：外部调用方可以匿名下单
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	ProductID   uint        `gorm:"not null;index" json:"product_id"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	Status      OrderStatus `gorm:"size:16;not null;default:created" json:"status"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

type CreateOrderInput struct {
	ProductID uint
	Quantity  int
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, offset, limit int) ([]Order, error)
}
