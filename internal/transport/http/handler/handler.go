// Package handler 每个路由操作对应一个 gin.HandlerFunc，由 router 按路由表挂载。
package handler

import (
	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/surface"
)

// Set 操作 → handler；router 启动时要求路由表里的每个操作都能在这里找到
type Set map[surface.Op]gin.HandlerFunc

type Services struct {
	Users    UserService
	Products ProductService
	Orders   OrderService
}

// New 按表面名构建 handler 集合；外部表面不会挂载用户与列表订单，但实现一份即可
func New(name surface.Name, svc Services) Set {
	s := Set{
		surface.OpRoot:    Root(name),
		surface.OpHealth:  Health(),
		surface.OpMetrics: Metrics(),
	}
	if svc.Users != nil {
		u := &UserHandler{svc: svc.Users}
		s[surface.OpCreateUser] = u.Create()
		s[surface.OpListUsers] = u.List()
		s[surface.OpGetUser] = u.Get()
	}
	if svc.Products != nil {
		p := &ProductHandler{svc: svc.Products}
		s[surface.OpCreateProduct] = p.Create()
		s[surface.OpListProducts] = p.List()
		s[surface.OpGetProduct] = p.Get()
	}
	if svc.Orders != nil {
		o := &OrderHandler{svc: svc.Orders}
		s[surface.OpCreateOrder] = o.Create()
		s[surface.OpListOrders] = o.List()
		s[surface.OpGetOrder] = o.Get()
	}
	return s
}

// 路径参数 /:id
type idURI struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// 列表分页参数；limit 缺省或为 0 时由 service 按配置取默认值并截断上限
type pageQuery struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}
