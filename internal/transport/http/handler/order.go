package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/transport/http/ez"
)

type OrderService interface {
	Create(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id uint) (*domain.Order, error)
	List(ctx context.Context, p domain.Page) ([]domain.Order, error)
}

type OrderHandler struct{ svc OrderService }

type createOrderReq struct {
	ProductID uint `json:"product_id"` // 0 或缺省由 service 报 reference_not_found
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

func (h *OrderHandler) Create() gin.HandlerFunc {
	return ez.Handle(ez.Action[createOrderReq, *domain.Order]{
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *createOrderReq) (*domain.Order, error) {
			return h.svc.Create(c.Request.Context(), domain.CreateOrderInput{
				ProductID: in.ProductID, Quantity: in.Quantity,
			})
		},
	})
}

func (h *OrderHandler) Get() gin.HandlerFunc {
	return ez.Handle(ez.Action[idURI, *domain.Order]{
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idURI) (*domain.Order, error) {
			return h.svc.Get(c.Request.Context(), in.ID)
		},
	})
}

func (h *OrderHandler) List() gin.HandlerFunc {
	return ez.Handle(ez.Action[pageQuery, []domain.Order]{
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *pageQuery) ([]domain.Order, error) {
			return h.svc.List(c.Request.Context(), domain.Page{Skip: in.Skip, Limit: in.Limit})
		},
	})
}
