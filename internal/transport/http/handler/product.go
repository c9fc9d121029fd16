package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/transport/http/ez"
)

type ProductService interface {
	Create(ctx context.Context, in domain.CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id uint) (*domain.Product, error)
	List(ctx context.Context, p domain.Page) ([]domain.Product, error)
}

type ProductHandler struct{ svc ProductService }

type createProductReq struct {
	Name          string   `json:"name" binding:"required,max=191"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price" binding:"required,min=0"`
	StockQuantity int      `json:"stock_quantity" binding:"min=0"`
}

func (h *ProductHandler) Create() gin.HandlerFunc {
	return ez.Handle(ez.Action[createProductReq, *domain.Product]{
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *createProductReq) (*domain.Product, error) {
			return h.svc.Create(c.Request.Context(), domain.CreateProductInput{
				Name:          in.Name,
				Description:   in.Description,
				Price:         *in.Price,
				StockQuantity: in.StockQuantity,
			})
		},
	})
}

func (h *ProductHandler) Get() gin.HandlerFunc {
	return ez.Handle(ez.Action[idURI, *domain.Product]{
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idURI) (*domain.Product, error) {
			return h.svc.Get(c.Request.Context(), in.ID)
		},
	})
}

func (h *ProductHandler) List() gin.HandlerFunc {
	return ez.Handle(ez.Action[pageQuery, []domain.Product]{
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *pageQuery) ([]domain.Product, error) {
			return h.svc.List(c.Request.Context(), domain.Page{Skip: in.Skip, Limit: in.Limit})
		},
	})
}
