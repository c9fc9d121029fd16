package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/transport/http/ez"
)

type UserService interface {
	Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context, p domain.Page) ([]domain.User, error)
}

type UserHandler struct{ svc UserService }

type createUserReq struct {
	Email    string `json:"email" binding:"required,email,max=191"`
	Name     string `json:"name" binding:"required,max=64"`
	Password string `json:"password" binding:"omitempty,max=72"`
}

func (h *UserHandler) Create() gin.HandlerFunc {
	return ez.Handle(ez.Action[createUserReq, *domain.User]{
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *createUserReq) (*domain.User, error) {
			return h.svc.Create(c.Request.Context(), domain.CreateUserInput{
				Email: in.Email, Name: in.Name, Password: in.Password,
			})
		},
	})
}

func (h *UserHandler) Get() gin.HandlerFunc {
	return ez.Handle(ez.Action[idURI, *domain.User]{
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idURI) (*domain.User, error) {
			return h.svc.Get(c.Request.Context(), in.ID)
		},
	})
}

func (h *UserHandler) List() gin.HandlerFunc {
	return ez.Handle(ez.Action[pageQuery, []domain.User]{
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *pageQuery) ([]domain.User, error) {
			return h.svc.List(c.Request.Context(), domain.Page{Skip: in.Skip, Limit: in.Limit})
		},
	})
}
