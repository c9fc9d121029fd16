package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-gateway/internal/surface"
	"storefront-gateway/internal/transport/http/ez"
)

type rootOut struct {
	Message string `json:"message"`
}

func Root(name surface.Name) gin.HandlerFunc {
	msg := string(name) + " api is running"
	return ez.Handle(ez.Action[struct{}, rootOut]{
		Binder: ez.BindNone,
		Handler: func(_ *gin.Context, _ *struct{}) (rootOut, error) {
			return rootOut{Message: msg}, nil
		},
	})
}

type healthOut struct {
	Status string `json:"status"`
}

// Health 存活探针，不访问存储
func Health() gin.HandlerFunc {
	return ez.Handle(ez.Action[struct{}, healthOut]{
		Binder: ez.BindNone,
		Handler: func(_ *gin.Context, _ *struct{}) (healthOut, error) {
			return healthOut{Status: "healthy"}, nil
		},
	})
}

// Metrics Prometheus 文本格式，不走 JSON 信封
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
