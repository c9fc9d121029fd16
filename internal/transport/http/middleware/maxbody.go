package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/transport/http/ez"
)

// MaxBodyBytes 限制请求体大小；声明长度超限直接拒绝，未声明长度的在读取时截断（绑定失败 → 400）
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			ez.Fail(c, ez.BadRequest("request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
