package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/transport/http/ez"
	resp "storefront-gateway/internal/transport/http/response"
)

// Timeout 给请求上下文加截止时间；handler 未写响应即超时 → 504
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			ez.Fail(c, &ez.AErr{Code: resp.CodeGatewayTimeout, Reason: resp.ReasonTimeout, Msg: "request timeout"})
		}
	}
}
