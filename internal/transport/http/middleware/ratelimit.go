package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/ratelimit"
	"storefront-gateway/internal/transport/http/ez"
	resp "storefront-gateway/internal/transport/http/response"
)

const (
	HeaderRetryAfter         = "Retry-After"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"

	// 当前命中的路由名（即限流策略名），供访问日志使用
	KeyRouteName = "route"
)

// Overload 进程级令牌桶，桶空时 503；与按客户端的配额无关
func Overload(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		ez.Fail(c, &ez.AErr{Code: resp.CodeServiceUnavailable, Reason: resp.ReasonOverloaded, Msg: "server overloaded"})
	}
}

// Admit 按 (策略, 客户端地址) 计数；拒绝时直接 429，后续 handler 不会执行
func Admit(lim *ratelimit.Limiter, p ratelimit.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := lim.Admit(p, c.ClientIP())
		recordDecision(p.Name, d.Allowed)

		h := c.Writer.Header()
		h.Set(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
		h.Set(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))
		h.Set(HeaderRateLimitReset, strconv.Itoa(ceilSeconds(d.ResetAfter)))
		if d.Allowed {
			c.Next()
			return
		}
		h.Set(HeaderRetryAfter, strconv.Itoa(ceilSeconds(d.RetryAfter)))
		ez.Fail(c, fmt.Errorf("%w: %s", domain.ErrRateLimited, p))
	}
}

// ceilSeconds 向上取整且至少为 1，客户端按秒等待不会提前重试
func ceilSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
