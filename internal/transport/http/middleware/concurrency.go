package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/transport/http/ez"
)

// StoreScope 限制同时持有存储句柄的请求数（保护 DB 下游）。
// 槽位在 handler 返回（含 panic）后释放；等待期间请求超时或断开 → 503
func StoreScope(sem *semaphore.Weighted) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			ez.Fail(c, domain.ErrStoreUnavailable)
			return
		}
		storeInUse.Inc()
		defer func() {
			storeInUse.Dec()
			sem.Release(1)
		}()
		c.Next()
	}
}
