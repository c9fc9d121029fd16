// Package router 把一张 surface 路由表编译成 gin 引擎。
//
// 每条路由的处理链固定为 [准入(有配额时), 存储槽位(访问存储时), handler]；
// 准入拒绝的请求不会进入后两步，也不会碰到存储。
package router

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"storefront-gateway/internal/core/server"
	"storefront-gateway/internal/ratelimit"
	"storefront-gateway/internal/surface"
	"storefront-gateway/internal/transport/http/handler"
	mdw "storefront-gateway/internal/transport/http/middleware"
	resp "storefront-gateway/internal/transport/http/response"
)

var ErrUnboundOp = errors.New("route op has no handler")

// 不访问存储的操作，不占存储槽位
var storeless = map[surface.Op]struct{}{
	surface.OpRoot:    {},
	surface.OpHealth:  {},
	surface.OpMetrics: {},
}

type Options struct {
	CORSOrigin     string
	TrustedProxies []string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	GlobalRPS      float64 // <= 0 关闭进程级过载保护
	GlobalBurst    int
}

type Deps struct {
	Log        *zap.Logger
	Surface    surface.Surface
	Handlers   handler.Set
	Limiter    *ratelimit.Limiter
	StoreSlots *semaphore.Weighted
	Options    Options
}

func New(d Deps) (*gin.Engine, error) {
	routes, err := d.Surface.Compile()
	if err != nil {
		return nil, err
	}
	for _, rt := range routes {
		if d.Handlers[rt.Op] == nil {
			return nil, fmt.Errorf("%w: %s (%s)", ErrUnboundOp, rt.Op, rt.Name)
		}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Limiter == nil {
		d.Limiter = ratelimit.New()
	}
	if d.StoreSlots == nil {
		d.StoreSlots = semaphore.NewWeighted(64)
	}

	r, err := server.NewEngine(d.Log, server.Options{
		CORSOrigin:     d.Options.CORSOrigin,
		TrustedProxies: d.Options.TrustedProxies,
		ExposeHeaders: []string{
			mdw.KeyRequestID,
			mdw.HeaderRetryAfter,
			mdw.HeaderRateLimitLimit,
			mdw.HeaderRateLimitRemaining,
			mdw.HeaderRateLimitReset,
		},
	})
	if err != nil {
		return nil, err
	}

	r.Use(
		mdw.RequestID(),
		mdw.Metrics(string(d.Surface.Name)),
		mdw.AccessLog(d.Log),
	)
	if d.Options.GlobalRPS > 0 {
		r.Use(mdw.Overload(rate.Limit(d.Options.GlobalRPS), max(1, d.Options.GlobalBurst)))
	}
	if d.Options.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(d.Options.MaxBodyBytes))
	}
	r.Use(mdw.Timeout(d.Options.RequestTimeout))

	r.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound,
			resp.Error(resp.CodeNotFound, resp.ReasonRouteNotFound, "route not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed,
			resp.Error(resp.CodeMethodNotAllowed, resp.ReasonMethodNotAllowed, ""))
	})

	for _, rt := range routes {
		r.Handle(rt.Method, rt.Path, chain(d, rt)...)
		d.Log.Debug("route mounted",
			zap.String("surface", string(d.Surface.Name)),
			zap.String("route", rt.Name),
			zap.String("method", rt.Method),
			zap.String("path", rt.Path),
			zap.Stringer("policy", rt.Policy),
		)
	}
	return r, nil
}

func chain(d Deps, rt surface.CompiledRoute) []gin.HandlerFunc {
	name := rt.Name
	hs := []gin.HandlerFunc{func(c *gin.Context) { c.Set(mdw.KeyRouteName, name) }}
	if !rt.Policy.Unlimited() {
		hs = append(hs, mdw.Admit(d.Limiter, rt.Policy))
	}
	if _, ok := storeless[rt.Op]; !ok {
		hs = append(hs, mdw.StoreScope(d.StoreSlots))
	}
	return append(hs, d.Handlers[rt.Op])
}
