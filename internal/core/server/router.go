package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "storefront-gateway/internal/transport/http/response"
)

type Options struct {
	CORSOrigin     string   // 允许的单个来源，空则不挂 CORS
	TrustedProxies []string // 空表示不信任任何代理，客户端地址取 RemoteAddr
	ExposeHeaders  []string
}

// NewEngine 基础引擎：panic 恢复 + CORS；业务中间件与路由由 router 挂载
func NewEngine(l *zap.Logger, opt Options) (*gin.Engine, error) {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	if err := r.SetTrustedProxies(opt.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(ginzap.CustomRecoveryWithZap(l, true, func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			resp.Error(resp.CodeServerError, resp.ReasonInternal, ""))
	}))

	if opt.CORSOrigin != "" {
		cc := cors.Config{
			AllowOrigins:     []string{opt.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
			ExposeHeaders:    opt.ExposeHeaders,
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
		// cors.New 遇到非法配置会 panic，这里先校验
		if err := cc.Validate(); err != nil {
			return nil, fmt.Errorf("cors: %w", err)
		}
		r.Use(allowRequestedHeaders(), cors.New(cc))
	}
	return r, nil
}

// allowRequestedHeaders 预检时把 Access-Control-Request-Headers 原样放进允许列表，
// 等价于允许任意请求头；来源是否允许仍由 cors 判定（未放行时不写 Allow-Origin，这里也不改）
func allowRequestedHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}
		requested := c.GetHeader("Access-Control-Request-Headers")
		if requested == "" || !validHeaderList(requested) {
			c.Next()
			return
		}
		c.Writer = &preflightWriter{ResponseWriter: c.Writer, requested: requested}
		c.Next()
	}
}

type preflightWriter struct {
	gin.ResponseWriter
	requested string
	done      bool
}

func (w *preflightWriter) apply() {
	if w.done {
		return
	}
	w.done = true
	h := w.Header()
	if h.Get("Access-Control-Allow-Origin") == "" {
		return
	}
	h.Set("Access-Control-Allow-Headers", w.requested)
	h.Add("Vary", "Access-Control-Request-Headers")
}

func (w *preflightWriter) WriteHeader(code int) { w.apply(); w.ResponseWriter.WriteHeader(code) }
func (w *preflightWriter) WriteHeaderNow()      { w.apply(); w.ResponseWriter.WriteHeaderNow() }
func (w *preflightWriter) Write(b []byte) (int, error) {
	w.apply()
	return w.ResponseWriter.Write(b)
}

// validHeaderList 只接受逗号分隔的 HTTP token，避免把任意字节回写进响应头
func validHeaderList(s string) bool {
	if len(s) > 1024 {
		return false
	}
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			return false
		}
		for i := 0; i < len(name); i++ {
			ch := name[i]
			if !(ch == '-' || ch == '_' || ch == '.' || ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z') {
				return false
			}
		}
	}
	return true
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       rt,
		ReadHeaderTimeout: rt,
		WriteTimeout:      wt,
		IdleTimeout:       it,
		MaxHeaderBytes:    1 << 20, // 1MB
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }

// Serve 启动并阻塞到 ctx 结束，然后在 grace 时间内优雅关闭
func Serve(ctx context.Context, srv *http.Server, l *zap.Logger, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		l.Info("http starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	l.Info("http stopped gracefully", zap.String("addr", srv.Addr))
	return nil
}
