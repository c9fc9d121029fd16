package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

func TestNewEngine_RecoversPanic(t *testing.T) {
	r, err := NewEngine(zap.NewNop(), Options{})
	require.NoError(t, err)
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"reason":"internal_error"`)
}

func TestNewEngine_CORS(t *testing.T) {
	r, err := NewEngine(zap.NewNop(), Options{
		CORSOrigin:    "http://localhost:3000",
		ExposeHeaders: []string{"Retry-After"},
	})
	require.NoError(t, err)
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNewEngine_PreflightAllowsRequestedHeaders(t *testing.T) {
	r, err := NewEngine(zap.NewNop(), Options{CORSOrigin: "http://localhost:3000"})
	require.NoError(t, err)
	r.POST("/orders/", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := func(origin, headers string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/orders/", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", headers)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight("http://localhost:3000", "content-type,x-client-trace")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "content-type,x-client-trace", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, w.Header().Values("Vary"), "Access-Control-Request-Headers")

	// 非法的头名不回写，退回固定列表
	w = preflight("http://localhost:3000", "x-ok,bad header\r\n")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, w.Header().Get("Access-Control-Allow-Headers"), "bad")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")

	w = preflight("http://evil.example", "x-client-trace")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Headers"))
}

func TestValidHeaderList(t *testing.T) {
	assert.True(t, validHeaderList("Content-Type"))
	assert.True(t, validHeaderList("content-type, x-client-trace,X_Custom.1"))
	assert.False(t, validHeaderList("a,,b"))
	assert.False(t, validHeaderList("x-a;drop"))
	assert.False(t, validHeaderList(strings.Repeat("a", 2000)))
}

func TestNewEngine_RejectsBadConfig(t *testing.T) {
	_, err := NewEngine(zap.NewNop(), Options{CORSOrigin: "localhost:3000"})
	assert.Error(t, err)

	_, err = NewEngine(zap.NewNop(), Options{TrustedProxies: []string{"not-an-ip"}})
	assert.Error(t, err)
}

func TestServe_StopsOnCancel(t *testing.T) {
	srv := BuildServer("127.0.0.1:0", http.NotFoundHandler(), time.Second, time.Second, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, zap.NewNop(), time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not return")
	}
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:3002", Addr("0.0.0.0", 3002))
}
