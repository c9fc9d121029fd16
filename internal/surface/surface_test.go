package surface

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternal_PolicyTable(t *testing.T) {
	routes, err := External().Compile()
	require.NoError(t, err)

	want := map[string]struct {
		op    Op
		limit int
	}{
		"GET /":             {OpRoot, 5},
		"GET /health":       {OpHealth, 0},
		"GET /products/":    {OpListProducts, 100},
		"GET /products/:id": {OpGetProduct, 100},
		"POST /orders/":     {OpCreateOrder, 10},
		"GET /orders/:id":   {OpGetOrder, 50},
	}
	require.Len(t, routes, len(want))
	for _, r := range routes {
		w, ok := want[r.Method+" "+r.Path]
		require.True(t, ok, "unexpected route %s %s", r.Method, r.Path)
		assert.Equal(t, w.op, r.Op)
		assert.Equal(t, w.limit, r.Policy.Limit, r.Name)
		if w.limit > 0 {
			assert.Equal(t, time.Minute, r.Policy.Window, r.Name)
		}
		assert.Equal(t, r.Name, r.Policy.Name)
	}
}

func TestInternal_AllUnlimited(t *testing.T) {
	routes, err := Internal().Compile()
	require.NoError(t, err)
	for _, r := range routes {
		assert.True(t, r.Policy.Unlimited(), r.Name)
	}
}

func TestExternal_DoesNotExposeInternalOps(t *testing.T) {
	ext := map[Op]bool{}
	for _, op := range External().Ops() {
		ext[op] = true
	}
	for _, op := range []Op{OpCreateUser, OpListUsers, OpGetUser, OpCreateProduct, OpListOrders, OpMetrics} {
		assert.False(t, ext[op], "external surface must not expose %s", op)
	}
}

func TestCompile_Rejects(t *testing.T) {
	ok := Route{Name: "a", Method: http.MethodGet, Path: "/a", Op: OpRoot}
	tests := []struct {
		name   string
		routes []Route
	}{
		{"missing route name", []Route{{Method: http.MethodGet, Path: "/a", Op: OpRoot}}},
		{"duplicate name", []Route{ok, {Name: "a", Method: http.MethodGet, Path: "/b", Op: OpRoot}}},
		{"duplicate endpoint", []Route{ok, {Name: "b", Method: "get", Path: "/a", Op: OpHealth}}},
		{"bad method", []Route{{Name: "a", Method: "TRACE", Path: "/a", Op: OpRoot}}},
		{"relative path", []Route{{Name: "a", Method: http.MethodGet, Path: "a", Op: OpRoot}}},
		{"unknown op", []Route{{Name: "a", Method: http.MethodGet, Path: "/a", Op: "launch-rocket"}}},
		{"bad limit", []Route{{Name: "a", Method: http.MethodGet, Path: "/a", Op: OpRoot, Limit: "lots/minute"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Surface{Name: "test", Routes: tt.routes}.Validate()
			assert.ErrorIs(t, err, ErrInvalidSurface)
		})
	}

	assert.ErrorIs(t, Surface{Routes: []Route{ok}}.Validate(), ErrInvalidSurface)
}

func TestByName(t *testing.T) {
	s, err := ByName(NameExternal)
	require.NoError(t, err)
	assert.Equal(t, NameExternal, s.Name)

	s, err = ByName(NameInternal)
	require.NoError(t, err)
	assert.Equal(t, NameInternal, s.Name)

	_, err = ByName("partner")
	assert.ErrorIs(t, err, ErrInvalidSurface)
}
