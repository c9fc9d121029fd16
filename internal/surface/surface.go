// Package surface 定义对外/对内两套路由表：路由 → (操作, 限流策略)。
//
// 表在启动时构建并校验，运行期不可修改；两边策略的差异是一份显式的数据，
// 而不是散落在各个 handler 上的注解。
package surface

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront-gateway/internal/ratelimit"
)

type Name string

const (
	NameExternal Name = "external"
	NameInternal Name = "internal"
)

// Op 路由对应的业务操作，由 handler 层绑定具体实现
type Op string

const (
	OpRoot          Op = "root"
	OpHealth        Op = "health"
	OpMetrics       Op = "metrics"
	OpCreateUser    Op = "create-user"
	OpListUsers     Op = "list-users"
	OpGetUser       Op = "get-user"
	OpCreateProduct Op = "create-product"
	OpListProducts  Op = "list-products"
	OpGetProduct    Op = "get-product"
	OpCreateOrder   Op = "create-order"
	OpListOrders    Op = "list-orders"
	OpGetOrder      Op = "get-order"
)

var knownOps = map[Op]struct{}{
	OpRoot: {}, OpHealth: {}, OpMetrics: {},
	OpCreateUser: {}, OpListUsers: {}, OpGetUser: {},
	OpCreateProduct: {}, OpListProducts: {}, OpGetProduct: {},
	OpCreateOrder: {}, OpListOrders: {}, OpGetOrder: {},
}

type Route struct {
	Name   string // 同时作为限流策略名（计数 key 的一部分）
	Method string
	Path   string // gin 语法，路径参数如 /products/:id
	Op     Op
	Limit  string // "10/minute"；空串表示不限流
}

type Surface struct {
	Name   Name
	Routes []Route
}

// CompiledRoute 已解析策略的路由
type CompiledRoute struct {
	Route
	Policy ratelimit.Policy
}

var ErrInvalidSurface = errors.New("invalid surface")

func (s Surface) Validate() error {
	_, err := s.Compile()
	return err
}

// Compile 校验路由表并解析每条路由的限流策略
func (s Surface) Compile() ([]CompiledRoute, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidSurface)
	}
	names := make(map[string]struct{}, len(s.Routes))
	endpoints := make(map[string]string, len(s.Routes))
	out := make([]CompiledRoute, 0, len(s.Routes))

	for _, r := range s.Routes {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: %s %s has no name", ErrInvalidSurface, r.Method, r.Path)
		}
		if _, dup := names[r.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate route name %q", ErrInvalidSurface, r.Name)
		}
		names[r.Name] = struct{}{}

		method := strings.ToUpper(r.Method)
		switch method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return nil, fmt.Errorf("%w: %s: unsupported method %q", ErrInvalidSurface, r.Name, r.Method)
		}
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("%w: %s: path %q must start with /", ErrInvalidSurface, r.Name, r.Path)
		}
		ep := method + " " + r.Path
		if other, dup := endpoints[ep]; dup {
			return nil, fmt.Errorf("%w: %s and %s both bind %s", ErrInvalidSurface, other, r.Name, ep)
		}
		endpoints[ep] = r.Name

		if _, ok := knownOps[r.Op]; !ok {
			return nil, fmt.Errorf("%w: %s: unknown op %q", ErrInvalidSurface, r.Name, r.Op)
		}
		p, err := ratelimit.ParsePolicy(r.Name, r.Limit)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSurface, r.Name, err)
		}

		r.Method = method
		out = append(out, CompiledRoute{Route: r, Policy: p})
	}
	return out, nil
}

// Ops 路由表用到的全部操作（去重，保持顺序）
func (s Surface) Ops() []Op {
	seen := make(map[Op]struct{}, len(s.Routes))
	ops := make([]Op, 0, len(s.Routes))
	for _, r := range s.Routes {
		if _, ok := seen[r.Op]; ok {
			continue
		}
		seen[r.Op] = struct{}{}
		ops = append(ops, r.Op)
	}
	return ops
}

func ByName(n Name) (Surface, error) {
	switch n {
	case NameExternal:
		return External(), nil
	case NameInternal:
		return Internal(), nil
	}
	return Surface{}, fmt.Errorf("%w: unknown surface %q", ErrInvalidSurface, n)
}
