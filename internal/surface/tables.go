package surface

import "net/http"

// External 第三方客户端：只读商品、下单、查单，按客户端地址限流
func External() Surface {
	return Surface{
		Name: NameExternal,
		Routes: []Route{
			{Name: "external.root", Method: http.MethodGet, Path: "/", Op: OpRoot, Limit: "5/minute"},
			{Name: "external.health", Method: http.MethodGet, Path: "/health", Op: OpHealth},
			{Name: "external.list-products", Method: http.MethodGet, Path: "/products/", Op: OpListProducts, Limit: "100/minute"},
			{Name: "external.get-product", Method: http.MethodGet, Path: "/products/:id", Op: OpGetProduct, Limit: "100/minute"},
			{Name: "external.create-order", Method: http.MethodPost, Path: "/orders/", Op: OpCreateOrder, Limit: "10/minute"},
			{Name: "external.get-order", Method: http.MethodGet, Path: "/orders/:id", Op: OpGetOrder, Limit: "50/minute"},
		},
	}
}

// Internal 内部可信调用方：全量 CRUD，不限流
func Internal() Surface {
	return Surface{
		Name: NameInternal,
		Routes: []Route{
			{Name: "internal.root", Method: http.MethodGet, Path: "/", Op: OpRoot},
			{Name: "internal.health", Method: http.MethodGet, Path: "/health", Op: OpHealth},
			{Name: "internal.metrics", Method: http.MethodGet, Path: "/metrics", Op: OpMetrics},

			{Name: "internal.create-user", Method: http.MethodPost, Path: "/users/", Op: OpCreateUser},
			{Name: "internal.list-users", Method: http.MethodGet, Path: "/users/", Op: OpListUsers},
			{Name: "internal.get-user", Method: http.MethodGet, Path: "/users/:id", Op: OpGetUser},

			{Name: "internal.create-product", Method: http.MethodPost, Path: "/products/", Op: OpCreateProduct},
			{Name: "internal.list-products", Method: http.MethodGet, Path: "/products/", Op: OpListProducts},
			{Name: "internal.get-product", Method: http.MethodGet, Path: "/products/:id", Op: OpGetProduct},

			{Name: "internal.create-order", Method: http.MethodPost, Path: "/orders/", Op: OpCreateOrder},
			{Name: "internal.list-orders", Method: http.MethodGet, Path: "/orders/", Op: OpListOrders},
			{Name: "internal.get-order", Method: http.MethodGet, Path: "/orders/:id", Op: OpGetOrder},
		},
	}
}
