package response

// 错误码直接采用 HTTP 语义，成功为 0
const (
	CodeOK                 = 0
	CodeBadRequest         = 400
	CodeNotFound           = 404
	CodeMethodNotAllowed   = 405
	CodeTooManyRequests    = 429
	CodeServerError        = 500
	CodeServiceUnavailable = 503
	CodeGatewayTimeout     = 504
)

// CodeMsgMap 用于集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeOK:                 "OK",
	CodeBadRequest:         "Bad Request",
	CodeNotFound:           "Not Found",
	CodeMethodNotAllowed:   "Method Not Allowed",
	CodeTooManyRequests:    "Too Many Requests",
	CodeServerError:        "Internal Server Error",
	CodeServiceUnavailable: "Service Unavailable",
	CodeGatewayTimeout:     "Gateway Timeout",
}

// 机器可读的失败原因，客户端据此区分限流/不存在/参数错误
const (
	ReasonValidation        = "validation_failed"
	ReasonReferenceNotFound = "reference_not_found"
	ReasonNotFound          = "not_found"
	ReasonRouteNotFound     = "route_not_found"
	ReasonMethodNotAllowed  = "method_not_allowed"
	ReasonConflict          = "conflict"
	ReasonRateLimited       = "rate_limited"
	ReasonOverloaded        = "overloaded"
	ReasonStoreUnavailable  = "store_unavailable"
	ReasonTimeout           = "timeout"
	ReasonInternal          = "internal_error"
)
