package ez

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/domain"
	resp "storefront-gateway/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindURI   Binder = "uri"   // 从路径参数 /:id 绑定
	BindNone  Binder = "none"  // 不绑定
)

// 统一错误对象：handler 需要返回特定状态码时使用
type AErr struct {
	Code   int
	Reason string
	Msg    string
	Err    error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error {
	return &AErr{Code: resp.CodeBadRequest, Reason: resp.ReasonValidation, Msg: msg}
}
func NotFound(msg string) error {
	return &AErr{Code: resp.CodeNotFound, Reason: resp.ReasonNotFound, Msg: msg}
}
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Reason: resp.ReasonInternal, Msg: msg, Err: err}
}

// Classify 把错误映射成 (HTTP 状态, 原因)；一个错误只对应一个结果
func Classify(err error) (int, string) {
	var ae *AErr
	switch {
	case errors.As(err, &ae):
		return ae.Code, ae.Reason
	case errors.Is(err, domain.ErrRateLimited):
		return resp.CodeTooManyRequests, resp.ReasonRateLimited
	case errors.Is(err, domain.ErrReferenceNotFound):
		return resp.CodeBadRequest, resp.ReasonReferenceNotFound
	case errors.Is(err, domain.ErrNotFound):
		return resp.CodeNotFound, resp.ReasonNotFound
	case errors.Is(err, domain.ErrValidation):
		return resp.CodeBadRequest, resp.ReasonValidation
	case errors.Is(err, domain.ErrConflict):
		return resp.CodeBadRequest, resp.ReasonConflict
	case errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return resp.CodeServiceUnavailable, resp.ReasonStoreUnavailable
	}
	return resp.CodeServerError, resp.ReasonInternal
}

// Fail 写出错误响应并中止后续 handler；5xx 挂到 c.Errors 供访问日志输出
func Fail(c *gin.Context, err error) {
	code, reason := Classify(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "" // 不把存储层细节暴露给调用方
	}
	c.AbortWithStatusJSON(code, resp.Error(code, reason, msg))
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

// Handle 把 Action 包成 gin.HandlerFunc：绑定 → 执行 → 统一输出
func Handle[I any, O any](a Action[I, O]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		case BindURI:
			bindErr = c.ShouldBindUri(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			Fail(c, BadRequest(bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}
}
