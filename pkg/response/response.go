package response

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"ReplyOK/pkg/errors"
)

// ErrorResponse 统一的错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse 统一的成功响应格式
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

func errorToHTTPStatus(code string) int {
	// 根据错误码映射 HTTP 状态码
	switch code {
	case "SIGNATURE_INVALID", "UNAUTHORIZED":
		return http.StatusUnauthorized // 401
	case "PAYLOAD_INVALID", "RULE_INVALID", "REPLY_LOG_QUERY_INVALID":
		return http.StatusBadRequest // 400
	case "RULE_ACCOUNT_MISMATCH":
		return http.StatusForbidden // 403
	case "RULE_NOT_FOUND":
		return http.StatusNotFound // 404
	default:
		return http.StatusInternalServerError // 500
	}
}

// classify 提取业务错误码，服务层可能用 %w 包装过
func classify(err error) (code, message string) {
	var def errors.Definition
	if stderrors.As(err, &def) {
		return def.Code, def.Message
	}
	return "INTERNAL_ERROR", err.Error()
}

// Success 返回成功响应
func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Data: data})
}

// SuccessWithMeta 返回带分页等元信息的成功响应
func SuccessWithMeta(ctx context.Context, c *app.RequestContext, data interface{}, meta map[string]interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Data: data, Meta: meta})
}

// Error 返回错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	code, message := classify(err)

	c.JSON(errorToHTTPStatus(code), ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	code, message := classify(err)

	c.JSON(errorToHTTPStatus(code), ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
