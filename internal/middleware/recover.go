package middleware

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"ReplyOK/config"
	"ReplyOK/pkg/errors"
	"ReplyOK/pkg/logger"
	"ReplyOK/pkg/response"
)

// RecoverConfig recover 中间件配置
type RecoverConfig struct {
	// 堆栈追踪级别（full, simple, none）
	StackTraceLevel string
	// 是否把 panic 详情透出到响应，生产环境默认不透出
	ExposeDetails bool
	// 是否记录请求体
	LogRequestBody bool
}

func NewRecoverConfig() RecoverConfig {
	return RecoverConfig{
		StackTraceLevel: "simple",
		ExposeDetails:   !config.Cfg.IsProduction(),
		LogRequestBody:  true,
	}
}

// RecoverMiddleware 捕获 handler panic，记录日志并返回统一错误响应
func RecoverMiddleware() app.HandlerFunc {
	return RecoverMiddlewareWithConfig(NewRecoverConfig())
}

func RecoverMiddlewareWithConfig(cfg RecoverConfig) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if r := recover(); r != nil {
				stack := stackTrace(cfg.StackTraceLevel)
				logPanic(c, r, stack, cfg)
				writePanicResponse(c, r, stack, cfg)
			}
		}()

		c.Next(ctx)
	}
}

func logPanic(c *app.RequestContext, r interface{}, stack []byte, cfg RecoverConfig) {
	fields := []zap.Field{
		zap.String("panic", fmt.Sprintf("%v", r)),
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.String("client_ip", c.ClientIP()),
	}

	if requestID := string(c.GetHeader("X-Request-ID")); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	if cfg.LogRequestBody {
		// webhook 请求体含用户消息，只记录小体积且非 multipart 的内容
		body := c.Request.Body()
		if len(body) > 0 && len(body) < 1024 && !strings.Contains(string(c.ContentType()), "multipart") {
			fields = append(fields, zap.ByteString("body", body))
		}
	}

	if len(stack) > 0 {
		fields = append(fields, zap.ByteString("stack", stack))
	}

	logger.Logger.Error("[PANIC RECOVERED]", fields...)
}

func writePanicResponse(c *app.RequestContext, r interface{}, stack []byte, cfg RecoverConfig) {
	if !cfg.ExposeDetails {
		response.Error(context.Background(), c, errors.Definition{
			Code:    "INTERNAL_SERVER_ERROR",
			Message: "服务器内部错误，请稍后重试",
		})
		return
	}

	details := map[string]interface{}{
		"panic":     fmt.Sprintf("%v", r),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if len(stack) > 0 {
		details["stack"] = string(stack)
	}

	response.ErrorWithDetails(context.Background(), c, errors.Definition{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: fmt.Sprintf("Internal error: %v", r),
	}, details)
}

func stackTrace(level string) []byte {
	switch level {
	case "full":
		return debug.Stack()
	case "simple":
		// 只取当前 goroutine 的调用栈，跳过 runtime 和 recover 相关帧
		var buf bytes.Buffer
		buf.WriteString("goroutine panic:\n")
		for i := 3; ; i++ {
			pc, file, line, ok := runtime.Caller(i)
			if !ok {
				break
			}
			fn := runtime.FuncForPC(pc)
			if fn == nil {
				continue
			}
			fmt.Fprintf(&buf, "  %s:%d\n    %s\n", file, line, fn.Name())
		}
		return buf.Bytes()
	default:
		return nil
	}
}
