package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"ReplyOK/config"
	pkgerrors "ReplyOK/pkg/errors"
	"ReplyOK/pkg/logger"
	"ReplyOK/pkg/response"
	"ReplyOK/pkg/signature"
)

const signatureHeader = "X-Line-Signature"

// SignatureMiddleware 校验 webhook 请求签名
// 签名基于原始请求体计算，必须在任何 body 解析之前执行
func SignatureMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		header := string(c.GetHeader(signatureHeader))
		body := c.Request.Body()

		if !signature.Verify(config.Cfg.LineChannelSecret, body, header) {
			logger.Logger.Warn("Webhook signature verification failed",
				zap.String("client_ip", c.ClientIP()),
				zap.Int("body_size", len(body)),
			)
			response.Error(ctx, c, pkgerrors.SignatureInvalid)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}
