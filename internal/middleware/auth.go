package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"ReplyOK/config"
	pkgerrors "ReplyOK/pkg/errors"
	"ReplyOK/pkg/response"
)

// AdminAuthMiddleware 运营接口的 Bearer Token 鉴权
// token 在配置中静态下发，比较使用常数时间避免侧信道
func AdminAuthMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		token := config.Cfg.AdminToken
		if token == "" {
			// 未配置管理令牌时运营接口整体关闭
			response.Error(ctx, c, pkgerrors.Unauthorized)
			c.Abort()
			return
		}

		auth := string(c.GetHeader("Authorization"))
		presented, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			response.Error(ctx, c, pkgerrors.Unauthorized)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			response.Error(ctx, c, pkgerrors.Unauthorized)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}
