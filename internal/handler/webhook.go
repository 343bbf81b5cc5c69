package handler

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"ReplyOK/config"
	"ReplyOK/internal/model"
	"ReplyOK/internal/service"
	pkgerrors "ReplyOK/pkg/errors"
	"ReplyOK/pkg/response"
)

// HandleWebhook 处理平台 webhook 回调
// 签名校验由中间件完成，单条事件的失败不影响整体返回 200
func HandleWebhook(ctx context.Context, c *app.RequestContext) {
	var req model.WebhookRequest
	if err := c.BindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, c, pkgerrors.PayloadInvalid, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	result := service.Webhook().ProcessEvents(ctx, config.Cfg.LineAccountID, &req)

	// 平台侧只关心 200，响应体供排查使用
	c.JSON(http.StatusOK, result)
}
