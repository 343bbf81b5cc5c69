package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"ReplyOK/internal/handler"
	"ReplyOK/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	// 平台回调，签名校验必须走在 body 解析之前
	h.POST("/webhook", middleware.SignatureMiddleware(), handler.HandleWebhook)

	v1 := h.Group("/v1")
	v1.Use(middleware.AdminAuthMiddleware())

	// 规则管理路由
	rules := v1.Group("/rules")
	{
		rules.POST("", handler.CreateRule)
		rules.GET("", handler.ListRules)
		rules.GET("/:rule_id", handler.GetRule)
		rules.PUT("/:rule_id", handler.UpdateRule)
		rules.POST("/:rule_id/enable", handler.EnableRule)
		rules.POST("/:rule_id/disable", handler.DisableRule)
		rules.DELETE("/:rule_id", handler.DeleteRule)
	}

	// 回复日志路由
	v1.GET("/reply-logs", handler.ListReplyLogs)
}
