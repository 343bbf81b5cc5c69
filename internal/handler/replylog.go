package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"ReplyOK/config"
	"ReplyOK/internal/model"
	"ReplyOK/internal/service"
	pkgerrors "ReplyOK/pkg/errors"
	"ReplyOK/pkg/response"
)

// ListReplyLogs 分页查询回复决策日志。
func ListReplyLogs(ctx context.Context, c *app.RequestContext) {
	var query model.ReplyLogListQuery
	if err := c.BindQuery(&query); err != nil {
		response.ErrorWithDetails(ctx, c, pkgerrors.ReplyLogQueryInvalid, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logs, total, err := service.Rule().ListReplyLogs(ctx, config.Cfg.LineAccountID, query)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, logs, map[string]interface{}{
		"total":  total,
		"limit":  query.Limit,
		"offset": query.Offset,
	})
}
