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

// CreateRule 创建自动回复规则。
func CreateRule(ctx context.Context, c *app.RequestContext) {
	var req model.CreateRuleRequest
	if err := c.BindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, c, pkgerrors.RuleInvalid, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	rule, err := service.Rule().CreateRule(ctx, config.Cfg.LineAccountID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, rule)
}

// ListRules 查询账号下全部规则。
func ListRules(ctx context.Context, c *app.RequestContext) {
	rules, err := service.Rule().ListRules(ctx, config.Cfg.LineAccountID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	items := make([]model.RuleItem, 0, len(rules))
	for _, rule := range rules {
		items = append(items, model.RuleItem{
			ID:        rule.ID,
			Name:      rule.Name,
			Priority:  rule.Priority,
			Enabled:   rule.Enabled,
			CreatedAt: rule.CreatedAt,
			UpdatedAt: rule.UpdatedAt,
		})
	}
	response.Success(ctx, c, items)
}

// GetRule 查询规则详情。
func GetRule(ctx context.Context, c *app.RequestContext) {
	ruleID := c.Param("rule_id")
	if ruleID == "" {
		response.Error(ctx, c, pkgerrors.RuleNotFound)
		return
	}

	rule, err := service.Rule().GetRule(ctx, config.Cfg.LineAccountID, ruleID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, rule)
}

// UpdateRule 整体替换规则内容。
func UpdateRule(ctx context.Context, c *app.RequestContext) {
	ruleID := c.Param("rule_id")
	if ruleID == "" {
		response.Error(ctx, c, pkgerrors.RuleNotFound)
		return
	}

	var req model.UpdateRuleRequest
	if err := c.BindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, c, pkgerrors.RuleInvalid, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	rule, err := service.Rule().UpdateRule(ctx, config.Cfg.LineAccountID, ruleID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, rule)
}

// EnableRule 启用规则。
func EnableRule(ctx context.Context, c *app.RequestContext) {
	setRuleEnabled(ctx, c, true)
}

// DisableRule 停用规则。
func DisableRule(ctx context.Context, c *app.RequestContext) {
	setRuleEnabled(ctx, c, false)
}

func setRuleEnabled(ctx context.Context, c *app.RequestContext, enabled bool) {
	ruleID := c.Param("rule_id")
	if ruleID == "" {
		response.Error(ctx, c, pkgerrors.RuleNotFound)
		return
	}

	if err := service.Rule().SetRuleEnabled(ctx, config.Cfg.LineAccountID, ruleID, enabled); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{
		"id":      ruleID,
		"enabled": enabled,
	})
}

// DeleteRule 删除规则。
func DeleteRule(ctx context.Context, c *app.RequestContext) {
	ruleID := c.Param("rule_id")
	if ruleID == "" {
		response.Error(ctx, c, pkgerrors.RuleNotFound)
		return
	}

	if err := service.Rule().DeleteRule(ctx, config.Cfg.LineAccountID, ruleID); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{
		"id":      ruleID,
		"deleted": true,
	})
}
