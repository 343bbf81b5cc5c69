package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ReplyOK/internal/model"
	"ReplyOK/internal/repository"
	pkgerrors "ReplyOK/pkg/errors"
	"ReplyOK/pkg/logger"
)

var (
	ruleService *RuleService
	ruleOnce    sync.Once
)

// Rule 返回规则服务单例
func Rule() *RuleService {
	ruleOnce.Do(func() {
		ruleService = &RuleService{
			rules: repository.Rule(),
			logs:  repository.ReplyLog(),
		}
	})
	return ruleService
}

// RuleService 规则管理服务
type RuleService struct {
	rules *repository.RuleRepository
	logs  *repository.ReplyLogRepository
}

// NewRuleService 构建服务，便于测试注入仓储
func NewRuleService(rules *repository.RuleRepository, logs *repository.ReplyLogRepository) *RuleService {
	return &RuleService{rules: rules, logs: logs}
}

// CreateRule 创建规则
func (s *RuleService) CreateRule(ctx context.Context, accountID string, req model.CreateRuleRequest) (*model.AutoReplyRule, error) {
	now := time.Now()
	rule := &model.AutoReplyRule{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		Name:       req.Name,
		Priority:   req.Priority,
		Conditions: req.Conditions,
		Responses:  req.Responses,
		RateLimit:  req.RateLimit,
		TimeWindow: req.TimeWindow,
		Enabled:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}

	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.RuleInvalid, err)
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}

	logger.Logger.Info("Auto-reply rule created",
		zap.String("rule_id", rule.ID),
		zap.String("account_id", accountID),
		zap.String("name", rule.Name),
	)

	return rule, nil
}

// ListRules 查询账号下全部规则
func (s *RuleService) ListRules(ctx context.Context, accountID string) ([]*model.AutoReplyRule, error) {
	rules, err := s.rules.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rules, nil
}

// GetRule 查询单条规则并校验归属
func (s *RuleService) GetRule(ctx context.Context, accountID, ruleID string) (*model.AutoReplyRule, error) {
	rule, err := s.rules.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule.AccountID != accountID {
		return nil, pkgerrors.RuleAccountMismatch
	}
	return rule, nil
}

// UpdateRule 整体替换规则内容，保留 ID 与创建时间
func (s *RuleService) UpdateRule(ctx context.Context, accountID, ruleID string, req model.UpdateRuleRequest) (*model.AutoReplyRule, error) {
	existing, err := s.GetRule(ctx, accountID, ruleID)
	if err != nil {
		return nil, err
	}

	rule := &model.AutoReplyRule{
		ID:         existing.ID,
		AccountID:  existing.AccountID,
		Name:       req.Name,
		Priority:   req.Priority,
		Conditions: req.Conditions,
		Responses:  req.Responses,
		RateLimit:  req.RateLimit,
		TimeWindow: req.TimeWindow,
		Enabled:    existing.Enabled,
		CreatedAt:  existing.CreatedAt,
		UpdatedAt:  time.Now(),
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}

	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.RuleInvalid, err)
	}

	if err := s.rules.Save(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}

	return rule, nil
}

// SetRuleEnabled 切换规则启停
func (s *RuleService) SetRuleEnabled(ctx context.Context, accountID, ruleID string, enabled bool) error {
	if _, err := s.GetRule(ctx, accountID, ruleID); err != nil {
		return err
	}
	if err := s.rules.SetEnabled(ctx, ruleID, enabled); err != nil {
		return err
	}

	logger.Logger.Info("Auto-reply rule toggled",
		zap.String("rule_id", ruleID),
		zap.Bool("enabled", enabled),
	)
	return nil
}

// DeleteRule 删除规则
func (s *RuleService) DeleteRule(ctx context.Context, accountID, ruleID string) error {
	if _, err := s.GetRule(ctx, accountID, ruleID); err != nil {
		return err
	}
	return s.rules.Delete(ctx, ruleID)
}

// ListReplyLogs 分页查询回复日志
func (s *RuleService) ListReplyLogs(ctx context.Context, accountID string, query model.ReplyLogListQuery) ([]*model.ReplyLog, int64, error) {
	if query.Status != "" && !model.ReplyStatus(query.Status).Valid() {
		return nil, 0, pkgerrors.ReplyLogQueryInvalid
	}

	logs, total, err := s.logs.List(ctx, accountID, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reply logs: %w", err)
	}
	return logs, total, nil
}
