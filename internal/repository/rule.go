package repository

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"ReplyOK/internal/model"
	pkgerrors "ReplyOK/pkg/errors"
	"ReplyOK/storage/database"
)

var (
	ruleRepository *RuleRepository
	ruleOnce       sync.Once
)

// Rule 返回规则仓储单例
func Rule() *RuleRepository {
	ruleOnce.Do(func() {
		ruleRepository = &RuleRepository{db: database.DB()}
	})
	return ruleRepository
}

// RuleRepository 自动回复规则仓储
type RuleRepository struct {
	db *gorm.DB
}

// NewRuleRepository 基于指定连接构建仓储，便于测试注入
func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// FindActiveByAccountID 查询账号下所有启用规则
// 按优先级降序排列，优先级相同时后创建的在前
func (r *RuleRepository) FindActiveByAccountID(ctx context.Context, accountID string) ([]*model.AutoReplyRule, error) {
	var rules []*model.AutoReplyRule
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND enabled = ?", accountID, true).
		Order("priority DESC, created_at DESC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// ListByAccountID 查询账号下全部规则（含停用）
func (r *RuleRepository) ListByAccountID(ctx context.Context, accountID string) ([]*model.AutoReplyRule, error) {
	var rules []*model.AutoReplyRule
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("priority DESC, created_at DESC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// GetByID 按 ID 查询规则
func (r *RuleRepository) GetByID(ctx context.Context, id string) (*model.AutoReplyRule, error) {
	var rule model.AutoReplyRule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.RuleNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// Create 新建规则
func (r *RuleRepository) Create(ctx context.Context, rule *model.AutoReplyRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

// Save 整行替换规则
func (r *RuleRepository) Save(ctx context.Context, rule *model.AutoReplyRule) error {
	result := r.db.WithContext(ctx).
		Model(&model.AutoReplyRule{}).
		Where("id = ?", rule.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(rule)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.RuleNotFound
	}
	return nil
}

// SetEnabled 切换规则启停状态
func (r *RuleRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.AutoReplyRule{}).
		Where("id = ?", id).
		Update("enabled", enabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.RuleNotFound
	}
	return nil
}

// Delete 删除规则
func (r *RuleRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AutoReplyRule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.RuleNotFound
	}
	return nil
}
