package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ReplyOK/internal/model"
	"ReplyOK/storage/database"
)

var (
	replyLogRepository *ReplyLogRepository
	replyLogOnce       sync.Once
)

// ReplyLog 返回回复日志仓储单例
func ReplyLog() *ReplyLogRepository {
	replyLogOnce.Do(func() {
		replyLogRepository = &ReplyLogRepository{db: database.DB()}
	})
	return replyLogRepository
}

// ReplyLogRepository 回复日志仓储，只追加与查询
type ReplyLogRepository struct {
	db *gorm.DB
}

// NewReplyLogRepository 基于指定连接构建仓储，便于测试注入
func NewReplyLogRepository(db *gorm.DB) *ReplyLogRepository {
	return &ReplyLogRepository{db: db}
}

// Save 写入一条回复日志
// 主键冲突时跳过，消费端重投同一条消息不会产生重复记录
func (r *ReplyLogRepository) Save(ctx context.Context, log *model.ReplyLog) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(log).Error
}

// List 按条件分页查询回复日志，按发生时间倒序
func (r *ReplyLogRepository) List(ctx context.Context, accountID string, query model.ReplyLogListQuery) ([]*model.ReplyLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.ReplyLog{}).Where("account_id = ?", accountID)
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.RuleID != "" {
		db = db.Where("rule_id = ?", query.RuleID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	var logs []*model.ReplyLog
	err := db.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
