package queue

import (
	"context"

	"ReplyOK/internal/model"
)

// ReplyLogRecorder 将回复日志投递到消息队列的记录器
// 投递即完成，失败只在发布侧告警，不向调用方传播
type ReplyLogRecorder struct{}

// NewReplyLogRecorder 创建记录器实例
func NewReplyLogRecorder() *ReplyLogRecorder {
	return &ReplyLogRecorder{}
}

func (r *ReplyLogRecorder) Record(ctx context.Context, msg model.ReplyLogMessage) {
	// PublishReplyLog 内部已记录失败日志
	_ = PublishReplyLog(msg)
}
