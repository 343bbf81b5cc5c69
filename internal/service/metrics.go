package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"ReplyOK/internal/model"
)

var replyDecisionTotal metric.Int64Counter

// InitMetrics 初始化引擎决策指标
func InitMetrics(meter metric.Meter) error {
	var err error

	replyDecisionTotal, err = meter.Int64Counter(
		"autoreply.decisions.total",
		metric.WithDescription("Total number of reply decisions by outcome"),
		metric.WithUnit("{decision}"),
	)
	return err
}

func countDecision(ctx context.Context, status model.ReplyStatus) {
	if replyDecisionTotal == nil {
		return
	}
	replyDecisionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", string(status)),
	))
}
