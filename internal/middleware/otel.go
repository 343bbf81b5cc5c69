package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	inflight        metric.Int64UpDownCounter
)

// InitMetrics 注册 HTTP 层指标，需在路由启动前调用
func InitMetrics(meter metric.Meter) error {
	var err error

	if requestTotal, err = meter.Int64Counter(
		"http.server.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return err
	}

	if requestDuration, err = meter.Float64Histogram(
		"http.server.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	); err != nil {
		return err
	}

	if inflight, err = meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return err
	}

	return nil
}

// OpenTelemetryMiddleware 为每个请求创建 span 并记录 HTTP 指标
func OpenTelemetryMiddleware() app.HandlerFunc {
	tracer := otel.Tracer("replyok-server")

	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		inflight.Add(ctx, 1)

		// webhook 路径上的字符串来自外部平台，先清洗非法 UTF-8
		method := strings.ToValidUTF8(string(c.Method()), "")
		route := strings.ToValidUTF8(string(c.Path()), "")

		spanCtx, span := tracer.Start(ctx, method+" "+route, trace.WithAttributes(
			semconv.HTTPMethod(method),
			semconv.HTTPRoute(route),
			attribute.String("http.host", strings.ToValidUTF8(string(c.Host()), "")),
		))
		defer span.End()

		c.Next(spanCtx)

		elapsed := time.Since(start).Seconds()
		status := c.Response.StatusCode()

		span.SetAttributes(semconv.HTTPStatusCode(status))
		if status >= 400 {
			span.SetStatus(codes.Error, "HTTP error")
			if lastErr := c.Errors.Last(); lastErr != nil {
				span.RecordError(lastErr)
			}
		} else {
			span.SetStatus(codes.Ok, "")
		}

		attrs := metric.WithAttributes(
			semconv.HTTPMethod(method),
			semconv.HTTPRoute(route),
			semconv.HTTPStatusCode(status),
		)
		requestTotal.Add(ctx, 1, attrs)
		requestDuration.Record(ctx, elapsed, attrs)
		inflight.Add(ctx, -1)
	}
}

// NewServerTracerConfig 返回 Hertz server 的追踪选项和配套中间件，
// 两者须一起装配，trace 上下文才能贯穿请求。
func NewServerTracerConfig(opts ...hertztracing.Option) (config.Option, app.HandlerFunc) {
	tracer, cfg := hertztracing.NewServerTracer(opts...)
	return tracer, hertztracing.ServerMiddleware(cfg)
}
