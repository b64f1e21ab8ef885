// Package tracing 把 Sentry 性能追踪接入 GORM 与 Redis
package tracing

import (
	"context"

	"campus-activity/internal/global/sentry"

	sentrylib "github.com/getsentry/sentry-go"
)

func IsEnabled() bool {
	return sentry.Enabled()
}

// startChild 在 ctx 中已有 span 时创建子 span，否则返回 nil
func startChild(ctx context.Context, operation, description string) *sentrylib.Span {
	if ctx == nil {
		return nil
	}
	parent := sentrylib.SpanFromContext(ctx)
	if parent == nil {
		return nil
	}
	span := parent.StartChild(operation)
	span.Description = description
	return span
}
