package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"campus-activity/config"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// fanout 把一条日志同时交给多个 handler
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}

// Get 获取全局 Logger，首次调用时按配置构建
func Get() *slog.Logger {
	once.Do(func() {
		instance = build(config.Get())
	})
	return instance
}

func build(cfg *config.Config) *slog.Logger {
	release := cfg.Mode == config.ModeRelease
	opts := &slog.HandlerOptions{
		AddSource: release,
		Level:     parseLevel(cfg.Log.Level),
	}

	var base slog.Handler
	if release && cfg.Log.FilePath != "" {
		base = slog.NewJSONHandler(rotating(cfg.Log), opts)
	} else {
		base = slog.NewTextHandler(os.Stdout, opts)
	}

	handler := base
	if cfg.Sentry.Dsn != "" {
		// Error 作为事件上报，Warn 以上作为 Sentry Log
		sentryHandler := sentryslog.Option{
			EventLevel: []slog.Level{slog.LevelError},
			LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
			AddSource:  release,
		}.NewSentryHandler(context.Background())
		handler = fanout{base, sentryHandler}
	}

	return slog.New(handler).With(
		"app_name", "campus-activity",
		"env", string(cfg.Mode),
	)
}

func rotating(c config.Log) io.Writer {
	return &lumberjack.Logger{
		Filename:   c.FilePath,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
	}
}

// New 创建带 module 字段的 Logger
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

// RequestInfo 是 gin.Context 中记录日志需要的部分
type RequestInfo interface {
	ClientIP() string
	GetHeader(string) string
}

// WithContext 为业务日志附加客户端 IP、请求 ID 与当前用户
func WithContext(base *slog.Logger, c RequestInfo) *slog.Logger {
	l := base.With("client_ip", c.ClientIP())
	if id := c.GetHeader("X-Request-Id"); id != "" {
		l = l.With("request_id", id)
	}
	if uid := c.GetHeader("X-User-Id"); uid != "" {
		l = l.With("user_id", uid)
	}
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		l = l.With("x_forwarded_for", forwardedFor)
	}
	return l
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
