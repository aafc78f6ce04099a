// Package logger 提供结构化日志功能
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
)

// ContextKey 用于从 context 中提取值的键类型
type ContextKey string

// 预定义的 context 键
const (
	TraceIDKey   ContextKey = "trace_id"
	SpanIDKey    ContextKey = "span_id"
	RequestIDKey ContextKey = "request_id"
	AccountIDKey ContextKey = "account_id"
	StoryIDKey   ContextKey = "story_id"
	ChapterIDKey ContextKey = "chapter_id"
)

var contextKeys = []ContextKey{TraceIDKey, SpanIDKey, RequestIDKey, AccountIDKey, StoryIDKey, ChapterIDKey}

var defaultLogger *slog.Logger

// Init 初始化日志器；attrs 作为每条日志的固定字段（如 service、env）
func Init(level, format string, attrs ...any) {
	InitWithWriter(os.Stdout, level, format, attrs...)
}

// InitWithWriter 使用指定输出初始化日志器（测试中用于捕获输出）
func InitWithWriter(w io.Writer, level, format string, attrs ...any) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler).With(attrs...)
	slog.SetDefault(defaultLogger)
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Default 返回默认日志器
func Default() *slog.Logger {
	if defaultLogger == nil {
		Init("info", "json")
	}
	return defaultLogger
}

// FromContext 返回带有 context 中请求/追踪/账户/故事字段的 Logger
func FromContext(ctx context.Context) *slog.Logger {
	l := Default()
	if ctx == nil {
		return l
	}

	for _, key := range contextKeys {
		if v := ctx.Value(key); v != nil {
			l = l.With(string(key), v)
		}
	}
	return l
}

// WithContext 将日志上下文信息注入到 context
func WithContext(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}

// Info 记录 INFO 级别日志
func Info(ctx context.Context, msg string, args ...any) {
	write(ctx, slog.LevelInfo, msg, args...)
}

// Debug 记录 DEBUG 级别日志
func Debug(ctx context.Context, msg string, args ...any) {
	write(ctx, slog.LevelDebug, msg, args...)
}

// Warn 记录 WARN 级别日志
func Warn(ctx context.Context, msg string, args ...any) {
	write(ctx, slog.LevelWarn, msg, args...)
}

// Error 记录 ERROR 级别日志
func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	write(ctx, slog.LevelError, msg, args...)
}

// Fatal 记录 ERROR 级别日志并退出
func Fatal(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	write(ctx, slog.LevelError, msg, args...)
	os.Exit(1)
}

// write 以调用方（而非本包）作为 source 输出一条日志
func write(ctx context.Context, level slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	l := FromContext(ctx)
	if !l.Enabled(ctx, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // runtime.Callers, write, Info/Debug/...
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.Handler().Handle(ctx, r)
}
