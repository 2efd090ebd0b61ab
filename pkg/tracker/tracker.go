// Package tracker 按字段输出 Actor 状态，便于在回调中调试
//
// 默认通过反射枚举结构体的导出字段（支持 `structs:"name"` 重命名和
// `structs:"-"` 忽略），Actor 也可以实现 [Tracked] 自行提供字段。
//
//	func (a *Worker) Handle(ctx *actor.Context[Job], job Job) {
//		tracker.Log(ctx.Logger(), "worker state", a)
//		...
//	}
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/fatih/structs"
)

// Tracked 自行提供需要输出的字段
type Tracked interface {
	TrackFields() map[string]any
}

// Fields 返回 v 的字段，按名称排序
// v 既不是结构体也没有实现 Tracked 时返回 nil
func Fields(v any) []slog.Attr {
	var fields map[string]any

	switch t := v.(type) {
	case nil:
		return nil
	case Tracked:
		fields = t.TrackFields()
	default:
		if !structs.IsStruct(v) {
			return nil
		}
		fields = topLevel(v)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]slog.Attr, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, slog.Any(name, fields[name]))
	}
	return attrs
}

// topLevel 只取第一层字段，嵌套结构体保持原值交给 slog 格式化
func topLevel(v any) map[string]any {
	fields := make(map[string]any)
	for _, f := range structs.New(v).Fields() {
		if !f.IsExported() {
			continue
		}
		name := f.Name()
		if tag, _, _ := strings.Cut(f.Tag("structs"), ","); tag != "" {
			name = tag
		}
		fields[name] = f.Value()
	}
	return fields
}

// Log 以 Info 级别输出 v 的类型和字段
func Log(logger *slog.Logger, msg string, v any) {
	LogLevel(logger, slog.LevelInfo, msg, v)
}

// LogLevel 以指定级别输出 v 的类型和字段
func LogLevel(logger *slog.Logger, level slog.Level, msg string, v any) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()
	if !logger.Enabled(ctx, level) {
		return
	}

	attrs := append([]slog.Attr{slog.String("type", fmt.Sprintf("%T", v))}, Fields(v)...)
	logger.LogAttrs(ctx, level, msg, attrs...)
}
