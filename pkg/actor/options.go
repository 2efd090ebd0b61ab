package actor

import "log/slog"

// Option Spawn 选项
type Option func(*spawnOptions)

type spawnOptions struct {
	name        string
	deadLetter  func(msg any)
	copyMessage bool
	ready       chan<- struct{}
	logger      *slog.Logger
}

// WithName 设置 Actor 名称，仅用于日志和 String
func WithName(name string) Option {
	return func(o *spawnOptions) {
		o.name = name
	}
}

// WithDeadLetter 设置丢弃消息回调
//
// Actor 终止时邮箱中未处理的消息逐条交给 fn，在 Actor 的 goroutine 中调用。
func WithDeadLetter(fn func(msg any)) Option {
	return func(o *spawnOptions) {
		o.deadLetter = fn
	}
}

// WithMessageCopy 投递前深拷贝消息
//
// 发送方之后修改原消息不会影响 Actor 收到的副本。
func WithMessageCopy() Option {
	return func(o *spawnOptions) {
		o.copyMessage = true
	}
}

// WithReady PreStart 返回后关闭 ch
//
// Spawn 不等待 PreStart，需要同步启动时用它等待。
func WithReady(ch chan<- struct{}) Option {
	return func(o *spawnOptions) {
		o.ready = ch
	}
}

// WithLogger 为该 Actor 指定日志器
func WithLogger(logger *slog.Logger) Option {
	return func(o *spawnOptions) {
		o.logger = logger
	}
}
