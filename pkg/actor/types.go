package actor

import "time"

// Actor Actor 接口
//
// M 为该 Actor 唯一接受的消息类型。Handle 在 Actor 自己的 goroutine 中
// 串行调用，调用期间独占 Actor 状态，无需加锁。
type Actor[M any] interface {
	// Handle 处理一条消息
	Handle(ctx *Context[M], msg M)
}

// HandlerFunc 函数式 Actor，便于快速创建简单 Actor
type HandlerFunc[M any] func(ctx *Context[M], msg M)

// Handle 实现 Actor 接口
func (f HandlerFunc[M]) Handle(ctx *Context[M], msg M) {
	f(ctx, msg)
}

// PreStarter 可选的启动钩子
// 在第一次 Handle 之前执行且只执行一次
type PreStarter interface {
	PreStart()
}

// PostStopper 可选的停止钩子
// 在最后一次 Handle 之后执行且只执行一次，之后 Actor 实例被释放
type PostStopper interface {
	PostStop()
}

// State 生命周期状态，只能从 Running 变为 Terminated
type State int32

const (
	// StateRunning 正常运行，取出的消息会分发给 Handle
	StateRunning State = iota
	// StateTerminated 已终止，消息循环在下一次取消息时退出
	StateTerminated
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// ExitReason 消息循环退出原因
type ExitReason int

const (
	// ExitTerminated 通过 Context.Terminate 终止（包括系统关闭）
	ExitTerminated ExitReason = iota
	// ExitClosed 所有外部地址都已 Release 且邮箱已空
	ExitClosed
	// ExitFault 回调中发生 panic
	ExitFault
)

// String 返回退出原因名称
func (r ExitReason) String() string {
	switch r {
	case ExitTerminated:
		return "terminated"
	case ExitClosed:
		return "closed"
	case ExitFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Exit Actor 退出报告
type Exit struct {
	Reason ExitReason
	// Fault 导致退出的故障，正常退出为 nil
	Fault *HandlerFault
	// Discarded 终止时仍在邮箱中、未被处理而丢弃的消息数
	Discarded int
	StoppedAt time.Time
}
