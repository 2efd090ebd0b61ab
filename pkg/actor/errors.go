package actor

import (
	"errors"
	"fmt"
	"time"
)

// 投递与生命周期相关的错误
var (
	// ErrDeliveryFailure 目标 Actor 的消息循环已退出，消息无法投递
	// 具体错误类型为 [*DeliveryError]，可用 errors.Is 判断
	ErrDeliveryFailure = errors.New("actor: delivery failure")

	// ErrPostTerminationSend Actor 已终止后仍通过 Context 发送消息
	ErrPostTerminationSend = errors.New("actor: send after termination")

	// ErrMailboxFull 邮箱已满（仅 TrySend 返回，Send 会阻塞等待）
	ErrMailboxFull = errors.New("actor: mailbox is full")

	// ErrAddressReleased 地址句柄已被 Release
	ErrAddressReleased = errors.New("actor: address released")

	// ErrInvalidCapacity 邮箱容量必须为正数
	ErrInvalidCapacity = errors.New("actor: mailbox capacity must be positive")

	// ErrNilActor Spawn 传入了 nil Actor
	ErrNilActor = errors.New("actor: nil actor")

	// ErrSystemStopped Actor 系统已关闭
	ErrSystemStopped = errors.New("actor: system is not running")
)

// errMailboxClosed 邮箱内部错误，对外转换为 DeliveryError
var errMailboxClosed = errors.New("mailbox closed")

// DeliveryError 投递失败
//
// 目标 Actor 已退出（正常终止、邮箱关闭或发生故障）。
// 如果退出由故障引起，Fault 不为空，可通过 errors.As 取出 [*HandlerFault]。
type DeliveryError struct {
	Target string
	Fault  *HandlerFault
}

// Error 实现 error 接口
func (e *DeliveryError) Error() string {
	if e.Fault != nil {
		return fmt.Sprintf("deliver to %s: actor exited after fault: %v", e.Target, e.Fault)
	}
	return fmt.Sprintf("deliver to %s: mailbox consumer has exited", e.Target)
}

// Is 使 errors.Is(err, ErrDeliveryFailure) 成立
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDeliveryFailure
}

// Unwrap 返回导致退出的故障
func (e *DeliveryError) Unwrap() error {
	if e.Fault == nil {
		return nil
	}
	return e.Fault
}

// Phase 故障发生的阶段
type Phase int

const (
	PhasePreStart Phase = iota
	PhaseHandle
	PhasePostStop
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhasePreStart:
		return "PreStart"
	case PhaseHandle:
		return "Handle"
	case PhasePostStop:
		return "PostStop"
	default:
		return "Unknown"
	}
}

// HandlerFault 回调中发生的 panic
//
// 故障只终止发生故障的 Actor，不会影响进程和其他 Actor。
type HandlerFault struct {
	Actor  string
	Phase  Phase
	Reason any
	Stack  []byte
}

// Error 实现 error 接口
func (f *HandlerFault) Error() string {
	return fmt.Sprintf("actor %s: panic in %s: %v", f.Actor, f.Phase, f.Reason)
}

// Unwrap 如果 panic 值本身是 error，返回它
func (f *HandlerFault) Unwrap() error {
	if err, ok := f.Reason.(error); ok {
		return err
	}
	return nil
}

// ResponseTimeout 请求等待响应超时
type ResponseTimeout struct {
	Target  string
	Timeout time.Duration
}

// Error 实现 error 接口
func (r *ResponseTimeout) Error() string {
	return fmt.Sprintf("request to %s timed out after %v", r.Target, r.Timeout)
}
