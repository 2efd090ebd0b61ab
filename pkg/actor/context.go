package actor

import (
	"context"
	"fmt"
	"log/slog"
)

// Context Actor 执行上下文
//
// 只在 Actor 自己的回调中可见，提供自身地址、邮箱容量和生命周期操作。
// 生命周期状态只能通过 Context 修改。
type Context[M any] struct {
	self *Address[M]
	cell *actorCell[M]
}

// Address 返回自身地址
//
// 该地址不参与引用计数，需要交给其他 Actor 长期持有时请使用 Clone。
func (c *Context[M]) Address() *Address[M] {
	return c.self
}

// MailboxCapacity 返回邮箱容量
func (c *Context[M]) MailboxCapacity() int {
	return c.cell.mailbox.capacity()
}

// Send 向自身发送消息
//
// 自身已终止时返回 ErrPostTerminationSend。
// 邮箱已满时在 Handle 中向自身发送会一直阻塞，调用方应传入带期限的 ctx。
func (c *Context[M]) Send(ctx context.Context, msg M) error {
	if c.State() == StateTerminated {
		return ErrPostTerminationSend
	}
	return c.self.Send(ctx, msg)
}

// SendTo 通过 from 向另一个 Actor 发送消息
//
// 只检查发送方自身的生命周期：发送方已终止时返回 ErrPostTerminationSend。
// 目标已退出时返回 [*DeliveryError]；目标已终止但尚未退出时消息会被接收，
// 随后作为未处理消息丢弃并计入目标的 Exit.Discarded。
func SendTo[M, N any](ctx context.Context, from *Context[M], to *Address[N], msg N) error {
	if from.State() == StateTerminated {
		return ErrPostTerminationSend
	}
	if to == nil {
		return fmt.Errorf("%w: nil address", ErrDeliveryFailure)
	}
	return to.Send(ctx, msg)
}

// Terminate 终止 Actor，重复调用无效果
//
// 正在执行的 Handle 会运行完毕，消息循环在下一次取消息时退出。
func (c *Context[M]) Terminate() {
	c.cell.terminate()
}

// State 返回生命周期状态
func (c *Context[M]) State() State {
	return c.cell.state()
}

// Context 返回 Actor 生命周期内有效的 Go context，Actor 退出后取消
func (c *Context[M]) Context() context.Context {
	return c.cell.ctx
}

// Logger 返回带有 Actor 标识的日志器
func (c *Context[M]) Logger() *slog.Logger {
	return c.cell.logger
}
