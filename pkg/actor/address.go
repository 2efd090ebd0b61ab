package actor

import (
	"context"
	"sync/atomic"
)

// Address Actor 地址
//
// Address 是向某个 Actor 邮箱投递消息的唯一途径，不持有 Actor 本身。
// Clone 得到的地址共享同一个邮箱。
//
// 所有外部地址都 Release 之后，Actor 在处理完邮箱中剩余消息后退出。
// 不调用 Release 的地址不会影响 Actor 的运行。
type Address[M any] struct {
	cell *actorCell[M]

	// owned 为 false 表示 Context 内部的自身地址，不参与引用计数
	owned    bool
	released atomic.Bool
}

// ID 返回 Actor 唯一标识
func (a *Address[M]) ID() string {
	return a.cell.id
}

// Name 返回 Actor 名称，未设置时为空
func (a *Address[M]) Name() string {
	return a.cell.name
}

// String 返回地址的字符串表示
func (a *Address[M]) String() string {
	return a.cell.String()
}

// Send 投递消息
//
// 邮箱满时阻塞，直到消费者取走消息、ctx 结束或 Actor 退出。
// Actor 已退出时返回 [*DeliveryError]。
func (a *Address[M]) Send(ctx context.Context, msg M) error {
	if a.released.Load() {
		return ErrAddressReleased
	}

	msg, err := a.cell.prepare(msg)
	if err != nil {
		return err
	}

	if err := a.cell.mailbox.send(ctx, msg); err != nil {
		return a.cell.wrapSendError(err)
	}
	a.cell.recordSent()
	return nil
}

// TrySend 尝试发送消息（非阻塞）
// 邮箱满时返回 ErrMailboxFull
func (a *Address[M]) TrySend(msg M) error {
	if a.released.Load() {
		return ErrAddressReleased
	}

	msg, err := a.cell.prepare(msg)
	if err != nil {
		return err
	}

	if err := a.cell.mailbox.trySend(msg); err != nil {
		return a.cell.wrapSendError(err)
	}
	a.cell.recordSent()
	return nil
}

// Clone 复制地址，新地址与原地址共享邮箱
// 已 Release 的地址复制出的仍是已释放的地址
func (a *Address[M]) Clone() *Address[M] {
	clone := &Address[M]{cell: a.cell, owned: true}
	if a.released.Load() {
		clone.released.Store(true)
		return clone
	}
	a.cell.mailbox.acquire()
	return clone
}

// Release 释放地址，重复调用无效果
func (a *Address[M]) Release() {
	if !a.owned {
		return
	}
	if a.released.CompareAndSwap(false, true) {
		a.cell.mailbox.releaseRef()
	}
}

// Done 返回一个在 Actor 完全退出后关闭的通道
func (a *Address[M]) Done() <-chan struct{} {
	return a.cell.exited
}

// Exit 返回退出报告，Actor 尚未退出时 ok 为 false
func (a *Address[M]) Exit() (Exit, bool) {
	e := a.cell.exit.Load()
	if e == nil {
		return Exit{}, false
	}
	return *e, true
}

// Capacity 返回邮箱容量
func (a *Address[M]) Capacity() int {
	return a.cell.mailbox.capacity()
}

// Len 返回邮箱中待处理的消息数
func (a *Address[M]) Len() int {
	return a.cell.mailbox.size()
}

// Stats 返回 Actor 统计快照
func (a *Address[M]) Stats() *ActorStats {
	return a.cell.stats.Stats()
}
