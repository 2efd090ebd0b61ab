package actor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/mitchellh/copystructure"
)

// actorCell Actor 单元，包含邮箱、生命周期状态及运行时信息
// 所有 Address 和 Context 共享同一个 actorCell
type actorCell[M any] struct {
	id     string
	name   string
	system *System

	mailbox *mailbox[M]

	// 生命周期状态，只通过 Context.Terminate 和消息循环退出时写入
	lifecycle atomic.Int32

	// 退出信息
	fault     atomic.Pointer[HandlerFault]
	exit      atomic.Pointer[Exit]
	exited    chan struct{}
	discarded int // 只在消息循环中访问

	// 选项
	copyMessage bool
	deadLetter  func(msg any)

	stats  *StatsCollector
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func newActorCell[M any](sys *System, capacity int, o *spawnOptions) *actorCell[M] {
	id := newActorID()

	logger := o.logger
	if logger == nil {
		logger = sys.logger
	}
	logger = logger.With("actor", actorLabel(o.name, id), "id", id)

	ctx, cancel := context.WithCancel(context.Background())

	return &actorCell[M]{
		id:          id,
		name:        o.name,
		system:      sys,
		mailbox:     newMailbox[M](capacity),
		exited:      make(chan struct{}),
		copyMessage: o.copyMessage,
		deadLetter:  o.deadLetter,
		stats:       NewStatsCollector(),
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func actorLabel(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// String 返回 Actor 的字符串表示
func (c *actorCell[M]) String() string {
	return actorLabel(c.name, c.id)
}

func (c *actorCell[M]) state() State {
	return State(c.lifecycle.Load())
}

// terminate 将状态置为 Terminated 并唤醒消息循环
func (c *actorCell[M]) terminate() {
	if c.lifecycle.CompareAndSwap(int32(StateRunning), int32(StateTerminated)) {
		c.mailbox.wakeUp()
		c.logger.Debug("actor terminate requested")
	}
}

// prepare 按选项处理待投递的消息
func (c *actorCell[M]) prepare(msg M) (M, error) {
	if !c.copyMessage {
		return msg, nil
	}

	v, err := copystructure.Copy(msg)
	if err != nil {
		return msg, fmt.Errorf("copy message for %s: %w", c, err)
	}
	if v == nil {
		return msg, nil
	}
	copied, ok := v.(M)
	if !ok {
		return msg, fmt.Errorf("copy message for %s: unexpected type %T", c, v)
	}
	return copied, nil
}

// wrapSendError 将邮箱错误转换为对外错误
func (c *actorCell[M]) wrapSendError(err error) error {
	if err == errMailboxClosed {
		return c.deliveryError()
	}
	return err
}

func (c *actorCell[M]) deliveryError() *DeliveryError {
	return &DeliveryError{Target: c.String(), Fault: c.fault.Load()}
}

func (c *actorCell[M]) recordSent() {
	c.stats.RecordReceived()
	c.system.stats.sent.Add(1)
}

// run Actor 消息循环
//
// PreStart → 循环 { 检查状态 → 取消息 → 检查状态 → Handle } → PostStop → 释放
func (c *actorCell[M]) run(a Actor[M], actx *Context[M], ready chan<- struct{}) {
	defer c.system.wg.Done()

	exit := Exit{Reason: ExitTerminated}

	fault := c.invoke(PhasePreStart, func() {
		if p, ok := a.(PreStarter); ok {
			p.PreStart()
		}
	})
	if ready != nil {
		close(ready)
	}

	if fault == nil {
		fault, exit.Reason = c.loop(a, actx)
	}

	// PostStop 在任何情况下都执行一次
	if f := c.invoke(PhasePostStop, func() {
		if p, ok := a.(PostStopper); ok {
			p.PostStop()
		}
	}); f != nil && fault == nil {
		fault = f
	}

	c.lifecycle.Store(int32(StateTerminated))
	if fault != nil {
		exit.Reason = ExitFault
		c.fault.Store(fault)
	}

	// 邮箱关闭后，阻塞中和后续的发送都返回 DeliveryError
	for _, msg := range c.mailbox.closeAndDrain() {
		c.discard(msg)
	}

	exit.Fault = fault
	exit.Discarded = c.discarded
	exit.StoppedAt = time.Now()
	c.exit.Store(&exit)
	c.cancel()
	c.system.unregister(c.id)
	close(c.exited)

	c.logger.Debug("actor stopped", "reason", exit.Reason.String(), "discarded", exit.Discarded)
}

// loop 接收并分发消息，直到终止、邮箱关闭或故障
func (c *actorCell[M]) loop(a Actor[M], actx *Context[M]) (*HandlerFault, ExitReason) {
	for {
		if c.state() == StateTerminated {
			return nil, ExitTerminated
		}

		msg, res := c.mailbox.receive()
		switch res {
		case recvClosed:
			return nil, ExitClosed
		case recvWake:
			continue
		}

		// 取到消息后再次检查：终止后不再开始新的 Handle
		if c.state() == StateTerminated {
			c.discard(msg)
			return nil, ExitTerminated
		}

		start := time.Now()
		if fault := c.invoke(PhaseHandle, func() { a.Handle(actx, msg) }); fault != nil {
			return fault, ExitFault
		}
		c.stats.RecordHandled(time.Since(start))
		c.system.stats.handled.Add(1)
	}
}

// invoke 执行回调并恢复 panic
func (c *actorCell[M]) invoke(phase Phase, fn func()) (fault *HandlerFault) {
	defer func() {
		if r := recover(); r != nil {
			fault = &HandlerFault{
				Actor:  c.String(),
				Phase:  phase,
				Reason: r,
				Stack:  debug.Stack(),
			}
			c.stats.RecordFault(fault)
			c.system.reportFault(fault, c.logger)
		}
	}()

	fn()
	return nil
}

// discard 丢弃未处理的消息
func (c *actorCell[M]) discard(msg M) {
	c.discarded++
	c.stats.RecordDiscarded()
	c.system.stats.discarded.Add(1)

	if c.system.config.LogDeadLetters {
		c.logger.Warn("dead letter", "message", fmt.Sprintf("%T", msg))
	}

	if c.deadLetter != nil {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("panic in dead letter handler", "error", r)
			}
		}()
		c.deadLetter(msg)
	}
}
