package actor

import (
	"context"
	"sync"
	"sync/atomic"
)

// recvResult receive 的结果
type recvResult int

const (
	recvMessage recvResult = iota // 取到消息
	recvWake                      // 被 Terminate 唤醒
	recvClosed                    // 外部地址全部释放且邮箱为空
)

// mailbox 有界 FIFO 邮箱，多生产者单消费者
//
// send 持读锁，closeAndDrain 持写锁：之后不会再有消息进入队列，
// 剩余消息可以一次性取尽。
type mailbox[M any] struct {
	ch chan M

	mu     sync.RWMutex
	closed bool

	// done 消费者退出，唤醒阻塞中的生产者
	done     chan struct{}
	doneOnce sync.Once

	// wake Terminate 唤醒阻塞中的消费者
	wake     chan struct{}
	wakeOnce sync.Once

	// 外部地址引用计数，归零后关闭 released
	refs         atomic.Int64
	released     chan struct{}
	releasedOnce sync.Once
}

func newMailbox[M any](capacity int) *mailbox[M] {
	return &mailbox[M]{
		ch:       make(chan M, capacity),
		done:     make(chan struct{}),
		wake:     make(chan struct{}),
		released: make(chan struct{}),
	}
}

// send 投递消息，邮箱满时阻塞
func (m *mailbox[M]) send(ctx context.Context, msg M) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return errMailboxClosed
	}

	// 消费者已退出时不再尝试写入
	select {
	case <-m.done:
		return errMailboxClosed
	default:
	}

	select {
	case m.ch <- msg:
		return nil
	case <-m.done:
		return errMailboxClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// trySend 非阻塞投递
func (m *mailbox[M]) trySend(msg M) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return errMailboxClosed
	}

	select {
	case <-m.done:
		return errMailboxClosed
	default:
	}

	select {
	case m.ch <- msg:
		return nil
	default:
		return ErrMailboxFull
	}
}

// receive 阻塞等待消息，只能由消息循环调用
func (m *mailbox[M]) receive() (M, recvResult) {
	var zero M

	select {
	case msg := <-m.ch:
		return msg, recvMessage
	case <-m.wake:
		return zero, recvWake
	case <-m.released:
		// 外部地址已全部释放，取完剩余消息后才算关闭
		select {
		case msg := <-m.ch:
			return msg, recvMessage
		default:
			return zero, recvClosed
		}
	}
}

// wakeUp 唤醒阻塞在 receive 上的消费者
func (m *mailbox[M]) wakeUp() {
	m.wakeOnce.Do(func() { close(m.wake) })
}

func (m *mailbox[M]) acquire() {
	m.refs.Add(1)
}

func (m *mailbox[M]) releaseRef() {
	if m.refs.Add(-1) == 0 {
		m.releasedOnce.Do(func() { close(m.released) })
	}
}

// closeAndDrain 关闭邮箱并返回未处理的消息
func (m *mailbox[M]) closeAndDrain() []M {
	m.doneOnce.Do(func() { close(m.done) })

	// 等待所有进行中的 send 返回
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	var rest []M
	for {
		select {
		case msg := <-m.ch:
			rest = append(rest, msg)
		default:
			return rest
		}
	}
}

func (m *mailbox[M]) size() int {
	return len(m.ch)
}

func (m *mailbox[M]) capacity() int {
	return cap(m.ch)
}
