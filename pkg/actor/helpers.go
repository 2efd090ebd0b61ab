package actor

import (
	"context"
	"errors"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// 通用请求-回复辅助函数
// ═══════════════════════════════════════════════════════════════════════════

// Ask 向 Actor 发送消息并等待响应
//
// build 使用回复通道构造请求消息，Handle 中通过 [Reply] 回复。
// Actor 未回复就退出时返回 [*DeliveryError]。
//
// 用法示例:
//
//	type getCount struct{ reply chan<- int }
//
//	n, err := actor.Ask(ctx, addr, func(reply chan<- int) Msg {
//		return Msg{Get: &getCount{reply: reply}}
//	})
func Ask[M, R any](ctx context.Context, addr *Address[M], build func(reply chan<- R) M) (R, error) {
	var zero R

	replyCh := make(chan R, 1)
	if err := addr.Send(ctx, build(replyCh)); err != nil {
		return zero, err
	}

	select {
	case result := <-replyCh:
		return result, nil
	case <-addr.Done():
		// 退出前可能已经回复
		select {
		case result := <-replyCh:
			return result, nil
		default:
		}
		return zero, addr.cell.deliveryError()
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// AskTimeout 带超时的 Ask，超时返回 [*ResponseTimeout]
func AskTimeout[M, R any](addr *Address[M], build func(reply chan<- R) M, timeout time.Duration) (R, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := Ask(ctx, addr, build)
	if errors.Is(err, context.DeadlineExceeded) {
		return result, &ResponseTimeout{Target: addr.String(), Timeout: timeout}
	}
	return result, err
}

// Reply 非阻塞回复，通道为 nil 或已满时返回 false
func Reply[R any](ch chan<- R, value R) bool {
	if ch == nil {
		return false
	}
	select {
	case ch <- value:
		return true
	default:
		return false
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 错误处理工具
// ═══════════════════════════════════════════════════════════════════════════

// IsContextError 检查错误是否为 context 相关错误
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
