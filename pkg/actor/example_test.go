package actor_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lwmacct/251218-go-pkg-actor/pkg/actor"
)

func newExampleSystem(name string) *actor.System {
	return actor.NewSystemWithConfig(name, &actor.SystemConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// Greeter 示例 Actor，带生命周期钩子
type Greeter struct {
	greeted int
}

func (g *Greeter) PreStart() { fmt.Println("greeter starting") }

func (g *Greeter) Handle(ctx *actor.Context[string], name string) {
	if name == "" {
		ctx.Terminate()
		return
	}
	g.greeted++
	fmt.Printf("hello, %s\n", name)
}

func (g *Greeter) PostStop() { fmt.Printf("greeter stopped after %d greetings\n", g.greeted) }

// Example_basic 演示 Actor 的基本使用
func Example_basic() {
	sys := newExampleSystem("example")
	defer sys.ShutdownWithTimeout(time.Second)

	addr, err := actor.Spawn[string](sys, &Greeter{}, 4)
	if err != nil {
		fmt.Println("spawn failed:", err)
		return
	}

	ctx := context.Background()
	_ = addr.Send(ctx, "alice")
	_ = addr.Send(ctx, "bob")
	_ = addr.Send(ctx, "") // 终止
	<-addr.Done()

	// 退出后的发送返回投递失败
	err = addr.Send(ctx, "carol")
	fmt.Println(errors.Is(err, actor.ErrDeliveryFailure))

	// Output:
	// greeter starting
	// hello, alice
	// hello, bob
	// greeter stopped after 2 greetings
	// true
}

// Example_handlerFunc 演示函数式 Actor 和自发送
func Example_handlerFunc() {
	sys := newExampleSystem("countdown")
	defer sys.ShutdownWithTimeout(time.Second)

	addr, _ := actor.Spawn[int](sys, actor.HandlerFunc[int](func(ctx *actor.Context[int], n int) {
		fmt.Println(n)
		if n == 0 {
			ctx.Terminate()
			return
		}
		_ = ctx.Send(context.Background(), n-1)
	}), 1)

	_ = addr.Send(context.Background(), 3)
	<-addr.Done()

	// Output:
	// 3
	// 2
	// 1
	// 0
}

// Example_sendTo 演示 Actor 之间通信
func Example_sendTo() {
	sys := newExampleSystem("pipeline")
	defer sys.ShutdownWithTimeout(time.Second)

	printer, _ := actor.Spawn[string](sys, actor.HandlerFunc[string](func(ctx *actor.Context[string], s string) {
		fmt.Println("printer:", s)
		ctx.Terminate()
	}), 1)

	doubler, _ := actor.Spawn[int](sys, actor.HandlerFunc[int](func(ctx *actor.Context[int], n int) {
		_ = actor.SendTo(context.Background(), ctx, printer, fmt.Sprintf("%d", n*2))
		ctx.Terminate()
	}), 1)

	_ = doubler.Send(context.Background(), 21)
	<-printer.Done()

	// Output:
	// printer: 42
}

// Example_exit 演示故障与丢弃消息的观察
func Example_exit() {
	sys := newExampleSystem("exit")
	defer sys.ShutdownWithTimeout(time.Second)

	gate := make(chan struct{})
	addr, _ := actor.Spawn[string](sys, actor.HandlerFunc[string](func(_ *actor.Context[string], s string) {
		<-gate
		panic("cannot handle " + s)
	}), 2)

	ctx := context.Background()
	_ = addr.Send(ctx, "first")
	_ = addr.Send(ctx, "second")
	_ = addr.Send(ctx, "third")
	close(gate)
	<-addr.Done()

	exit, _ := addr.Exit()
	fmt.Println(exit.Reason)
	fmt.Println(exit.Fault.Phase)
	fmt.Println(exit.Discarded)

	// Output:
	// fault
	// Handle
	// 2
}
