// Package actor 提供轻量级 Actor 模型实现
//
// Actor 模式是一种并发计算模型，每个 Actor 是独立的计算单元：
// • 拥有私有状态（无需锁保护）
// • 通过有界邮箱（mailbox）接收消息
// • 消息处理串行化（一次处理一条）
// • 显式的生命周期：PreStart → Handle* → PostStop
//
// # 核心组件
//
// [System] 是 Actor 系统的入口，[Spawn] 创建 Actor 并立即返回地址：
//
//	sys := actor.NewSystem("my-system")
//	defer sys.ShutdownWithTimeout(5 * time.Second)
//
//	addr, err := actor.Spawn[string](sys, &Echo{}, 16)
//
// [Actor] 接口只要求实现 Handle，[HandlerFunc] 提供函数式快捷方式。
// [PreStarter] 和 [PostStopper] 是可选的生命周期钩子。
//
// [Address] 是向 Actor 投递消息的唯一途径。[Address.Send] 在邮箱满时阻塞
// （背压），Actor 退出后返回 [ErrDeliveryFailure]。[Address.Clone] 得到共享
// 同一邮箱的新地址。
//
// [Context] 只在回调中可见，提供 Send、[SendTo]、Terminate 等操作。
//
// # 终止
//
// Terminate 是协作式的：正在执行的 Handle 会运行完毕，消息循环在下一次取
// 消息时退出。此时仍在邮箱中的消息不会被处理，数量记录在 [Exit.Discarded]，
// 并可通过 [WithDeadLetter] 逐条取回。
//
// Actor 终止后再通过 Context 发送消息返回 [ErrPostTerminationSend]。
//
// # 故障
//
// 回调中的 panic 被恢复为 [HandlerFault]，只终止该 Actor：PostStop 照常执行，
// 之后的发送返回携带故障的 [*DeliveryError]，地址持有者也可以通过
// [Address.Done] 和 [Address.Exit] 观察。
//
// 完整使用示例请参考 example_test.go 或运行 go doc -all。
package actor
