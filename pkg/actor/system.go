package actor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// System Actor 系统
// 负责创建 Actor，并跟踪运行中的消息循环以便统一关闭
type System struct {
	// 基本信息
	name string

	// 运行中 Actor 的终止函数，仅用于 Shutdown
	live   map[string]func()
	liveMu sync.Mutex

	// 生命周期控制
	wg        sync.WaitGroup
	isRunning atomic.Bool

	// 配置
	config *SystemConfig

	// 统计信息
	stats *systemCounters

	// 日志
	logger *slog.Logger
}

// SystemConfig 系统配置
type SystemConfig struct {
	// LogDeadLetters 是否记录终止时丢弃的消息
	LogDeadLetters bool
	// PanicHandler 故障处理函数，为空时记录错误日志
	PanicHandler func(fault *HandlerFault)
	// Logger 自定义日志器
	Logger *slog.Logger
}

// DefaultSystemConfig 默认系统配置
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		LogDeadLetters: true,
		PanicHandler:   nil, // 使用默认处理
		Logger:         nil, // 使用默认 logger
	}
}

// NewSystem 创建新的 Actor 系统
func NewSystem(name string) *System {
	return NewSystemWithConfig(name, DefaultSystemConfig())
}

// NewSystemWithConfig 使用配置创建 Actor 系统
func NewSystemWithConfig(name string, config *SystemConfig) *System {
	if config == nil {
		config = DefaultSystemConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &System{
		name:   name,
		live:   make(map[string]func()),
		config: config,
		stats:  &systemCounters{startTime: time.Now()},
		logger: logger.With("system", name),
	}
	s.isRunning.Store(true)

	s.logger.Info("actor system started")
	return s
}

// Name 返回系统名称
func (s *System) Name() string {
	return s.name
}

// IsRunning 检查系统是否运行中
func (s *System) IsRunning() bool {
	return s.isRunning.Load()
}

// Running 返回运行中的 Actor 数量
func (s *System) Running() int {
	s.liveMu.Lock()
	defer s.liveMu.Unlock()
	return len(s.live)
}

// Stats 获取统计信息
func (s *System) Stats() *SystemStats {
	return s.stats.snapshot()
}

// Spawn 创建并启动 Actor
//
// capacity 为邮箱容量，必须大于 0。Spawn 立即返回地址，不等待 PreStart
// 完成；在此期间发送的消息在邮箱中排队，邮箱满时发送方阻塞。
// 需要等待启动完成时使用 [WithReady]。
func Spawn[M any](sys *System, a Actor[M], capacity int, opts ...Option) (*Address[M], error) {
	if sys == nil {
		return nil, ErrSystemStopped
	}
	if a == nil {
		return nil, ErrNilActor
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	o := &spawnOptions{}
	for _, opt := range opts {
		opt(o)
	}

	cell := newActorCell[M](sys, capacity, o)
	addr := &Address[M]{cell: cell, owned: true}
	cell.mailbox.acquire()
	actx := &Context[M]{self: &Address[M]{cell: cell}, cell: cell}

	// 检查运行状态与注册必须在同一把锁内，避免与 Shutdown 交错
	sys.liveMu.Lock()
	if !sys.isRunning.Load() {
		sys.liveMu.Unlock()
		cell.cancel()
		return nil, ErrSystemStopped
	}
	sys.live[cell.id] = cell.terminate
	sys.wg.Add(1)
	sys.liveMu.Unlock()

	sys.stats.spawned.Add(1)
	sys.stats.running.Add(1)

	go cell.run(a, actx, o.ready)

	cell.logger.Debug("spawned actor", "capacity", capacity)
	return addr, nil
}

// unregister 消息循环退出时移除
func (s *System) unregister(id string) {
	s.liveMu.Lock()
	delete(s.live, id)
	s.liveMu.Unlock()

	s.stats.running.Add(-1)
}

// reportFault 处理故障
func (s *System) reportFault(fault *HandlerFault, logger *slog.Logger) {
	s.stats.faults.Add(1)

	if s.config.PanicHandler != nil {
		s.config.PanicHandler(fault)
		return
	}
	logger.Error("panic in actor",
		"phase", fault.Phase.String(),
		"error", fault.Reason,
		"stack", string(fault.Stack))
}

// Shutdown 关闭整个 Actor 系统
//
// 终止所有运行中的 Actor 并等待其消息循环退出。正在执行的 Handle
// 会运行完毕；ctx 结束时停止等待并返回错误。
func (s *System) Shutdown(ctx context.Context) error {
	s.logger.Info("actor system shutting down")

	s.liveMu.Lock()
	s.isRunning.Store(false)
	terminators := make([]func(), 0, len(s.live))
	for _, terminate := range s.live {
		terminators = append(terminators, terminate)
	}
	s.liveMu.Unlock()

	for _, terminate := range terminators {
		terminate()
	}

	// 等待所有 goroutine 完成
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("actor system shutdown complete")
		return nil
	case <-ctx.Done():
		s.logger.Warn("actor system shutdown timeout", "running", s.Running())
		return fmt.Errorf("shutdown %s: %w", s.name, ctx.Err())
	}
}

// ShutdownWithTimeout 带超时的关闭
func (s *System) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// newActorID 生成 Actor 唯一标识
func newActorID() string {
	return uuid.NewString()
}
