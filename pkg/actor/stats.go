package actor

import (
	"sync"
	"sync/atomic"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// Actor 统计信息
// ═══════════════════════════════════════════════════════════════════════════

// ActorStats Actor 运行时统计信息
type ActorStats struct {
	// 消息计数
	MessagesReceived  int64 // 成功进入邮箱的消息数
	MessagesHandled   int64 // Handle 正常返回的消息数
	MessagesDiscarded int64 // 终止时丢弃的消息数
	Faults            int64 // 故障数

	// 延迟统计
	TotalLatency   time.Duration
	AverageLatency time.Duration
	MaxLatency     time.Duration
	MinLatency     time.Duration

	// 时间戳
	StartedAt     time.Time
	LastMessageAt time.Time
	LastFaultAt   time.Time

	LastFault error
}

// Clone 克隆统计信息
func (s *ActorStats) Clone() *ActorStats {
	c := *s
	return &c
}

// StatsCollector 线程安全的统计收集器
// 生产者（RecordReceived）和消息循环并发写入
type StatsCollector struct {
	mu    sync.RWMutex
	stats ActorStats
}

// NewStatsCollector 创建统计收集器
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		stats: ActorStats{
			StartedAt:  time.Now(),
			MinLatency: time.Duration(1<<63 - 1), // 最大值，确保第一次会被更新
		},
	}
}

// RecordReceived 记录消息进入邮箱
func (c *StatsCollector) RecordReceived() {
	c.mu.Lock()
	c.stats.MessagesReceived++
	c.stats.LastMessageAt = time.Now()
	c.mu.Unlock()
}

// RecordHandled 记录 Handle 完成
func (c *StatsCollector) RecordHandled(latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.MessagesHandled++
	c.stats.TotalLatency += latency
	c.stats.AverageLatency = c.stats.TotalLatency / time.Duration(c.stats.MessagesHandled)

	if latency > c.stats.MaxLatency {
		c.stats.MaxLatency = latency
	}
	if latency < c.stats.MinLatency {
		c.stats.MinLatency = latency
	}
}

// RecordDiscarded 记录丢弃的消息
func (c *StatsCollector) RecordDiscarded() {
	c.mu.Lock()
	c.stats.MessagesDiscarded++
	c.mu.Unlock()
}

// RecordFault 记录故障
func (c *StatsCollector) RecordFault(err error) {
	c.mu.Lock()
	c.stats.Faults++
	c.stats.LastFault = err
	c.stats.LastFaultAt = time.Now()
	c.mu.Unlock()
}

// Stats 获取统计快照
func (c *StatsCollector) Stats() *ActorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.stats.Clone()
	if s.MessagesHandled == 0 {
		s.MinLatency = 0
	}
	return s
}

// ═══════════════════════════════════════════════════════════════════════════
// 系统统计
// ═══════════════════════════════════════════════════════════════════════════

// SystemStats 系统统计快照
type SystemStats struct {
	TotalSpawned      int64
	RunningActors     int64
	MessagesSent      int64
	MessagesHandled   int64
	MessagesDiscarded int64
	Faults            int64
	StartTime         time.Time
}

// systemCounters 使用原子操作的系统计数器
type systemCounters struct {
	spawned   atomic.Int64
	running   atomic.Int64
	sent      atomic.Int64
	handled   atomic.Int64
	discarded atomic.Int64
	faults    atomic.Int64
	startTime time.Time
}

func (c *systemCounters) snapshot() *SystemStats {
	return &SystemStats{
		TotalSpawned:      c.spawned.Load(),
		RunningActors:     c.running.Load(),
		MessagesSent:      c.sent.Load(),
		MessagesHandled:   c.handled.Load(),
		MessagesDiscarded: c.discarded.Load(),
		Faults:            c.faults.Load(),
		StartTime:         c.startTime,
	}
}
