package actor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsCollector(t *testing.T) {
	c := NewStatsCollector()

	empty := c.Stats()
	assert.Equal(t, time.Duration(0), empty.MinLatency)

	c.RecordReceived()
	c.RecordReceived()
	c.RecordHandled(10 * time.Millisecond)
	c.RecordHandled(30 * time.Millisecond)
	c.RecordDiscarded()
	c.RecordFault(errors.New("boom"))

	s := c.Stats()
	assert.Equal(t, int64(2), s.MessagesReceived)
	assert.Equal(t, int64(2), s.MessagesHandled)
	assert.Equal(t, int64(1), s.MessagesDiscarded)
	assert.Equal(t, int64(1), s.Faults)
	assert.Equal(t, 40*time.Millisecond, s.TotalLatency)
	assert.Equal(t, 20*time.Millisecond, s.AverageLatency)
	assert.Equal(t, 30*time.Millisecond, s.MaxLatency)
	assert.Equal(t, 10*time.Millisecond, s.MinLatency)
	assert.EqualError(t, s.LastFault, "boom")
	assert.False(t, s.LastMessageAt.IsZero())

	// 快照与收集器互不影响
	s.MessagesHandled = 100
	assert.Equal(t, int64(2), c.Stats().MessagesHandled)
}
