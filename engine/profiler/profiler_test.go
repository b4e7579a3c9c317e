package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfilerReportsOncePerInterval(t *testing.T) {
	p := NewProfiler(time.Second)
	start := p.lastTime

	for i := 1; i < 60; i++ {
		assert.False(t, p.tick(start.Add(time.Duration(i)*10*time.Millisecond)))
	}
	assert.True(t, p.tick(start.Add(2*time.Second)))

	stats := p.Last()
	assert.InDelta(t, 30, stats.FPS, 1e-9)
	assert.Positive(t, stats.SysMB)

	assert.False(t, p.tick(start.Add(2*time.Second+time.Millisecond)), "interval restarts after a report")
}

func TestProfilerDefaultInterval(t *testing.T) {
	assert.Equal(t, time.Second, NewProfiler(0).updateInterval)
	assert.Equal(t, 250*time.Millisecond, NewProfiler(250*time.Millisecond).updateInterval)
}
