package observ

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := cur
		cur = cur.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	resolve := tm.Begin("resolve")
	assert.Equal(t, 2*time.Millisecond, tm.End(resolve, "3 headers"))
	link := tm.Begin("link")
	tm.End(link, "")
	tm.End(42, "ignored")

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	assert.Equal(t, "resolve", r.Phases[0].Name)
	assert.InDelta(t, 2.0, r.Phases[0].DurationMS, 1e-9)
	assert.InDelta(t, 4.0, r.TotalMS, 1e-9)

	s := tm.Summary()
	assert.Contains(t, s, "resolve")
	assert.Contains(t, s, "3 headers")
	assert.Contains(t, s, "total")
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("x")
	assert.Equal(t, -1, idx)
	assert.Zero(t, tm.End(idx, ""))
	assert.Empty(t, tm.Report().Phases)
	assert.Nil(t, tm.Phases())
}
