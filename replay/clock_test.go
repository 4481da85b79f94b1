package replay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClockFiresInDeadlineOrder(t *testing.T) {
	c := NewManualClock()
	var order []string
	c.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	c.AfterFunc(time.Second, func() { order = append(order, "a") })
	c.AfterFunc(time.Second, func() { order = append(order, "b") })

	c.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 2*time.Second, c.Now())

	c.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestManualClockChainedCallbacks(t *testing.T) {
	c := NewManualClock()
	fired := 0
	var tick func()
	tick = func() {
		fired++
		c.AfterFunc(time.Second, tick)
	}
	c.AfterFunc(time.Second, tick)

	c.Advance(3 * time.Second)
	assert.Equal(t, 3, fired)
	assert.Equal(t, 1, c.Pending())
}

func TestManualClockStop(t *testing.T) {
	c := NewManualClock()
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	c.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestStepMap(t *testing.T) {
	m := NewStepMap(3)
	assert.True(t, m.Empty())

	m.Set(1, 2, 4)
	assert.True(t, m.Has(1, 2))
	assert.Equal(t, 4, m.Get(1, 2))

	snap := m.Snapshot()
	m.Clear(1, 2)
	assert.Equal(t, 4, snap[1][2], "snapshot must not alias the map")
	assert.False(t, m.Has(1, 2))

	m.Set(0, 0, 1)
	m.Reset()
	assert.True(t, m.Empty())
	assert.Equal(t, 3, m.Size())
}
