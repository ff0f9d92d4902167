package application

import (
	"testing"
	"time"

	"github.com/bnema/meetroom-cli/internal/adapters/schedule/virtual"
	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

func TestStopwatchCountsOnlyWhileRunning(t *testing.T) {
	loop := virtual.New(epoch)
	sw := NewStopwatch(loop)

	sw.SetRunning(true)
	loop.Advance(3 * time.Second)
	sw.SetRunning(false)

	assert.Equal(t, domain.ElapsedTime(3), sw.Elapsed())
	assert.Equal(t, 0, loop.Pending())

	loop.Advance(time.Hour)
	assert.Equal(t, domain.ElapsedTime(3), sw.Elapsed())
	assert.Equal(t, "00:00:03", sw.Formatted())
}

func TestStopwatchDoesNotScheduleWhileIdle(t *testing.T) {
	loop := virtual.New(epoch)
	sw := NewStopwatch(loop)

	sw.SetRunning(false)
	assert.Equal(t, 0, loop.Pending())

	loop.Advance(10 * time.Second)
	assert.Equal(t, domain.ElapsedTime(0), sw.Elapsed())
}

func TestStopwatchToggleKeepsValue(t *testing.T) {
	loop := virtual.New(epoch)
	sw := NewStopwatch(loop)

	sw.SetRunning(true)
	loop.Advance(2 * time.Second)

	sw.SetRunning(false)
	sw.SetRunning(true)
	sw.SetRunning(false)
	sw.SetRunning(true)
	assert.Equal(t, domain.ElapsedTime(2), sw.Elapsed())
	assert.Equal(t, 1, loop.Pending())

	loop.Advance(time.Second)
	assert.Equal(t, domain.ElapsedTime(3), sw.Elapsed())
}

func TestStopwatchRepeatedStartDoesNotDoubleTick(t *testing.T) {
	loop := virtual.New(epoch)
	sw := NewStopwatch(loop)

	sw.SetRunning(true)
	sw.SetRunning(true)
	loop.Advance(5 * time.Second)

	assert.Equal(t, domain.ElapsedTime(5), sw.Elapsed())
}

func TestStopwatchReactivationTicksFromReactivation(t *testing.T) {
	loop := virtual.New(epoch)
	sw := NewStopwatch(loop)

	sw.SetRunning(true)
	loop.Advance(1500 * time.Millisecond)
	sw.SetRunning(false)
	assert.Equal(t, domain.ElapsedTime(1), sw.Elapsed())

	sw.SetRunning(true)
	loop.Advance(999 * time.Millisecond)
	assert.Equal(t, domain.ElapsedTime(1), sw.Elapsed())
	loop.Advance(time.Millisecond)
	assert.Equal(t, domain.ElapsedTime(2), sw.Elapsed())
}

func TestStopwatchObserversSeeEveryTick(t *testing.T) {
	loop := virtual.New(epoch)
	sw := NewStopwatch(loop)

	var seen []string
	sw.OnTick(func(elapsed domain.ElapsedTime) { seen = append(seen, elapsed.String()) })

	sw.SetRunning(true)
	loop.Advance(61 * time.Second)
	sw.Close()

	assert.Len(t, seen, 61)
	assert.Equal(t, "00:01:01", seen[len(seen)-1])
	assert.False(t, sw.Running())
	assert.Equal(t, 0, loop.Pending())
}

func TestStopwatchReset(t *testing.T) {
	loop := virtual.New(epoch)
	sw := NewStopwatch(loop)

	sw.SetRunning(true)
	loop.Advance(4 * time.Second)
	sw.Reset()
	loop.Advance(time.Second)

	assert.Equal(t, domain.ElapsedTime(1), sw.Elapsed())
	assert.True(t, sw.Running())
}
