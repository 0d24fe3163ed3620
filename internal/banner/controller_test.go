package banner

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler records scheduled work so tests can fire deferred
// checks in any order without waiting on the wall clock.
type manualScheduler struct {
	mu   sync.Mutex
	jobs []manualJob
}

type manualJob struct {
	delay time.Duration
	fn    func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, manualJob{delay: d, fn: fn})
}

func (s *manualScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *manualScheduler) fire(i int) {
	s.mu.Lock()
	job := s.jobs[i]
	s.mu.Unlock()
	job.fn()
}

func newTestController(cfg Config) (*Controller, *Binding, *manualScheduler) {
	active := NewBinding(false)
	sched := &manualScheduler{}
	c := NewController(cfg, active, WithScheduler(sched))
	return c, active, sched
}

func TestController_AutoDismiss(t *testing.T) {
	cfg := Standard()
	c, active, sched := newTestController(cfg)
	defer c.Close()

	active.Set(true)
	require.Equal(t, 1, sched.count())
	assert.Equal(t, cfg.Duration, sched.jobs[0].delay)

	sched.fire(0)
	assert.False(t, active.Get())
}

func TestController_ReTriggerResetsCountdown(t *testing.T) {
	c, active, sched := newTestController(Standard())
	defer c.Close()

	dismissals := 0
	active.Subscribe(func(v bool) {
		if !v {
			dismissals++
		}
	})

	active.Set(true)
	active.Set(true) // re-present before the first countdown elapses
	require.Equal(t, 2, sched.count())

	// The first deferred check is stale: its token was superseded.
	sched.fire(0)
	assert.True(t, active.Get(), "stale timer must not close a re-triggered banner")
	assert.Equal(t, 0, dismissals)

	// Only the most recent check may dismiss.
	sched.fire(1)
	assert.False(t, active.Get())
	assert.Equal(t, 1, dismissals)
}

func TestController_HideThenRepresent(t *testing.T) {
	c, active, sched := newTestController(Standard())
	defer c.Close()

	active.Set(true)
	active.Set(false) // caller hides manually
	active.Set(true)  // and re-presents
	require.Equal(t, 2, sched.count())

	// The check armed by the first presentation is stale.
	sched.fire(0)
	assert.True(t, active.Get())

	sched.fire(1)
	assert.False(t, active.Get())
}

func TestController_DismissIdempotent(t *testing.T) {
	c, active, _ := newTestController(Standard())
	defer c.Close()

	writes := 0
	active.Subscribe(func(bool) { writes++ })

	c.Dismiss()
	c.Dismiss()
	assert.Equal(t, 0, writes, "dismiss while hidden must not touch the binding")
	assert.False(t, active.Get())
}

func TestController_NonPositiveDurationNeverDismisses(t *testing.T) {
	cfg := Standard()
	cfg.Duration = 0
	c, active, sched := newTestController(cfg)
	defer c.Close()

	active.Set(true)
	assert.Equal(t, 0, sched.count(), "zero duration must not arm a countdown")
	assert.True(t, active.Get())
}

func TestController_HandleDrag(t *testing.T) {
	cfg := Standard()
	cfg.Edge = EdgeTop
	c, active, _ := newTestController(cfg)
	defer c.Close()

	active.Set(true)

	// Away from the anchor: ignored.
	c.HandleDrag(DragGesture{DX: 5, DY: 30})
	assert.True(t, active.Get())

	// Horizontal-dominant: ignored.
	c.HandleDrag(DragGesture{DX: -40, DY: -5})
	assert.True(t, active.Get())

	// Toward the anchor: dismissed.
	c.HandleDrag(DragGesture{DX: 5, DY: -30})
	assert.False(t, active.Get())
}

func TestController_ContentSizeAndGeometry(t *testing.T) {
	cfg := Standard()
	cfg.CornerRadius = CornerRadiusAuto
	c, active, _ := newTestController(cfg)
	defer c.Close()

	c.SetContentSize(Size{Width: 32, Height: 40})
	assert.Equal(t, Size{Width: 32, Height: 40}, c.ContentSize())
	assert.Equal(t, 20.0, c.Radius())

	assert.Equal(t, -offscreenOffset, c.Offset())
	active.Set(true)
	assert.Equal(t, 0.0, c.Offset())
}

func TestController_CloseDetaches(t *testing.T) {
	c, active, sched := newTestController(Standard())

	c.Close()
	active.Set(true)
	assert.Equal(t, 0, sched.count())
}

// Wall-clock scenario: present with a short duration, re-present halfway
// through, and verify the banner survives past the original deadline but
// dismisses after the refreshed one.
func TestController_WallClockReTrigger(t *testing.T) {
	cfg := Standard()
	cfg.Duration = 300 * time.Millisecond
	active := NewBinding(false)
	c := NewController(cfg, active)
	defer c.Close()

	active.Set(true)
	time.Sleep(150 * time.Millisecond)
	active.Set(true) // reset the countdown

	// Past the original deadline, before the refreshed one.
	time.Sleep(220 * time.Millisecond)
	assert.True(t, active.Get(), "banner dismissed by the superseded timer")

	require.Eventually(t, func() bool { return !active.Get() },
		500*time.Millisecond, 10*time.Millisecond,
		"banner never auto-dismissed")
}
