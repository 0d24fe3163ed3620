package banner

import "time"

// Scheduler runs a function once after a delay. The controller never
// cancels scheduled work; stale wake-ups are disarmed by token
// comparison instead, so any fire-and-forget timer source qualifies.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// wallScheduler schedules on the wall clock.
type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, fn func()) {
	// The returned timer is intentionally discarded: cancellation is
	// best-effort via the controller's token check at wake time.
	time.AfterFunc(d, fn)
}
