package core

import "time"

// FixedStep paces simulation steps at a steady rate independent of the frame
// rate. At most maxCatchUp steps are released per frame so a long stall does
// not trigger a burst of sweeps.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

const maxCatchUp = 4

// NewFixedStep constructs a FixedStep controller targeting the given steps
// per second. The first call to Steps releases one step immediately.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the step rate.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Steps reports how many simulation steps are due since the previous call.
func (f *FixedStep) Steps() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	return f.Advance(now.Sub(f.last), now)
}

// Advance adds delta to the accumulator and returns the number of due steps.
func (f *FixedStep) Advance(delta time.Duration, now time.Time) int {
	f.last = now
	f.accumulator += delta
	n := 0
	for f.accumulator >= f.step && n < maxCatchUp {
		f.accumulator -= f.step
		n++
	}
	if n == maxCatchUp {
		f.accumulator = 0
	}
	return n
}
