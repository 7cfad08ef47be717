package timer

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

const (
	ClockCPU  = "cpu"
	ClockWall = "wall"
)

var ErrUnknownClock = errors.New("unknown clock")

// Clock returns a reading that is only meaningful relative to another
// reading of the same clock.
type Clock interface {
	Name() string
	Now() (time.Duration, error)
}

func ParseClock(name string) (Clock, error) {
	switch name {
	case ClockCPU:
		return ProcessCPUClock{}, nil
	case ClockWall:
		return NewWallClock(), nil
	default:
		return nil, fmt.Errorf("%w: %q, expected %q or %q", ErrUnknownClock, name, ClockCPU, ClockWall)
	}
}

// ProcessCPUClock reads the CPU time consumed by the whole process.
type ProcessCPUClock struct{}

func (ProcessCPUClock) Name() string {
	return ClockCPU
}

func (ProcessCPUClock) Now() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, &ts); err != nil {
		return 0, err
	}

	return time.Duration(ts.Nano()), nil
}

// WallClock reads monotonic wall time since its creation.
type WallClock struct {
	epoch time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{
		epoch: time.Now(),
	}
}

func (c *WallClock) Name() string {
	return ClockWall
}

func (c *WallClock) Now() (time.Duration, error) {
	return time.Since(c.epoch), nil
}

// Measure runs fn and returns the time spent in it according to clock.
func Measure(clock Clock, fn func()) (time.Duration, error) {
	before, err := clock.Now()
	if err != nil {
		return 0, err
	}

	fn()

	after, err := clock.Now()
	if err != nil {
		return 0, err
	}

	return after - before, nil
}
