package vkquad

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
)

// SlotState tracks where a frame slot is in its cycle.
type SlotState int

const (
	Idle SlotState = iota
	Recording
	Submitted
	Presented
)

func (s SlotState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Submitted:
		return "submitted"
	case Presented:
		return "presented"
	}
	return "unknown"
}

// frameBackend is the GPU side of the frame loop. Each call addresses one
// frame slot by index.
type frameBackend interface {
	// WaitForFence blocks until the slot's in-flight fence is signaled.
	WaitForFence(slot int) error
	ResetFence(slot int) error
	// AcquireImage blocks until an image is available and returns its index.
	// The slot's image-available semaphore is signaled when it can be written.
	AcquireImage(slot int) (uint32, error)
	// Record resets the slot's command buffer and records the quad draw into
	// the framebuffer of image.
	Record(slot int, image uint32) error
	// Submit queues the slot's commands behind image-available, signaling
	// render-finished and the in-flight fence on completion.
	Submit(slot int) error
	// Present queues image for presentation behind render-finished.
	Present(slot int, image uint32) error
	WaitIdle() error
}

// FrameStats summarises completed frames.
type FrameStats struct {
	Frames uint64
	Total  time.Duration
	Worst  time.Duration
}

func (s FrameStats) Mean() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Frames)
}

func (s *FrameStats) add(d time.Duration) {
	s.Frames++
	s.Total += d
	if d > s.Worst {
		s.Worst = d
	}
}

// FrameOrchestrator drives the steady-state loop over MaxFramesInFlight
// slots in round-robin order.
type FrameOrchestrator struct {
	backend frameBackend
	states  [MaxFramesInFlight]SlotState
	current int
	stats   FrameStats
}

func newFrameOrchestrator(backend frameBackend) *FrameOrchestrator {
	return &FrameOrchestrator{backend: backend}
}

// DrawFrame renders one frame in the current slot and advances to the next.
// Any failure leaves the slot where it stopped and is returned unchanged in
// kind.
func (f *FrameOrchestrator) DrawFrame() error {
	start := hrtime.Now()
	slot := f.current

	// Throttle on the slot's previous submission.
	if err := f.backend.WaitForFence(slot); err != nil {
		return err
	}
	f.states[slot] = Idle
	if err := f.backend.ResetFence(slot); err != nil {
		return err
	}

	image, err := f.backend.AcquireImage(slot)
	if err != nil {
		return err
	}

	f.states[slot] = Recording
	if err := f.backend.Record(slot, image); err != nil {
		return err
	}

	if err := f.backend.Submit(slot); err != nil {
		return err
	}
	f.states[slot] = Submitted

	if err := f.backend.Present(slot, image); err != nil {
		return err
	}
	f.states[slot] = Presented

	f.current = (f.current + 1) % MaxFramesInFlight
	f.stats.add(hrtime.Since(start))
	return nil
}

// Run draws frames while keepRunning reports true. The signal is checked only
// between frames. The device is always drained before Run returns, whether
// the loop ended normally or on a failed frame.
func (f *FrameOrchestrator) Run(keepRunning func() bool) (err error) {
	defer func() {
		if idleErr := f.backend.WaitIdle(); idleErr != nil {
			err = errors.CombineErrors(err, idleErr)
		}
	}()
	for keepRunning() {
		if err := f.DrawFrame(); err != nil {
			return errors.Wrapf(err, "frame %d", f.stats.Frames)
		}
	}
	return nil
}

// Current is the slot the next frame will use.
func (f *FrameOrchestrator) Current() int {
	return f.current
}

func (f *FrameOrchestrator) State(slot int) SlotState {
	return f.states[slot]
}

func (f *FrameOrchestrator) Stats() FrameStats {
	return f.stats
}
