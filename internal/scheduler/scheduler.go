package scheduler

import "orbitscene/internal/utils"

// Scheduler keeps a frame function registered with a Host, one refresh at a
// time, until stopped. The frame function re-registers itself after each run,
// so cadence follows the host and a slow frame never queues a backlog.
//
// A Scheduler belongs to the host's dispatch thread and is not safe for
// concurrent use.
type Scheduler struct {
	host  Host
	frame FrameFunc

	running bool
	pending FrameID
	frames  uint64
}

func New(host Host, frame FrameFunc) *Scheduler {
	return &Scheduler{host: host, frame: frame}
}

// Start registers the frame function. Calling Start while running does nothing.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	utils.Debug("Scheduler: started")
	s.request()
}

// Stop withdraws the pending registration. The frame function is not called
// again until the next Start.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	if s.pending != 0 {
		s.host.CancelFrame(s.pending)
		s.pending = 0
	}
	utils.Debug("Scheduler: stopped after %d frames", s.frames)
}

func (s *Scheduler) Running() bool {
	return s.running
}

// Frames counts frame function invocations.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

func (s *Scheduler) request() {
	s.pending = s.host.RequestFrame(s.tick)
}

func (s *Scheduler) tick() {
	s.pending = 0
	if !s.running {
		return
	}

	s.frames++
	s.frame()

	// the frame function may have stopped us
	if s.running && s.pending == 0 {
		s.request()
	}
}
