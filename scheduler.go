package cubetwist

import "time"

// SchedulerState is the state of a Scheduler.
type SchedulerState int

const (
	StateIdle SchedulerState = iota
	StateAnimating
)

// String returns the string representation of the scheduler state.
func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Scheduler plays moves one at a time in FIFO order.
//
// The caller drives time with Advance. A move is applied to the puzzle
// only once its full duration has elapsed, so the puzzle is never observed
// mid-rotation. When the last queued move completes the settled hook fires,
// once per drain.
//
// A Scheduler is not safe for concurrent use; all calls must come from the
// goroutine that owns the puzzle.
type Scheduler struct {
	puzzle *Puzzle

	state   SchedulerState
	queue   []Move
	current Move
	elapsed time.Duration

	// Callbacks
	onStarted func(Move)
	onApplied func(Move, []int)
	onSettled func()
}

// NewScheduler creates an idle scheduler with an empty queue.
func NewScheduler(p *Puzzle) *Scheduler {
	return &Scheduler{puzzle: p}
}

// OnMoveStarted sets a callback that fires when a move begins animating.
func (s *Scheduler) OnMoveStarted(cb func(Move)) {
	s.onStarted = cb
}

// OnMoveApplied sets a callback that fires after a move has been applied
// to the puzzle. It receives the indices of the cubies that turned.
func (s *Scheduler) OnMoveApplied(cb func(m Move, affected []int)) {
	s.onApplied = cb
}

// OnSettled sets a callback that fires when the queue drains.
func (s *Scheduler) OnSettled(cb func()) {
	s.onSettled = cb
}

// Puzzle returns the puzzle the scheduler mutates.
func (s *Scheduler) Puzzle() *Puzzle {
	return s.puzzle
}

// State returns the current state.
func (s *Scheduler) State() SchedulerState {
	return s.state
}

// IsAnimating reports whether a move is in flight.
func (s *Scheduler) IsAnimating() bool {
	return s.state == StateAnimating
}

// Pending returns the number of moves waiting behind the current one.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Current returns the move in flight, if any.
func (s *Scheduler) Current() (Move, bool) {
	return s.current, s.state == StateAnimating
}

// Enqueue appends m to the queue. If the scheduler is idle the move starts
// immediately; otherwise it plays after the moves ahead of it. Enqueue never
// blocks and never rejects a move.
func (s *Scheduler) Enqueue(m Move) {
	s.queue = append(s.queue, m)
	if s.state == StateIdle {
		s.startNext()
	}
}

// Advance moves the clock forward by dt and completes every move whose
// duration has elapsed. It returns the number of moves completed.
func (s *Scheduler) Advance(dt time.Duration) int {
	if s.state != StateAnimating {
		return 0
	}
	if dt > 0 {
		s.elapsed += dt
	}

	completed := 0
	for s.state == StateAnimating && s.elapsed >= s.duration() {
		carry := s.elapsed - s.duration()
		s.finish()
		completed++
		if s.state == StateAnimating {
			s.elapsed = carry
		}
	}
	return completed
}

// Flush completes the current move and every queued move immediately.
func (s *Scheduler) Flush() int {
	completed := 0
	for s.state == StateAnimating {
		s.finish()
		completed++
	}
	return completed
}

// Progress returns how far the current rotation has turned, from 0 to 1,
// shaped by an ease-in-out curve. It is 0 when idle.
func (s *Scheduler) Progress() float64 {
	if s.state != StateAnimating {
		return 0
	}
	d := s.duration()
	if d == 0 {
		return 1
	}
	t := float64(s.elapsed) / float64(d)
	if t > 1 {
		t = 1
	}
	return easeInOutQuad(t)
}

func (s *Scheduler) duration() time.Duration {
	if s.current.Duration < 0 {
		return 0
	}
	return s.current.Duration
}

func (s *Scheduler) startNext() {
	s.current = s.queue[0]
	s.queue = s.queue[1:]
	s.elapsed = 0
	s.state = StateAnimating

	if s.onStarted != nil {
		s.onStarted(s.current)
	}
}

// finish applies the current move and starts the next one, or settles.
func (s *Scheduler) finish() {
	m := s.current
	affected := Apply(s.puzzle, m)
	if s.onApplied != nil {
		s.onApplied(m, affected)
	}

	if len(s.queue) > 0 {
		s.startNext()
		return
	}

	s.state = StateIdle
	s.current = Move{}
	s.elapsed = 0
	if s.onSettled != nil {
		s.onSettled()
	}
}

// easeInOutQuad is the power2 in-out curve.
func easeInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}
