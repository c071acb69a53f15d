package cubetwist

import (
	"fmt"
	"log/slog"
	"time"
)

// DebugWinTime is the fake solve time reported by Game.DebugWin.
const DebugWinTime = 59*time.Second + 990*time.Millisecond

// minSolveTime guards against a win being detected right after the
// scramble settles.
const minSolveTime = time.Second

// Game ties a puzzle, its scheduler and the input translator together
// with scrambling, the solve timer and automatic win detection.
//
// A Game is not safe for concurrent use.
type Game struct {
	cfg *config
	log *slog.Logger

	size       int
	puzzle     *Puzzle
	sched      *Scheduler
	translator *Translator

	scrambling bool
	scrambled  bool
	running    bool
	startedAt  time.Time
	final      time.Duration

	// Callbacks
	onMoveApplied  func(Move, []int)
	onSettled      func()
	onTimerStarted func()
	onSolved       func(time.Duration)
	onReset        func(size int)
}

// NewGame creates a game with a solved puzzle of the given size.
func NewGame(size int, opts ...Option) (*Game, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	for s, l := range cfg.layouts {
		if err := l.Validate(s); err != nil {
			return nil, fmt.Errorf("layout for size %d: %w", s, err)
		}
	}

	g := &Game{cfg: cfg, log: cfg.logger}
	if err := g.SetSize(size); err != nil {
		return nil, err
	}
	return g, nil
}

// OnMoveApplied sets a callback that fires after each move lands.
func (g *Game) OnMoveApplied(cb func(m Move, affected []int)) {
	g.onMoveApplied = cb
}

// OnSettled sets a callback that fires whenever the move queue drains.
func (g *Game) OnSettled(cb func()) {
	g.onSettled = cb
}

// OnTimerStarted sets a callback that fires when a scramble has settled
// and the solve timer starts.
func (g *Game) OnTimerStarted(cb func()) {
	g.onTimerStarted = cb
}

// OnSolved sets a callback that fires once per scramble when the puzzle
// is solved. It receives the solve time.
func (g *Game) OnSolved(cb func(elapsed time.Duration)) {
	g.onSolved = cb
}

// OnReset sets a callback that fires after the puzzle is rebuilt.
func (g *Game) OnReset(cb func(size int)) {
	g.onReset = cb
}

// Size returns the current puzzle size.
func (g *Game) Size() int {
	return g.size
}

// Puzzle returns the current puzzle. The pointer changes on Reset.
func (g *Game) Puzzle() *Puzzle {
	return g.puzzle
}

// Scheduler returns the current scheduler. The pointer changes on Reset.
func (g *Game) Scheduler() *Scheduler {
	return g.sched
}

// Translator returns the input translator for the current size.
func (g *Game) Translator() *Translator {
	return g.translator
}

// Running reports whether the solve timer is running.
func (g *Game) Running() bool {
	return g.running
}

// Scrambled reports whether the puzzle holds an unsolved scramble.
func (g *Game) Scrambled() bool {
	return g.scrambled
}

// Scrambling reports whether scramble moves are still playing.
func (g *Game) Scrambling() bool {
	return g.scrambling
}

// SetSize switches to a new puzzle size and resets the game.
func (g *Game) SetSize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	layout, ok := g.cfg.layouts[size]
	if !ok {
		layout = DefaultKeyLayout(size)
	}

	g.size = size
	g.translator = &Translator{size: size, layout: layout}
	g.Reset()
	return nil
}

// Reset stops the timer and replaces the puzzle with a solved one.
// Moves still queued are discarded.
func (g *Game) Reset() {
	g.running = false
	g.scrambled = false
	g.scrambling = false
	g.final = 0

	g.puzzle = MustPuzzle(g.size)
	g.sched = NewScheduler(g.puzzle)
	g.sched.OnMoveApplied(g.moveApplied)
	g.sched.OnSettled(g.settled)

	g.log.Debug("game reset", "size", g.size)
	if g.onReset != nil {
		g.onReset(g.size)
	}
}

// ScrambleLength returns the number of moves Scramble will play.
func (g *Game) ScrambleLength() int {
	if g.cfg.scrambleLength > 0 {
		return g.cfg.scrambleLength
	}
	return 20 + 5*g.size
}

// Scramble resets the game and queues random moves at the scramble
// duration. The timer starts once they have all played. It returns
// ErrBusy while moves are animating.
func (g *Game) Scramble() ([]Move, error) {
	if g.sched.IsAnimating() {
		return nil, ErrBusy
	}
	g.Reset()

	slices := LatticeCoords(g.size)
	moves := make([]Move, g.ScrambleLength())
	for i := range moves {
		moves[i] = Move{
			Axis:      Axes[g.cfg.rand.IntN(len(Axes))],
			Slice:     slices[g.cfg.rand.IntN(len(slices))],
			Direction: []int{CCW, CW}[g.cfg.rand.IntN(2)],
			Duration:  g.cfg.scrambleDuration,
		}
	}

	g.log.Info("scramble started", "size", g.size, "moves", len(moves))
	g.scrambling = true
	for _, m := range moves {
		g.sched.Enqueue(m)
	}
	return moves, nil
}

// MarkScrambled arms the timer and win check for a puzzle scrambled by
// other means, such as turns mirrored from a smart cube. It returns false
// while moves are playing or if the puzzle is already solved.
func (g *Game) MarkScrambled() bool {
	if g.sched.IsAnimating() || IsSolved(g.puzzle) {
		return false
	}
	g.scrambling = false
	g.scrambled = true
	g.log.Info("external scramble armed", "size", g.size)
	g.startTimer()
	return true
}

// accepting applies the input backlog rule.
func (g *Game) accepting() bool {
	return !(g.sched.IsAnimating() && g.sched.Pending() > g.cfg.inputBacklog)
}

// HandleKey translates a key press against the camera and queues the
// resulting move. It returns false for unbound keys and for input dropped
// because too many moves are waiting.
func (g *Game) HandleKey(key string, cam Camera) (Move, bool) {
	if !g.accepting() {
		return Move{}, false
	}
	m, ok := g.translator.TranslateKey(key, Resolve(cam))
	if !ok {
		return Move{}, false
	}
	return g.enqueue(m), true
}

// HandleDrag translates a drag that started on the cubie at pos.
func (g *Game) HandleDrag(pos Vec3, dx, dy float64, cam Camera) (Move, bool) {
	if !g.accepting() {
		return Move{}, false
	}
	m, ok := g.translator.TranslateDrag(pos, dx, dy, Resolve(cam))
	if !ok {
		return Move{}, false
	}
	return g.enqueue(m), true
}

// Enqueue queues an explicit move at the game's move duration, bypassing
// the input backlog rule.
func (g *Game) Enqueue(m Move) Move {
	return g.enqueue(m)
}

func (g *Game) enqueue(m Move) Move {
	m.Duration = g.cfg.moveDuration
	g.sched.Enqueue(m)
	return m
}

// Tick advances the animation clock and returns the number of moves that
// completed.
func (g *Game) Tick(dt time.Duration) int {
	return g.sched.Advance(dt)
}

// Elapsed returns the solve time so far, or the final time once solved.
func (g *Game) Elapsed() time.Duration {
	if g.running {
		return g.cfg.clock().Sub(g.startedAt)
	}
	return g.final
}

// CheckSolved runs the win check: the timer must be running on a
// scrambled puzzle for more than a second and the puzzle must be solved.
// A win stops the timer and fires OnSolved once. It runs automatically
// each time the queue settles.
func (g *Game) CheckSolved() bool {
	if !g.running || !g.scrambled || g.Elapsed() <= minSolveTime {
		return false
	}
	if !IsSolved(g.puzzle) {
		return false
	}

	g.stopTimer()
	g.scrambled = false
	g.log.Info("puzzle solved", "size", g.size, "elapsed", g.final)
	if g.onSolved != nil {
		g.onSolved(g.final)
	}
	return true
}

// DebugWin stops the timer and reports a win with DebugWinTime.
func (g *Game) DebugWin() time.Duration {
	g.stopTimer()
	g.scrambled = false
	g.final = DebugWinTime
	g.log.Debug("debug win")
	if g.onSolved != nil {
		g.onSolved(g.final)
	}
	return g.final
}

func (g *Game) moveApplied(m Move, affected []int) {
	g.log.Debug("move applied", "move", m.String(), "cubies", len(affected))
	if g.onMoveApplied != nil {
		g.onMoveApplied(m, affected)
	}
}

func (g *Game) settled() {
	if g.scrambling {
		g.scrambling = false
		g.scrambled = true
		g.startTimer()
	}
	if g.onSettled != nil {
		g.onSettled()
	}
	g.CheckSolved()
}

func (g *Game) startTimer() {
	if g.running {
		return
	}
	g.startedAt = g.cfg.clock()
	g.running = true
	g.log.Debug("timer started")
	if g.onTimerStarted != nil {
		g.onTimerStarted()
	}
}

func (g *Game) stopTimer() {
	if g.running {
		g.final = g.cfg.clock().Sub(g.startedAt)
	}
	g.running = false
}

// FormatElapsed formats a solve time as "MM:SS.cc". Hours roll into the
// minutes and the value saturates at 99:59.99, so formatted times sort
// in time order.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := int64(d / (10 * time.Millisecond))
	if limit := int64(99*6000 + 5999); cs > limit {
		cs = limit
	}
	return fmt.Sprintf("%02d:%02d.%02d", cs/6000, (cs/100)%60, cs%100)
}
