package cubetwist

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Add(d time.Duration) { c.now = c.now.Add(d) }

func newTestGame(t *testing.T, size int, opts ...Option) (*Game, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{
		WithClock(clock.Now),
		WithRand(rand.New(rand.NewPCG(42, 1))),
	}, opts...)
	g, err := NewGame(size, opts...)
	require.NoError(t, err)
	return g, clock
}

func TestNewGameRejectsSize(t *testing.T) {
	_, err := NewGame(1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestNewGameRejectsLayout(t *testing.T) {
	_, err := NewGame(3, WithKeyLayout(3, KeyLayout{Columns: []string{"q"}}))
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestScrambleStartsTimerOnSettle(t *testing.T) {
	g, _ := newTestGame(t, 3)
	timerStarts := 0
	g.OnTimerStarted(func() { timerStarts++ })

	moves, err := g.Scramble()
	require.NoError(t, err)
	require.Len(t, moves, 35)
	for _, m := range moves {
		assert.Equal(t, ScrambleDuration, m.Duration)
		assert.Contains(t, LatticeCoords(3), m.Slice)
	}

	assert.True(t, g.Scrambling())
	assert.False(t, g.Running())

	_, err = g.Scramble()
	assert.ErrorIs(t, err, ErrBusy)

	assert.Equal(t, 35, g.Tick(35*ScrambleDuration))
	assert.False(t, g.Scrambling())
	assert.True(t, g.Scrambled())
	assert.True(t, g.Running())
	assert.Equal(t, 1, timerStarts)
}

func TestScrambleLength(t *testing.T) {
	for size, want := range map[int]int{2: 30, 3: 35, 4: 40} {
		g, _ := newTestGame(t, size)
		assert.Equal(t, want, g.ScrambleLength())
	}

	g, _ := newTestGame(t, 3, WithScrambleLength(3))
	moves, err := g.Scramble()
	require.NoError(t, err)
	assert.Len(t, moves, 3)
}

// solveScramble queues the inverse of moves and plays them out.
func solveScramble(g *Game, moves []Move) {
	for i := len(moves) - 1; i >= 0; i-- {
		g.Enqueue(moves[i].Inverse())
	}
	g.Tick(time.Hour)
}

func TestWinDetected(t *testing.T) {
	g, clock := newTestGame(t, 3)
	var solvedIn []time.Duration
	g.OnSolved(func(d time.Duration) { solvedIn = append(solvedIn, d) })

	moves, err := g.Scramble()
	require.NoError(t, err)
	g.Tick(time.Minute)
	require.True(t, g.Running())

	clock.Add(42 * time.Second)
	solveScramble(g, moves)

	require.Equal(t, []time.Duration{42 * time.Second}, solvedIn)
	assert.False(t, g.Running())
	assert.False(t, g.Scrambled())
	assert.Equal(t, 42*time.Second, g.Elapsed())

	// Solving again without a new scramble does not fire twice.
	assert.False(t, g.CheckSolved())
	assert.Len(t, solvedIn, 1)
}

func TestWinIgnoredInFirstSecond(t *testing.T) {
	g, clock := newTestGame(t, 2)
	solved := 0
	g.OnSolved(func(time.Duration) { solved++ })

	moves, err := g.Scramble()
	require.NoError(t, err)
	g.Tick(time.Minute)

	clock.Add(500 * time.Millisecond)
	solveScramble(g, moves)
	assert.Zero(t, solved)
	assert.True(t, g.Running())

	clock.Add(time.Second)
	assert.True(t, g.CheckSolved())
	assert.Equal(t, 1, solved)
}

func TestWinNeedsScramble(t *testing.T) {
	g, clock := newTestGame(t, 3)
	solved := 0
	g.OnSolved(func(time.Duration) { solved++ })

	g.Enqueue(NewMove(AxisX, 1, CCW))
	g.Enqueue(NewMove(AxisX, 1, CW))
	clock.Add(time.Minute)
	g.Tick(time.Minute)

	assert.Zero(t, solved)
	assert.False(t, g.Running())
}

func TestInputBacklog(t *testing.T) {
	g, _ := newTestGame(t, 3)
	cam := FixedCamera{R: V3(1, 0, 0), U: V3(0, 1, 0)}

	for i := 0; i < 4; i++ {
		_, ok := g.HandleKey("q", cam)
		require.True(t, ok, "key %d", i)
	}
	assert.Equal(t, 3, g.Scheduler().Pending())

	_, ok := g.HandleKey("q", cam)
	assert.False(t, ok, "input beyond the backlog is dropped")
	_, ok = g.HandleDrag(V3(1, 1, 1), 50, 0, cam)
	assert.False(t, ok)

	g.Tick(time.Minute)
	m, ok := g.HandleDrag(V3(1, 1, 1), 50, 0, cam)
	require.True(t, ok)
	assert.Equal(t, AxisX, m.Axis)
}

func TestHandleKey(t *testing.T) {
	g, _ := newTestGame(t, 4, WithMoveDuration(100*time.Millisecond))
	cam := FixedCamera{R: V3(1, 0, 0), U: V3(0, 1, 0)}

	m, ok := g.HandleKey("R", cam)
	require.True(t, ok)
	assert.Equal(t, Move{Axis: AxisX, Slice: 1.5, Direction: 1, Duration: 100 * time.Millisecond}, m)

	_, ok = g.HandleKey("x", cam)
	assert.False(t, ok)

	applied := 0
	g.OnMoveApplied(func(Move, []int) { applied++ })
	assert.Equal(t, 1, g.Tick(100*time.Millisecond))
	assert.Equal(t, 1, applied)
}

func TestSetSizeAndReset(t *testing.T) {
	g, _ := newTestGame(t, 3)
	var resets []int
	g.OnReset(func(size int) { resets = append(resets, size) })

	require.NoError(t, g.SetSize(4))
	assert.Equal(t, 4, g.Size())
	assert.Equal(t, 64, g.Puzzle().Len())
	assert.Equal(t, 4, g.Translator().Size())

	assert.ErrorIs(t, g.SetSize(9), ErrInvalidSize)
	assert.Equal(t, 4, g.Size())

	g.Enqueue(NewMove(AxisX, 1.5, CCW))
	g.Reset()
	assert.False(t, g.Scheduler().IsAnimating())
	assert.True(t, IsSolved(g.Puzzle()))
	assert.Equal(t, []int{4, 4}, resets)
}

func TestCustomLayoutPerSize(t *testing.T) {
	l := KeyLayout{Columns: []string{"j", "k"}, Rows: []string{"n", "m"}}
	g, _ := newTestGame(t, 2, WithKeyLayout(2, l))
	cam := FixedCamera{R: V3(1, 0, 0), U: V3(0, 1, 0)}

	_, ok := g.HandleKey("q", cam)
	assert.False(t, ok)
	_, ok = g.HandleKey("k", cam)
	assert.True(t, ok)

	require.NoError(t, g.SetSize(3))
	_, ok = g.HandleKey("q", cam)
	assert.True(t, ok, "other sizes keep the default layout")
}

func TestDebugWin(t *testing.T) {
	g, _ := newTestGame(t, 3)
	var got time.Duration
	g.OnSolved(func(d time.Duration) { got = d })

	assert.Equal(t, DebugWinTime, g.DebugWin())
	assert.Equal(t, DebugWinTime, got)
	assert.Equal(t, "00:59.99", FormatElapsed(got))
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00.00"},
		{-time.Second, "00:00.00"},
		{1234 * time.Millisecond, "00:01.23"},
		{61*time.Second + 999*time.Millisecond, "01:01.99"},
		{time.Hour + 2*time.Minute + 3*time.Second, "62:03.00"},
		{200 * time.Minute, "99:59.99"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.d), "%v", tt.d)
	}
}

func TestFormatElapsedSortsInTimeOrder(t *testing.T) {
	times := []time.Duration{
		9 * time.Second,
		59 * time.Second,
		61 * time.Second,
		10 * time.Minute,
	}
	for i := 1; i < len(times); i++ {
		assert.Less(t, FormatElapsed(times[i-1]), FormatElapsed(times[i]))
	}
}

func TestMarkScrambled(t *testing.T) {
	g, clock := newTestGame(t, 3)
	var solvedIn time.Duration
	g.OnSolved(func(d time.Duration) { solvedIn = d })

	assert.False(t, g.MarkScrambled(), "solved puzzle")

	turn := NewMove(AxisZ, 1, CW)
	g.Enqueue(turn)
	assert.False(t, g.MarkScrambled(), "still animating")
	g.Tick(time.Second)

	require.True(t, g.MarkScrambled())
	assert.True(t, g.Running())
	assert.True(t, g.Scrambled())

	clock.Add(5 * time.Second)
	g.Enqueue(turn.Inverse())
	g.Tick(time.Second)
	assert.Equal(t, 5*time.Second, solvedIn)
}
