package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubetwist"
	"github.com/SeamusWaldron/cubetwist/internal/storage"
)

var (
	r  = cubetwist.NewMove(cubetwist.AxisX, 1, cubetwist.CW)
	l  = cubetwist.NewMove(cubetwist.AxisX, -1, cubetwist.CCW)
	u  = cubetwist.NewMove(cubetwist.AxisY, 1, cubetwist.CW)
	rp = r.Inverse()
	up = u.Inverse()
)

func TestSimplifyCancelsInverses(t *testing.T) {
	assert.Empty(t, Simplify([]cubetwist.Move{r, rp}))
	assert.Empty(t, Simplify([]cubetwist.Move{r, u, up, rp}))
	assert.Empty(t, Simplify([]cubetwist.Move{r, r, r, r}))
}

func TestSimplifyFoldsTurns(t *testing.T) {
	out := Simplify([]cubetwist.Move{r, r, r})
	require.Len(t, out, 1)
	assert.Equal(t, cubetwist.CCW, out[0].Direction)

	// Parallel slices commute: R L R' leaves only L.
	out = Simplify([]cubetwist.Move{r, l, rp})
	require.Len(t, out, 1)
	assert.Equal(t, -1.0, out[0].Slice)
}

func TestSimplifyPreservesState(t *testing.T) {
	moves := []cubetwist.Move{r, u, u, u, up, rp, l, r, r, u}

	a := cubetwist.MustPuzzle(3)
	cubetwist.ApplyAll(a, moves)
	b := cubetwist.MustPuzzle(3)
	simplified := Simplify(moves)
	cubetwist.ApplyAll(b, simplified)

	assert.True(t, a.Equal(b))
	assert.Less(t, len(simplified), len(moves))
}

func records(ts ...int64) []storage.MoveRecord {
	out := make([]storage.MoveRecord, len(ts))
	for i, t := range ts {
		out[i] = storage.MoveRecord{MoveIndex: i, TsMs: t, Move: r, Source: storage.SourcePlayer}
	}
	return out
}

func TestPauses(t *testing.T) {
	recs := records(0, 200, 2000, 2100, 5000)
	assert.Equal(t, int64(2900), FindLongestPause(recs))
	assert.Equal(t, 2, CountPausesOver(recs, PauseThresholdMs))
	assert.InDelta(t, 1250.0, CalculateAvgMoveDuration(recs), 1e-9)
	assert.Zero(t, CalculateAvgMoveDuration(recs[:1]))
}

func TestCalculateTPS(t *testing.T) {
	assert.InDelta(t, 2.0, CalculateTPS(10, 5000), 1e-9)
	assert.Zero(t, CalculateTPS(10, 0))
}

func TestSummarize(t *testing.T) {
	ms := int64(4000)
	end := time.Now()
	game := storage.Game{GameID: "g1", Size: 3, DurationMs: &ms, EndedAt: &end, Solved: true}

	recs := []storage.MoveRecord{
		{TsMs: 0, Move: u, Source: storage.SourceScramble},
		{TsMs: 0, Move: r, Source: storage.SourceScramble},
		{TsMs: 500, Move: r, Source: storage.SourcePlayer},
		{TsMs: 800, Move: rp, Source: storage.SourcePlayer},
		{TsMs: 3000, Move: rp, Source: storage.SourcePlayer},
		{TsMs: 3500, Move: up, Source: storage.SourceSmartCube},
	}

	s := Summarize(game, recs)
	assert.Equal(t, 2, s.ScrambleMoves)
	assert.Equal(t, 4, s.TotalMoves)
	assert.Equal(t, 2, s.OptimizedMoves)
	assert.InDelta(t, 0.5, s.Efficiency, 1e-9)
	assert.InDelta(t, 1.0, s.TPSOverall, 1e-9)
	assert.Equal(t, int64(2200), s.LongestPauseMs)
	assert.Equal(t, 1, s.PauseCountOver1500)
}

func TestSolveTimes(t *testing.T) {
	end := time.Now()
	game := func(sec int64, solved bool) storage.Game {
		ms := sec * 1000
		return storage.Game{DurationMs: &ms, EndedAt: &end, Solved: solved}
	}

	assert.Equal(t, TimeStats{}, SolveTimes(nil))

	st := SolveTimes([]storage.Game{
		game(30, true), game(10, true), game(50, true), game(99, false),
		game(20, true), game(40, true), game(6, true),
	})
	assert.Equal(t, 6, st.Solves)
	assert.Equal(t, 6*time.Second, st.Best)
	assert.Equal(t, 26*time.Second, st.Mean)
	// Last five solves: 30 10 50 20 40, trimmed to 20 30 40.
	assert.Equal(t, 30*time.Second, st.Ao5)

	st = SolveTimes([]storage.Game{game(30, true)})
	assert.Zero(t, st.Ao5)
}

func TestMineNGrams(t *testing.T) {
	trigger := []cubetwist.Move{r, u, rp, up}
	game1 := append(append([]cubetwist.Move{}, trigger...), trigger...)
	game2 := append([]cubetwist.Move{l}, trigger...)

	report := MineNGrams([][]cubetwist.Move{game1, game2}, 4, 5, 3)

	fours := report.TopNGrams[4]
	require.NotEmpty(t, fours)
	assert.Equal(t, 3, fours[0].Count)
	assert.Equal(t, []string{r.String(), u.String(), rp.String(), up.String()}, fours[0].Sequence)

	// Sequences are mined separately, so no 5-gram repeats.
	assert.Empty(t, report.TopNGrams[5])
}

func TestMineNGramsShortInput(t *testing.T) {
	report := MineNGrams([][]cubetwist.Move{{r, u}}, 4, 6, 5)
	assert.Empty(t, report.TopNGrams)
}

func TestRollingHashMatchesFreshHash(t *testing.T) {
	a := NewRollingHash(3)
	for _, tok := range []uint16{1, 2, 3, 4, 5} {
		a.Roll(tok)
	}
	b := NewRollingHash(3)
	for _, tok := range []uint16{3, 4, 5} {
		b.Roll(tok)
	}
	assert.Equal(t, b.Hash(), a.Hash())
	assert.Equal(t, []uint16{3, 4, 5}, a.Window())
	assert.True(t, a.Ready())
}
