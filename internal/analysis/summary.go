// Package analysis computes statistics over recorded games.
package analysis

import (
	"sort"
	"time"

	"github.com/SeamusWaldron/cubetwist"
	"github.com/SeamusWaldron/cubetwist/internal/storage"
)

// PauseThresholdMs is the gap between moves counted as a pause.
const PauseThresholdMs = 1500

// GameSummary contains statistics for the solving part of one game.
type GameSummary struct {
	GameID             string  `json:"game_id"`
	Size               int     `json:"size"`
	DurationMs         int64   `json:"duration_ms"`
	ScrambleMoves      int     `json:"scramble_moves"`
	TotalMoves         int     `json:"total_moves"`
	OptimizedMoves     int     `json:"optimized_moves"`
	Efficiency         float64 `json:"efficiency"`
	TPSOverall         float64 `json:"tps_overall"`
	LongestPauseMs     int64   `json:"longest_pause_ms"`
	PauseCountOver1500 int     `json:"pause_count_over_1500ms"`
	AvgMoveDurationMs  float64 `json:"avg_move_duration_ms"`
}

// Summarize builds the summary of a game from its recorded moves.
// Scramble moves are counted but excluded from the solving statistics.
func Summarize(game storage.Game, records []storage.MoveRecord) GameSummary {
	s := GameSummary{
		GameID:     game.GameID,
		Size:       game.Size,
		DurationMs: game.Duration().Milliseconds(),
	}

	var played []storage.MoveRecord
	for _, r := range records {
		if r.Source == storage.SourceScramble {
			s.ScrambleMoves++
			continue
		}
		played = append(played, r)
	}

	moves := make([]cubetwist.Move, len(played))
	for i, r := range played {
		moves[i] = r.Move
	}

	s.TotalMoves = len(played)
	s.OptimizedMoves = len(Simplify(moves))
	if s.TotalMoves > 0 {
		s.Efficiency = float64(s.OptimizedMoves) / float64(s.TotalMoves)
	}
	s.TPSOverall = CalculateTPS(len(played), s.DurationMs)
	s.LongestPauseMs = FindLongestPause(played)
	s.PauseCountOver1500 = CountPausesOver(played, PauseThresholdMs)
	s.AvgMoveDurationMs = CalculateAvgMoveDuration(played)
	return s
}

// Simplify cancels moves that undo each other and folds repeated turns of
// the same slice modulo four. Turns of parallel slices commute, so a run
// of moves on one axis is simplified as a whole.
func Simplify(moves []cubetwist.Move) []cubetwist.Move {
	var out []cubetwist.Move
	i := 0
	for i < len(moves) {
		j := i
		for j < len(moves) && moves[j].Axis == moves[i].Axis {
			j++
		}
		out = append(out, foldAxisRun(moves[i:j])...)
		i = j
	}

	// Folding can bring two runs on the same axis together.
	if len(out) < len(moves) {
		return Simplify(out)
	}
	return out
}

// foldAxisRun sums the quarter turns of each slice in a run of moves on
// one axis and emits the shortest equivalent turns.
func foldAxisRun(run []cubetwist.Move) []cubetwist.Move {
	turns := make(map[float64]int)
	var order []float64
	for _, m := range run {
		if _, seen := turns[m.Slice]; !seen {
			order = append(order, m.Slice)
		}
		turns[m.Slice] += m.Direction
	}
	sort.Float64s(order)

	var out []cubetwist.Move
	for _, slice := range order {
		n := ((turns[slice] % 4) + 4) % 4
		switch n {
		case 1:
			out = append(out, cubetwist.NewMove(run[0].Axis, slice, cubetwist.CCW))
		case 2:
			out = append(out,
				cubetwist.NewMove(run[0].Axis, slice, cubetwist.CCW),
				cubetwist.NewMove(run[0].Axis, slice, cubetwist.CCW))
		case 3:
			out = append(out, cubetwist.NewMove(run[0].Axis, slice, cubetwist.CW))
		}
	}
	return out
}

// CalculateTPS calculates turns per second.
func CalculateTPS(moves int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(moves) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration calculates the average time between moves.
func CalculateAvgMoveDuration(moves []storage.MoveRecord) float64 {
	if len(moves) < 2 {
		return 0
	}
	totalGap := moves[len(moves)-1].TsMs - moves[0].TsMs
	return float64(totalGap) / float64(len(moves)-1)
}

// FindLongestPause finds the longest gap between two moves.
func FindLongestPause(moves []storage.MoveRecord) int64 {
	var longest int64
	for i := 1; i < len(moves); i++ {
		if gap := moves[i].TsMs - moves[i-1].TsMs; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CountPausesOver counts gaps longer than thresholdMs.
func CountPausesOver(moves []storage.MoveRecord, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].TsMs-moves[i-1].TsMs > thresholdMs {
			count++
		}
	}
	return count
}

// TimeStats summarizes solve times of several games.
type TimeStats struct {
	Solves int           `json:"solves"`
	Best   time.Duration `json:"best"`
	Mean   time.Duration `json:"mean"`
	// Ao5 is the average of the last five solves without the best and the
	// worst. It is zero with fewer than five solves.
	Ao5 time.Duration `json:"ao5"`
}

// SolveTimes computes TimeStats over the solved games. games are expected
// newest first, as returned by storage.GameRepository.List.
func SolveTimes(games []storage.Game) TimeStats {
	var times []time.Duration
	for _, g := range games {
		if g.Solved && g.EndedAt != nil {
			times = append(times, g.Duration())
		}
	}

	st := TimeStats{Solves: len(times)}
	if len(times) == 0 {
		return st
	}

	var sum time.Duration
	st.Best = times[0]
	for _, t := range times {
		sum += t
		st.Best = min(st.Best, t)
	}
	st.Mean = sum / time.Duration(len(times))

	if len(times) >= 5 {
		last := append([]time.Duration(nil), times[:5]...)
		sort.Slice(last, func(i, j int) bool { return last[i] < last[j] })
		st.Ao5 = (last[1] + last[2] + last[3]) / 3
	}
	return st
}
