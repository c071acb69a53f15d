package cubetwist

import (
	"context"
	"sort"
	"strings"
)

// Ranking defaults.
const (
	MaxRankEntries    = 5
	DefaultPlayerName = "UNK"
)

// Score is one ranking entry. Time is the formatted solve time
// ("MM:SS.cc"), which sorts lexicographically in time order.
type Score struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

// ScoreStore persists the ranking.
type ScoreStore interface {
	// SaveScore records a result and returns the updated ranking.
	SaveScore(ctx context.Context, name, time string) ([]Score, error)
	// Rank returns the current ranking, best first.
	Rank(ctx context.Context) ([]Score, error)
}

// PlayerName returns name trimmed, or DefaultPlayerName if it is blank.
func PlayerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	return name
}

// RankScores sorts scores by time string and keeps the best
// MaxRankEntries. Equal times keep their input order.
func RankScores(scores []Score) []Score {
	out := make([]Score, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	if len(out) > MaxRankEntries {
		out = out[:MaxRankEntries]
	}
	return out
}
