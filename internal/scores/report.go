// Package scores aggregates stored games for reporting.
package scores

import "github.com/verte-zerg/tuimath/internal/model"

// Report summarizes stored games after filters are applied.
type Report struct {
	Games           int
	Best            int
	Last            int
	HasLast         bool
	AvgScore        float64
	RoundsCompleted int
	RoundsPlayed    int
	Scores          []float64
}

// BuildReport aggregates game history, keeping only the most recent
// cfg.Last games when the window is set. Scores stay chronological for
// plotting.
func BuildReport(games []model.GameAggregate, cfg model.ScoresConfig) Report {
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}
	r := Report{Games: len(games)}
	if len(games) == 0 {
		return r
	}
	total := 0
	for _, g := range games {
		if g.Score > r.Best {
			r.Best = g.Score
		}
		total += g.Score
		r.RoundsCompleted += g.RoundsCompleted
		r.RoundsPlayed += g.RoundsPlayed
		r.Scores = append(r.Scores, float64(g.Score))
	}
	r.AvgScore = float64(total) / float64(len(games))
	r.Last = games[len(games)-1].Score
	r.HasLast = true
	return r
}

// CompletionRate returns the share of played rounds that were completed.
func CompletionRate(completed, played int) float64 {
	if played <= 0 {
		return 0
	}
	return float64(completed) / float64(played)
}
