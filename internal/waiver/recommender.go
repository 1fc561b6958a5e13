// Package waiver turns scored free agents into a ranked pickup list.
package waiver

import (
	"sort"

	"waiverwire/internal/models"
	"waiverwire/internal/scoring"
)

// DefaultTopN bounds the recommendation list when the caller does not.
const DefaultTopN = 15

// Rank scores every candidate, attaches the roster's need tier for the
// candidate's position, and returns the top recommendations ordered by need
// severity, then score, then name. Pure given its inputs: identical calls
// produce identical output.
func Rank(candidates []models.PlayerRecord, scorer *scoring.Scorer, needs map[string]models.NeedTier, position string, topN int) []models.Recommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}

	recs := make([]models.Recommendation, 0, len(candidates))
	for _, player := range candidates {
		if position != "" && !player.EligibleAt(position) {
			continue
		}

		score, perf := scorer.Score(player)
		recs = append(recs, models.Recommendation{
			Player:      player,
			Score:       score,
			Need:        needs[player.Position],
			SeasonAvg:   perf.SeasonAvg,
			RecentAvg:   perf.RecentAvg,
			Projected:   perf.Projected,
			Trend:       perf.Trend,
			GamesPlayed: perf.GamesPlayed,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Need != recs[j].Need {
			return recs[i].Need > recs[j].Need
		}
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Player.Name < recs[j].Player.Name
	})

	if len(recs) > topN {
		recs = recs[:topN]
	}
	return recs
}
