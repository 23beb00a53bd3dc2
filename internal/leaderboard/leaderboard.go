// Package leaderboard turns aggregated model statistics into a ranked,
// trend-annotated leaderboard.
package leaderboard

import (
	"sort"

	"github.com/snapllm/arena/internal/models"
)

// Build ranks the given stats by rating, descending. The sort is stable, so
// ties keep the aggregator's first-seen ordering. Ranks are 1-based with no
// gaps; a single round already yields a fully ranked (if noisy) board.
func Build(stats []models.ModelStats) []models.LeaderboardEntry {
	ordered := make([]models.ModelStats, len(stats))
	copy(ordered, stats)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EloRating > ordered[j].EloRating
	})

	entries := make([]models.LeaderboardEntry, 0, len(ordered))
	for i, s := range ordered {
		entries = append(entries, models.LeaderboardEntry{
			Rank:       i + 1,
			ModelID:    s.ModelID,
			ModelName:  s.ModelName,
			EloRating:  s.EloRating,
			Wins:       s.Wins,
			Losses:     s.Losses,
			WinRate:    s.WinRate,
			Trend:      trend(s.EloRating),
			LastChange: s.EloRating - models.BaseRating,
		})
	}
	return entries
}

func trend(rating int) models.Trend {
	switch {
	case rating > models.BaseRating:
		return models.TrendUp
	case rating < models.BaseRating:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}
