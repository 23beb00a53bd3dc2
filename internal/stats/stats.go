// Package stats derives per-model performance statistics from the round
// history. The computation is a full walk on every read; at console scale
// (hundreds to low thousands of rounds) this is cheaper than maintaining
// incremental counters, and it keeps the aggregator stateless.
package stats

import "github.com/snapllm/arena/internal/models"

// Compute walks the full history and returns one ModelStats record per
// model, ordered by first appearance. Ratings are read from the current
// table, so older rounds are always shown against today's rating.
//
// Compute is pure and idempotent: the same history and ratings always
// produce identical output.
func Compute(history []models.ComparisonRound, ratings models.RatingTable) []models.ModelStats {
	var out []models.ModelStats
	index := make(map[string]int)

	for _, round := range history {
		for _, res := range round.Results {
			i, seen := index[res.ModelID]
			if !seen {
				i = len(out)
				index[res.ModelID] = i
				out = append(out, models.ModelStats{
					ModelID:   res.ModelID,
					ModelName: res.ModelName,
					EloRating: ratings.Get(res.ModelID),
				})
			}

			s := &out[i]
			s.Total++
			switch res.Vote {
			case models.VoteWinner:
				s.Wins++
			case models.VoteLoser:
				s.Losses++
			}

			// Absent metrics contribute 0 to the running mean, so an
			// errored appearance still counts toward the average.
			n := float64(s.Total)
			s.AvgLatency = runningMean(s.AvgLatency, n, float64(res.LatencyMs))
			s.AvgTokensPerSec = runningMean(s.AvgTokensPerSec, n, res.TokensPerSecond)
			s.AvgResponseLength = runningMean(s.AvgResponseLength, n, float64(res.CharacterCount))
		}
	}

	// Final pass: win rates, and re-read ratings so they are fresh relative
	// to the moment of the read.
	for i := range out {
		s := &out[i]
		if s.Total > 0 {
			s.WinRate = float64(s.Wins) / float64(s.Total) * 100
		}
		s.EloRating = ratings.Get(s.ModelID)
	}

	return out
}

// runningMean folds value into an average over n samples, where n already
// includes the new sample.
func runningMean(oldAvg, n, value float64) float64 {
	return (oldAvg*(n-1) + value) / n
}
