// Package rating implements the ELO-style rating engine behind the model
// leaderboard. Updates are pure functions over a RatingTable; callers own
// persistence timing.
package rating

import (
	"math"

	"github.com/snapllm/arena/internal/models"
)

// KFactor is the maximum rating points transferable in one pairwise update.
const KFactor = 32

// Delta is the rating movement of a single model from one round.
type Delta struct {
	ModelID string `json:"modelId"`
	Before  int    `json:"before"`
	After   int    `json:"after"`
	Change  int    `json:"change"`
}

// ApplyVote computes updated ratings for a decided round.
//
// Each non-errored losing result produces an independent pairwise update
// against the winner: the winner accumulates one gain per loser it beat,
// each computed from the pre-round ratings. A three-model round is therefore
// two separate pairwise matches, not a zero-sum three-way split; total rating
// mass is not conserved when rounds have more than two participants. This
// matches the observed leaderboard semantics and must not be "corrected"
// into a textbook multi-player variant.
//
// The input table is never mutated. If the round has no winner or no
// eligible loser, the ratings come back unchanged.
func ApplyVote(round *models.ComparisonRound, current models.RatingTable) models.RatingTable {
	updated := current.Clone()

	winner := round.Winner()
	if winner == nil {
		return updated
	}

	winnerRating := current.Get(winner.ModelID)

	for i := range round.Results {
		loser := &round.Results[i]
		if loser.Vote != models.VoteLoser || loser.Errored() {
			continue
		}

		loserRating := current.Get(loser.ModelID)

		expectedWinner := expectedScore(winnerRating, loserRating)
		expectedLoser := expectedScore(loserRating, winnerRating)

		gain := int(math.Round(KFactor * (1 - expectedWinner)))
		loss := int(math.Abs(math.Round(KFactor * (0 - expectedLoser))))

		updated[winner.ModelID] = updated.Get(winner.ModelID) + gain
		updated[loser.ModelID] = updated.Get(loser.ModelID) - loss
	}

	return updated
}

// Deltas reports the per-model rating movement between two tables for the
// models that participated in the round.
func Deltas(round *models.ComparisonRound, before, after models.RatingTable) []Delta {
	var deltas []Delta
	for _, res := range round.Results {
		b, a := before.Get(res.ModelID), after.Get(res.ModelID)
		deltas = append(deltas, Delta{
			ModelID: res.ModelID,
			Before:  b,
			After:   a,
			Change:  a - b,
		})
	}
	return deltas
}

// expectedScore is the logistic expected score of a player rated r against
// an opponent rated opp.
func expectedScore(r, opp int) float64 {
	return 1 / (1 + math.Pow(10, float64(opp-r)/400))
}
