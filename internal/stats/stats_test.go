package stats

import (
	"testing"
	"time"

	"github.com/snapllm/arena/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(modelID string, vote models.Vote, latencyMs int64, tps float64, chars int) models.ComparisonResult {
	return models.ComparisonResult{
		ID:              modelID + "-result",
		ModelID:         modelID,
		ModelName:       modelID,
		LatencyMs:       latencyMs,
		TokensPerSecond: tps,
		CharacterCount:  chars,
		Vote:            vote,
	}
}

func round(results ...models.ComparisonResult) models.ComparisonRound {
	return models.ComparisonRound{
		ID:        "round",
		Prompt:    "prompt",
		Results:   results,
		Timestamp: time.Now().UTC(),
		State:     models.StateDecided,
	}
}

func TestComputeEmptyHistory(t *testing.T) {
	out := Compute(nil, models.RatingTable{})
	assert.Empty(t, out)
}

func TestComputeCountsAndAverages(t *testing.T) {
	history := []models.ComparisonRound{
		round(
			result("a", models.VoteWinner, 100, 40, 200),
			result("b", models.VoteLoser, 300, 20, 100),
		),
		round(
			result("a", models.VoteLoser, 200, 30, 100),
			result("b", models.VoteWinner, 100, 40, 300),
		),
	}
	ratings := models.RatingTable{"a": 1516, "b": 1484}

	out := Compute(history, ratings)
	require.Len(t, out, 2)

	a := out[0]
	assert.Equal(t, "a", a.ModelID)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, 2, a.Total)
	assert.InDelta(t, 50.0, a.WinRate, 0.0001)
	assert.InDelta(t, 150.0, a.AvgLatency, 0.0001)
	assert.InDelta(t, 35.0, a.AvgTokensPerSec, 0.0001)
	assert.InDelta(t, 150.0, a.AvgResponseLength, 0.0001)
	assert.Equal(t, 1516, a.EloRating)

	b := out[1]
	assert.Equal(t, 1484, b.EloRating)
	assert.InDelta(t, 200.0, b.AvgLatency, 0.0001)
}

func TestComputeDefaultsAbsentMetricsToZero(t *testing.T) {
	errored := result("a", models.VoteNone, 0, 0, 0)
	errored.Error = "timed out"

	history := []models.ComparisonRound{
		round(
			result("a", models.VoteWinner, 100, 40, 200),
			result("b", models.VoteLoser, 100, 10, 50),
		),
		round(
			errored,
			result("b", models.VoteWinner, 100, 10, 50),
		),
	}

	out := Compute(history, models.RatingTable{})
	require.Len(t, out, 2)

	a := out[0]
	assert.Equal(t, 2, a.Total)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 0, a.Losses)
	// The errored appearance drags the averages down via 0-valued samples.
	assert.InDelta(t, 50.0, a.AvgLatency, 0.0001)
	assert.InDelta(t, 20.0, a.AvgTokensPerSec, 0.0001)
	assert.InDelta(t, 100.0, a.AvgResponseLength, 0.0001)
}

func TestComputeUnseenModelKeepsBaseDefaults(t *testing.T) {
	out := Compute(nil, models.RatingTable{})
	for _, s := range out {
		assert.Equal(t, models.BaseRating, s.EloRating)
		assert.Zero(t, s.WinRate)
	}
}

func TestComputeInsertionOrdering(t *testing.T) {
	history := []models.ComparisonRound{
		round(
			result("zeta", models.VoteWinner, 1, 1, 1),
			result("alpha", models.VoteLoser, 1, 1, 1),
		),
		round(
			result("mike", models.VoteLoser, 1, 1, 1),
			result("alpha", models.VoteWinner, 1, 1, 1),
		),
	}

	out := Compute(history, models.RatingTable{})
	require.Len(t, out, 3)
	assert.Equal(t, "zeta", out[0].ModelID)
	assert.Equal(t, "alpha", out[1].ModelID)
	assert.Equal(t, "mike", out[2].ModelID)
}

func TestComputeIsIdempotent(t *testing.T) {
	history := []models.ComparisonRound{
		round(
			result("a", models.VoteWinner, 120, 33.5, 420),
			result("b", models.VoteLoser, 250, 18.25, 210),
		),
	}
	ratings := models.RatingTable{"a": 1516, "b": 1484}

	first := Compute(history, ratings)
	second := Compute(history, ratings)

	assert.Equal(t, first, second)
}
