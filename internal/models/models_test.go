package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingTableGetDefaultsToBase(t *testing.T) {
	table := RatingTable{"model-a": 1612}

	assert.Equal(t, 1612, table.Get("model-a"))
	assert.Equal(t, BaseRating, table.Get("never-seen"))
}

func TestRatingTableCloneIsIndependent(t *testing.T) {
	table := RatingTable{"model-a": 1500}
	clone := table.Clone()

	clone["model-a"] = 1532
	clone["model-b"] = 1484

	assert.Equal(t, 1500, table["model-a"])
	assert.NotContains(t, table, "model-b")
}

func TestNewRound(t *testing.T) {
	round := NewRound("why is the sky blue?", []string{"llama3", "mistral", "phi3"})

	require.Len(t, round.Results, 3)
	assert.NotEmpty(t, round.ID)
	assert.Equal(t, StateCollecting, round.State)
	assert.False(t, round.Timestamp.IsZero())

	seen := map[string]bool{}
	for _, res := range round.Results {
		assert.NotEmpty(t, res.ID)
		assert.False(t, seen[res.ID], "result ids must be unique")
		seen[res.ID] = true
		assert.Equal(t, VoteNone, res.Vote)
	}
	assert.Equal(t, "mistral", round.Results[1].ModelID)
}

func TestRoundLookups(t *testing.T) {
	round := NewRound("prompt", []string{"a", "b"})
	round.Results[0].Error = "connection refused"
	round.Results[1].Vote = VoteWinner

	assert.Equal(t, &round.Results[1], round.ResultByModel("b"))
	assert.Nil(t, round.ResultByModel("c"))
	assert.Equal(t, &round.Results[0], round.Result(round.Results[0].ID))
	assert.Nil(t, round.Result("nope"))

	require.NotNil(t, round.Winner())
	assert.Equal(t, "b", round.Winner().ModelID)

	eligible := round.EligibleWinners()
	require.Len(t, eligible, 1)
	assert.Equal(t, "b", eligible[0].ModelID)
}

func TestErrored(t *testing.T) {
	res := ComparisonResult{}
	assert.False(t, res.Errored())
	res.Error = "timeout"
	assert.True(t, res.Errored())
}
