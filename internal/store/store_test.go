package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/snapllm/arena/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingRecordsAreEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.Empty(t, s.LoadRatings())
	assert.Empty(t, s.LoadHistory())
}

func TestRatingsRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	table := models.RatingTable{"llama3": 1516, "mistral": 1484}

	require.NoError(t, s.SaveRatings(table))

	loaded := s.LoadRatings()
	assert.Equal(t, table, loaded)
}

func TestHistoryRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	round := models.ComparisonRound{
		ID:     "round-1",
		Prompt: "write a haiku about latency",
		Results: []models.ComparisonResult{
			{
				ID:              "r1",
				ModelID:         "llama3",
				ModelName:       "llama3",
				Response:        "packets in the night",
				LatencyMs:       812,
				TokensPerSecond: 41.5,
				TotalTokens:     17,
				CharacterCount:  19,
				WordCount:       4,
				SentenceCount:   1,
				Vote:            models.VoteWinner,
			},
			{
				ID:        "r2",
				ModelID:   "mistral",
				ModelName: "mistral",
				LatencyMs: 95,
				Vote:      models.VoteLoser,
			},
		},
		Timestamp: time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC),
		WinnerID:  "r1",
		Category:  "creative",
		State:     models.StateDecided,
	}

	require.NoError(t, s.AppendRound(round))

	history := s.LoadHistory()
	require.Len(t, history, 1)
	assert.Equal(t, round, history[0])
}

func TestAppendPreservesOrder(t *testing.T) {
	s := New(t.TempDir())

	for _, id := range []string{"first", "second", "third"} {
		require.NoError(t, s.AppendRound(models.ComparisonRound{ID: id, State: models.StateDecided}))
	}

	history := s.LoadHistory()
	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].ID)
	assert.Equal(t, "second", history[1].ID)
	assert.Equal(t, "third", history[2].ID)
}

func TestCorruptRecordLoadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ratings.json"), []byte("{not json"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history.json"), []byte("[[["), 0644))

	s := New(dir)

	assert.Empty(t, s.LoadRatings())
	assert.Empty(t, s.LoadHistory())
}

func TestTypeMismatchRecordLoadsAsEmpty(t *testing.T) {
	// Valid JSON with wrong types decodes partially before failing; none of
	// the partial data may survive the load.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ratings.json"),
		[]byte(`{"a": "not-an-int", "b": 1520}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history.json"),
		[]byte(`[{"id": 123, "prompt": "p"}]`), 0644))

	s := New(dir)

	table := s.LoadRatings()
	assert.Empty(t, table)
	assert.NotContains(t, table, "b")
	assert.Empty(t, s.LoadHistory())
}

func TestCorruptRatingsNotRepersistedOnSave(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ratings.json"),
		[]byte(`{"a": "not-an-int", "b": 1520}`), 0644))

	s := New(dir)
	table := s.LoadRatings()
	table["c"] = 1532
	require.NoError(t, s.SaveRatings(table))

	reloaded := s.LoadRatings()
	assert.Equal(t, models.RatingTable{"c": 1532}, reloaded)
}

func TestCorruptHistoryRecoversOnNextAppend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history.json"), []byte("garbage"), 0644))

	s := New(dir)
	require.NoError(t, s.AppendRound(models.ComparisonRound{ID: "fresh", State: models.StateDecided}))

	history := s.LoadHistory()
	require.Len(t, history, 1)
	assert.Equal(t, "fresh", history[0].ID)
}

func TestReset(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.SaveRatings(models.RatingTable{"a": 1516}))
	require.NoError(t, s.AppendRound(models.ComparisonRound{ID: "r"}))

	require.NoError(t, s.Reset(true, false))
	assert.Empty(t, s.LoadRatings())
	assert.Len(t, s.LoadHistory(), 1)

	require.NoError(t, s.Reset(false, true))
	assert.Empty(t, s.LoadHistory())

	// Resetting already-missing records is fine.
	require.NoError(t, s.Reset(true, true))
}
