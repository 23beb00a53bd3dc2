package models

// Trend describes where a model's rating sits relative to the base rating.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// ModelStats holds per-model cumulative statistics derived from the round
// history. It is recomputed on every read and never persisted.
type ModelStats struct {
	ModelID   string `json:"modelId"`
	ModelName string `json:"modelName"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	// Total counts every appearance: wins, losses, and unvoted results.
	Total int `json:"total"`
	// WinRate is wins/total*100, 0 when the model has no appearances.
	WinRate float64 `json:"winRate"`

	AvgLatency        float64 `json:"avgLatency"`
	AvgTokensPerSec   float64 `json:"avgTokensPerSec"`
	AvgResponseLength float64 `json:"avgResponseLength"`

	EloRating int `json:"eloRating"`
}

// LeaderboardEntry is one ranked row of the leaderboard, derived from
// ModelStats on every read.
type LeaderboardEntry struct {
	Rank      int     `json:"rank"`
	ModelID   string  `json:"modelId"`
	ModelName string  `json:"modelName"`
	EloRating int     `json:"eloRating"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"winRate"`
	Trend     Trend   `json:"trend"`
	// LastChange is the rating's distance from the base rating.
	LastChange int `json:"lastChange"`
}
