package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote records how a result fared in its round.
type Vote string

const (
	VoteWinner Vote = "winner"
	VoteLoser  Vote = "loser"
	VoteNone   Vote = "none"
)

// RoundState tracks a comparison round through its lifecycle.
type RoundState string

const (
	// StateCollecting means one or more model calls are still in flight.
	StateCollecting RoundState = "collecting"
	// StateAwaitingVote means every call has settled and the round is votable.
	StateAwaitingVote RoundState = "awaiting-vote"
	// StateDecided means the vote was cast and the round is recorded.
	StateDecided RoundState = "decided"
	// StateAbandoned means the round was cancelled before a vote; it is never
	// written to history and never affects ratings.
	StateAbandoned RoundState = "abandoned"
)

// ComparisonResult is one model's answer within a comparison round.
type ComparisonResult struct {
	ID        string `json:"id"`
	ModelID   string `json:"modelId"`
	ModelName string `json:"modelName"`
	Response  string `json:"response"`
	LatencyMs int64  `json:"latencyMs"`

	// Throughput metrics reported by the completion service, when available.
	TokensPerSecond float64 `json:"tokensPerSecond,omitempty"`
	TotalTokens     int     `json:"totalTokens,omitempty"`

	// Text-analysis metrics attached after a successful generation.
	CharacterCount int `json:"characterCount,omitempty"`
	WordCount      int `json:"wordCount,omitempty"`
	SentenceCount  int `json:"sentenceCount,omitempty"`

	Vote  Vote   `json:"vote"`
	Error string `json:"error,omitempty"`
}

// Errored reports whether the model call behind this result failed.
// Errored results cannot be voted winner and are never counted as losers.
func (r *ComparisonResult) Errored() bool {
	return r.Error != ""
}

// ComparisonRound is one prompt sent to 2-4 models, concluded by a single
// winner vote. A round is immutable once appended to history.
type ComparisonRound struct {
	ID        string             `json:"id"`
	Prompt    string             `json:"prompt"`
	Results   []ComparisonResult `json:"results"`
	Timestamp time.Time          `json:"timestamp"`
	WinnerID  string             `json:"winnerId,omitempty"`
	Category  string             `json:"category,omitempty"`
	State     RoundState         `json:"state"`
}

// NewRound creates a round in the collecting state with one pending result
// per model.
func NewRound(prompt string, modelIDs []string) *ComparisonRound {
	round := &ComparisonRound{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		Timestamp: time.Now().UTC(),
		State:     StateCollecting,
	}
	for _, id := range modelIDs {
		round.Results = append(round.Results, ComparisonResult{
			ID:        uuid.NewString(),
			ModelID:   id,
			ModelName: id,
			Vote:      VoteNone,
		})
	}
	return round
}

// Result returns the result with the given id, or nil.
func (c *ComparisonRound) Result(id string) *ComparisonResult {
	for i := range c.Results {
		if c.Results[i].ID == id {
			return &c.Results[i]
		}
	}
	return nil
}

// ResultByModel returns the result for the given model id, or nil.
func (c *ComparisonRound) ResultByModel(modelID string) *ComparisonResult {
	for i := range c.Results {
		if c.Results[i].ModelID == modelID {
			return &c.Results[i]
		}
	}
	return nil
}

// Winner returns the result voted winner, or nil if the round is undecided.
func (c *ComparisonRound) Winner() *ComparisonResult {
	for i := range c.Results {
		if c.Results[i].Vote == VoteWinner {
			return &c.Results[i]
		}
	}
	return nil
}

// EligibleWinners returns the results that may be voted winner, i.e. every
// result whose model call succeeded.
func (c *ComparisonRound) EligibleWinners() []*ComparisonResult {
	var eligible []*ComparisonResult
	for i := range c.Results {
		if !c.Results[i].Errored() {
			eligible = append(eligible, &c.Results[i])
		}
	}
	return eligible
}
