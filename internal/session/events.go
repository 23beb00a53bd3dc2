package session

import "time"

// EventType identifies the kind of arena session event.
type EventType string

const (
	EventRoundStart     EventType = "round_start"
	EventResultReceived EventType = "result_received"
	EventVoteCast       EventType = "vote_cast"
	EventRoundAbandoned EventType = "round_abandoned"
	EventWarning        EventType = "warning"
)

// Event is a single timestamped entry in a session log.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Data:      data,
	}
}

// RoundStartData returns event data for a round start.
func RoundStartData(roundID, prompt string, modelIDs []string) map[string]any {
	return map[string]any{
		"round_id":    roundID,
		"prompt":      prompt,
		"models":      modelIDs,
		"model_count": len(modelIDs),
	}
}

// ResultReceivedData returns event data for one settled model call.
func ResultReceivedData(roundID, modelID string, latencyMs int64, errMsg string) map[string]any {
	data := map[string]any{
		"round_id":   roundID,
		"model":      modelID,
		"latency_ms": latencyMs,
	}
	if errMsg != "" {
		data["error"] = errMsg
	}
	return data
}

// VoteCastData returns event data for a decided round.
func VoteCastData(roundID, winnerModelID string, ratingChanges map[string]int) map[string]any {
	return map[string]any{
		"round_id":       roundID,
		"winner":         winnerModelID,
		"rating_changes": ratingChanges,
	}
}

// RoundAbandonedData returns event data for a cancelled round.
func RoundAbandonedData(roundID, reason string) map[string]any {
	return map[string]any{
		"round_id": roundID,
		"reason":   reason,
	}
}
