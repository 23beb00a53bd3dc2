// Package arena orchestrates comparison rounds: fanning one prompt out to
// several models, collecting settled results, applying the vote to the
// rating table, and persisting the outcome.
package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/snapllm/arena/internal/completion"
	"github.com/snapllm/arena/internal/leaderboard"
	"github.com/snapllm/arena/internal/models"
	"github.com/snapllm/arena/internal/rating"
	"github.com/snapllm/arena/internal/session"
	"github.com/snapllm/arena/internal/stats"
	"github.com/snapllm/arena/internal/store"
	"github.com/snapllm/arena/internal/textmetrics"
)

const (
	// MinModels and MaxModels bound how many models one round may query.
	MinModels = 2
	MaxModels = 4
)

var (
	// ErrAllModelsFailed means no model produced a response, so the round
	// has nothing to vote on.
	ErrAllModelsFailed = errors.New("every model call failed")

	// ErrRoundNotVotable means the round is not in the awaiting-vote state.
	ErrRoundNotVotable = errors.New("round is not awaiting a vote")

	// ErrIneligibleWinner means the voted result errored during generation.
	ErrIneligibleWinner = errors.New("an errored result cannot be voted winner")
)

// EventType represents the type of progress event.
type EventType string

const (
	EventRoundStart    EventType = "round_start"
	EventResultSettled EventType = "result_settled"
	EventRoundReady    EventType = "round_ready"
	EventVoteApplied   EventType = "vote_applied"
	EventRoundDropped  EventType = "round_abandoned"
)

// ProgressEvent is a progress update emitted while a round advances.
type ProgressEvent struct {
	EventType EventType
	RoundID   string
	ModelID   string
	Err       error
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// Arena owns the stores and the completion client and drives rounds through
// their lifecycle. The rating, stats, and leaderboard computations stay pure;
// Arena decides when they run and when their inputs are persisted.
type Arena struct {
	store  *store.Store
	client completion.Client
	log    *session.Logger

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// Option configures an Arena.
type Option func(*Arena)

// WithSessionLog enables the JSONL session event log.
func WithSessionLog(l *session.Logger) Option {
	return func(a *Arena) {
		a.log = l
	}
}

// WithListener registers a progress listener.
func WithListener(l ProgressListener) Option {
	return func(a *Arena) {
		a.listeners = append(a.listeners, l)
	}
}

// New creates an Arena.
func New(st *store.Store, client completion.Client, opts ...Option) *Arena {
	a := &Arena{
		store:  st,
		client: client,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// OnProgress registers a progress listener.
func (a *Arena) OnProgress(l ProgressListener) {
	a.progressMu.Lock()
	defer a.progressMu.Unlock()
	a.listeners = append(a.listeners, l)
}

func (a *Arena) notify(event ProgressEvent) {
	a.progressMu.Lock()
	listeners := make([]ProgressListener, len(a.listeners))
	copy(listeners, a.listeners)
	a.progressMu.Unlock()

	for _, l := range listeners {
		l(event)
	}
}

// RunRound sends prompt to every model concurrently and waits for all calls
// to settle. The round reaches awaiting-vote as long as at least one call
// succeeded; individual failures are recorded on their results. If ctx is
// cancelled, the round is abandoned: late responses are dropped and nothing
// is persisted.
func (a *Arena) RunRound(ctx context.Context, prompt string, modelIDs []string, options map[string]any) (*models.ComparisonRound, error) {
	if len(modelIDs) < MinModels || len(modelIDs) > MaxModels {
		return nil, fmt.Errorf("a round needs %d-%d models, got %d", MinModels, MaxModels, len(modelIDs))
	}

	round := models.NewRound(prompt, modelIDs)
	a.notify(ProgressEvent{EventType: EventRoundStart, RoundID: round.ID})
	a.log.Append(session.NewEvent(session.EventRoundStart,
		session.RoundStartData(round.ID, prompt, modelIDs)))

	// Fan out one call per model and join on all of them; the round is not
	// a race. Goroutines record failures on their result instead of
	// returning them, so one failed model never cancels its siblings.
	g, gctx := errgroup.WithContext(ctx)
	for i := range round.Results {
		res := &round.Results[i]
		g.Go(func() error {
			a.generateInto(gctx, round, res, options)
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		a.abandon(round, "cancelled")
		return round, ctx.Err()
	}

	if len(round.EligibleWinners()) == 0 {
		a.abandon(round, "every model call failed")
		return round, ErrAllModelsFailed
	}

	round.State = models.StateAwaitingVote
	a.notify(ProgressEvent{EventType: EventRoundReady, RoundID: round.ID})
	return round, nil
}

// generateInto runs one model call and fills in the result, measuring
// wall-clock latency around the call.
func (a *Arena) generateInto(ctx context.Context, round *models.ComparisonRound, res *models.ComparisonResult, options map[string]any) {
	start := time.Now()
	resp, err := a.client.Generate(ctx, &completion.GenerateRequest{
		ModelID: res.ModelID,
		Prompt:  round.Prompt,
		Options: options,
	})
	res.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		res.Error = err.Error()
	} else {
		res.Response = resp.Text
		res.TokensPerSecond = resp.TokensPerSecond
		res.TotalTokens = resp.TotalTokens

		counts := textmetrics.Analyze(resp.Text)
		res.CharacterCount = counts.Characters
		res.WordCount = counts.Words
		res.SentenceCount = counts.Sentences
	}

	a.notify(ProgressEvent{
		EventType: EventResultSettled,
		RoundID:   round.ID,
		ModelID:   res.ModelID,
		Err:       err,
	})
	a.log.Append(session.NewEvent(session.EventResultReceived,
		session.ResultReceivedData(round.ID, res.ModelID, res.LatencyMs, res.Error)))
}

// CastVote marks the winner, applies the rating engine, and persists the
// updated ratings and the decided round. Persistence failures are warnings:
// the in-memory state remains the source of truth for the session.
func (a *Arena) CastVote(round *models.ComparisonRound, winnerResultID string) ([]rating.Delta, error) {
	if round.State != models.StateAwaitingVote {
		return nil, fmt.Errorf("%w (state %q)", ErrRoundNotVotable, round.State)
	}

	winner := round.Result(winnerResultID)
	if winner == nil {
		return nil, fmt.Errorf("no result with id %q in round %s", winnerResultID, round.ID)
	}
	if winner.Errored() {
		return nil, fmt.Errorf("%w: %s", ErrIneligibleWinner, winner.ModelID)
	}

	// Votes are recorded once, at the moment the round is decided, and the
	// round is immutable afterwards.
	for i := range round.Results {
		res := &round.Results[i]
		switch {
		case res.ID == winner.ID:
			res.Vote = models.VoteWinner
		case res.Errored():
			res.Vote = models.VoteNone
		default:
			res.Vote = models.VoteLoser
		}
	}
	round.WinnerID = winner.ID
	round.State = models.StateDecided

	before := a.store.LoadRatings()
	after := rating.ApplyVote(round, before)

	if err := a.store.SaveRatings(after); err != nil {
		a.warn("failed to persist ratings", err)
	}
	if err := a.store.AppendRound(*round); err != nil {
		a.warn("failed to append round to history", err)
	}

	deltas := rating.Deltas(round, before, after)

	changes := make(map[string]int, len(deltas))
	for _, d := range deltas {
		changes[d.ModelID] = d.Change
	}
	a.log.Append(session.NewEvent(session.EventVoteCast,
		session.VoteCastData(round.ID, winner.ModelID, changes)))
	a.notify(ProgressEvent{EventType: EventVoteApplied, RoundID: round.ID, ModelID: winner.ModelID})

	return deltas, nil
}

// Abandon drops an undecided round. Nothing is persisted and ratings are
// untouched.
func (a *Arena) Abandon(round *models.ComparisonRound, reason string) {
	if round.State == models.StateDecided || round.State == models.StateAbandoned {
		return
	}
	a.abandon(round, reason)
}

func (a *Arena) abandon(round *models.ComparisonRound, reason string) {
	round.State = models.StateAbandoned
	a.notify(ProgressEvent{EventType: EventRoundDropped, RoundID: round.ID})
	a.log.Append(session.NewEvent(session.EventRoundAbandoned,
		session.RoundAbandonedData(round.ID, reason)))
}

// Snapshot recomputes fresh statistics and the leaderboard from the latest
// persisted state. Safe to call arbitrarily often.
func (a *Arena) Snapshot() ([]models.ModelStats, []models.LeaderboardEntry) {
	history := a.store.LoadHistory()
	ratings := a.store.LoadRatings()
	modelStats := stats.Compute(history, ratings)
	return modelStats, leaderboard.Build(modelStats)
}

// Models lists the model ids available on the completion server.
func (a *Arena) Models(ctx context.Context) ([]string, error) {
	return a.client.ListModels(ctx)
}

func (a *Arena) warn(msg string, err error) {
	slog.Warn(msg, "error", err)
	a.log.Append(session.NewEvent(session.EventWarning, map[string]any{
		"message": msg,
		"error":   err.Error(),
	}))
}
