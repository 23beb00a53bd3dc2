package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/huh"
	"github.com/snapllm/arena/internal/arena"
	"github.com/snapllm/arena/internal/models"
	"github.com/snapllm/arena/internal/projectconfig"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	compareModels     []string
	compareCategory   string
	compareWinner     string
	comparePromptFile string
	compareShowFull   bool
)

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <prompt>",
		Short: "Run one comparison round and vote for the best answer",
		Long: `Send a prompt to 2-4 models simultaneously, wait for every answer to
settle, and vote for the winner. The vote updates the durable ELO ratings and
appends the round to history.

Models that fail to generate stay in the round but cannot win and do not
count as losers. Interrupting the command abandons the round: nothing is
recorded and ratings are untouched.`,
		Example: `  # Compare two models on one prompt
  arena compare "Explain TCP slow start" --model llama3 --model mistral

  # Tag the round with a category and vote non-interactively
  arena compare "Fix this segfault" --model llama3 --model phi3 \
      --category coding --winner phi3

  # Read the prompt from a file
  arena compare --prompt-file ./prompts/haiku.txt --model llama3 --model mistral`,
		Args: cobra.MaximumNArgs(1),
		RunE: compareCommandE,
	}

	cmd.Flags().StringArrayVarP(&compareModels, "model", "m", nil, "Model to query (repeat 2-4 times)")
	cmd.Flags().StringVarP(&compareCategory, "category", "c", "", "Free-form category label for this round")
	cmd.Flags().StringVar(&compareWinner, "winner", "", "Vote for this model id without prompting")
	cmd.Flags().StringVarP(&comparePromptFile, "prompt-file", "p", "", "Read the prompt from a file")
	cmd.Flags().BoolVar(&compareShowFull, "full", false, "Print full responses instead of a preview")

	return cmd
}

func compareCommandE(cmd *cobra.Command, args []string) error {
	prompt, err := resolvePrompt(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	modelIDs := compareModels
	if len(modelIDs) == 0 {
		modelIDs = cfg.Defaults.Models
	}
	if len(modelIDs) == 0 {
		return fmt.Errorf("no models selected: pass --model or set defaults.models in %s", projectconfig.ConfigFileName)
	}

	category := compareCategory
	if category == "" {
		category = cfg.Defaults.Category
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newArena(cfg, arena.WithListener(printProgress))

	round, err := a.RunRound(ctx, prompt, modelIDs, cfg.Generation)
	if errors.Is(err, arena.ErrAllModelsFailed) {
		printRoundResults(round)
		return &RoundFailedError{Message: "every model call failed; nothing to vote on"}
	}
	if err != nil {
		return err
	}
	round.Category = category

	printRoundResults(round)

	winner, err := resolveWinner(round)
	if err != nil {
		return err
	}
	if winner == nil {
		a.Abandon(round, "operator skipped the vote")
		fmt.Println("Round abandoned; ratings unchanged.")
		return nil
	}

	deltas, err := a.CastVote(round, winner.ID)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Winner: %s\n\n", winner.ModelID)
	var rows [][]string
	for _, d := range deltas {
		rows = append(rows, []string{
			d.ModelID,
			fmt.Sprintf("%d", d.Before),
			fmt.Sprintf("%d", d.After),
			fmt.Sprintf("%+d", d.Change),
		})
	}
	fmt.Print(renderTable([]string{"MODEL", "BEFORE", "AFTER", "CHANGE"}, rows))
	return nil
}

func resolvePrompt(args []string) (string, error) {
	if comparePromptFile != "" {
		data, err := os.ReadFile(comparePromptFile)
		if err != nil {
			return "", fmt.Errorf("reading prompt file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	return "", fmt.Errorf("a prompt is required (argument or --prompt-file)")
}

// resolveWinner picks the winning result: from --winner, or interactively.
// A nil result with nil error means the operator skipped the vote.
func resolveWinner(round *models.ComparisonRound) (*models.ComparisonResult, error) {
	if compareWinner != "" {
		res := round.ResultByModel(compareWinner)
		if res == nil {
			return nil, fmt.Errorf("--winner %q is not part of this round", compareWinner)
		}
		if res.Errored() {
			return nil, fmt.Errorf("--winner %q errored during generation and cannot win", compareWinner)
		}
		return res, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal; vote with --winner <model>")
	}

	const skip = "(skip - abandon this round)"
	options := []huh.Option[string]{}
	for _, res := range round.EligibleWinners() {
		label := fmt.Sprintf("%s  (%dms)", res.ModelID, res.LatencyMs)
		options = append(options, huh.NewOption(label, res.ID))
	}
	options = append(options, huh.NewOption(skip, ""))

	var picked string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which answer wins?").
				Options(options...).
				Value(&picked),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}
	if picked == "" {
		return nil, nil
	}
	return round.Result(picked), nil
}

func printProgress(e arena.ProgressEvent) {
	switch e.EventType {
	case arena.EventResultSettled:
		if e.Err != nil {
			fmt.Printf("  %s failed: %v\n", e.ModelID, e.Err)
		} else {
			fmt.Printf("  %s answered\n", e.ModelID)
		}
	}
}

func printRoundResults(round *models.ComparisonRound) {
	fmt.Println()
	for _, res := range round.Results {
		fmt.Printf("--- %s (%dms", res.ModelID, res.LatencyMs)
		if res.TokensPerSecond > 0 {
			fmt.Printf(", %.1f tok/s", res.TokensPerSecond)
		}
		fmt.Print(")\n")
		if res.Errored() {
			fmt.Printf("    error: %s\n", res.Error)
			continue
		}
		if compareShowFull {
			fmt.Println(res.Response)
		} else {
			fmt.Printf("    %s\n", truncate(res.Response, 100))
		}
	}
}
