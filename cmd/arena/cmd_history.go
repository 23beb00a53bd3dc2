package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/snapllm/arena/internal/models"
	"github.com/snapllm/arena/internal/store"
	"github.com/spf13/cobra"
)

var (
	historyFormat string
	historyLimit  int
	historyOutput string
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded comparison rounds, newest first",
		RunE:  historyCommandE,
	}

	cmd.Flags().StringVarP(&historyFormat, "format", "f", "table", "Output format (table, json, or csv)")
	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum rounds to show (0 for all)")
	cmd.Flags().StringVarP(&historyOutput, "output", "o", "", "Write output to a file instead of stdout")

	return cmd
}

func historyCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	history := store.New(cfg.DataPath()).LoadHistory()

	// Newest first.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	if historyLimit > 0 && len(history) > historyLimit {
		history = history[:historyLimit]
	}

	out := os.Stdout
	if historyOutput != "" {
		f, err := os.Create(historyOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch historyFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	case "csv":
		return writeHistoryCSV(out, history)
	case "table":
		if len(history) == 0 {
			fmt.Fprintln(out, "No rounds recorded yet.")
			return nil
		}
		var rows [][]string
		for _, round := range history {
			winnerModel := ""
			if w := round.Winner(); w != nil {
				winnerModel = w.ModelID
			}
			rows = append(rows, []string{
				round.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(round.Prompt, 48),
				fmt.Sprintf("%d", len(round.Results)),
				winnerModel,
				round.Category,
			})
		}
		fmt.Fprint(out, renderTable([]string{"WHEN", "PROMPT", "MODELS", "WINNER", "CATEGORY"}, rows))
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table, json, or csv)", historyFormat)
	}
}

// writeHistoryCSV flattens history to one row per result.
func writeHistoryCSV(out *os.File, history []models.ComparisonRound) error {
	w := csv.NewWriter(out)
	header := []string{
		"roundId", "timestamp", "category", "prompt",
		"modelId", "vote", "latencyMs", "tokensPerSecond", "characterCount", "error",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, round := range history {
		for _, res := range round.Results {
			record := []string{
				round.ID,
				round.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
				round.Category,
				round.Prompt,
				res.ModelID,
				string(res.Vote),
				strconv.FormatInt(res.LatencyMs, 10),
				strconv.FormatFloat(res.TokensPerSecond, 'f', 2, 64),
				strconv.Itoa(res.CharacterCount),
				res.Error,
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
