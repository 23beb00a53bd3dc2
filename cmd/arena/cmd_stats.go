package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/snapllm/arena/internal/models"
	"github.com/spf13/cobra"
)

var statsFormat string

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [model-id...]",
		Short: "Show per-model performance statistics",
		Long: `Show cumulative statistics derived from the round history: win/loss
record, win rate, average latency, average throughput, average response
length, and the current ELO rating. With model ids as arguments, only those
models are shown.`,
		RunE: statsCommandE,
	}

	cmd.Flags().StringVarP(&statsFormat, "format", "f", "table", "Output format (table or json)")

	return cmd
}

func statsCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a := newArena(cfg)
	allStats, _ := a.Snapshot()

	selected := allStats
	if len(args) > 0 {
		selected = nil
		for _, id := range args {
			found := false
			for _, s := range allStats {
				if s.ModelID == id {
					selected = append(selected, s)
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("model %q has no recorded rounds", id)
			}
		}
	}

	switch statsFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(selected)
	case "table":
		if len(selected) == 0 {
			fmt.Println("No rounds recorded yet. Run 'arena compare' to get started.")
			return nil
		}
		printStatsTable(selected)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or json)", statsFormat)
	}
}

func printStatsTable(stats []models.ModelStats) {
	var rows [][]string
	for _, s := range stats {
		rows = append(rows, []string{
			truncate(s.ModelName, 32),
			fmt.Sprintf("%d", s.EloRating),
			fmt.Sprintf("%d-%d", s.Wins, s.Losses),
			fmt.Sprintf("%d", s.Total),
			formatWinRate(s.WinRate),
			fmt.Sprintf("%.0fms", s.AvgLatency),
			fmt.Sprintf("%.1f", s.AvgTokensPerSec),
			fmt.Sprintf("%.0f", s.AvgResponseLength),
		})
	}
	fmt.Print(renderTable(
		[]string{"MODEL", "RATING", "W-L", "ROUNDS", "WIN RATE", "AVG LATENCY", "AVG TOK/S", "AVG CHARS"},
		rows))
}
