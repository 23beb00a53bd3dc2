package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var leaderboardFormat string

func newLeaderboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the model leaderboard ranked by ELO rating",
		RunE:  leaderboardCommandE,
	}

	cmd.Flags().StringVarP(&leaderboardFormat, "format", "f", "table", "Output format (table or json)")

	return cmd
}

func leaderboardCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a := newArena(cfg)
	_, entries := a.Snapshot()

	switch leaderboardFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "table":
		if len(entries) == 0 {
			fmt.Println("No rounds recorded yet. Run 'arena compare' to get started.")
			return nil
		}
		var rows [][]string
		for _, e := range entries {
			rows = append(rows, []string{
				fmt.Sprintf("%d", e.Rank),
				truncate(e.ModelName, 32),
				fmt.Sprintf("%d", e.EloRating),
				fmt.Sprintf("%d", e.Wins),
				fmt.Sprintf("%d", e.Losses),
				formatWinRate(e.WinRate),
				trendGlyph(e),
			})
		}
		fmt.Print(renderTable([]string{"RANK", "MODEL", "RATING", "W", "L", "WIN RATE", "TREND"}, rows))
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or json)", leaderboardFormat)
	}
}
