package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/snapllm/arena/internal/store"
	"github.com/spf13/cobra"
)

var (
	resetRatings bool
	resetHistory bool
	resetForce   bool
)

func newResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete persisted ratings and/or history",
		Long: `Delete the persisted rating table, the round history, or both. With no
selection flags both are deleted. This cannot be undone.`,
		RunE: resetCommandE,
	}

	cmd.Flags().BoolVar(&resetRatings, "ratings", false, "Delete only the rating table")
	cmd.Flags().BoolVar(&resetHistory, "history", false, "Delete only the round history")
	cmd.Flags().BoolVar(&resetForce, "force", false, "Skip the confirmation prompt")

	return cmd
}

func resetCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ratings, history := resetRatings, resetHistory
	if !ratings && !history {
		ratings, history = true, true
	}

	what := "ratings and history"
	switch {
	case ratings && !history:
		what = "ratings"
	case history && !ratings:
		what = "history"
	}

	if !resetForce {
		var confirmed bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %s in %s?", what, cfg.DataPath())).
					Description("This cannot be undone.").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := store.New(cfg.DataPath()).Reset(ratings, history); err != nil {
		return err
	}
	fmt.Printf("Deleted %s.\n", what)
	return nil
}
