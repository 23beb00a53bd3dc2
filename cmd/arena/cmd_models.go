package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models available on the completion server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			a := newArena(cfg)
			ids, err := a.Models(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing models from %s: %w", cfg.Server.URL, err)
			}

			if len(ids) == 0 {
				fmt.Println("The server reported no models.")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}
