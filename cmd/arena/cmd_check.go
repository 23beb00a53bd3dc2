package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/snapllm/arena/internal/projectconfig"
	"github.com/snapllm/arena/internal/validation"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the project configuration file against its schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := findConfigFile()
			if err != nil {
				return err
			}

			problems, err := validation.ValidateConfigFile(path)
			if err != nil {
				return err
			}
			if len(problems) > 0 {
				for _, p := range problems {
					fmt.Fprintf(os.Stderr, "%s: %s\n", path, p)
				}
				return fmt.Errorf("%s has %d problem(s)", path, len(problems))
			}

			fmt.Printf("%s is valid.\n", path)
			return nil
		},
	}
}

// findConfigFile resolves the config file to validate: the --config flag, or
// the nearest .arena.yaml walking up from the working directory.
func findConfigFile() (string, error) {
	if configPath != "" {
		return configPath, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, projectconfig.ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found (searched upward from the working directory)", projectconfig.ConfigFileName)
		}
		dir = parent
	}
}
