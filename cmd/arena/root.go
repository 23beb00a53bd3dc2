package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/snapllm/arena/internal/arena"
	"github.com/snapllm/arena/internal/completion"
	"github.com/snapllm/arena/internal/projectconfig"
	"github.com/snapllm/arena/internal/session"
	"github.com/snapllm/arena/internal/store"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath      string
	dataDirOverride string
	serverOverride  string
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arena",
		Short: "Arena - pairwise model comparison and ELO leaderboard for snapllm",
		Long: `Arena sends one prompt to several models at once, lets you vote for the
best answer, and maintains durable ELO-style ratings, per-model performance
statistics, and a ranked leaderboard.

State lives in a local data directory (default .arena); point --server at a
running snapllm instance.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to .arena.yaml (default: search upward from cwd)")
	cmd.PersistentFlags().StringVar(&dataDirOverride, "data-dir", "", "Override the data directory")
	cmd.PersistentFlags().StringVar(&serverOverride, "server", "", "Override the completion server URL")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newLeaderboardCommand())
	cmd.AddCommand(newStatsCommand())
	cmd.AddCommand(newHistoryCommand())
	cmd.AddCommand(newModelsCommand())
	cmd.AddCommand(newResetCommand())
	cmd.AddCommand(newCheckCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig loads the project config, honoring the --config flag and the
// --server/--data-dir overrides.
func loadConfig() (*projectconfig.Config, error) {
	var cfg *projectconfig.Config
	var err error

	if configPath != "" {
		cfg, err = projectconfig.LoadFile(configPath)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err == nil {
			cfg, err = projectconfig.Load(wd)
		}
	}
	if err != nil {
		return nil, err
	}

	if serverOverride != "" {
		cfg.Server.URL = serverOverride
	}
	if dataDirOverride != "" {
		cfg.DataDir = dataDirOverride
	}
	return cfg, nil
}

// newArena wires a store and completion client from config.
func newArena(cfg *projectconfig.Config, opts ...arena.Option) *arena.Arena {
	st := store.New(cfg.DataPath())
	client := completion.NewHTTPClient(cfg.Server.URL,
		time.Duration(cfg.Server.TimeoutSec)*time.Second)

	if cfg.SessionLog {
		opts = append(opts, arena.WithSessionLog(session.NewLogger(cfg.SessionLogPath())))
	}
	return arena.New(st, client, opts...)
}
