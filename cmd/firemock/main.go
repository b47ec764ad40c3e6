package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/firemock/internal/config"
	logpkg "github.com/kailas-cloud/firemock/internal/logger"
	"github.com/kailas-cloud/firemock/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "firemock",
		Short:         "In-memory document database for tests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file (default: config/<ENV>.yaml)")
	root.AddCommand(newQueryCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// loadConfig reads --config, or config/<ENV>.yaml when the flag is empty.
// A missing environment file falls back to defaults.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	env := config.GetEnv()
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := config.LoadFile(path)
		return cfg, env, err
	}
	cfg, err := config.Load(env)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), env, nil
	}
	return cfg, env, err
}

func newLogger(env string, cfg config.Config) (*zap.Logger, error) {
	switch env {
	case "prod", "local", "dev", "test":
	default:
		env = "local"
	}
	return logpkg.NewLogger(env, cfg.Logging.Level)
}
