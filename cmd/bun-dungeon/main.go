// Package main is the entry point for the bun-dungeon CLI
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bun-dungeon/internal/config"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
)

var (
	cfg *config.Config

	// Flags overriding the environment
	redisAddr string
	seed      uint64
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "bun-dungeon",
	Short: "Burger Bun Dungeon RPG",
	Long: `Burger Bun Dungeon is a turn-based RPG about a burger bun fighting its way
out of a garbage can, powered by the ingredients it picked up along the way.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address for session storage (default in-memory)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible run (0 rolls dice)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(validateDataCmd)
}

// loadConfig reads the environment, applies flag overrides and installs the
// process logger
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	flags := cmd.Flags()
	if flags.Changed("redis") {
		loaded.RedisAddr = redisAddr
	}
	if flags.Changed("seed") {
		loaded.Seed = seed
	}
	if flags.Changed("log-level") {
		if err := loaded.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return errors.InvalidArgumentf("invalid log level %q", logLevel)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: loaded.LogLevel})))
	cfg = loaded
	return nil
}

// exitCode maps structured errors onto sysexits codes. Anything else came
// from cobra's own argument handling.
func exitCode(err error) int {
	var e *errors.Error
	if errors.As(err, &e) {
		return e.Code.ExitCode()
	}
	return errors.ExitUsage
}
