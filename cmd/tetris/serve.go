package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/metrics"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
	flagEnvFile     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tetris SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a variant picker menu.
Scores are stored per-server (all users share the same leaderboard)
under their SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Settings can also come from the environment or an env file (--env-file,
default .env). Flags given on the command line win.
  TETRIS_SSH_ADDR, TETRIS_HOST_KEY, TETRIS_DB, TETRIS_METRICS_ADDR,
  TETRIS_IDLE_TIMEOUT (minutes)

Examples:
  tetris serve                           # Listen on :23234 with auto-generated key
  tetris serve --ssh :2222               # Listen on port 2222
  tetris serve --host-key ./my_host_key  # Use specific host key
  tetris serve --db ./scores.db          # Use specific database
  tetris serve --metrics :9100           # Expose Prometheus metrics

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Address for the Prometheus /metrics endpoint (empty = off)")
	serveCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Env file with TETRIS_* settings")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyServeEnv fills flags the user did not set from the environment,
// after loading the env file if it exists.
func applyServeEnv(cmd *cobra.Command) error {
	if flagEnvFile != "" {
		if err := godotenv.Load(flagEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot load env file %s: %w", flagEnvFile, err)
		}
	}

	str := func(flag, env string, dst *string) {
		if v, ok := os.LookupEnv(env); ok && !cmd.Flags().Changed(flag) {
			*dst = v
		}
	}
	str("ssh", "TETRIS_SSH_ADDR", &flagSSHAddr)
	str("host-key", "TETRIS_HOST_KEY", &flagHostKey)
	str("metrics", "TETRIS_METRICS_ADDR", &flagMetricsAddr)
	if v, ok := os.LookupEnv("TETRIS_DB"); ok && !cmd.Flags().Changed("db") {
		flagDBPath = v
	}
	if v, ok := os.LookupEnv("TETRIS_IDLE_TIMEOUT"); ok && !cmd.Flags().Changed("idle-timeout") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TETRIS_IDLE_TIMEOUT %q: %w", v, err)
		}
		flagIdleTimeout = n
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := applyServeEnv(cmd); err != nil {
		return err
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	var mt *metrics.Metrics
	if flagMetricsAddr != "" {
		mt = metrics.New()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			logger.Info("serving metrics", "address", flagMetricsAddr)
			if err := mt.Serve(ctx, flagMetricsAddr); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Logger:      logger.WithPrefix("tetris-ssh"),
		Metrics:     mt,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	return server.ListenAndServe()
}
