package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bear-run/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Bear Run SSH server",
		Long: `Start an SSH server that lets users connect and play.

Each SSH connection plays its own run. Sound stays off for remote players.
Runs are stored per-server (all users share the same ledger).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bearrun/host_key

Examples:
  bearrun serve                           # Listen on :23234 with auto-generated key
  bearrun serve --ssh :2222               # Listen on port 2222
  bearrun serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
		Args: cobra.NoArgs,
		Run:  runServe,
	}

	cmd.Flags().StringVar(&flagSSHAddr, "ssh", env.SSHAddr, "SSH server address (host:port)")
	cmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	cmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	return cmd
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr).WithPrefix("bearrun-ssh")

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Run = loadRunConfig(logger)

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		logger.Fatal("cannot create server", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("connect with: ssh localhost -p <port>", "address", server.Addr())
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
