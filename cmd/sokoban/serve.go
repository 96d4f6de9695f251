package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Sokoban SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the main menu.
Highscores are stored per-server (all users share the same lists).
Level directories are watched; new levels show up without a restart.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses ssh.host_key from the config

Examples:
  sokoban serve                           # Listen on :2222
  sokoban serve --ssh :23234              # Listen on port 23234
  sokoban serve --host-key ./my_host_key  # Use specific host key
  sokoban serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}

	hostKey, err := storage.ExpandHome(cfg.SSH.HostKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lib, err := openLibrary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Scores.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: hostKey,
		IdleTimeout: cfg.SSH.IdleTimeout,
		Session:     sessionOptions(lib, store),
	}, logger.WithPrefix("sokoban-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Sokoban SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return lib.Watch(ctx) })
	g.Go(func() error { return server.ListenAndServe(ctx) })

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
