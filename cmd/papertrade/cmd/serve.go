package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/papertrade/eventlog"
	"github.com/rustyeddy/papertrade/pkg/logger"
	"github.com/rustyeddy/papertrade/server"
	"github.com/rustyeddy/papertrade/sim"
	"github.com/rustyeddy/papertrade/snapshot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API server",
	Long: `Serve the simulator over HTTP. The server owns a single portfolio;
endpoints under /api/portfolio mirror the console operations.

Example:
  papertrade serve -f examples/configs/game.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	jnl, err := cfg.OpenJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jnl.Close()

	events := eventlog.New()
	rng := newRand(cfg)

	// Resume a saved game when one exists, start fresh otherwise.
	portfolio, err := snapshot.Read(cfg.Snapshot.Path, rng, events, jnl)
	if err != nil {
		portfolio = sim.New(cfg.Portfolio.Name, rng, events, jnl)
		log.Info().Str("name", cfg.Portfolio.Name).Msg("starting fresh portfolio")
	} else {
		log.Info().Str("path", cfg.Snapshot.Path).Int("day", portfolio.Day()).Msg("resumed saved portfolio")
	}

	srv := server.New(server.Config{
		Port:         cfg.Server.Port,
		Log:          log,
		Portfolio:    portfolio,
		Events:       events,
		Journal:      jnl,
		Rand:         rng,
		SnapshotPath: cfg.Snapshot.Path,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
