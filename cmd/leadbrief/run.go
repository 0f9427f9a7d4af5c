package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/leadbrief/internal/config"
	"github.com/amishk599/leadbrief/internal/notifier"
	"github.com/amishk599/leadbrief/internal/pipeline"
	"github.com/amishk599/leadbrief/internal/runlock"
	"github.com/amishk599/leadbrief/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daily workflow once",
	Long:  "Searches for new leads, appends them to the sheet and sends the daily briefing.",
	RunE:  runRun,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry run: brief without writing",
	Long:  "Runs the workflow against a read-only view of the sheet and logs the briefing instead of sending it.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := executeRun(ctx, cfg, logger)
	if errors.Is(err, runlock.ErrLocked) {
		logger.Error("another run is in progress", "lock", cfg.Store.LockPath())
		os.Exit(1)
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
	if res.NotifyErr != nil {
		logger.Warn("briefing was not delivered; new rows were kept", "run_id", res.RunID)
	}
	return nil
}

// executeRun performs one locked workflow run. It is shared by `run` and the daemon.
func executeRun(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pipeline.Result, error) {
	lock, err := runlock.Acquire(cfg.Store.LockPath())
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	sheet, closeSheet, err := openSheet(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer closeSheet()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	n := setupNotifier(cfg, httpClient, logger)

	return pipeline.New(cfg, sheet, setupProvider(cfg), n, logger).Run(ctx)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: the sheet will not be written and no briefing is sent")

	sheet, closeSheet, err := openSheet(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeSheet()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ro := store.NewReadOnlySheet(sheet, logger)
	p := pipeline.New(cfg, ro, setupProvider(cfg), notifier.NewLogNotifier(logger), logger)
	res, err := p.Run(ctx)
	if err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	logger.Info("check complete", "would_add", len(res.Added), "follow_ups", len(res.Briefing.FollowUps))
	return nil
}
