package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/leadbrief/internal/model"
	"github.com/amishk599/leadbrief/internal/scheduler"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daily scheduler daemon",
	Long:  "Waits for the registered daily trigger and runs the workflow each time it fires; blocks until SIGINT/SIGTERM.",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"queries", len(cfg.Queries),
		"industry_rules", len(cfg.IndustryPriorities),
		"max_new_per_day", cfg.MaxNewPerDay,
		"timezone", cfg.Location.String(),
		"store", cfg.Store.Path,
		"notifier", cfg.Notification.Type,
	)

	registry, err := openRegistry(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer registry.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job := func(ctx context.Context) error {
		res, err := executeRun(ctx, cfg, logger)
		if err != nil {
			return err
		}
		if res.NotifyErr != nil {
			logger.Warn("briefing was not delivered; new rows were kept", "run_id", res.RunID)
		}
		return nil
	}

	runner := scheduler.NewRunner(registry, job, logger)
	if err := runner.Run(ctx); err != nil {
		if errors.Is(err, model.ErrNoTrigger) {
			logger.Error("no daily trigger registered; run `leadbrief schedule install` first")
		} else {
			logger.Error("scheduler error", "error", err)
		}
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
