package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/amishk599/leadbrief/internal/scheduler"
)

var scheduleHour int

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the daily trigger",
}

var scheduleInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the daily trigger, replacing any existing one",
	RunE:  runScheduleInstall,
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show registered triggers",
	RunE:  runScheduleList,
}

var scheduleClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all registered triggers",
	RunE:  runScheduleClear,
}

func init() {
	scheduleInstallCmd.Flags().IntVar(&scheduleHour, "hour", -1, "hour of day (0-23) in the configured timezone (default: schedule.hour from config)")
	scheduleCmd.AddCommand(scheduleInstallCmd, scheduleListCmd, scheduleClearCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runScheduleInstall(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	registry, err := openRegistry(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer registry.Close()

	hour := cfg.Schedule.Hour
	if scheduleHour >= 0 {
		hour = scheduleHour
	}

	t, err := scheduler.Install(context.Background(), registry, scheduler.DailyHandler, hour, cfg.Location.String())
	if err != nil {
		logger.Error("failed to install trigger", "error", err)
		os.Exit(1)
	}

	next := scheduler.NextFire(time.Now(), t.Hour, cfg.Location)
	logger.Info("daily trigger installed",
		"trigger_id", t.ID,
		"hour", t.Hour,
		"timezone", t.Timezone,
		"next_run", next.Format(time.RFC3339),
	)
	return nil
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	registry, err := openRegistry(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer registry.Close()

	triggers, err := registry.ListTriggers(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list triggers: %v\n", err)
		os.Exit(1)
	}
	if len(triggers) == 0 {
		fmt.Println("No daily trigger registered. Run `leadbrief schedule install`.")
		return nil
	}

	fmt.Printf("%-38s %-10s %-6s %-22s %s\n", "ID", "Handler", "Hour", "Timezone", "Created")
	fmt.Println(strings.Repeat("─", 96))
	for _, t := range triggers {
		fmt.Printf("%-38s %-10s %02d:00  %-22s %s\n", t.ID, t.Handler, t.Hour, t.Timezone, humanize.Time(t.CreatedAt))
	}
	return nil
}

func runScheduleClear(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	registry, err := openRegistry(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer registry.Close()

	n, err := scheduler.Clear(context.Background(), registry)
	if err != nil {
		logger.Error("failed to clear triggers", "error", err)
		os.Exit(1)
	}
	logger.Info("triggers cleared", "removed", n)
	return nil
}
