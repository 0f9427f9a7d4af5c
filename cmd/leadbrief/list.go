package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/amishk599/leadbrief/internal/briefing"
	"github.com/amishk599/leadbrief/internal/config"
	"github.com/amishk599/leadbrief/internal/model"
)

var (
	listIndustry string
	listPriority string
	listStatus   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked companies",
	Long:  "Prints a table of the opportunity sheet, optionally filtered by industry, priority or status.",
	RunE:  runList,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pipeline totals",
	RunE:  runStats,
}

const hotLeadLimit = 3

func init() {
	addFilterFlags(listCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
}

// addFilterFlags registers the row filters shared by list and timeline.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&listIndustry, "industry", "", "only rows whose industry contains this text")
	cmd.Flags().StringVar(&listPriority, "priority", "", "only rows with this priority (High, Medium, Low)")
	cmd.Flags().StringVar(&listStatus, "status", "", "only rows with exactly this status")
}

func matchesFilters(r model.OpportunityRow) bool {
	if listIndustry != "" && !strings.Contains(r.Industry, listIndustry) {
		return false
	}
	if listPriority != "" && string(r.Priority) != listPriority {
		return false
	}
	if listStatus != "" && r.Status != listStatus {
		return false
	}
	return true
}

// readRows loads config and every sheet row, exiting on failure.
func readRows() (*config.Config, []model.OpportunityRow) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	sheet, closeSheet, err := openSheet(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer closeSheet()

	rows, err := sheet.Rows(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read sheet: %v\n", err)
		os.Exit(1)
	}
	return cfg, rows
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, rows := readRows()
	now := time.Now()

	fmt.Printf("%-8s %-25s %-20s %-14s %s\n", "Priority", "Company", "Industry", "Status", "Added")
	fmt.Println(strings.Repeat("─", 86))

	shown := 0
	for _, r := range rows {
		if !matchesFilters(r) {
			continue
		}
		shown++

		added := r.DateAdded
		if d, ok := briefing.ParseDate(r.DateAdded, cfg.Location); ok {
			added = relDay(d, now, cfg.Location)
		}
		fmt.Printf("%-8s %-25s %-20s %-14s %s\n", r.Priority, clip(r.Company, 25), clip(r.Industry, 20), clip(r.Status, 14), added)
	}

	fmt.Printf("\nShowing %s of %s companies\n", humanize.Comma(int64(shown)), humanize.Comma(int64(len(rows))))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, rows := readRows()
	b := briefing.Generate(rows, nil, time.Now(), cfg.Location)

	count := func(status string) int {
		for _, s := range b.Statuses {
			if s.Status == status {
				return s.Count
			}
		}
		return 0
	}
	high := 0
	for _, r := range rows {
		if r.Priority == model.PriorityHigh {
			high++
		}
	}

	fmt.Printf("%-20s %s\n", "Total companies", humanize.Comma(int64(b.Total)))
	fmt.Printf("%-20s %d\n", "Applied", count(model.StatusApplied))
	fmt.Printf("%-20s %d\n", "Interviewing", count("Interviewing"))
	fmt.Printf("%-20s %d\n", "High priority", high)
	fmt.Printf("%-20s %d\n", "Need follow-up", len(b.FollowUps))

	if len(b.Statuses) > 0 {
		fmt.Println("\nBy status:")
		for _, s := range b.Statuses {
			fmt.Printf("  %-18s %d\n", s.Label(), s.Count)
		}
	}

	fmt.Println("\nHot leads:")
	hot := briefing.HotLeads(rows, hotLeadLimit)
	if len(hot) == 0 {
		fmt.Println("  no high-priority leads to research")
	}
	for _, r := range hot {
		fmt.Printf("  %s (%s)\n", r.Company, r.Industry)
	}
	return nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
