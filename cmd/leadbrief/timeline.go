package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/amishk599/leadbrief/internal/briefing"
	"github.com/amishk599/leadbrief/internal/model"
)

var timelineLimit int

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show dated sheet events, newest first",
	Long: "Lists when companies were added and last acted on, plus the day each application " +
		"becomes due for a follow-up. Accepts the same filters as list.",
	RunE: runTimeline,
}

func init() {
	addFilterFlags(timelineCmd)
	timelineCmd.Flags().IntVarP(&timelineLimit, "limit", "n", 0, "show at most this many events (0 for all)")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	cfg, rows := readRows()

	var kept []model.OpportunityRow
	for _, r := range rows {
		if matchesFilters(r) {
			kept = append(kept, r)
		}
	}

	events := briefing.Timeline(kept, cfg.Location)
	if timelineLimit > 0 && len(events) > timelineLimit {
		events = events[:timelineLimit]
	}
	if len(events) == 0 {
		fmt.Println("No dated events.")
		return nil
	}

	now := time.Now()
	fmt.Printf("%-10s %-14s %-10s %s\n", "Date", "When", "Event", "Company")
	fmt.Println(strings.Repeat("─", 70))
	for _, e := range events {
		fmt.Printf("%-10s %-14s %-10s %s\n", e.Date.Format(model.DateLayout), relDay(e.Date, now, cfg.Location), e.Kind, e.Company)
	}
	return nil
}

// relDay describes date relative to today in loc.
func relDay(date, now time.Time, loc *time.Location) string {
	days, ok := briefing.DaysSince(date.Format(model.DateLayout), now, loc)
	if !ok {
		return ""
	}
	if days == 0 {
		return "today"
	}
	return humanize.RelTime(now.AddDate(0, 0, -days), now, "ago", "from now")
}
