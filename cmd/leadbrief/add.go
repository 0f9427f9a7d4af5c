package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/leadbrief/internal/model"
	"github.com/amishk599/leadbrief/internal/pipeline"
	"github.com/amishk599/leadbrief/internal/priority"
	"github.com/amishk599/leadbrief/internal/runlock"
)

var addLead model.Candidate

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a lead by hand",
	Long:  "Appends a New Lead row for a company found outside the daily search. Companies already in the sheet are rejected.",
	RunE:  runAdd,
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&addLead.Company, "company", "", "company name (required)")
	f.StringVar(&addLead.Industry, "industry", "", "industry, used for priority")
	f.StringVar(&addLead.Type, "type", "", "opportunity type, e.g. Full-time")
	f.StringVar(&addLead.Location, "location", "", "location")
	f.StringVar(&addLead.JobLink, "link", "", "job posting URL")
	f.StringVar(&addLead.Website, "website", "", "company website")
	f.StringVar(&addLead.Contact, "contact", "", "contact person or role")
	f.StringVar(&addLead.Notes, "notes", "", "free-form notes")
	_ = addCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	lock, err := runlock.Acquire(cfg.Store.LockPath())
	if err != nil {
		logger.Error("failed to lock store", "error", err)
		os.Exit(1)
	}
	defer lock.Release()

	sheet, closeSheet, err := openSheet(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeSheet()

	today := time.Now().In(cfg.Location).Format(model.DateLayout)
	row, err := pipeline.AddLead(context.Background(), sheet, priority.NewClassifier(cfg.IndustryPriorities), addLead, today)
	if errors.Is(err, pipeline.ErrDuplicateCompany) {
		logger.Warn("company already tracked, nothing added", "company", addLead.Company)
		return nil
	}
	if err != nil {
		logger.Error("failed to add lead", "error", err)
		os.Exit(1)
	}

	logger.Info("lead added", "company", row.Company, "priority", row.Priority, "date_added", row.DateAdded)
	return nil
}
