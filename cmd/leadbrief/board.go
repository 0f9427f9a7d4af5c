package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/leadbrief/internal/board"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse the sheet as a kanban board (TUI)",
	Long:  "Shows the status picker, then a read-only board of the companies in that status.",
	RunE:  runBoardCmd,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoardCmd(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	rows, err := sheet.Rows(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read sheet: %v\n", err)
		os.Exit(1)
	}

	columns := board.Group(rows)
	if len(columns) == 0 {
		fmt.Println("The sheet is empty. Run `leadbrief run` or `leadbrief add` first.")
		return nil
	}

	for {
		choice, err := board.RunStatusPicker(columns, time.Now(), cfg.Location)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return nil
		}
		if choice < 0 {
			return nil
		}

		wantQuit, err := board.RunBoard(columns, choice, time.Now(), cfg.Location)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return nil
		}
		// else: loop → back to picker
	}
}
