package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/leadbrief/internal/config"
	"github.com/amishk599/leadbrief/internal/model"
	"github.com/amishk599/leadbrief/internal/notifier"
	"github.com/amishk599/leadbrief/internal/search"
	"github.com/amishk599/leadbrief/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "leadbrief",
	Short: "Daily job-lead pipeline and briefing",
	Long: "leadbrief finds new companies for your job search, appends them to your opportunity sheet " +
		"and sends a daily briefing with follow-ups and suggested actions.",
	// Default to `start` so that `leadbrief` with no args runs the daemon.
	RunE:         runStart,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: LEADBRIEF_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it. A .env file in the
// working directory, if present, is loaded first so ${VAR} references resolve.
// Priority: explicit path arg > LEADBRIEF_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	_ = godotenv.Load()
	if path == "" {
		if env := os.Getenv("LEADBRIEF_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// setupNotifier never contacts the remote service. Delivery problems surface
// from Notify so they cannot block a run's writes.
func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	n := cfg.Notification
	switch n.Type {
	case "email":
		logger.Info("using email notifier", "smtp", n.Email.Addr())
		return notifier.NewEmailNotifier(n.Email, logger)
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(n.WebhookURL, httpClient, logger)
	case "telegram":
		logger.Info("using telegram notifier", "chat_id", n.Telegram.ChatID)
		return notifier.NewTelegramNotifier(n.Telegram.Token, n.Telegram.ChatID, n.Telegram.Endpoint, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

func setupProvider(cfg *config.Config) model.SearchProvider {
	switch cfg.Search.Type {
	case "file":
		return search.NewFileProvider(cfg.Search.File)
	default:
		return search.NewNopProvider()
	}
}

// openSheet opens the configured store. The returned func releases it.
func openSheet(cfg *config.Config) (model.Sheet, func(), error) {
	switch cfg.Store.Type {
	case "csv":
		s, err := store.NewCSVSheet(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		s, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}
}

// openRegistry opens the SQLite database holding the daily trigger. With a
// CSV sheet it lives in a sibling file.
func openRegistry(cfg *config.Config) (*store.SQLiteStore, error) {
	path := cfg.Store.Path
	if cfg.Store.Type == "csv" {
		path += ".triggers.db"
	}
	s, err := store.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("open trigger registry: %w", err)
	}
	return s, nil
}
