package notifier

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amishk599/leadbrief/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes the briefing to the given logger, one record per line.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each briefing via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the subject followed by each non-empty line of the text body.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(_ context.Context, msg model.Message) error {
	n.logger.Info("briefing", "to", msg.To, "subject", msg.Subject)
	for _, line := range strings.Split(msg.Text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			n.logger.Info("briefing", "line", line)
		}
	}
	return nil
}
