package notifier

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/amishk599/leadbrief/internal/model"
)

func TestLogNotifier_LogsEachLine(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	msg := model.Message{
		To:      "me@example.com",
		Subject: "Daily Job Search Briefing: 1 new leads, 0 follow-ups",
		Text:    "Daily Job Search Briefing\n\nPipeline Status\n- New Lead: 1\n",
	}
	if err := n.Notify(context.Background(), msg); err != nil {
		t.Fatalf("Notify = %v, want nil", err)
	}

	out := buf.String()
	if got := strings.Count(out, "msg=briefing"); got != 4 {
		t.Errorf("logged %d records, want 4:\n%s", got, out)
	}
	if !strings.Contains(out, `line="- New Lead: 1"`) {
		t.Errorf("missing status line:\n%s", out)
	}
}

func TestLogNotifier_EmptyMessage(t *testing.T) {
	n := NewLogNotifier(discardLogger())
	if err := n.Notify(context.Background(), model.Message{}); err != nil {
		t.Errorf("Notify(empty) = %v, want nil", err)
	}
}
