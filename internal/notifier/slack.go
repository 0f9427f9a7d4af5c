package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amishk599/leadbrief/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// Slack Block Kit limits.
const (
	slackHeaderMax  = 150
	slackSectionMax = 3000
)

// SlackNotifier posts the briefing to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts each briefing to Slack via webhook.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify sends the briefing as a single Block Kit message.
func (s *SlackNotifier) Notify(ctx context.Context, msg model.Message) error {
	body, err := json.Marshal(buildPayload(msg))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %d", resp.StatusCode)
	}
	s.logger.Info("slack message sent", "subject", msg.Subject)
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Text   string       `json:"text"` // fallback for notifications
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var slackEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// buildPayload turns the plain-text briefing into blocks: the subject as a
// header, then one section per paragraph with its first line in bold.
func buildPayload(msg model.Message) slackPayload {
	blocks := []slackBlock{{
		Type: "header",
		Text: &slackText{Type: "plain_text", Text: truncate(msg.Subject, slackHeaderMax)},
	}}

	for i, para := range paragraphs(msg.Text) {
		if i == 0 {
			// The title line duplicates the header.
			para = para[1:]
			if len(para) == 0 {
				continue
			}
		}
		lines := make([]string, 0, len(para))
		for j, line := range para {
			line = slackEscaper.Replace(line)
			switch {
			case strings.HasPrefix(line, "- "):
				line = "• " + line[2:]
			case j == 0 && i > 0:
				line = "*" + line + "*"
			}
			lines = append(lines, line)
		}
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: truncate(strings.Join(lines, "\n"), slackSectionMax)},
		})
	}

	blocks = append(blocks, slackBlock{Type: "divider"})
	return slackPayload{Text: msg.Subject, Blocks: blocks}
}

// paragraphs splits text on blank lines, dropping empty ones.
func paragraphs(text string) [][]string {
	var out [][]string
	var cur []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max < 1 {
		return ""
	}
	return string(r[:max-1]) + "…"
}
