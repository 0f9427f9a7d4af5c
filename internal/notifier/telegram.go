package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/amishk599/leadbrief/internal/model"
)

// Ensure TelegramNotifier implements model.Notifier.
var _ model.Notifier = (*TelegramNotifier)(nil)

const telegramMessageMax = 4096

// TelegramNotifier sends the briefing to a chat through a Telegram bot.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewTelegramNotifier builds a bot client without contacting the API, so a
// bad token or an unreachable endpoint surfaces from Notify. An empty endpoint
// uses the public API.
func NewTelegramNotifier(token string, chatID int64, endpoint string, httpClient *http.Client, logger *slog.Logger) *TelegramNotifier {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	bot := &tgbotapi.BotAPI{Token: token, Client: httpClient, Buffer: 100}
	bot.SetAPIEndpoint(endpoint)
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}
}

// Notify sends the subject in bold followed by the plain-text briefing.
func (t *TelegramNotifier) Notify(ctx context.Context, msg model.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := tgbotapi.NewMessage(t.chatID, telegramText(msg))
	m.ParseMode = tgbotapi.ModeHTML
	m.DisableWebPagePreview = true
	if _, err := t.bot.Send(m); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	t.logger.Info("telegram message sent", "chat_id", t.chatID, "subject", msg.Subject)
	return nil
}

func telegramText(msg model.Message) string {
	head := "<b>" + html.EscapeString(msg.Subject) + "</b>\n\n"
	text := msg.Text
	for {
		out := head + html.EscapeString(text)
		n := len([]rune(text))
		if len([]rune(out)) <= telegramMessageMax || n == 0 {
			return out
		}
		text = truncate(text, n*9/10)
	}
}
