package notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/amishk599/leadbrief/internal/config"
	"github.com/amishk599/leadbrief/internal/model"
	"github.com/amishk599/leadbrief/internal/secrets"
)

// Ensure EmailNotifier implements model.Notifier.
var _ model.Notifier = (*EmailNotifier)(nil)

type sendMailFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

// EmailNotifier sends the briefing as a multipart/alternative email over SMTP.
type EmailNotifier struct {
	cfg      config.EmailConfig
	sendMail sendMailFunc
	now      func() time.Time
	logger   *slog.Logger
}

// NewEmailNotifier returns an SMTP notifier. An empty cfg.Password is looked
// up in the OS keychain at send time.
func NewEmailNotifier(cfg config.EmailConfig, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:      cfg,
		sendMail: smtp.SendMail,
		now:      time.Now,
		logger:   logger,
	}
}

// Notify builds the MIME message and submits it. STARTTLS is used when the
// server offers it.
func (e *EmailNotifier) Notify(ctx context.Context, msg model.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := buildEmail(e.cfg.From, msg, e.now())
	if err != nil {
		return err
	}

	var auth sasl.Client
	if e.cfg.Username != "" {
		password, err := e.password()
		if err != nil {
			return err
		}
		auth = sasl.NewPlainClient("", e.cfg.Username, password)
	}

	if err := e.sendMail(e.cfg.Addr(), auth, e.cfg.From, []string{msg.To}, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("send mail via %s: %w", e.cfg.Addr(), err)
	}
	e.logger.Info("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (e *EmailNotifier) password() (string, error) {
	if e.cfg.Password != "" {
		return e.cfg.Password, nil
	}
	pw, err := secrets.GetSMTPPassword(secrets.SMTPAccount(e.cfg.Username, e.cfg.Host))
	if err != nil {
		return "", fmt.Errorf("smtp password: %w", err)
	}
	return pw, nil
}

// buildEmail renders msg as an RFC 5322 message with text and HTML alternatives.
func buildEmail(from string, msg model.Message, date time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*mail.Address{{Name: "leadbrief", Address: from}})
	h.SetAddressList("To", []*mail.Address{{Address: msg.To}})
	h.SetSubject(msg.Subject)
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create mail writer: %w", err)
	}
	if err := writePart(w, "text/plain", msg.Text); err != nil {
		return nil, err
	}
	if err := writePart(w, "text/html", msg.HTML); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close mail writer: %w", err)
	}
	return buf.Bytes(), nil
}

func writePart(w *mail.InlineWriter, contentType, body string) error {
	var h mail.InlineHeader
	h.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	pw, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create %s part: %w", contentType, err)
	}
	if _, err := io.WriteString(pw, body); err != nil {
		return fmt.Errorf("write %s part: %w", contentType, err)
	}
	return pw.Close()
}
