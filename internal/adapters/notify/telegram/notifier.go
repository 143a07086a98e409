// Package telegram delivers run digests to a Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Official-DomG/matchbot/pkg/logger"
	"github.com/Official-DomG/matchbot/pkg/metrics"
)

const defaultTimeout = 20 * time.Second

// Sender is the part of the Bot API client the notifier needs.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends text to one chat, split into chunks.
type Notifier struct {
	token      string
	chatID     string
	maxLen     int
	endpoint   string
	httpClient *http.Client
	sender     Sender
	logger     logger.Logger
}

// NewNotifier creates a notifier. It never dials Telegram; a missing token
// or chat id only surfaces on Send.
func NewNotifier(opts ...Option) *Notifier {
	n := &Notifier{
		maxLen:   DefaultMaxLen,
		endpoint: tgbotapi.APIEndpoint,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = logger.Get().Named("telegram")
	}
	if n.sender == nil && n.token != "" {
		hc := n.httpClient
		if hc == nil {
			hc = &http.Client{Timeout: defaultTimeout}
		}
		// NewBotAPI would call getMe; a bare client is enough for sendMessage.
		bot := &tgbotapi.BotAPI{Token: n.token, Client: hc, Buffer: 100}
		bot.SetAPIEndpoint(n.endpoint)
		n.sender = bot
	}
	return n
}

// Configured reports whether Send can deliver anything.
func (n *Notifier) Configured() bool {
	return n.sender != nil && strings.TrimSpace(n.chatID) != ""
}

// Send delivers text as one or more messages. Blank text is a no-op.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if !n.Configured() {
		n.logger.Warn(ctx, "telegram not configured; message dropped", logger.Int("length", len(text)))
		metrics.RecordNotification("skipped")
		return ErrNotConfigured
	}

	parts := Chunk(text, n.maxLen)
	for i, part := range parts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := n.sender.Send(n.message(part)); err != nil {
			metrics.RecordNotification("failed")
			n.logger.Error(ctx, "sendMessage failed",
				logger.Int("part", i+1), logger.Int("parts", len(parts)), logger.Error(err))
			return fmt.Errorf("%w: part %d/%d: %v", ErrSend, i+1, len(parts), err)
		}
		metrics.RecordNotification("sent")
	}
	n.logger.Debug(ctx, "telegram delivered", logger.Int("parts", len(parts)))
	return nil
}

func (n *Notifier) message(text string) tgbotapi.MessageConfig {
	var msg tgbotapi.MessageConfig
	if id, err := strconv.ParseInt(strings.TrimSpace(n.chatID), 10, 64); err == nil {
		msg = tgbotapi.NewMessage(id, text)
	} else {
		msg = tgbotapi.NewMessageToChannel(strings.TrimSpace(n.chatID), text)
	}
	msg.DisableWebPagePreview = true
	return msg
}
