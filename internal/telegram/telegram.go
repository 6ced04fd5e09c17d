// Package telegram is a thin send-only adapter over telebot.
// hwbot never consumes inbound updates, so there is no poller and no router.
package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"hwbot/pkg/logx"
)

type Config struct {
	Token  string
	ChatID int64
	// SendTimeout bounds one send call end to end.
	SendTimeout time.Duration
}

type Adapter struct {
	bot    *tele.Bot
	chatID int64
	log    logx.Logger
}

func New(cfg Config, log logx.Logger) (*Adapter, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	if cfg.ChatID == 0 {
		return nil, errors.New("telegram chat id is empty")
	}
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Client: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, err
	}
	log.Debug("bot initialized", logx.String("username", b.Me.Username))
	return &Adapter{bot: b, chatID: cfg.ChatID, log: log}, nil
}

// SendText delivers one plain-text message to the fixed destination chat.
// The ctx only gates entry; the send itself is bounded by the client timeout.
func (a *Adapter) SendText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := a.bot.Send(&tele.Chat{ID: a.chatID}, text)
	return err
}
