// Package notification delivers operator notifications through a
// Telegram bot.
package notification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raykavin/chanwatch/pkg/monitor"
	log "github.com/sirupsen/logrus"
	tb "gopkg.in/tucnak/telebot.v2"
)

// ErrNoRecipients is returned when no authorized user ids are configured.
var ErrNoRecipients = errors.New("no telegram users to notify")

// Settings configures the bot.
type Settings struct {
	Token string
	Users []int // authorized user ids that receive notifications
}

// Telegram sends plain-text messages to every configured user.
type Telegram struct {
	client *tb.Bot
	users  []int
}

func NewTelegram(settings Settings) (*Telegram, error) {
	if len(settings.Users) == 0 {
		return nil, ErrNoRecipients
	}

	client, err := tb.NewBot(tb.Settings{Token: settings.Token})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{client: client, users: settings.Users}, nil
}

// Notify sends text to all users. Delivery failures are logged.
func (t *Telegram) Notify(text string) {
	for _, user := range t.users {
		if _, err := t.client.Send(&tb.User{ID: int64(user)}, text); err != nil {
			log.WithError(err).WithField("user", user).Error("failed to send notification")
		}
	}
}

// UpdateMessage describes a rewritten monitored list.
func UpdateMessage(path string, entries []monitor.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Monitored list updated: %d chats (%s)\n", len(entries), path)
	for _, e := range entries {
		fmt.Fprintf(&b, "• %s %s [%s]\n", e.Title, e.Identifier, e.Category)
	}

	return strings.TrimRight(b.String(), "\n")
}
