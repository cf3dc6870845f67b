package telegram

import (
	"fmt"
	"strings"

	"btc-meetup-bot/lib/helpers"
	"btc-meetup-bot/lib/translation"

	"github.com/davecgh/go-spew/spew"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:      bot,
		Config:   c,
		handlers: make(map[string]Command),
	}, nil
}

// RegisterCommands installs the command registry and publishes the
// command menu to Telegram. Dispatch is a static name lookup; a
// command not registered here does not exist.
func (b *Bot) RegisterCommands(commands []Command) error {
	menu := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, c := range commands {
		b.handlers[c.Name] = c
		b.order = append(b.order, c.Name)
		menu = append(menu, tgbotapi.BotCommand{Command: c.Name, Description: c.Description})
	}

	_, err := b.Bot.Request(tgbotapi.NewSetMyCommands(menu...))
	return errors.Wrap(err, "could not register command menu")
}

// GetUpdatesChannel gets new updates updates
func (b *Bot) GetUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig), nil
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(int64(m.ChatID), m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message: %v", m)
}

// SendDirectMessage sends a private message to a user. In Telegram a
// private chat ID equals the user ID.
func (b *Bot) SendDirectMessage(userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, text)
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send direct message to user %d", userID)
}

// IsUserAllowed reports whether the user passes the allow-list. With
// authorization disabled everyone is allowed.
func (b *Bot) IsUserAllowed(userID int64) bool {
	if !b.Config.AuthEnabled {
		return true
	}
	for _, id := range b.Config.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// HandleUpdate processes a Telegram update and returns the reply text.
// Every command gets a reply; unknown input gets the help text.
func (b *Bot) HandleUpdate(u tgbotapi.Update) string {
	if b.Config.Debug {
		log.Debugf("received update: %s", spew.Sdump(u))
	}
	log.Debugf("received command: %s", u.Message.Command())

	cmd, ok := b.handlers[u.Message.Command()]
	if !ok {
		return b.helpText()
	}

	var userID int64
	if u.Message.From != nil {
		userID = u.Message.From.ID
	}
	return cmd.Handler(u.Message.CommandArguments(), userID)
}

func (b *Bot) helpText() string {
	var sb strings.Builder
	sb.WriteString(translation.Translate("Available commands:") + "\n")
	for _, name := range b.order {
		sb.WriteString(fmt.Sprintf("/%s \\- %s\n", name, helpers.EscapeMarkdownV2(b.handlers[name].Description)))
	}
	return sb.String()
}
