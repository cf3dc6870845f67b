package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// BotConfig configuration of the bot
type BotConfig struct {
	Token          string
	Debug          bool
	UpdatesTimeout int
	AuthEnabled    bool
	AllowedUsers   []int64
}

// Bot telegram interaction client
type Bot struct {
	Bot      *tgbotapi.BotAPI
	Config   BotConfig
	handlers map[string]Command
	order    []string
}

// Message a telegram message struct
type Message struct {
	ChatID    int
	MessageID int
	Text      string
}

// Handler produces the reply text for one command invocation.
type Handler func(args string, userID int64) string

// Command is one registered bot command.
type Command struct {
	Name        string
	Description string
	Handler     Handler
}
