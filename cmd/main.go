package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"btc-meetup-bot/config"
	"btc-meetup-bot/internal/commands"
	"btc-meetup-bot/internal/database"
	"btc-meetup-bot/internal/game"
	"btc-meetup-bot/internal/ledger"
	"btc-meetup-bot/internal/rates"
	"btc-meetup-bot/internal/telegram"
	"btc-meetup-bot/lib/translation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/leonelquinteros/gotext"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"
)

type BotMetrics struct {
	CommandsProcessed prometheus.Counter
	MessagesHandled   prometheus.Counter
	Mutex             sync.Mutex
}

var (
	metrics = NewBotMetrics()
)

func init() {
	config.InitConfig()
	setupLogging()
}

func NewBotMetrics() *BotMetrics {
	metrics := &BotMetrics{
		CommandsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meetupbot",
			Subsystem: "telegram",
			Name:      "commands_processed",
			Help:      "The total number of processed commands",
		}),
		MessagesHandled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meetupbot",
			Subsystem: "telegram",
			Name:      "messages_handled",
			Help:      "The total number of handled messages",
		}),
	}

	prometheus.MustRegister(metrics.CommandsProcessed)
	prometheus.MustRegister(metrics.MessagesHandled)

	return metrics
}

// persistedCounters are the counters saved to sqlite across restarts.
func persistedCounters() map[string]prometheus.Counter {
	return map[string]prometheus.Counter{
		"commands_processed":  metrics.CommandsProcessed,
		"messages_handled":    metrics.MessagesHandled,
		"guesses_submitted":   game.GuessesSubmitted,
		"settlements_total":   game.SettlementsTotal,
		"settlement_failures": game.SettlementFailures,
		"winners_announced":   game.WinnersAnnounced,
	}
}

func main() {
	gotext.Configure("locales", strings.ToLower(config.GetString("lang")), "default")

	err := database.InitDB("/app/data/bot.db")
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	LoadMetricsFromDB()

	httpTimeout := time.Duration(config.GetInt("http_timeout_seconds")) * time.Second
	ratesClient := rates.NewClient(httpTimeout)

	bot, err := telegram.NewBot(telegram.BotConfig{
		Token:          config.GetString("telegram_bot_token"),
		Debug:          config.GetBool("debug"),
		UpdatesTimeout: 60,
		AuthEnabled:    config.GetBool("auth_enabled"),
		AllowedUsers:   config.GetInt64Slice("allowed_users"),
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	guessGame := game.New(
		ledger.New(),
		ratesClient,
		bot,
		config.GetInt("meetup_hour"),
		httpTimeout,
	)

	if err := bot.RegisterCommands(buildCommands(bot, guessGame, ratesClient, httpTimeout)); err != nil {
		log.Fatalf("Failed to register bot commands: %v", err)
	}

	guessGame.Start()

	updates, err := bot.GetUpdatesChannel()
	if err != nil {
		log.Fatalf("Failed to get updates channel: %v", err)
	}

	go handleUpdates(bot, updates)

	go func() {
		for {
			time.Sleep(5 * time.Minute)
			SaveMetricsToDB()
		}
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		SaveMetricsToDB()
		log.Println("Metrics saved, shutting down...")
		os.Exit(0)
	}()

	if err := launchMetricsAndHealthServer(config.GetInt("metrics_port")); err != nil {
		log.Fatalf("Failed to start metrics and health server: %v", err)
	}
}

func setupLogging() {
	log.SetLevel(log.ErrorLevel)
	if config.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
	log.Debug("Starting meetup bot...")
}

// buildCommands is the static command registry. Handlers convert every
// error to a reply; a silent command is a bug.
func buildCommands(bot *telegram.Bot, guessGame *game.Game, src commands.Source, httpTimeout time.Duration) []telegram.Command {
	return []telegram.Command{
		{
			Name:        "price",
			Description: "Get the current price of Bitcoin in USD",
			Handler: func(args string, userID int64) string {
				ctx, cancel := context.WithTimeout(context.Background(), httpTimeout)
				defer cancel()

				text, err := commands.CommandPrice(ctx, src)
				if err != nil {
					log.Errorf("Error fetching Bitcoin price: %v", err)
					return translation.Translate("Sorry, I couldn't fetch the Bitcoin price at the moment\\.")
				}
				return text
			},
		},
		{
			Name:        "fee",
			Description: "Get the recommended transaction fees in sat/vB",
			Handler: func(args string, userID int64) string {
				ctx, cancel := context.WithTimeout(context.Background(), httpTimeout)
				defer cancel()

				text, err := commands.CommandFee(ctx, src)
				if err != nil {
					log.Errorf("Error fetching transaction fees: %v", err)
					return translation.Translate("Sorry, I couldn't fetch the transaction fees at the moment\\.")
				}
				return text
			},
		},
		{
			Name:        "nextmeetup",
			Description: "Show the date of the next meetup",
			Handler: func(args string, userID int64) string {
				return commands.CommandNextMeetup(time.Now())
			},
		},
		{
			Name:        "guess",
			Description: "Guess the Bitcoin price at the next meetup",
			Handler: func(args string, userID int64) string {
				text, err := commands.CommandGuess(guessGame.Ledger(), userID, args, time.Now())
				if err != nil {
					if errors.Is(err, ledger.ErrInvalidGuess) {
						return translation.Translate("Usage: /guess \\<price\\>, e\\.g\\. /guess 100000")
					}
					log.Errorf("Error handling guess: %v", err)
					return translation.Translate("Sorry, I couldn't record your guess at the moment\\.")
				}
				game.GuessesSubmitted.Inc()
				game.OpenGuesses.Set(float64(guessGame.Ledger().Len()))
				return text
			},
		},
		{
			Name:        "restricted",
			Description: "A restricted command for allowed users only",
			Handler: func(args string, userID int64) string {
				return commands.CommandRestricted(bot.IsUserAllowed(userID))
			},
		},
	}
}

func handleUpdates(bot *telegram.Bot, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			log.Debug("Received non-message or non-command")
			continue
		}

		if !update.Message.IsCommand() {
			continue
		}

		metrics.MessagesHandled.Inc()

		handleCommand(bot, update)
	}
}

func handleCommand(bot *telegram.Bot, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			stackBuf := make([]byte, 1024)
			stackSize := runtime.Stack(stackBuf, false)
			stackTrace := bytes.TrimRight(stackBuf[:stackSize], "\x00")
			log.Errorf("Recovered from panic: %v\nStack trace: %s", r, stackTrace)
		}
	}()

	err := bot.SendMessage(telegram.Message{
		ChatID:    int(update.Message.Chat.ID),
		Text:      bot.HandleUpdate(update),
		MessageID: update.Message.MessageID,
	})

	if err != nil {
		log.Errorf("Failed to send message: %v", err)
	} else {
		metrics.CommandsProcessed.Inc()
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func launchMetricsAndHealthServer(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", healthCheckHandler)

	log.Infof("Launching metrics and health endpoint on :%d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), http.DefaultServeMux)
}

func LoadMetricsFromDB() {
	metrics.Mutex.Lock()
	defer metrics.Mutex.Unlock()

	for name, counter := range persistedCounters() {
		value, _ := database.GetMetric(name)
		counter.Add(value)
	}

	log.Println("Metrics loaded from database.")
}

func SaveMetricsToDB() {
	metrics.Mutex.Lock()
	defer metrics.Mutex.Unlock()

	for name, counter := range persistedCounters() {
		database.SaveMetric(name, GetMetricValue(counter))
	}

	log.Println("Metrics saved to database.")
}

func GetMetricValue(metric prometheus.Collector) float64 {
	var metricValue float64
	metricChan := make(chan prometheus.Metric, 1)
	metric.Collect(metricChan)
	close(metricChan)

	metricProto := &dto.Metric{}
	if err := (<-metricChan).Write(metricProto); err != nil {
		log.Printf("Failed to read metric value: %v", err)
		return 0
	}

	if metricProto.Counter != nil {
		metricValue = metricProto.Counter.GetValue()
	} else if metricProto.Gauge != nil {
		metricValue = metricProto.Gauge.GetValue()
	}
	return metricValue
}
