// Package game runs the monthly price guessing game: it schedules a
// settlement at 20:00 on each meetup date and resolves the winner by
// nearest guess against the spot price fetched at that moment.
package game

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"btc-meetup-bot/internal/ledger"
	"btc-meetup-bot/internal/meetup"
	"btc-meetup-bot/internal/types"
	"btc-meetup-bot/lib/helpers"
	"btc-meetup-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// PriceSource fetches the spot price used to settle the game.
type PriceSource interface {
	SpotPriceUSD(ctx context.Context) (float64, error)
}

// Notifier delivers the winner announcement.
type Notifier interface {
	SendDirectMessage(userID int64, text string) error
}

// Game owns the settlement schedule and the resolution logic. The
// "next fire time" is private to the scheduling goroutine; only the
// ledger is shared with the command handlers.
type Game struct {
	ledger   *ledger.Ledger
	source   PriceSource
	notifier Notifier

	settlementHour int
	fetchTimeout   time.Duration

	// serializes firings so a settlement never runs concurrently
	// with another
	fireMutex sync.Mutex

	now func() time.Time
}

func New(l *ledger.Ledger, source PriceSource, notifier Notifier, settlementHour int, fetchTimeout time.Duration) *Game {
	return &Game{
		ledger:         l,
		source:         source,
		notifier:       notifier,
		settlementHour: settlementHour,
		fetchTimeout:   fetchTimeout,
		now:            time.Now,
	}
}

// Ledger exposes the guess store the command handlers submit into.
func (g *Game) Ledger() *ledger.Ledger {
	return g.ledger
}

// NextSettlement returns the instant the current cycle settles at.
func (g *Game) NextSettlement() time.Time {
	return meetup.SettlementInstant(g.now(), g.settlementHour)
}

// Start launches the settlement scheduler in the background.
func (g *Game) Start() {
	go g.run()
	log.Info("🚀 Settlement scheduler started.")
}

// run arms a one-shot timer for the next settlement instant, fires it,
// then re-arms for the following cycle. After a firing the next target
// is computed from the day after the fired one, so a cycle never
// settles twice. A startup delay at or below zero fires immediately.
func (g *Game) run() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("🔥 Panic recovered in settlement scheduler: %v. Re-arming in 10 seconds...", r)
			time.Sleep(10 * time.Second)
			go g.run()
		}
	}()

	target := meetup.SettlementInstant(g.now(), g.settlementHour)
	for {
		delay := target.Sub(g.now())
		if delay < 0 {
			delay = 0
		}
		log.Infof("Next settlement at %s (in %s)", target.Format(time.RFC1123), delay.Round(time.Second))

		timer := time.NewTimer(delay)
		<-timer.C

		g.fire()

		target = meetup.SettlementInstant(target.AddDate(0, 0, 1), g.settlementHour)
	}
}

func (g *Game) fire() {
	g.fireMutex.Lock()
	defer g.fireMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), g.fetchTimeout)
	defer cancel()

	result, err := g.Resolve(ctx)
	if err != nil {
		log.Errorf("❌ Settlement failed, no winner this cycle: %v", err)
		return
	}

	if result.WinnerUserID == 0 {
		log.Infof("✅ Settlement completed at price %.2f with no guesses.", result.SettlementPrice)
		return
	}
	log.Infof("✅ Settlement completed: user %d won at price %.2f with guess %.2f",
		result.WinnerUserID, result.SettlementPrice, result.WinningGuess)
}

// Resolve drains the ledger, fetches the settlement price and picks
// the guess with the smallest absolute difference. The drain happens
// before the fetch, so a fetch failure still costs the cycle's
// guesses. Ties go to the earliest submitted guess.
func (g *Game) Resolve(ctx context.Context) (types.ResolutionResult, error) {
	snapshot := g.ledger.Drain()
	OpenGuesses.Set(0)

	price, err := g.source.SpotPriceUSD(ctx)
	if err != nil {
		SettlementFailures.Inc()
		return types.ResolutionResult{}, errors.Wrapf(err, "could not fetch settlement price (%d guesses dropped)", len(snapshot))
	}

	SettlementsTotal.Inc()

	result := types.ResolutionResult{SettlementPrice: price}
	if len(snapshot) == 0 {
		return result, nil
	}

	winner := snapshot[0]
	best := math.Abs(winner.Value - price)
	for _, entry := range snapshot[1:] {
		if diff := math.Abs(entry.Value - price); diff < best {
			winner = entry
			best = diff
		}
	}

	result.WinnerUserID = winner.UserID
	result.WinningGuess = winner.Value

	g.announce(result)
	return result, nil
}

func (g *Game) announce(result types.ResolutionResult) {
	text := fmt.Sprintf(
		translation.Translate("🏆 *You won the meetup price game\\!*\n\nYour guess: *$%s*\nSettlement price: *$%s*\n\nSee you at the meetup\\!"),
		helpers.FormatPriceUS(result.WinningGuess, true),
		helpers.FormatPriceUS(result.SettlementPrice, true),
	)

	if err := g.notifier.SendDirectMessage(result.WinnerUserID, text); err != nil {
		log.Errorf("❌ Failed to send winner notification to user %d: %v", result.WinnerUserID, err)
		return
	}
	WinnersAnnounced.Inc()
}
