package commands

import (
	"fmt"
	"time"

	"btc-meetup-bot/internal/ledger"
	"btc-meetup-bot/internal/meetup"
	"btc-meetup-bot/lib/helpers"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandGuess records a price guess for the current game cycle. An
// earlier guess by the same user is overwritten.
func CommandGuess(l *ledger.Ledger, userID int64, args string, now time.Time) (string, error) {
	log.Debugf("processing command /guess with argument :%s", args)

	value, err := l.Submit(userID, args)
	if err != nil {
		return "", errors.Wrap(err, "command /guess")
	}

	settlement := meetup.NextMeetup(now)
	return fmt.Sprintf("🎯 Your guess of *$%s* is in\\. The game settles on %s\\.",
		helpers.FormatPriceUS(value, true),
		helpers.EscapeMarkdownV2(helpers.FormatDate(settlement)),
	), nil
}
