package commands

import (
	"fmt"
	"time"

	"btc-meetup-bot/internal/meetup"
	"btc-meetup-bot/lib/helpers"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

func CommandNextMeetup(now time.Time) string {
	log.Debug("processing command /nextmeetup")

	next := meetup.NextMeetup(now)
	return fmt.Sprintf("📅 *Next meetup:* %s \\(%s\\)",
		helpers.EscapeMarkdownV2(helpers.FormatDate(next)),
		helpers.EscapeMarkdownV2(humanize.Time(next)),
	)
}
