package commands

import (
	"btc-meetup-bot/lib/translation"

	log "github.com/sirupsen/logrus"
)

// CommandRestricted is gated by the allow-list; allowed reports the
// transport's verdict for the calling user.
func CommandRestricted(allowed bool) string {
	log.Debug("processing command /restricted")

	if !allowed {
		return translation.Translate("You are not authorized to use this command\\.")
	}
	return translation.Translate("This is a restricted command\\.")
}
