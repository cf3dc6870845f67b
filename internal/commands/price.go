package commands

import (
	"context"
	"fmt"

	"btc-meetup-bot/lib/helpers"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func CommandPrice(ctx context.Context, src Source) (string, error) {
	log.Debug("processing command /price")

	price, err := src.SpotPriceUSD(ctx)
	if err != nil {
		return "", errors.Wrap(err, "command /price")
	}

	return fmt.Sprintf("*Bitcoin price:*\n\n▫️`$%s` *USD*", helpers.FormatPriceUS(price, true)), nil
}
