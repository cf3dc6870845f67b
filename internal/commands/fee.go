package commands

import (
	"context"
	"fmt"
	"strings"

	"btc-meetup-bot/lib/helpers"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// txSizeVBytes is the average transaction size the USD cost estimate
// is based on.
const txSizeVBytes = 140

func CommandFee(ctx context.Context, src Source) (string, error) {
	log.Debug("processing command /fee")

	fees, err := src.RecommendedFees(ctx)
	if err != nil {
		return "", errors.Wrap(err, "command /fee")
	}

	price, err := src.SpotPriceUSD(ctx)
	if err != nil {
		return "", errors.Wrap(err, "command /fee")
	}

	feeCostUSD := func(satPerVB int64) float64 {
		return float64(satPerVB) * txSizeVBytes * 1e-8 * price
	}

	tiers := []struct {
		label string
		rate  int64
	}{
		{"No Priority", fees.Minimum},
		{"Low Priority", fees.Economy},
		{"Medium Priority", fees.Hour},
		{"High Priority", fees.HalfHour},
		{"Fastest", fees.Fastest},
	}

	var sb strings.Builder
	sb.WriteString("*Recommended fees:*\n\n")
	for _, t := range tiers {
		sb.WriteString(fmt.Sprintf("▫️%s: `%d sat/vB` \\(\\~$%s\\)\n",
			helpers.EscapeMarkdownV2(t.label), t.rate, helpers.FormatPriceUS(feeCostUSD(t.rate), true)))
	}
	return sb.String(), nil
}
