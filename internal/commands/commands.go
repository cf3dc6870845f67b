// Package commands implements the bot commands. Handlers return the
// reply text; sending is the transport's job.
package commands

import (
	"context"

	"btc-meetup-bot/internal/types"
)

// Source provides the market data the reporting commands need.
// *rates.Client satisfies it.
type Source interface {
	SpotPriceUSD(ctx context.Context) (float64, error)
	RecommendedFees(ctx context.Context) (types.Fees, error)
}
