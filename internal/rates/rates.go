// Package rates fetches spot price and fee data from the public
// BitPay and mempool.space endpoints. Single source, no retry; any
// failure is the caller's problem for that one invocation.
package rates

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"btc-meetup-bot/internal/types"

	"github.com/pkg/errors"
)

const (
	spotPriceURL = "https://bitpay.com/api/rates/BTC/USD"
	feesURL      = "https://mempool.space/api/v1/fees/recommended"
)

// Client talks to the price and fee endpoints with a bounded timeout.
type Client struct {
	httpClient *http.Client

	// overridable in tests
	spotURL string
	feeURL  string
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		spotURL:    spotPriceURL,
		feeURL:     feesURL,
	}
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s failed", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "could not decode response from %s", url)
	}
	return nil
}

// SpotPriceUSD returns the current BTC price in USD.
func (c *Client) SpotPriceUSD(ctx context.Context) (float64, error) {
	var payload struct {
		Rate float64 `json:"rate"`
	}
	if err := c.getJSON(ctx, c.spotURL, &payload); err != nil {
		return 0, errors.Wrap(err, "fetching spot price")
	}
	if payload.Rate <= 0 {
		return 0, errors.Errorf("spot price source returned invalid rate %f", payload.Rate)
	}
	return payload.Rate, nil
}

// RecommendedFees returns the current recommended fee tiers in sat/vB.
func (c *Client) RecommendedFees(ctx context.Context) (types.Fees, error) {
	var fees types.Fees
	if err := c.getJSON(ctx, c.feeURL, &fees); err != nil {
		return types.Fees{}, errors.Wrap(err, "fetching recommended fees")
	}
	return fees, nil
}
