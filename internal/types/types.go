package types

import "time"

// Guess is a single user's outstanding price prediction.
type Guess struct {
	UserID      int64     `json:"user_id"`
	Value       float64   `json:"value"`
	Sequence    uint64    `json:"sequence"` // submission order, used for tie-breaks
	SubmittedAt time.Time `json:"submitted_at"`
}

// ResolutionResult is the outcome of one settlement cycle.
// WinnerUserID is zero when the ledger was empty at settlement time.
type ResolutionResult struct {
	WinnerUserID    int64   `json:"winner_user_id,omitempty"`
	WinningGuess    float64 `json:"winning_guess,omitempty"`
	SettlementPrice float64 `json:"settlement_price"`
}

// Fees are the recommended transaction fee tiers in sat/vB.
type Fees struct {
	Fastest  int64 `json:"fastestFee"`
	HalfHour int64 `json:"halfHourFee"`
	Hour     int64 `json:"hourFee"`
	Economy  int64 `json:"economyFee"`
	Minimum  int64 `json:"minimumFee"`
}
