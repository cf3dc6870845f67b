// Package ledger holds the outstanding guesses for the current game
// cycle. The ledger is the only shared mutable state in the process;
// every access goes through its mutex and the lock is never held
// across a network call.
package ledger

import (
	"btc-meetup-bot/internal/types"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidGuess is returned when the submitted text is missing or is
// not a positive finite number. The ledger is left untouched.
var ErrInvalidGuess = errors.New("guess must be a positive number")

// Ledger maps a user to their most recent guess. One entry per user;
// a new submission overwrites the previous one.
type Ledger struct {
	mu      sync.Mutex
	guesses map[int64]types.Guess
	seq     uint64
}

func New() *Ledger {
	return &Ledger{guesses: make(map[int64]types.Guess)}
}

// Submit parses raw as a price guess and stores it for userID,
// replacing any earlier guess. Returns the stored value.
func (l *Ledger) Submit(userID int64, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidGuess
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, ErrInvalidGuess
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	l.guesses[userID] = types.Guess{
		UserID:      userID,
		Value:       value,
		Sequence:    l.seq,
		SubmittedAt: time.Now(),
	}
	return value, nil
}

// Drain atomically returns all outstanding guesses in submission order
// and empties the ledger. A Submit that completes before Drain begins
// is always included; one racing with the drain lands in either this
// cycle or the next, never both.
func (l *Ledger) Drain() []types.Guess {
	l.mu.Lock()
	snapshot := make([]types.Guess, 0, len(l.guesses))
	for _, g := range l.guesses {
		snapshot = append(snapshot, g)
	}
	l.guesses = make(map[int64]types.Guess)
	l.mu.Unlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].Sequence < snapshot[j].Sequence
	})
	return snapshot
}

// Len reports the number of outstanding guesses.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.guesses)
}
