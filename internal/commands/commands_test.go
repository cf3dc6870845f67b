package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"btc-meetup-bot/internal/ledger"
	"btc-meetup-bot/internal/types"

	"github.com/pkg/errors"
)

type fakeSource struct {
	price    float64
	priceErr error
	fees     types.Fees
	feesErr  error
}

func (f *fakeSource) SpotPriceUSD(_ context.Context) (float64, error) {
	return f.price, f.priceErr
}

func (f *fakeSource) RecommendedFees(_ context.Context) (types.Fees, error) {
	return f.fees, f.feesErr
}

func TestCommandPrice(t *testing.T) {
	src := &fakeSource{price: 97000}

	text, err := CommandPrice(context.Background(), src)
	if err != nil {
		t.Fatalf("CommandPrice failed: %v", err)
	}
	if !strings.Contains(text, "97,000") {
		t.Fatalf("reply missing formatted price: %q", text)
	}
}

func TestCommandPriceUpstreamFailure(t *testing.T) {
	src := &fakeSource{priceErr: errors.New("down")}

	if _, err := CommandPrice(context.Background(), src); err == nil {
		t.Fatal("expected error when the source is down")
	}
}

func TestCommandFeeListsAllTiers(t *testing.T) {
	src := &fakeSource{
		price: 100000,
		fees:  types.Fees{Fastest: 12, HalfHour: 10, Hour: 8, Economy: 4, Minimum: 2},
	}

	text, err := CommandFee(context.Background(), src)
	if err != nil {
		t.Fatalf("CommandFee failed: %v", err)
	}

	for _, want := range []string{"No Priority", "Low Priority", "Medium Priority", "High Priority", "Fastest"} {
		if !strings.Contains(text, want) {
			t.Fatalf("reply missing tier %q: %q", want, text)
		}
	}
	// 12 sat/vB * 140 vB at $100k is $1.68
	if !strings.Contains(text, `1\.68`) {
		t.Fatalf("reply missing USD cost estimate: %q", text)
	}
}

func TestCommandNextMeetup(t *testing.T) {
	now := time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC)

	text := CommandNextMeetup(now)
	if !strings.Contains(text, "Thursday") || !strings.Contains(text, "12 December 2024") {
		t.Fatalf("unexpected reply: %q", text)
	}
}

func TestCommandGuess(t *testing.T) {
	l := ledger.New()

	text, err := CommandGuess(l, 7, "105000", time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CommandGuess failed: %v", err)
	}
	if !strings.Contains(text, "105,000") {
		t.Fatalf("reply missing echoed guess: %q", text)
	}
	if l.Len() != 1 {
		t.Fatalf("guess not stored")
	}
}

func TestCommandGuessInvalidFormat(t *testing.T) {
	l := ledger.New()

	_, err := CommandGuess(l, 7, "to the moon", time.Now())
	if !errors.Is(err, ledger.ErrInvalidGuess) {
		t.Fatalf("error = %v, want ErrInvalidGuess", err)
	}
	if l.Len() != 0 {
		t.Fatalf("ledger mutated by invalid guess")
	}
}

func TestCommandRestricted(t *testing.T) {
	if text := CommandRestricted(false); !strings.Contains(text, "not authorized") {
		t.Fatalf("unexpected reply for blocked user: %q", text)
	}
	if text := CommandRestricted(true); strings.Contains(text, "not authorized") {
		t.Fatalf("unexpected reply for allowed user: %q", text)
	}
}
