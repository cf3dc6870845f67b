package ledger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

func TestSubmitInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"not a number", "not-a-number"},
		{"negative", "-50000"},
		{"zero", "0"},
		{"nan", "NaN"},
		{"inf", "+Inf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := New()
			_, err := l.Submit(1, tc.raw)
			if !errors.Is(err, ErrInvalidGuess) {
				t.Fatalf("Submit(%q) error = %v, want ErrInvalidGuess", tc.raw, err)
			}
			if l.Len() != 0 {
				t.Fatalf("ledger mutated by invalid submit, len = %d", l.Len())
			}
		})
	}
}

func TestSubmitOverwrites(t *testing.T) {
	l := New()

	if _, err := l.Submit(1, "50000"); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	value, err := l.Submit(1, "51000")
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if value != 51000 {
		t.Fatalf("stored value = %f, want 51000", value)
	}

	guesses := l.Drain()
	if len(guesses) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(guesses))
	}
	if guesses[0].UserID != 1 || guesses[0].Value != 51000 {
		t.Fatalf("unexpected entry: %+v", guesses[0])
	}
}

func TestDrainEmptiesAndOrders(t *testing.T) {
	l := New()

	l.Submit(3, "30000")
	l.Submit(1, "10000")
	l.Submit(2, "20000")

	guesses := l.Drain()
	if len(guesses) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(guesses))
	}
	wantOrder := []int64{3, 1, 2}
	for i, want := range wantOrder {
		if guesses[i].UserID != want {
			t.Fatalf("position %d: got user %d, want %d", i, guesses[i].UserID, want)
		}
	}

	if l.Len() != 0 {
		t.Fatalf("ledger not empty after drain, len = %d", l.Len())
	}
	if second := l.Drain(); len(second) != 0 {
		t.Fatalf("second drain returned %d entries", len(second))
	}
}

func TestOverwriteTakesNewSequence(t *testing.T) {
	l := New()

	l.Submit(1, "100")
	l.Submit(2, "200")
	l.Submit(1, "300") // moves user 1 behind user 2

	guesses := l.Drain()
	if len(guesses) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(guesses))
	}
	if guesses[0].UserID != 2 || guesses[1].UserID != 1 {
		t.Fatalf("unexpected order: %+v", guesses)
	}
}

func TestSubmitAfterDrainLandsNextCycle(t *testing.T) {
	l := New()

	l.Submit(1, "50000")
	first := l.Drain()
	if len(first) != 1 {
		t.Fatalf("first drain: got %d entries, want 1", len(first))
	}

	if _, err := l.Submit(2, "60000"); err != nil {
		t.Fatalf("submit after drain failed: %v", err)
	}
	second := l.Drain()
	if len(second) != 1 || second[0].UserID != 2 {
		t.Fatalf("second drain: got %+v, want single entry for user 2", second)
	}
}

func TestConcurrentSubmitAndDrain(t *testing.T) {
	l := New()
	const users = 100

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if _, err := l.Submit(id, fmt.Sprintf("%d", 10000+id)); err != nil {
				t.Errorf("submit for user %d failed: %v", id, err)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	guesses := l.Drain()
	if len(guesses) != users {
		t.Fatalf("drain returned %d entries, want %d", len(guesses), users)
	}
	for i := 1; i < len(guesses); i++ {
		if guesses[i-1].Sequence >= guesses[i].Sequence {
			t.Fatalf("snapshot not in submission order at index %d", i)
		}
	}
}
