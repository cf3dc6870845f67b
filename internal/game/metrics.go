package game

import "github.com/prometheus/client_golang/prometheus"

var (
	GuessesSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meetupbot",
		Subsystem: "game",
		Name:      "guesses_submitted",
		Help:      "The total number of accepted price guesses",
	})
	OpenGuesses = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "meetupbot",
		Subsystem: "game",
		Name:      "open_guesses",
		Help:      "The number of guesses outstanding in the current cycle",
	})
	SettlementsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meetupbot",
		Subsystem: "game",
		Name:      "settlements_total",
		Help:      "The total number of completed settlement cycles",
	})
	SettlementFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meetupbot",
		Subsystem: "game",
		Name:      "settlement_failures",
		Help:      "The total number of settlement cycles aborted on price fetch failure",
	})
	WinnersAnnounced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meetupbot",
		Subsystem: "game",
		Name:      "winners_announced",
		Help:      "The total number of winner notifications sent",
	})
)

func init() {
	prometheus.MustRegister(GuessesSubmitted)
	prometheus.MustRegister(OpenGuesses)
	prometheus.MustRegister(SettlementsTotal)
	prometheus.MustRegister(SettlementFailures)
	prometheus.MustRegister(WinnersAnnounced)
}
