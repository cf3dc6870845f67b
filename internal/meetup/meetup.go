// Package meetup computes the recurring meetup date: the second
// Thursday of the month, which is also the settlement date for the
// price guessing game.
package meetup

import "time"

// secondThursday returns the second Thursday of the month containing ref.
// The offset is always derived from the weekday of the first day of
// that month, never from a previously computed Thursday.
func secondThursday(ref time.Time) time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	offset := (int(time.Thursday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7)
}

// NextMeetup returns the date of the next meetup relative to now.
// The second Thursday of the current month counts as upcoming up to
// and including the day itself; after that the next month's second
// Thursday is returned.
func NextMeetup(now time.Time) time.Time {
	candidate := secondThursday(now)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !today.After(candidate) {
		return candidate
	}

	return secondThursday(today.AddDate(0, 1, -today.Day()+1))
}

// SettlementInstant returns the next meetup date at the given local
// hour, the moment the game settles.
func SettlementInstant(now time.Time, hour int) time.Time {
	d := NextMeetup(now)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
}
