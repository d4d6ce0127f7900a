// Package weeks counts the weeks of a life and classifies each week of the
// grid relative to the present.
//
// All functions are pure; "now" is always passed in. [ElapsedSince] works on
// local calendar dates, so daylight saving transitions never shift a count.
package weeks

import (
	"time"

	"github.com/matzehuels/weeks/pkg/errors"
)

// Total is the number of weeks in the grid.
const Total = 4000

// Week is seven 24-hour days.
const Week = 7 * 24 * time.Hour

// Phase classifies a week index relative to the weeks lived.
type Phase int

const (
	Past Phase = iota
	Present
	Future
)

func (p Phase) String() string {
	switch p {
	case Past:
		return "past"
	case Present:
		return "present"
	case Future:
		return "future"
	}
	return "unknown"
}

// Elapsed returns floor((now − birth) / 7 days) clamped to [0, total].
func Elapsed(birth, now time.Time, total int) int {
	d := now.Sub(birth)
	if d <= 0 {
		return 0
	}
	return clampWeeks(int64(d/Week), total)
}

// ElapsedSince is [Elapsed] for an ISO birth date, counted in whole calendar
// days in now's location.
func ElapsedSince(date string, now time.Time, total int) (int, error) {
	birth, err := parseDate(date, now.Location())
	if err != nil {
		return 0, err
	}
	days := civilDays(now) - civilDays(birth)
	if days <= 0 {
		return 0, nil
	}
	return clampWeeks(days/7, total), nil
}

// ValidateBirthDate checks that date is an ISO date strictly before the
// calendar day of now.
func ValidateBirthDate(date string, now time.Time) error {
	birth, err := parseDate(date, now.Location())
	if err != nil {
		return err
	}
	if civilDays(birth) >= civilDays(now) {
		return errors.New(errors.ErrCodeInvalidDate, "birth date %s is not in the past", date)
	}
	return nil
}

// Today returns the ISO calendar date of now.
func Today(now time.Time) string {
	return now.Format(errors.ISODateLayout)
}

// Classify returns the phase of the week at index given the weeks lived:
// indices below lived are past, lived itself is present, the rest future.
func Classify(index, lived int) Phase {
	switch {
	case index < lived:
		return Past
	case index == lived:
		return Present
	default:
		return Future
	}
}

// Remaining returns max(total − lived, 0).
func Remaining(lived, total int) int {
	return max(total-lived, 0)
}

// Counts summarizes a life in weeks.
type Counts struct {
	Lived     int `json:"lived"`
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

// Count computes the week counts for an ISO birth date.
func Count(date string, now time.Time, total int) (Counts, error) {
	lived, err := ElapsedSince(date, now, total)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Lived: lived, Remaining: Remaining(lived, total), Total: total}, nil
}

func parseDate(date string, loc *time.Location) (time.Time, error) {
	if err := errors.ValidateISODate(date); err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(errors.ISODateLayout, date, loc)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidDate, err, "parse %q", date)
	}
	return t, nil
}

// civilDays numbers the calendar day of t in t's own location.
func civilDays(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func clampWeeks(w int64, total int) int {
	if total < 0 {
		total = 0
	}
	if w > int64(total) {
		return total
	}
	return int(w)
}
