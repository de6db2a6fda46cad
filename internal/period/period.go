// Package period maps calendar dates onto financial months.
//
// A financial month starts on a configurable day of the calendar month and
// runs until the day before that in the following month. It is named after
// the calendar month in which it ends, so with a start day of 25 the period
// 2024-02-25 .. 2024-03-24 is tagged "2024-03". A start day of 1 degenerates
// to plain calendar months.
//
// Every function here is pure. The start day is passed in explicitly and is
// assumed to have been validated with ValidateStartDay at the configuration
// boundary.
package period

import (
	"fmt"
	"time"
)

const (
	// MinStartDay and MaxStartDay bound the configurable start day. Capping at
	// 28 keeps every start day present in every month.
	MinStartDay = 1
	MaxStartDay = 28

	// DefaultStartDay is used when no start day has been configured.
	DefaultStartDay = 25

	// TagLayout is the time layout of a financial month tag.
	TagLayout = "2006-01"
)

// PreviousLookback is how far back PreviousTag looks to find "last month".
// It is a fixed offset rather than exact period arithmetic, so for some
// start days and dates it can land two periods back.
const PreviousLookback = 35 * 24 * time.Hour

// Period is a concrete financial month instance.
type Period struct {
	Tag   string    `json:"tag"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period bounds.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// ValidateStartDay checks that day is a usable financial month start day.
func ValidateStartDay(day int) error {
	if day < MinStartDay || day > MaxStartDay {
		return fmt.Errorf("start day must be between %d and %d, got %d", MinStartDay, MaxStartDay, day)
	}
	return nil
}

// ParseTag validates a "YYYY-MM" tag and returns the first instant of the
// calendar month it names, in UTC.
func ParseTag(tag string) (time.Time, error) {
	t, err := time.Parse(TagLayout, tag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid financial month %q: expected YYYY-MM", tag)
	}
	return t, nil
}

// Calculator holds a single start day snapshot. Use one Calculator for all
// the lookups that make up a single computation so they agree with each other
// even if the configured start day changes in the meantime.
type Calculator struct {
	startDay int
}

// NewCalculator returns a Calculator for the given start day.
func NewCalculator(startDay int) Calculator {
	return Calculator{startDay: startDay}
}

// StartDay returns the start day the calculator was built with.
func (c Calculator) StartDay() int {
	return c.startDay
}

// TagFor returns the tag of the financial month containing date.
func (c Calculator) TagFor(date time.Time) string {
	return TagFor(date, c.startDay)
}

// BoundsFor returns the financial month containing date.
func (c Calculator) BoundsFor(date time.Time) Period {
	return BoundsFor(date, c.startDay)
}

// DaysRemaining returns the number of days left in the financial month
// containing date, counting date itself.
func (c Calculator) DaysRemaining(date time.Time) int {
	return DaysRemaining(date, c.startDay)
}

// PreviousTag returns the tag used as "last month" for date.
func (c Calculator) PreviousTag(date time.Time) string {
	return PreviousTag(date, c.startDay)
}

// TagFor returns the tag of the financial month containing date. The tag is
// the calendar month in which the period ends: dates on or after the start
// day roll into the next month's budget unless the start day is 1.
func TagFor(date time.Time, startDay int) string {
	return BoundsFor(date, startDay).End.Format(TagLayout)
}

// BoundsFor returns the start (00:00:00 on the start day) and end (23:59:59
// on the day before the next start day) of the financial month containing
// date, in date's location.
func BoundsFor(date time.Time, startDay int) Period {
	year, month, day := date.Date()
	loc := date.Location()

	startMonth := month
	if day < startDay {
		startMonth = month - 1
	}

	start := time.Date(year, startMonth, startDay, 0, 0, 0, 0, loc)
	end := endOfDay(year, startMonth+1, startDay-1, loc)

	return Period{
		Tag:   end.Format(TagLayout),
		Start: start,
		End:   end,
	}
}

// DaysRemaining returns (end - date) in whole days plus one, floored at zero.
// The last day of a period therefore has one day remaining.
func DaysRemaining(date time.Time, startDay int) int {
	end := BoundsFor(date, startDay).End
	days := civilDay(end).Sub(civilDay(date)).Hours() / 24
	remaining := int(days) + 1
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PreviousTag returns TagFor(date - PreviousLookback).
func PreviousTag(date time.Time, startDay int) string {
	return TagFor(date.Add(-PreviousLookback), startDay)
}

// endOfDay returns 23:59:59 on the given day. Day zero means the last day of
// the month before, which is resolved explicitly instead of relying on
// time.Date normalisation.
func endOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	if day == 0 {
		first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		prev := first.AddDate(0, -1, 0)
		year, month = prev.Year(), prev.Month()
		day = lastDayOfMonth(year, month)
	}
	return time.Date(year, month, day, 23, 59, 59, 0, loc)
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// civilDay drops the clock and zone so day arithmetic is immune to DST.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
