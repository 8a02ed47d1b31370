// Package week computes the deterministic week identifiers that key meal
// plan rows, and the cyclic rotation used when a day's meals are refreshed.
package week

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"pantry-planner/internal/apperr"
)

// dayOffsets maps day names to offsets from the start of the week. The app
// renders weeks Sunday-first, so Sunday is day 0.
var dayOffsets = map[string]int{
	"Sunday":    0,
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
}

var weekIDPattern = regexp.MustCompile(`^(\d{4})-W(\d{1,2})$`)

// ID returns the "YYYY-Www" identifier of the week containing t. The week
// number follows the ISO rule: shift the date to the Thursday of its week,
// then count weeks from the start of that Thursday's year. The year in the
// identifier is the shifted date's year, so days near January 1st land in
// the week they belong to rather than the calendar year they fall in.
func ID(t time.Time) string {
	// Day granularity only; the time of day must not leak into the count.
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	shifted := t.AddDate(0, 0, 4-isoWeekday(t))
	year := shifted.Year()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	days := shifted.Sub(jan1).Hours() / 24
	number := int(math.Ceil(days/7 + 1.0/7.0))
	return fmt.Sprintf("%d-W%02d", year, number)
}

// DateFor returns the date of the named day inside the identified week. It
// is the inverse of ID for Monday through Saturday; Sunday sits on the week
// boundary between the Sunday-first rendering and the ISO numbering and
// resolves to the Sunday that opens the week.
func DateFor(weekID, dayName string) (time.Time, error) {
	m := weekIDPattern.FindStringSubmatch(weekID)
	if m == nil {
		return time.Time{}, apperr.Parse("malformed week identifier %q", weekID)
	}
	year, _ := strconv.Atoi(m[1])
	number, _ := strconv.Atoi(m[2])
	if number < 1 || number > 53 {
		return time.Time{}, apperr.Parse("week number %d out of range in %q", number, weekID)
	}

	offset, ok := dayOffsets[dayName]
	if !ok {
		return time.Time{}, apperr.Validation("unknown day name %q", dayName)
	}

	start := startOfWeekOne(year)
	return start.AddDate(0, 0, (number-1)*7+offset), nil
}

// DayName returns the weekday name of t as used in meal plan rows.
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// startOfWeekOne returns the Sunday that opens week 1 of the given year:
// the day before the Monday of the week containing the year's first
// Thursday.
func startOfWeekOne(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	wd := isoWeekday(jan1)
	monday := jan1
	if wd <= 4 {
		monday = jan1.AddDate(0, 0, 1-wd)
	} else {
		monday = jan1.AddDate(0, 0, 8-wd)
	}
	return monday.AddDate(0, 0, -1)
}

// isoWeekday returns Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
