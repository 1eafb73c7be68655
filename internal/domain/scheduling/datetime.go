// Package scheduling holds the pure scheduling logic: local date/time
// parsing, task status classification, due-date labelling, task ordering
// and the display-order reorder engine. Nothing in this package performs
// I/O or returns an error; absent dates are handled as sentinel values.
package scheduling

import (
	"strconv"
	"strings"
	"time"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
)

// ParseLocalDateTime parses a YYYY-MM-DD date string plus an optional
// HH:MM[:SS] time string into a local calendar datetime. A missing time
// defaults to midnight; a missing date means no datetime at all.
func ParseLocalDateTime(date, clock *string) (time.Time, bool) {
	if date == nil || *date == "" {
		return time.Time{}, false
	}

	parts := strings.SplitN(*date, "-", 3)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])

	hour, minute, second := 0, 0, 0
	if clock != nil && *clock != "" {
		clockParts := strings.SplitN(*clock, ":", 3)
		hour, _ = strconv.Atoi(clockParts[0])
		if len(clockParts) > 1 {
			minute, _ = strconv.Atoi(clockParts[1])
		}
		if len(clockParts) > 2 {
			second, _ = strconv.Atoi(clockParts[2])
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), true
}

// DueAt returns the task's due datetime, if it has one.
func DueAt(t entities.Task) (time.Time, bool) {
	return ParseLocalDateTime(t.DueDate, t.DueTime)
}

// StartAt returns the task's start datetime, if it has one.
func StartAt(t entities.Task) (time.Time, bool) {
	return ParseLocalDateTime(t.StartDate, t.StartTime)
}

// dueOrZero treats a missing due date as the zero time so that undated
// tasks sort before everything else.
func dueOrZero(t entities.Task) time.Time {
	due, ok := DueAt(t)
	if !ok {
		return time.Time{}
	}
	return due
}
