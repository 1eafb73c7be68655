package scheduling

import (
	"fmt"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
)

// AbsoluteLabel renders a stored date, and optionally its time, as a
// calendar label such as "Wed 3/12/2025 2:30 PM". The weekday prefix is
// always present; the 12-hour clock suffix only when a time was given.
// A missing date yields no label.
func AbsoluteLabel(date, clock *string) (string, bool) {
	at, ok := ParseLocalDateTime(date, clock)
	if !ok {
		return "", false
	}

	label := fmt.Sprintf("%s %d/%d/%d",
		at.Weekday().String()[:3], int(at.Month()), at.Day(), at.Year())

	if clock == nil || *clock == "" {
		return label, true
	}

	hour := at.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "AM"
	if at.Hour() >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%s %d:%02d %s", label, hour, at.Minute(), meridiem), true
}

// DueDateLabel renders the task's due datetime as an absolute label.
func DueDateLabel(t entities.Task) (string, bool) {
	return AbsoluteLabel(t.DueDate, t.DueTime)
}

// StartDateLabel renders the task's start datetime as an absolute label.
func StartDateLabel(t entities.Task) (string, bool) {
	return AbsoluteLabel(t.StartDate, t.StartTime)
}
