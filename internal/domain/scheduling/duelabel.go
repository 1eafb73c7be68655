package scheduling

import (
	"fmt"
	"time"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
)

// Severity bands a due date by distance for label styling. It is independent
// of the status classification and is computed even for completed tasks.
type Severity int

const (
	SeverityNeutral Severity = iota
	SeverityWarning
	SeverityUrgent
)

func (s Severity) String() string {
	switch s {
	case SeverityUrgent:
		return "urgent"
	case SeverityWarning:
		return "warning"
	default:
		return "neutral"
	}
}

// DueLabel renders a human-readable distance to the task's due datetime,
// choosing the coarsest unit that fits and truncating toward zero. Tasks
// without a due date have no label, and assessments never show an overdue
// label: once the due instant passes the label disappears.
func DueLabel(t entities.Task, now time.Time) (string, bool) {
	due, ok := DueAt(t)
	if !ok {
		return "", false
	}

	diff := due.Sub(now)
	if diff >= 0 {
		return futureLabel(diff), true
	}

	if t.TaskType == entities.TaskTypeAssessment {
		return "", false
	}
	return pastLabel(-diff), true
}

// DueSeverity bands the task's due date: overdue or within 3 days is urgent,
// within 7 days is a warning, anything further out is neutral. The second
// return value is false when the task has no due date.
func DueSeverity(t entities.Task, now time.Time) (Severity, bool) {
	due, ok := DueAt(t)
	if !ok {
		return SeverityNeutral, false
	}

	days := due.Sub(now).Hours() / 24
	switch {
	case days < 0:
		return SeverityUrgent, true
	case days <= 3:
		return SeverityUrgent, true
	case days <= 7:
		return SeverityWarning, true
	default:
		return SeverityNeutral, true
	}
}

func futureLabel(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		if minutes == 0 {
			return "Due now"
		}
		return fmt.Sprintf("Due in %d %s", minutes, plural("minute", minutes))
	}

	hours := int(d.Hours())
	if hours < 24 {
		remaining := minutes - hours*60
		if remaining == 0 {
			return fmt.Sprintf("Due in %d %s", hours, plural("hour", hours))
		}
		return fmt.Sprintf("Due in %dh %dm", hours, remaining)
	}

	days := int(d.Hours() / 24)
	return fmt.Sprintf("Due in %d %s", days, plural("day", days))
}

func pastLabel(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("Due %d %s ago", minutes, plural("minute", minutes))
	}

	hours := int(d.Hours())
	if hours < 24 {
		remaining := minutes - hours*60
		if remaining == 0 {
			return fmt.Sprintf("Due %d %s ago", hours, plural("hour", hours))
		}
		return fmt.Sprintf("Due %dh %dm ago", hours, remaining)
	}

	days := int(d.Hours() / 24)
	return fmt.Sprintf("Due %d %s ago", days, plural("day", days))
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
