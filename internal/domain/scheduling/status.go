package scheduling

import (
	"time"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
)

// AssignmentStatus classifies an assignment relative to the current time.
// The declaration order doubles as the sort rank.
type AssignmentStatus int

const (
	AssignmentOverdue AssignmentStatus = iota
	AssignmentCurrent
	AssignmentUpcoming
	AssignmentCompleted
)

func (s AssignmentStatus) String() string {
	switch s {
	case AssignmentOverdue:
		return "overdue"
	case AssignmentCurrent:
		return "current"
	case AssignmentUpcoming:
		return "upcoming"
	case AssignmentCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// AssessmentStatus classifies an assessment relative to the current time.
// Assessments have no completion flag: they complete by elapsing.
type AssessmentStatus int

const (
	AssessmentImminent AssessmentStatus = iota
	AssessmentUpcoming
	AssessmentCompleted
)

func (s AssessmentStatus) String() string {
	switch s {
	case AssessmentImminent:
		return "imminent"
	case AssessmentUpcoming:
		return "upcoming"
	case AssessmentCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// imminentWindow is how close an assessment due date must be to count as
// imminent, inclusive.
const imminentWindow = 7 * 24 * time.Hour

// ClassifyAssignment maps an assignment and the current instant to a status.
// The completion flag wins over everything else; an undated assignment with
// no start date is upcoming.
func ClassifyAssignment(t entities.Task, now time.Time) AssignmentStatus {
	if t.IsCompleted {
		return AssignmentCompleted
	}

	due, hasDue := DueAt(t)
	if hasDue && due.Before(now) {
		return AssignmentOverdue
	}

	if start, ok := StartAt(t); ok {
		if now.Before(start) {
			return AssignmentUpcoming
		}
		return AssignmentCurrent
	}

	if hasDue && !due.Before(now) {
		return AssignmentCurrent
	}
	return AssignmentUpcoming
}

// ClassifyAssessment maps an assessment and the current instant to a status.
func ClassifyAssessment(t entities.Task, now time.Time) AssessmentStatus {
	due, ok := DueAt(t)
	if !ok {
		return AssessmentUpcoming
	}

	if due.Before(now) {
		return AssessmentCompleted
	}

	if due.Sub(now) <= imminentWindow {
		return AssessmentImminent
	}
	return AssessmentUpcoming
}
