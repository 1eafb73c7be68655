package services

import (
	"time"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
	"github.com/24kewang/schedule-manager/internal/domain/scheduling"
	"github.com/24kewang/schedule-manager/internal/ports"
)

// View assembly: sort, filter and decorate tasks the way the client shows
// them. Sorting happens before filtering so that filtering never changes
// the relative order of the tasks that survive it.

func buildAssignmentViews(tasks []entities.Task, now time.Time, filter ports.TaskListFilter) []ports.TaskView {
	sorted := scheduling.SortAssignments(tasks, now)
	filtered := scheduling.FilterAssignments(sorted, assignmentStatusSet(filter.Statuses), filter.StarredOnly, now)

	views := make([]ports.TaskView, len(filtered))
	for i := range filtered {
		t := filtered[i]
		views[i] = decorate(t, scheduling.ClassifyAssignment(t, now).String(), now)
	}
	return views
}

func buildAssessmentViews(tasks []entities.Task, now time.Time, filter ports.TaskListFilter) []ports.TaskView {
	sorted := scheduling.SortAssessments(tasks, now)
	filtered := scheduling.FilterAssessments(sorted, assessmentStatusSet(filter.Statuses), filter.StarredOnly, now)

	views := make([]ports.TaskView, len(filtered))
	for i := range filtered {
		t := filtered[i]
		views[i] = decorate(t, scheduling.ClassifyAssessment(t, now).String(), now)
	}
	return views
}

func decorate(t entities.Task, status string, now time.Time) ports.TaskView {
	view := ports.TaskView{Task: &t, Status: status}

	if label, ok := scheduling.DueLabel(t, now); ok {
		view.DueLabel = &label
	}
	severity, _ := scheduling.DueSeverity(t, now)
	view.Severity = severity.String()

	if label, ok := scheduling.DueDateLabel(t); ok {
		view.DueDateLabel = &label
	}
	if label, ok := scheduling.StartDateLabel(t); ok {
		view.StartDateLabel = &label
	}

	return view
}

func assignmentStatusSet(names []string) map[scheduling.AssignmentStatus]bool {
	if len(names) == 0 {
		return nil
	}
	allowed := make(map[scheduling.AssignmentStatus]bool, len(names))
	for _, name := range names {
		switch name {
		case "overdue":
			allowed[scheduling.AssignmentOverdue] = true
		case "current":
			allowed[scheduling.AssignmentCurrent] = true
		case "upcoming":
			allowed[scheduling.AssignmentUpcoming] = true
		case "completed":
			allowed[scheduling.AssignmentCompleted] = true
		}
	}
	return allowed
}

func assessmentStatusSet(names []string) map[scheduling.AssessmentStatus]bool {
	if len(names) == 0 {
		return nil
	}
	allowed := make(map[scheduling.AssessmentStatus]bool, len(names))
	for _, name := range names {
		switch name {
		case "imminent":
			allowed[scheduling.AssessmentImminent] = true
		case "upcoming":
			allowed[scheduling.AssessmentUpcoming] = true
		case "completed":
			allowed[scheduling.AssessmentCompleted] = true
		}
	}
	return allowed
}

func derefTasks(tasks []*entities.Task) []entities.Task {
	out := make([]entities.Task, len(tasks))
	for i, t := range tasks {
		out[i] = *t
	}
	return out
}
