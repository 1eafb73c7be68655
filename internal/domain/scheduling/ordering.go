package scheduling

import (
	"sort"
	"time"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
)

// sortByDue returns a copy of tasks in ascending due-datetime order.
// Undated tasks sort first. This is the stable base order every composite
// sort builds on.
func sortByDue(tasks []entities.Task) []entities.Task {
	sorted := make([]entities.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dueOrZero(sorted[i]).Before(dueOrZero(sorted[j]))
	})
	return sorted
}

// SortAssignments orders assignments for display: incomplete before
// complete, starred before unstarred, then by status rank. Ties keep the
// ascending due-date order.
func SortAssignments(tasks []entities.Task, now time.Time) []entities.Task {
	sorted := sortByDue(tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsCompleted != b.IsCompleted {
			return !a.IsCompleted
		}
		if a.IsStarred != b.IsStarred {
			return a.IsStarred
		}
		return ClassifyAssignment(a, now) < ClassifyAssignment(b, now)
	})
	return sorted
}

// SortAssessments orders assessments for display: starred before unstarred,
// then by status rank. Ties keep the ascending due-date order.
func SortAssessments(tasks []entities.Task, now time.Time) []entities.Task {
	sorted := sortByDue(tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsStarred != b.IsStarred {
			return a.IsStarred
		}
		return ClassifyAssessment(a, now) < ClassifyAssessment(b, now)
	})
	return sorted
}

// FilterAssignments keeps assignments whose status is in allowed, optionally
// restricted to starred ones. A nil allowed set admits every status. The
// relative order of survivors is preserved.
func FilterAssignments(tasks []entities.Task, allowed map[AssignmentStatus]bool, starredOnly bool, now time.Time) []entities.Task {
	filtered := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if allowed != nil && !allowed[ClassifyAssignment(t, now)] {
			continue
		}
		if starredOnly && !t.IsStarred {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// FilterAssessments keeps assessments whose status is in allowed, optionally
// restricted to starred ones. A nil allowed set admits every status.
func FilterAssessments(tasks []entities.Task, allowed map[AssessmentStatus]bool, starredOnly bool, now time.Time) []entities.Task {
	filtered := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if allowed != nil && !allowed[ClassifyAssessment(t, now)] {
			continue
		}
		if starredOnly && !t.IsStarred {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// SplitByType separates a course's tasks into assignments and assessments,
// preserving order.
func SplitByType(tasks []entities.Task) (assignments, assessments []entities.Task) {
	for _, t := range tasks {
		if t.IsAssignment() {
			assignments = append(assignments, t)
		} else {
			assessments = append(assessments, t)
		}
	}
	return assignments, assessments
}
