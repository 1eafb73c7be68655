package scheduling_test

import (
	"testing"
	"time"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
	"github.com/24kewang/schedule-manager/internal/domain/scheduling"
)

// labelBase is a whole-minute instant: due times are stored at HH:MM
// granularity, so a whole-minute reference keeps offsets exact.
var labelBase = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

func TestDueLabel_Future(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		offset time.Duration
		want   string
	}{
		{"zero distance is due now", 0, "Due now"},
		{"one minute", time.Minute, "Due in 1 minute"},
		{"ninety seconds floors to one minute", 90 * time.Second, "Due in 1 minute"},
		{"minutes pluralize", 5 * time.Minute, "Due in 5 minutes"},
		{"whole hours", 2 * time.Hour, "Due in 2 hours"},
		{"hours and minutes", 90 * time.Minute, "Due in 1h 30m"},
		{"just under a day", 23*time.Hour + 59*time.Minute, "Due in 23h 59m"},
		{"exactly a day switches to days", 24 * time.Hour, "Due in 1 day"},
		{"single day", 25 * time.Hour, "Due in 1 day"},
		{"days pluralize", 72 * time.Hour, "Due in 3 days"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			task := assignmentDue(labelBase.Add(tc.offset))

			got, ok := scheduling.DueLabel(task, labelBase)
			if !ok {
				t.Fatal("expected a label")
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDueLabel_PastAssignment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		offset time.Duration
		want   string
	}{
		{"minutes ago", 5 * time.Minute, "Due 5 minutes ago"},
		{"hours and minutes ago", 90 * time.Minute, "Due 1h 30m ago"},
		{"whole hours ago", 3 * time.Hour, "Due 3 hours ago"},
		{"days ago", 49 * time.Hour, "Due 2 days ago"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			task := assignmentDue(labelBase)

			got, ok := scheduling.DueLabel(task, labelBase.Add(tc.offset))
			if !ok {
				t.Fatal("expected a label")
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDueLabel_PastAssessmentHasNoLabel(t *testing.T) {
	t.Parallel()

	task := assessmentDue(labelBase)

	if label, ok := scheduling.DueLabel(task, labelBase.Add(time.Hour)); ok {
		t.Fatalf("expected no label for an elapsed assessment, got %q", label)
	}
}

func TestDueLabel_NoDueDate(t *testing.T) {
	t.Parallel()

	task := entities.Task{TaskType: entities.TaskTypeAssignment}

	if label, ok := scheduling.DueLabel(task, labelBase); ok {
		t.Fatalf("expected no label without a due date, got %q", label)
	}
}

func TestDueSeverity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		offset time.Duration
		want   scheduling.Severity
	}{
		{"overdue is urgent", -time.Hour, scheduling.SeverityUrgent},
		{"two days out is urgent", 2 * 24 * time.Hour, scheduling.SeverityUrgent},
		{"five days out is a warning", 5 * 24 * time.Hour, scheduling.SeverityWarning},
		{"ten days out is neutral", 10 * 24 * time.Hour, scheduling.SeverityNeutral},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			task := assignmentDue(labelBase.Add(tc.offset))

			got, ok := scheduling.DueSeverity(task, labelBase)
			if !ok {
				t.Fatal("expected a severity")
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDueSeverity_NoDueDate(t *testing.T) {
	t.Parallel()

	task := entities.Task{TaskType: entities.TaskTypeAssessment}

	if _, ok := scheduling.DueSeverity(task, labelBase); ok {
		t.Fatal("expected no severity without a due date")
	}
}
