package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
)

func newTestContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestDomainError_StatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"course not found", entities.ErrCourseNotFound, http.StatusNotFound},
		{"task not found", entities.ErrTaskNotFound, http.StatusNotFound},
		{"empty title", entities.ErrEmptyTitle, http.StatusBadRequest},
		{"empty name", entities.ErrEmptyName, http.StatusBadRequest},
		{"invalid task type", entities.ErrInvalidTaskType, http.StatusBadRequest},
		{"assessment completion", entities.ErrAssessmentCompletion, http.StatusBadRequest},
		{"invalid move index", entities.ErrInvalidMoveIndex, http.StatusBadRequest},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var httpErr *echo.HTTPError
			if !errors.As(domainError(tc.err), &httpErr) {
				t.Fatal("expected an echo.HTTPError")
			}
			if httpErr.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, httpErr.Code)
			}
		})
	}
}

func TestDomainError_WrappedErrorsStillMap(t *testing.T) {
	t.Parallel()

	wrapped := errors.Join(errors.New("context"), entities.ErrCourseNotFound)

	var httpErr *echo.HTTPError
	if !errors.As(domainError(wrapped), &httpErr) {
		t.Fatal("expected an echo.HTTPError")
	}
	if httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", httpErr.Code)
	}
}

func TestTaskListFilter_QueryParams(t *testing.T) {
	t.Parallel()

	c := newTestContext("/courses/x/tasks?statuses=overdue,current&starred=true")
	filter := taskListFilter(c)

	if len(filter.Statuses) != 2 || filter.Statuses[0] != "overdue" || filter.Statuses[1] != "current" {
		t.Fatalf("expected [overdue current], got %v", filter.Statuses)
	}
	if !filter.StarredOnly {
		t.Fatal("expected starred-only to be set")
	}
}

func TestTaskListFilter_Defaults(t *testing.T) {
	t.Parallel()

	filter := taskListFilter(newTestContext("/courses/x/tasks"))

	if filter.Statuses != nil {
		t.Fatalf("expected no status filter, got %v", filter.Statuses)
	}
	if filter.StarredOnly {
		t.Fatal("expected starred-only to be unset")
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	c := newTestContext("/")
	c.Set("user", id.String())
	if got := getUserIDFromContext(c); got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}

	if got := getUserIDFromContext(newTestContext("/")); got != uuid.Nil {
		t.Fatalf("expected uuid.Nil without a user, got %s", got)
	}

	c = newTestContext("/")
	c.Set("user", "not-a-uuid")
	if got := getUserIDFromContext(c); got != uuid.Nil {
		t.Fatalf("expected uuid.Nil for a malformed user, got %s", got)
	}
}
