package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
)

// testNow is the fixed reference instant the decorated-view tests classify
// against.
var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

// fakeCourseRepo is an in-memory course store honoring the listing contract:
// position key ascending with unkeyed courses last, newest first among ties.
type fakeCourseRepo struct {
	mu             sync.Mutex
	courses        map[uuid.UUID]*entities.Course
	clock          time.Time
	listCalls      int
	positionWrites int
	failPositions  map[uuid.UUID]error
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:       make(map[uuid.UUID]*entities.Course),
		clock:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		failPositions: make(map[uuid.UUID]error),
	}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *entities.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	r.clock = r.clock.Add(time.Second)
	course.CreatedAt = r.clock
	course.UpdatedAt = r.clock

	stored := *course
	r.courses[course.ID] = &stored
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	course, ok := r.courses[id]
	if !ok {
		return nil, entities.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (r *fakeCourseRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entities.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++

	var courses []*entities.Course
	for _, c := range r.courses {
		if c.UserID == userID {
			copied := *c
			courses = append(courses, &copied)
		}
	}

	sort.SliceStable(courses, func(i, j int) bool {
		a, b := courses[i], courses[j]
		switch {
		case a.DisplayOrder == nil && b.DisplayOrder == nil:
			return a.CreatedAt.After(b.CreatedAt)
		case a.DisplayOrder == nil:
			return false
		case b.DisplayOrder == nil:
			return true
		case *a.DisplayOrder != *b.DisplayOrder:
			return *a.DisplayOrder < *b.DisplayOrder
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	return courses, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *entities.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[course.ID]; !ok {
		return entities.ErrCourseNotFound
	}
	stored := *course
	r.courses[course.ID] = &stored
	return nil
}

func (r *fakeCourseRepo) UpdatePosition(_ context.Context, id uuid.UUID, position int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.positionWrites++
	if err := r.failPositions[id]; err != nil {
		return err
	}

	course, ok := r.courses[id]
	if !ok {
		return entities.ErrCourseNotFound
	}
	course.DisplayOrder = &position
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[id]; !ok {
		return entities.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

// fakeTaskRepo is an in-memory task store. Listings come back in ascending
// due-date order with undated tasks first, matching the store contract.
type fakeTaskRepo struct {
	mu      sync.Mutex
	tasks   map[uuid.UUID]*entities.Task
	courses *fakeCourseRepo
}

func newFakeTaskRepo(courses *fakeCourseRepo) *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:   make(map[uuid.UUID]*entities.Task),
		courses: courses,
	}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*entities.Task
	for _, t := range r.tasks {
		if t.CourseID == courseID {
			copied := *t
			tasks = append(tasks, &copied)
		}
	}
	sortTasksByDue(tasks)
	return tasks, nil
}

func (r *fakeTaskRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*entities.Task
	for _, t := range r.tasks {
		course, ok := r.courses.courses[t.CourseID]
		if !ok || course.UserID != userID {
			continue
		}
		copied := *t
		tasks = append(tasks, &copied)
	}
	sortTasksByDue(tasks)
	return tasks, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// sortTasksByDue orders by due date then due time, both lexical since the
// stored formats are fixed-width, with undated tasks first.
func sortTasksByDue(tasks []*entities.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		ad, bd := strOrEmpty(a.DueDate), strOrEmpty(b.DueDate)
		if ad != bd {
			return ad < bd
		}
		return strOrEmpty(a.DueTime) < strOrEmpty(b.DueTime)
	})
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var errCacheMiss = errors.New("cache miss")

// fakeCache is an in-memory JSON cache counting its traffic.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = payload
	c.sets++
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, ok := c.data[key]
	if !ok {
		return errCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
	c.deletes++
	return nil
}

func (c *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
			c.deletes++
		}
	}
	return nil
}
