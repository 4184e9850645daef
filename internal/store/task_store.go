package store

import (
	"sort"
	"sync"
	"time"

	"todoapi/internal/model"
)

// dueDateSentinel stands in for a missing due date so undated tasks
// sort as latest-possible under ascending order.
const dueDateSentinel = "9999-12-31"

// TaskStore holds all task records for the lifetime of the process.
// Id assignment and every lookup-then-mutate sequence run under the
// store's lock.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int]*model.Task
	nextID int
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks:  make(map[int]*model.Task),
		nextID: 1,
	}
}

// List returns the caller's tasks filtered, sorted, and truncated per
// opts. It never errors; no matches is an empty slice.
func (s *TaskStore) List(userID int, opts model.ListOptions) []model.Task {
	s.mu.RLock()
	out := make([]model.Task, 0)
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if opts.Completed != nil && t.Completed != *opts.Completed {
			continue
		}
		out = append(out, *t)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if opts.Order == "asc" {
			return taskLess(&out[i], &out[j], opts.SortBy)
		}
		return taskLess(&out[j], &out[i], opts.SortBy)
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// taskLess orders a before b in ascending order of the given sort key,
// breaking ties by id so list output is deterministic.
func taskLess(a, b *model.Task, sortBy string) bool {
	switch sortBy {
	case model.SortByDueDate:
		ad, bd := a.DueDate, b.DueDate
		if ad == "" {
			ad = dueDateSentinel
		}
		if bd == "" {
			bd = dueDateSentinel
		}
		if ad != bd {
			return ad < bd
		}
	case model.SortByTitle:
		if a.Title != b.Title {
			return a.Title < b.Title
		}
	case model.SortByUpdatedAt:
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
	default: // createdAt
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}

// Get returns the task with the given id when the caller owns it.
func (s *TaskStore) Get(userID, id int) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return model.Task{}, false
	}
	return *t, true
}

// Create inserts a new task owned by the caller and returns it.
func (s *TaskStore) Create(userID int, title, description, dueDate string, completed bool) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	t := &model.Task{
		ID:          s.nextID,
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.tasks[t.ID] = t

	return *t
}

// Replace overwrites every mutable field of an owned task.
func (s *TaskStore) Replace(userID, id int, title, description, dueDate string, completed bool) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return model.Task{}, false
	}
	t.Title = title
	t.Description = description
	t.DueDate = dueDate
	t.Completed = completed
	t.UpdatedAt = time.Now().UTC()

	return *t, true
}

// Patch applies only the fields present in the request to an owned
// task; absent fields keep their prior values.
func (s *TaskStore) Patch(userID, id int, patch model.PatchTaskRequest) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return model.Task{}, false
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now().UTC()

	return *t, true
}

// Delete removes an owned task and returns it.
func (s *TaskStore) Delete(userID, id int) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return model.Task{}, false
	}
	delete(s.tasks, id)

	return *t, true
}

// DeleteAll removes every task owned by the caller and returns the
// count removed.
func (s *TaskStore) DeleteAll(userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, t := range s.tasks {
		if t.UserID == userID {
			delete(s.tasks, id)
			count++
		}
	}
	return count
}
