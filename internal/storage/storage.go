// Package storage holds the in-memory task list as immutable snapshots.
//
// Every mutating operation returns a new Store and leaves the receiver
// untouched, so a caller can keep one "current" value and replace it
// wholesale after each command.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrBlankText  = fmt.Errorf("%w: task text is blank", ErrValidation)
	ErrNotFound   = errors.New("task not found")
)

// newID is swapped in tests that need predictable identifiers.
var newID = uuid.NewString

type Task struct {
	ID        string
	Text      string
	Completed bool
	Due       time.Time
	Notified  bool
}

// HasDue reports whether a due date is set. The zero time means no due date.
func (t Task) HasDue() bool {
	return !t.Due.IsZero()
}

type Store struct {
	tasks []Task
}

func New(tasks ...Task) Store {
	return Store{tasks: append([]Task(nil), tasks...)}
}

// Seed returns the sample list every session starts with.
func Seed() Store {
	s := Store{}
	for _, text := range []string{"Plan a weekend trip", "Learn React", "Read a book"} {
		s, _ = s.Add(text)
	}
	return s.Toggle(s.tasks[1].ID)
}

func (s Store) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

func (s Store) Len() int {
	return len(s.tasks)
}

func (s Store) IndexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s Store) Find(id string) (Task, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Get is Find for callers that prefer an error.
func (s Store) Get(id string) (Task, error) {
	t, ok := s.Find(id)
	if !ok {
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

// Add appends a new open task. Blank text leaves the store unchanged and
// returns ErrBlankText.
func (s Store) Add(text string) (Store, error) {
	if strings.TrimSpace(text) == "" {
		return s, ErrBlankText
	}
	next := make([]Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, Task{ID: newID(), Text: text})
	return Store{tasks: next}, nil
}

func (s Store) Toggle(id string) Store {
	return s.update(id, func(t *Task) { t.Completed = !t.Completed })
}

func (s Store) Delete(id string) Store {
	i := s.IndexOf(id)
	if i < 0 {
		return s
	}
	next := make([]Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	return Store{tasks: next}
}

// SetText replaces the task text. Committing blank text deletes the task.
func (s Store) SetText(id, text string) Store {
	if strings.TrimSpace(text) == "" {
		return s.Delete(id)
	}
	return s.update(id, func(t *Task) { t.Text = text })
}

// SetDue sets the due date and re-arms the notification.
func (s Store) SetDue(id string, due time.Time) Store {
	return s.update(id, func(t *Task) {
		t.Due = due
		t.Notified = false
	})
}

func (s Store) MarkNotified(ids map[string]struct{}) Store {
	if len(ids) == 0 {
		return s
	}
	changed := false
	next := s.Tasks()
	for i := range next {
		if _, ok := ids[next[i].ID]; ok {
			next[i].Notified = true
			changed = true
		}
	}
	if !changed {
		return s
	}
	return Store{tasks: next}
}

func (s Store) update(id string, fn func(*Task)) Store {
	i := s.IndexOf(id)
	if i < 0 {
		return s
	}
	next := s.Tasks()
	fn(&next[i])
	return Store{tasks: next}
}
