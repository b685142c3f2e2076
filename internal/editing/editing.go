// Package editing holds the two draft sessions a user can have open on a
// task: an inline text edit and a due-date picker.
//
// Sessions are values. Each transition returns the next session, and the
// transitions that commit also return the updated store.
package editing

import (
	"taskpad/internal/storage"
)

// TextSession is either idle or editing one task's text.
type TextSession struct {
	TaskID string
	Draft  string
	active bool
}

func (s TextSession) Active() bool {
	return s.active
}

// Start begins editing t, seeding the draft with its current text.
func (s TextSession) Start(t storage.Task) TextSession {
	return TextSession{TaskID: t.ID, Draft: t.Text, active: true}
}

func (s TextSession) Change(text string) TextSession {
	if !s.active {
		return s
	}
	s.Draft = text
	return s
}

// Commit writes the draft back. A blank draft deletes the task.
func (s TextSession) Commit(store storage.Store) (TextSession, storage.Store) {
	if !s.active {
		return s, store
	}
	return TextSession{}, store.SetText(s.TaskID, s.Draft)
}

func (s TextSession) Cancel() TextSession {
	return TextSession{}
}
