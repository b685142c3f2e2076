package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/notify"
	"taskpad/internal/storage"
)

type recorder struct {
	bodies []string
}

func (r *recorder) Notify(title, body string) {
	r.bodies = append(r.bodies, title+"|"+body)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTick_NotifiesOnceAndMarks(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	store := storage.New(storage.Task{ID: "a", Text: "water plants", Due: now.Add(-time.Second)})
	rec := &recorder{}
	s := New(rec, time.Second, WithClock(fixedClock(now)))

	store, fired := s.Tick(store)
	require.Len(t, fired, 1)
	assert.Equal(t, []string{"Task Due!|water plants"}, rec.bodies)
	got, _ := store.Find("a")
	assert.True(t, got.Notified)

	store, fired = s.Tick(store)
	assert.Empty(t, fired)
	assert.Len(t, rec.bodies, 1)
}

func TestTick_CompletedTaskNeverNotified(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	store := storage.New(storage.Task{ID: "a", Text: "water plants", Due: now.Add(-time.Second), Completed: true})
	rec := &recorder{}
	s := New(rec, time.Second, WithClock(fixedClock(now)))

	for range 3 {
		store, _ = s.Tick(store)
	}

	assert.Empty(t, rec.bodies)
	got, _ := store.Find("a")
	assert.False(t, got.Notified)
}

func TestTick_UncompletingRestoresEligibility(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	store := storage.New(storage.Task{ID: "a", Text: "water plants", Due: now.Add(-time.Minute), Completed: true})
	rec := &recorder{}
	s := New(rec, time.Second, WithClock(fixedClock(now)))

	store, _ = s.Tick(store)
	assert.Empty(t, rec.bodies)

	store = store.Toggle("a")
	store, fired := s.Tick(store)
	assert.Len(t, fired, 1)
	assert.Equal(t, []string{"Task Due!|water plants"}, rec.bodies)
}

func TestTick_FutureAndUndatedTasksIgnored(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	store := storage.New(
		storage.Task{ID: "future", Text: "later", Due: now.Add(time.Hour)},
		storage.Task{ID: "undated", Text: "whenever"},
		storage.Task{ID: "exact", Text: "now", Due: now},
	)
	rec := &recorder{}
	s := New(rec, time.Second, WithClock(fixedClock(now)))

	_, fired := s.Tick(store)
	require.Len(t, fired, 1)
	assert.Equal(t, "exact", fired[0].ID)
}

func TestTick_StoreOrderAndCatchUp(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	store := storage.New(
		storage.Task{ID: "b", Text: "second", Due: start.Add(2 * time.Minute)},
		storage.Task{ID: "a", Text: "first", Due: start.Add(time.Minute)},
	)
	rec := &recorder{}
	now := start
	s := New(rec, time.Second, WithClock(func() time.Time { return now }))

	store, fired := s.Tick(store)
	assert.Empty(t, fired)

	// A long suspension skips many ticks; the next one catches both up.
	now = start.Add(time.Hour)
	_, fired = s.Tick(store)
	require.Len(t, fired, 2)
	assert.Equal(t, []string{"Task Due!|second", "Task Due!|first"}, rec.bodies)
}

func TestTick_RescheduleRearms(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	store := storage.New(storage.Task{ID: "a", Text: "stretch", Due: now.Add(-time.Second)})
	rec := &recorder{}
	s := New(rec, time.Second, WithClock(fixedClock(now)))

	store, _ = s.Tick(store)
	store = store.SetDue("a", now.Add(-time.Millisecond))
	_, fired := s.Tick(store)

	assert.Len(t, fired, 1)
	assert.Len(t, rec.bodies, 2)
}

func TestTick_NothingDueReturnsSameStore(t *testing.T) {
	store := storage.New(storage.Task{ID: "a", Text: "A"})
	s := New(nil, 0)

	next, fired := s.Tick(store)
	assert.Nil(t, fired)
	assert.Equal(t, store, next)
}

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(notify.Noop{}, 0).Interval())
	assert.Equal(t, DefaultInterval, New(notify.Noop{}, -time.Second).Interval())
	assert.Equal(t, 5*time.Second, New(notify.Noop{}, 5*time.Second).Interval())
}

func TestWait_ProducesTickMsg(t *testing.T) {
	s := New(notify.Noop{}, time.Millisecond)
	msg := s.Wait()()
	assert.IsType(t, TickMsg{}, msg)
}
