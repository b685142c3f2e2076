package editing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/storage"
)

func TestTextSession_Commit(t *testing.T) {
	store := storage.New(storage.Task{ID: "a", Text: "draft me"})
	task, _ := store.Find("a")

	s := TextSession{}.Start(task)
	require.True(t, s.Active())
	assert.Equal(t, "draft me", s.Draft)

	s = s.Change("edited")
	s, store = s.Commit(store)

	assert.False(t, s.Active())
	got, _ := store.Find("a")
	assert.Equal(t, "edited", got.Text)
}

func TestTextSession_CommitBlankDeletes(t *testing.T) {
	store := storage.New(storage.Task{ID: "a", Text: "A"}, storage.Task{ID: "b", Text: "B"})
	task, _ := store.Find("a")

	s := TextSession{}.Start(task).Change("  ")
	_, store = s.Commit(store)

	assert.Equal(t, 1, store.Len())
	_, ok := store.Find("a")
	assert.False(t, ok)
}

func TestTextSession_CancelLeavesStore(t *testing.T) {
	store := storage.New(storage.Task{ID: "a", Text: "A"})
	task, _ := store.Find("a")

	s := TextSession{}.Start(task).Change("something else").Cancel()

	assert.False(t, s.Active())
	s, after := s.Commit(store)
	assert.Equal(t, store, after)
}

func TestTextSession_StaleTaskIsNoOp(t *testing.T) {
	store := storage.New(storage.Task{ID: "a", Text: "A"})
	task, _ := store.Find("a")
	s := TextSession{}.Start(task).Change("new")

	store = store.Delete("a")
	_, after := s.Commit(store)

	assert.Equal(t, store, after)
}

func TestTextSession_ChangeWhileIdle(t *testing.T) {
	s := TextSession{}.Change("ignored")
	assert.Empty(t, s.Draft)
	assert.False(t, s.Active())
}

func TestDatePicker_SeedsFromDue(t *testing.T) {
	due := time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local)
	now := time.Date(2026, 6, 15, 8, 30, 0, 0, time.Local)

	p := DatePicker{}.Open("a", due, now)

	require.True(t, p.IsOpen())
	assert.Equal(t, DateDraft{Year: 2025, Month: time.January, Day: 1, Hour: 10, Minute: 0}, p.Draft)
}

func TestDatePicker_ReseedsOnEveryOpen(t *testing.T) {
	due := time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local)
	now := time.Date(2026, 6, 15, 8, 30, 0, 0, time.Local)

	p := DatePicker{}.Open("a", due, now)
	p = p.Change(FieldHour, 17)
	p = p.Cancel()
	p = p.Open("b", time.Time{}, now)

	assert.Equal(t, "b", p.TaskID)
	assert.Equal(t, DraftFrom(now), p.Draft)
}

func TestDatePicker_ReopenSameTaskSeesNewDue(t *testing.T) {
	now := time.Date(2026, 6, 15, 8, 30, 0, 0, time.Local)
	store := storage.New(storage.Task{ID: "a", Text: "A"})

	p := DatePicker{}.Open("a", time.Time{}, now).Change(FieldDay, 20)
	p, store = p.Save(store, time.Local)
	assert.False(t, p.IsOpen())

	task, _ := store.Find("a")
	p = p.Open("a", task.Due, now)
	assert.Equal(t, 20, p.Draft.Day)

	p = p.Cancel()
	store = store.SetDue("a", time.Date(2027, 2, 3, 4, 5, 0, 0, time.Local))
	task, _ = store.Find("a")
	p = p.Open("a", task.Due, now)
	assert.Equal(t, DateDraft{Year: 2027, Month: time.February, Day: 3, Hour: 4, Minute: 5}, p.Draft)
}

func TestDatePicker_SaveComposesDate(t *testing.T) {
	now := time.Date(2026, 6, 15, 8, 30, 45, 0, time.UTC)
	store := storage.New(storage.Task{ID: "a", Text: "A", Notified: true})

	p := DatePicker{}.Open("a", time.Time{}, now)
	p = p.Change(FieldYear, 2027).Change(FieldMonth, 3).Change(FieldDay, 9).Change(FieldHour, 14).Change(FieldMinute, 5)
	_, store = p.Save(store, time.UTC)

	task, _ := store.Find("a")
	assert.Equal(t, time.Date(2027, 3, 9, 14, 5, 0, 0, time.UTC), task.Due)
	assert.False(t, task.Notified)
}

func TestDatePicker_CancelDoesNotMutate(t *testing.T) {
	store := storage.New(storage.Task{ID: "a", Text: "A"})
	p := DatePicker{}.Open("a", time.Time{}, time.Now()).Change(FieldYear, 2030).Cancel()

	_, after := p.Save(store, time.Local)

	assert.False(t, p.IsOpen())
	assert.Equal(t, store, after)
}

func TestDateDraft_ClampsDayOnMonthChange(t *testing.T) {
	d := DateDraft{Year: 2025, Month: time.January, Day: 31}

	d = d.Set(FieldMonth, int(time.February))
	assert.Equal(t, 28, d.Day)

	d = DateDraft{Year: 2024, Month: time.February, Day: 29}
	d = d.Set(FieldYear, 2025)
	assert.Equal(t, 28, d.Day)

	d = DateDraft{Year: 2025, Month: time.March, Day: 31}
	d = d.Set(FieldMonth, int(time.April))
	assert.Equal(t, 30, d.Day)
}

func TestDateDraft_ClampsOutOfRange(t *testing.T) {
	d := DateDraft{Year: 2025, Month: time.April, Day: 10}

	assert.Equal(t, 30, d.Set(FieldDay, 31).Day)
	assert.Equal(t, 1, d.Set(FieldDay, 0).Day)
	assert.Equal(t, 23, d.Set(FieldHour, 25).Hour)
	assert.Equal(t, 59, d.Set(FieldMinute, 99).Minute)
	assert.Equal(t, time.December, d.Set(FieldMonth, 13).Month)
}

func TestDateDraft_AdjustWraps(t *testing.T) {
	d := DateDraft{Year: 2025, Month: time.December, Day: 31, Hour: 23, Minute: 59}

	assert.Equal(t, time.January, d.Adjust(FieldMonth, 1).Month)
	assert.Equal(t, 1, d.Adjust(FieldDay, 1).Day)
	assert.Equal(t, 0, d.Adjust(FieldHour, 1).Hour)
	assert.Equal(t, 0, d.Adjust(FieldMinute, 1).Minute)
	assert.Equal(t, 58, d.Adjust(FieldMinute, -1).Minute)
	assert.Equal(t, 2026, d.Adjust(FieldYear, 1).Year)

	feb := DateDraft{Year: 2025, Month: time.January, Day: 31}.Adjust(FieldMonth, 1)
	assert.Equal(t, time.February, feb.Month)
	assert.Equal(t, 28, feb.Day)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2100, time.February))
	assert.Equal(t, 31, DaysIn(2025, time.December))
}

func TestField_String(t *testing.T) {
	names := []string{}
	for _, f := range Fields {
		names = append(names, f.String())
	}
	assert.Equal(t, []string{"month", "day", "year", "hour", "minute"}, names)
}
