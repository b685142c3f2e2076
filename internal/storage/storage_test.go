package storage

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(t *testing.T) {
	t.Helper()
	n := 0
	prev := newID
	newID = func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
	t.Cleanup(func() { newID = prev })
}

func TestAdd_AppendsOpenTask(t *testing.T) {
	sequentialIDs(t)

	s, err := New().Add("buy milk")
	require.NoError(t, err)
	s, err = s.Add("call mom")
	require.NoError(t, err)

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, Task{ID: "task-1", Text: "buy milk"}, tasks[0])
	assert.Equal(t, "call mom", tasks[1].Text)
	assert.False(t, tasks[1].Completed)
	assert.False(t, tasks[1].HasDue())
	assert.False(t, tasks[1].Notified)
}

func TestAdd_BlankTextIsIgnored(t *testing.T) {
	before := New(Task{ID: "a", Text: "A"})

	after, err := before.Add("   \t")
	assert.ErrorIs(t, err, ErrBlankText)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, before, after)
}

func TestAdd_DoesNotMutateReceiver(t *testing.T) {
	before := New(Task{ID: "a", Text: "A"})
	_, err := before.Add("B")
	require.NoError(t, err)
	assert.Equal(t, 1, before.Len())
}

func TestAdd_GeneratesUniqueIDs(t *testing.T) {
	s := New()
	for range 50 {
		var err error
		s, err = s.Add("x")
		require.NoError(t, err)
	}
	seen := map[string]bool{}
	for _, task := range s.Tasks() {
		assert.NotEmpty(t, task.ID)
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}

func TestToggle_IsItsOwnInverse(t *testing.T) {
	s := New(Task{ID: "a", Text: "A"}, Task{ID: "b", Text: "B", Completed: true})

	once := s.Toggle("a")
	got, _ := once.Find("a")
	assert.True(t, got.Completed)

	twice := once.Toggle("a")
	assert.Equal(t, s, twice)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	s := New(Task{ID: "a", Text: "A"})

	assert.Equal(t, s, s.Toggle("missing"))
	assert.Equal(t, s, s.Delete("missing"))
	assert.Equal(t, s, s.SetText("missing", "x"))
	assert.Equal(t, s, s.SetDue("missing", time.Now()))
	assert.Equal(t, s, s.MarkNotified(map[string]struct{}{"missing": {}}))

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_PreservesOrder(t *testing.T) {
	s := New(Task{ID: "a"}, Task{ID: "b"}, Task{ID: "c"})

	s = s.Delete("b")

	ids := []string{}
	for _, task := range s.Tasks() {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"a", "c"}, ids)
}

func TestSetText(t *testing.T) {
	s := New(Task{ID: "a", Text: "A"}, Task{ID: "b", Text: "B"})

	renamed := s.SetText("a", "Alpha")
	got, _ := renamed.Find("a")
	assert.Equal(t, "Alpha", got.Text)

	assert.Equal(t, s.Delete("a"), s.SetText("a", ""))
	assert.Equal(t, s.Delete("a"), s.SetText("a", "   "))
}

func TestSetDue_ResetsNotified(t *testing.T) {
	old := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s := New(Task{ID: "a", Text: "A", Due: old, Notified: true})

	due := old.Add(24 * time.Hour)
	s = s.SetDue("a", due)

	got, _ := s.Find("a")
	assert.Equal(t, due, got.Due)
	assert.False(t, got.Notified)
}

func TestMarkNotified(t *testing.T) {
	due := time.Now()
	s := New(Task{ID: "a", Due: due}, Task{ID: "b", Due: due}, Task{ID: "c"})

	s = s.MarkNotified(map[string]struct{}{"a": {}, "c": {}})

	a, _ := s.Find("a")
	b, _ := s.Find("b")
	c, _ := s.Find("c")
	assert.True(t, a.Notified)
	assert.False(t, b.Notified)
	assert.True(t, c.Notified)
}

func TestTasks_ReturnsCopy(t *testing.T) {
	s := New(Task{ID: "a", Text: "A"})
	tasks := s.Tasks()
	tasks[0].Text = "changed"

	got, _ := s.Find("a")
	assert.Equal(t, "A", got.Text)
}

func TestSeed(t *testing.T) {
	s := Seed()
	tasks := s.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "Plan a weekend trip", tasks[0].Text)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, "Learn React", tasks[1].Text)
	assert.True(t, tasks[1].Completed)
	assert.Equal(t, "Read a book", tasks[2].Text)
	for _, task := range tasks {
		assert.False(t, task.HasDue())
	}
}
