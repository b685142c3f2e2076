// Package scheduler raises one notification per task once its due date
// has passed.
//
// The check is level-triggered: every tick re-evaluates the current store,
// so a tick that never ran (suspended process) is caught up by the next.
package scheduler

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/notify"
	"taskpad/internal/storage"
)

const (
	DefaultInterval   = 10 * time.Second
	NotificationTitle = "Task Due!"
)

// TickMsg wakes the UI loop for a scan.
type TickMsg time.Time

type Option func(*Scheduler)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

type Scheduler struct {
	notifier notify.Notifier
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// New returns a scheduler polling every interval. A non-positive interval
// falls back to DefaultInterval.
func New(n notify.Notifier, interval time.Duration, opts ...Option) *Scheduler {
	if n == nil {
		n = notify.Noop{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Scheduler{
		notifier: n,
		interval: interval,
		now:      time.Now,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Due lists the tasks that should be notified at now, in store order.
func Due(store storage.Store, now time.Time) []storage.Task {
	var due []storage.Task
	for _, t := range store.Tasks() {
		if t.HasDue() && !t.Due.After(now) && !t.Completed && !t.Notified {
			due = append(due, t)
		}
	}
	return due
}

// Tick notifies every due task and returns the store with those tasks
// marked notified, applied as a single update.
func (s *Scheduler) Tick(store storage.Store) (storage.Store, []storage.Task) {
	now := s.now()
	due := Due(store, now)
	if len(due) == 0 {
		return store, nil
	}
	ids := make(map[string]struct{}, len(due))
	for _, t := range due {
		s.notifier.Notify(NotificationTitle, t.Text)
		ids[t.ID] = struct{}{}
	}
	s.logger.Info("due tasks notified", "count", len(due), "at", now)
	return store.MarkNotified(ids), due
}

// Wait sleeps for one interval and then delivers a TickMsg.
func (s *Scheduler) Wait() tea.Cmd {
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
