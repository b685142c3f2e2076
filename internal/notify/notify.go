// Package notify delivers best-effort user notifications.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Notifier shows a notification. Delivery is best effort: implementations
// never report failure to the caller.
type Notifier interface {
	Notify(title, body string)
}

// Func adapts a plain function to Notifier.
type Func func(title, body string)

func (f Func) Notify(title, body string) { f(title, body) }

type Noop struct{}

func (Noop) Notify(string, string) {}

// Desktop sends notifications to the host notification daemon.
type Desktop struct {
	logger *slog.Logger
	send   func(title, body string) error
}

func NewDesktop(logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Desktop{
		logger: logger,
		send: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
	}
}

// Notify returns immediately; the send happens on its own goroutine and a
// failure (missing daemon, permission denied) is only logged.
func (d *Desktop) Notify(title, body string) {
	go d.deliver(title, body)
}

func (d *Desktop) deliver(title, body string) {
	if err := d.send(title, body); err != nil {
		d.logger.Debug("notification dropped", "title", title, "err", err)
	}
}

// New picks the desktop notifier when enabled and a no-op otherwise.
func New(enabled bool, logger *slog.Logger) Notifier {
	if !enabled {
		return Noop{}
	}
	return NewDesktop(logger)
}
