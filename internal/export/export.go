// Package export writes the task list out as a markdown checklist.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taskpad/internal/storage"
)

const (
	Header            = "# To-Do List\n\n"
	DefaultFilename   = "tasks.txt"
	DefaultDateLayout = "1/2/2006"
)

type Options struct {
	// DateLayout formats due dates; defaults to the US short date.
	DateLayout string
	// Location the due date is shown in; defaults to time.Local.
	Location *time.Location
}

// Format renders store as a checklist, one line per task in store order.
func Format(store storage.Store, opts Options) string {
	layout := opts.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	b.WriteString(Header)
	for _, t := range store.Tasks() {
		checkbox := "- [ ]"
		if t.Completed {
			checkbox = "- [x]"
		}
		fmt.Fprintf(&b, "%s %s", checkbox, t.Text)
		if t.HasDue() {
			fmt.Fprintf(&b, " (Due: %s)", t.Due.In(loc).Format(layout))
		}
		b.WriteString("\n")
	}
	return b.String()
}

type Sink interface {
	WriteTextFile(name, content string) error
}

// DirSink writes files into Dir, creating it when needed.
type DirSink struct {
	Dir string
}

func (s DirSink) WriteTextFile(name, content string) error {
	if name == "" {
		return errors.New("export file name is empty")
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Path reports where name would be written.
func (s DirSink) Path(name string) string {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, filepath.Base(name))
}
