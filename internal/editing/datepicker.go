package editing

import (
	"fmt"
	"time"

	"taskpad/internal/storage"
)

type Field int

const (
	FieldMonth Field = iota
	FieldDay
	FieldYear
	FieldHour
	FieldMinute
)

// Fields is the on-screen order of the picker columns.
var Fields = []Field{FieldMonth, FieldDay, FieldYear, FieldHour, FieldMinute}

func (f Field) String() string {
	switch f {
	case FieldYear:
		return "year"
	case FieldMonth:
		return "month"
	case FieldDay:
		return "day"
	case FieldHour:
		return "hour"
	case FieldMinute:
		return "minute"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// DateDraft is a due date being assembled field by field, to the minute.
type DateDraft struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

func DraftFrom(t time.Time) DateDraft {
	return DateDraft{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d DateDraft) Get(f Field) int {
	switch f {
	case FieldYear:
		return d.Year
	case FieldMonth:
		return int(d.Month)
	case FieldDay:
		return d.Day
	case FieldHour:
		return d.Hour
	case FieldMinute:
		return d.Minute
	}
	return 0
}

// Set assigns one field. Out-of-range values are clamped, and the day is
// pulled back to the end of the month when a year or month change makes it
// invalid.
func (d DateDraft) Set(f Field, value int) DateDraft {
	switch f {
	case FieldYear:
		d.Year = max(value, 1)
	case FieldMonth:
		d.Month = time.Month(clamp(value, 1, 12))
	case FieldDay:
		d.Day = value
	case FieldHour:
		d.Hour = clamp(value, 0, 23)
	case FieldMinute:
		d.Minute = clamp(value, 0, 59)
	}
	d.Day = clamp(d.Day, 1, DaysIn(d.Year, d.Month))
	return d
}

// Adjust moves a field by delta, wrapping around within its range. Years
// do not wrap.
func (d DateDraft) Adjust(f Field, delta int) DateDraft {
	switch f {
	case FieldYear:
		return d.Set(f, d.Year+delta)
	case FieldMonth:
		return d.Set(f, wrap(int(d.Month)-1+delta, 12)+1)
	case FieldDay:
		return d.Set(f, wrap(d.Day-1+delta, DaysIn(d.Year, d.Month))+1)
	case FieldHour:
		return d.Set(f, wrap(d.Hour+delta, 24))
	case FieldMinute:
		return d.Set(f, wrap(d.Minute+delta, 60))
	}
	return d
}

func (d DateDraft) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, d.Hour, d.Minute, 0, 0, loc)
}

// DatePicker is either closed or open on one task with a draft date.
type DatePicker struct {
	TaskID string
	Draft  DateDraft
	open   bool
}

func (p DatePicker) IsOpen() bool {
	return p.open
}

// Open starts a picker session on taskID. The draft is always re-seeded,
// from due when set and from now otherwise, so nothing carries over from a
// previous session.
func (p DatePicker) Open(taskID string, due, now time.Time) DatePicker {
	seed := now
	if !due.IsZero() {
		seed = due
	}
	return DatePicker{TaskID: taskID, Draft: DraftFrom(seed), open: true}
}

func (p DatePicker) Change(f Field, value int) DatePicker {
	if !p.open {
		return p
	}
	p.Draft = p.Draft.Set(f, value)
	return p
}

func (p DatePicker) Adjust(f Field, delta int) DatePicker {
	if !p.open {
		return p
	}
	p.Draft = p.Draft.Adjust(f, delta)
	return p
}

// Save closes the picker and stores the composed due date.
func (p DatePicker) Save(store storage.Store, loc *time.Location) (DatePicker, storage.Store) {
	if !p.open {
		return p, store
	}
	return DatePicker{}, store.SetDue(p.TaskID, p.Draft.Time(loc))
}

func (p DatePicker) Cancel() DatePicker {
	return DatePicker{}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
