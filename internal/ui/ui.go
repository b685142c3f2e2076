package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/assistant"
	"taskpad/internal/config"
	"taskpad/internal/editing"
	"taskpad/internal/export"
	"taskpad/internal/scheduler"
	"taskpad/internal/storage"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeDate
	modeAsk
	modePreview
)

// Deps are the collaborators the UI issues commands to.
type Deps struct {
	Scheduler *scheduler.Scheduler
	Asker     *assistant.Asker
	Sink      export.Sink
	Export    export.Options
	Logger    *slog.Logger
	// Now seeds the date picker; defaults to time.Now.
	Now func() time.Time
}

type answerMsg struct {
	answer string
}

type Model struct {
	deps       Deps
	cfg        config.Config
	store      storage.Store
	cursor     int
	mode       mode
	input      textinput.Model
	spinner    spinner.Model
	status     string
	confirmDel bool
	pendingDel *storage.Task
	text       editing.TextSession
	picker     editing.DatePicker
	field      int
	asking     bool
	answer     string
	preview    string
	width      int
}

func New(store storage.Store, cfg config.Config, deps Deps) Model {
	if deps.Scheduler == nil {
		deps.Scheduler = scheduler.New(nil, 0)
	}
	if deps.Asker == nil {
		deps.Asker = assistant.NewAsker(nil, 0, deps.Logger)
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "Task text"
	ti.CharLimit = 256
	ti.Width = 40
	ti.PromptStyle = promptStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return Model{
		deps:    deps,
		cfg:     cfg,
		store:   store,
		cursor:  clampCursor(0, store.Len()),
		status:  "Press 'a' to add, space to toggle, 'd' to delete.",
		input:   ti,
		spinner: sp,
		mode:    modeList,
		width:   80,
	}
}

func Run(m Model) error {
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

// Store returns the current task snapshot.
func (m Model) Store() storage.Store {
	return m.store
}

func (m Model) Busy() bool {
	return m.asking
}

func (m Model) Init() tea.Cmd {
	return m.deps.Scheduler.Wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case scheduler.TickMsg:
		var fired []storage.Task
		m.store, fired = m.deps.Scheduler.Tick(m.store)
		if len(fired) > 0 {
			m.status = fmt.Sprintf("Task due: %s", fired[len(fired)-1].Text)
		}
		return m, m.deps.Scheduler.Wait()
	case answerMsg:
		m.asking = false
		m.answer = msg.answer
		m.status = "Answer ready"
		return m, nil
	case spinner.TickMsg:
		if !m.asking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	case modeDate:
		return m.updateDateMode(key)
	case modeAsk:
		return m.updateAskMode(key, msg)
	case modePreview:
		return m.updatePreviewMode(key)
	}
	return m.updateListMode(key)
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m = m.backToList()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		store, err := m.store.Add(m.input.Value())
		if err != nil {
			// Blank text: ignore the command and keep the prompt open.
			m.deps.Logger.Debug("add ignored", "err", err)
			return m, nil
		}
		m.store = store
		m.cursor = clampCursor(m.store.Len()-1, m.store.Len())
		m = m.backToList()
		m.status = "Added task"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, m.store.Len())
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, m.store.Len())
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = "Add a new task..."
		m.input.Focus()
		m.status = "Add mode: type a task and press Enter"
	case m.cfg.Keys.Toggle:
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store = m.store.Toggle(task.ID)
		m.status = "Toggled task"
	case m.cfg.Keys.Delete:
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &task
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", task.Text)
	case m.cfg.Keys.Edit:
		task, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startTextEdit(task)
	case m.cfg.Keys.Due:
		task, ok := m.selected()
		if !ok {
			m.status = "No task selected"
			return m, nil
		}
		return m.openPicker(task)
	case m.cfg.Keys.Ask:
		m.mode = modeAsk
		m.input.SetValue("")
		m.input.Placeholder = "Ask anything..."
		m.input.Focus()
		m.status = "Ask mode: type a question and press Enter"
	case m.cfg.Keys.Export:
		return m.exportTasks()
	case m.cfg.Keys.Preview:
		content := export.Format(m.store, m.deps.Export)
		m.preview = export.Preview(content, m.width)
		m.mode = modePreview
		m.status = "Export preview: esc to close"
	}
	return m, nil
}

func (m Model) startTextEdit(task storage.Task) (tea.Model, tea.Cmd) {
	m.picker = m.picker.Cancel()
	m.text = m.text.Start(task)
	m.input.SetValue(m.text.Draft)
	m.input.Placeholder = "Task text"
	m.input.CursorEnd()
	m.input.Focus()
	m.mode = modeEdit
	m.status = "Edit: Enter to save, Esc to cancel (empty text deletes)"
	return m, nil
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.text = m.text.Cancel()
		m = m.backToList()
		m.status = "Edit cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		before := m.store.Len()
		m.text, m.store = m.text.Commit(m.store)
		m.cursor = clampCursor(m.cursor, m.store.Len())
		m = m.backToList()
		if m.store.Len() < before {
			m.status = "Deleted task"
		} else {
			m.status = "Saved task"
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.text = m.text.Change(m.input.Value())
		return m, cmd
	}
}

func (m Model) openPicker(task storage.Task) (tea.Model, tea.Cmd) {
	m.text = m.text.Cancel()
	m.picker = m.picker.Open(task.ID, task.Due, m.deps.Now())
	m.field = 0
	m.mode = modeDate
	m.status = "Due date: ←/→ field, ↑/↓ change, Enter to save, Esc to cancel"
	return m, nil
}

func (m Model) updateDateMode(key string) (tea.Model, tea.Cmd) {
	fields := editing.Fields
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.picker = m.picker.Cancel()
		m.mode = modeList
		m.status = "Due date unchanged"
	case m.cfg.Keys.Confirm, "enter":
		draft := m.picker.Draft
		m.picker, m.store = m.picker.Save(m.store, m.deps.Export.Location)
		m.mode = modeList
		m.status = "Due " + formatDue(draft.Time(m.deps.Export.Location))
	case "tab", "right", "l":
		m.field = wrapIndex(m.field+1, len(fields))
	case "shift+tab", "left", "h":
		m.field = wrapIndex(m.field-1, len(fields))
	case "up", m.cfg.Keys.Up:
		m.picker = m.picker.Adjust(fields[m.field], 1)
	case "down", m.cfg.Keys.Down:
		m.picker = m.picker.Adjust(fields[m.field], -1)
	}
	return m, nil
}

func (m Model) updateAskMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m = m.backToList()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		question := m.input.Value()
		if strings.TrimSpace(question) == "" {
			return m, nil
		}
		if m.asking {
			m.status = "Still answering the previous question"
			return m, nil
		}
		m.asking = true
		m.answer = ""
		m = m.backToList()
		m.status = "Asking..."
		return m, tea.Batch(m.askCmd(question), m.spinner.Tick)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// askCmd runs the question off the update loop. Asker.Ask always returns,
// so an answerMsg always arrives and clears the busy flag.
func (m Model) askCmd(question string) tea.Cmd {
	asker := m.deps.Asker
	return func() tea.Msg {
		return answerMsg{answer: asker.Ask(context.Background(), question)}
	}
}

func (m Model) updatePreviewMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc", m.cfg.Keys.Confirm, "enter", m.cfg.Keys.Preview, m.cfg.Keys.Quit:
		m.preview = ""
		m.mode = modeList
		m.status = ""
	}
	return m, nil
}

func (m Model) exportTasks() (tea.Model, tea.Cmd) {
	if m.deps.Sink == nil {
		m.status = "Export is not configured"
		return m, nil
	}
	name := m.cfg.ExportFile
	if name == "" {
		name = export.DefaultFilename
	}
	content := export.Format(m.store, m.deps.Export)
	if err := m.deps.Sink.WriteTextFile(name, content); err != nil {
		m.deps.Logger.Error("export failed", "file", name, "err", err)
		m.status = fmt.Sprintf("export failed: %v", err)
		return m, nil
	}
	m.deps.Logger.Info("tasks exported", "file", name, "tasks", m.store.Len())
	m.status = fmt.Sprintf("Exported %d tasks to %s", m.store.Len(), name)
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		m.store = m.store.Delete(m.pendingDel.ID)
		m.cursor = clampCursor(m.cursor, m.store.Len())
		m.status = "Deleted task"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) backToList() Model {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) selected() (storage.Task, bool) {
	tasks := m.store.Tasks()
	if len(tasks) == 0 {
		return storage.Task{}, false
	}
	return tasks[clampCursor(m.cursor, len(tasks))], true
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
