package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/config"
	"taskpad/internal/editing"
	"taskpad/internal/markup"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("37"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("44"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("243"))
	dueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("37")).Foreground(lipgloss.Color("230")).Bold(true)
	panelStyle    = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("To-Do Manager"))
	b.WriteString("\n\n")

	if m.mode == modePreview {
		b.WriteString(m.preview)
		b.WriteString("\n\n")
		b.WriteString(m.status)
		return b.String()
	}

	if m.store.Len() == 0 {
		b.WriteString(mutedStyle.Render("You have no tasks yet!"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAdd:
		b.WriteString("Add Task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeDate:
		b.WriteString(m.renderPicker())
		b.WriteString("\n")
	case modeAsk:
		b.WriteString("Ask: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if answer := m.renderAnswer(); answer != "" {
		b.WriteString(answer)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %q toggle • %s delete • %s edit • %s due • %s ask • %s export • %s preview • %s quit",
		k.Up, k.Down, k.Add, k.Toggle, k.Delete, k.Edit, k.Due, k.Ask, k.Export, k.Preview, k.Quit)
}

func (m Model) renderTaskList() string {
	now := m.deps.Now()
	var b strings.Builder
	for i, t := range m.store.Tasks() {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = accentStyle.Render(">")
		}

		if m.mode == modeEdit && m.text.Active() && m.text.TaskID == t.ID {
			fmt.Fprintf(&b, "%s %s\n", cursor, m.input.View())
			continue
		}

		checkbox := "[ ]"
		text := t.Text
		if t.Completed {
			checkbox = "[x]"
			text = doneStyle.Render(text)
		}

		due := mutedStyle.Render("No due date")
		if t.HasDue() {
			style := dueStyle
			if !t.Completed && !t.Due.After(now) {
				style = overdueStyle
			}
			due = style.Render("Due: " + formatDue(t.Due))
		}

		fmt.Fprintf(&b, "%s %s %s  %s\n", cursor, checkbox, text, due)
	}
	return b.String()
}

func (m Model) renderPicker() string {
	draft := m.picker.Draft
	var cols []string
	for i, f := range editing.Fields {
		value := fmt.Sprintf("%02d", draft.Get(f))
		switch f {
		case editing.FieldMonth:
			value = draft.Month.String()
		case editing.FieldYear:
			value = fmt.Sprintf("%d", draft.Year)
		}
		cell := fmt.Sprintf(" %s ", value)
		if i == m.field {
			cell = selectedStyle.Render(cell)
		}
		cols = append(cols, cell)
	}
	body := "Set Due Date & Time\n\n" + strings.Join(cols, " ")
	return panelStyle.Render(body)
}

func (m Model) renderAnswer() string {
	if m.asking {
		return m.spinner.View() + " Asking..."
	}
	if m.answer == "" {
		return ""
	}
	doc := markup.Parse(m.answer)
	body := "Answer:\n" + markup.Terminal(doc, markup.DefaultStyles())
	return panelStyle.Width(max(m.width-4, 20)).Render(body)
}

func formatDue(t time.Time) string {
	return t.Format("1/2/2006, 3:04 PM")
}
