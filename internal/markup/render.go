package markup

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HTML renders the document as HTML. All text is escaped, so the output
// only ever contains the tags emitted here.
func (d Document) HTML() string {
	var b strings.Builder
	for _, block := range d.Blocks {
		switch block.Kind {
		case BlockBreak:
			b.WriteString("<br />")
		case BlockHeading:
			fmt.Fprintf(&b, "<h%d>%s</h%d>", block.Level, inlineHTML(block.Content), block.Level)
		case BlockList:
			tag, open := "ul", "<ul>"
			if block.Ordered {
				tag, open = "ol", "<ol>"
				if start := block.start(); start != 1 {
					open = fmt.Sprintf(`<ol start="%d">`, start)
				}
			}
			b.WriteString(open)
			for _, item := range block.Items {
				b.WriteString("<li>" + inlineHTML(item) + "</li>")
			}
			b.WriteString("</" + tag + ">")
		default:
			b.WriteString(inlineHTML(block.Content))
		}
	}
	return b.String()
}

func inlineHTML(in Inline) string {
	var b strings.Builder
	for _, span := range in {
		text := html.EscapeString(span.Text)
		if span.Strong {
			b.WriteString("<strong>" + text + "</strong>")
			continue
		}
		b.WriteString(text)
	}
	return b.String()
}

// number is the marker of ordered item i as written in the source.
func (b Block) number(i int) int {
	if i < len(b.Numbers) {
		return b.Numbers[i]
	}
	return i + 1
}

func (b Block) start() int {
	return b.number(0)
}

// Text renders the document without any styling.
func (d Document) Text() string {
	return render(d, Styles{})
}

func (in Inline) plain() string {
	var b strings.Builder
	for _, span := range in {
		b.WriteString(span.Text)
	}
	return b.String()
}

// Styles controls terminal rendering. The zero value renders plain text.
type Styles struct {
	Strong   lipgloss.Style
	Headings [3]lipgloss.Style
	Bullet   lipgloss.Style
	styled   bool
}

func DefaultStyles() Styles {
	return Styles{
		Strong: lipgloss.NewStyle().Bold(true),
		Headings: [3]lipgloss.Style{
			lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("117")),
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117")),
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110")),
		},
		Bullet: lipgloss.NewStyle().Foreground(lipgloss.Color("44")),
		styled: true,
	}
}

// Terminal renders the document for a terminal using s.
func Terminal(d Document, s Styles) string {
	return render(d, s)
}

func render(d Document, s Styles) string {
	var b strings.Builder
	for _, block := range d.Blocks {
		switch block.Kind {
		case BlockBreak:
			b.WriteString("\n")
		case BlockHeading:
			text := s.inline(block.Content)
			if s.styled {
				text = s.Headings[block.Level-1].Render(block.Content.plain())
			}
			b.WriteString(text)
		case BlockList:
			for i, item := range block.Items {
				if i > 0 {
					b.WriteString("\n")
				}
				marker := "• "
				if block.Ordered {
					marker = fmt.Sprintf("%d. ", block.number(i))
				}
				b.WriteString(s.bullet(marker) + s.inline(item))
			}
		default:
			b.WriteString(s.inline(block.Content))
		}
	}
	return b.String()
}

func (s Styles) inline(in Inline) string {
	var b strings.Builder
	for _, span := range in {
		if span.Strong && s.styled {
			b.WriteString(s.Strong.Render(span.Text))
			continue
		}
		b.WriteString(span.Text)
	}
	return b.String()
}

func (s Styles) bullet(marker string) string {
	if !s.styled {
		return marker
	}
	return s.Bullet.Render(marker)
}
