// Package transcript renders the scrollable chat history.
package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/styles"
)

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleError     Role = "error"
)

// Entry is one message in the transcript.
type Entry struct {
	Role    Role
	Text    string
	Model   string
	Context []string
}

// Transcript is a viewport over the chat history.
type Transcript struct {
	styles      *styles.Styles
	viewport    viewport.Model
	entries     []Entry
	showContext bool
}

// New creates an empty transcript.
func New(s *styles.Styles) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Transcript{
		styles:   s,
		viewport: viewport.New(80, 20),
	}
}

// Init implements the component contract.
func (t *Transcript) Init() tea.Cmd {
	return nil
}

// Update forwards mouse and key messages to the viewport.
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the visible part of the transcript.
func (t *Transcript) View() string {
	return t.viewport.View()
}

// Append adds an entry and scrolls to it.
func (t *Transcript) Append(e Entry) {
	t.entries = append(t.entries, e)
	t.refresh()
	t.viewport.GotoBottom()
}

// Entries returns the entries in order.
func (t *Transcript) Entries() []Entry {
	return t.entries
}

// Clear removes every entry.
func (t *Transcript) Clear() {
	t.entries = nil
	t.refresh()
	t.viewport.GotoTop()
}

// ToggleContext flips whether retrieved passages are shown under answers.
func (t *Transcript) ToggleContext() {
	t.showContext = !t.showContext
	t.refresh()
}

// ShowContext reports whether retrieved passages are shown.
func (t *Transcript) ShowContext() bool {
	return t.showContext
}

// SetSize resizes the viewport and rewraps the content.
func (t *Transcript) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	t.viewport.Width = width
	t.viewport.Height = height
	t.refresh()
}

// ScrollUp moves back half a page.
func (t *Transcript) ScrollUp() {
	t.viewport.SetYOffset(t.viewport.YOffset - t.halfPage())
}

// ScrollDown moves forward half a page.
func (t *Transcript) ScrollDown() {
	t.viewport.SetYOffset(t.viewport.YOffset + t.halfPage())
}

// AtBottom reports whether the last line is visible.
func (t *Transcript) AtBottom() bool {
	return t.viewport.AtBottom()
}

func (t *Transcript) halfPage() int {
	if h := t.viewport.Height / 2; h > 0 {
		return h
	}
	return 1
}

func (t *Transcript) refresh() {
	t.viewport.SetContent(t.render())
}

func (t *Transcript) render() string {
	if len(t.entries) == 0 {
		return t.styles.Muted.Render("Ask a question about your documents. Type /help for commands.")
	}

	wrap := t.styles.Normal.Width(t.viewport.Width)
	blocks := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		var b strings.Builder
		switch e.Role {
		case RoleUser:
			b.WriteString(t.styles.User.Render("You"))
		case RoleAssistant:
			label := "Assistant"
			if e.Model != "" {
				label += " (" + e.Model + ")"
			}
			b.WriteString(t.styles.Assistant.Render(label))
		case RoleError:
			b.WriteString(t.styles.Error.Render("Error"))
		default:
			b.WriteString(t.styles.Muted.Render("System"))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(e.Text))

		if t.showContext && len(e.Context) > 0 {
			ctxWidth := t.viewport.Width - 2
			if ctxWidth < 1 {
				ctxWidth = 1
			}
			for _, c := range e.Context {
				b.WriteString("\n")
				b.WriteString(t.styles.Context.Width(ctxWidth).Render(c))
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
