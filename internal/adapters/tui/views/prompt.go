package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"docsorter/internal/adapters/tui/styles"
)

// PromptKeyMap defines key bindings for the line prompt
type PromptKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// DefaultPromptKeys returns the default prompt key bindings
var DefaultPromptKeys = PromptKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "stop sorting"),
	),
}

const promptCharLimit = 500

// PromptModel reads one line of input. The program quits once the line is
// submitted or the operator cancels.
type PromptModel struct {
	Label     string
	Input     textinput.Model
	Keys      PromptKeyMap
	Submitted bool
	Cancelled bool
}

// NewPromptModel creates a focused prompt with the given label
func NewPromptModel(label string) PromptModel {
	input := textinput.New()
	input.Placeholder = "type and press enter"
	input.CharLimit = promptCharLimit
	input.Focus()
	return PromptModel{
		Label: label,
		Input: input,
		Keys:  DefaultPromptKeys,
	}
}

// Init returns the blink command for the input
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			m.Cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Submit):
			m.Submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// Value returns the trimmed input
func (m PromptModel) Value() string {
	return strings.TrimSpace(m.Input.Value())
}

// View renders the prompt. Nothing is left on screen after it finished.
func (m PromptModel) View() string {
	if m.Submitted || m.Cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(m.Label))
	b.WriteString("\n")
	b.WriteString(styles.InputFocused.Render(m.Input.View()))
	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render("submit"))
	b.WriteString("  ")
	b.WriteString(styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("stop sorting"))
	b.WriteString("\n")
	return b.String()
}
