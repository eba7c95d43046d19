package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"docsorter/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc", "ctrl+c"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmModel asks a yes/no question and quits on the answer
type ConfirmModel struct {
	Question  string
	Keys      ConfirmKeyMap
	Confirmed bool
	Done      bool
}

// NewConfirmModel creates a new confirmation model with default keys
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{Question: question, Keys: DefaultConfirmKeys}
}

// Init implements tea.Model
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles key messages; other keys are ignored.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.Keys.Confirm):
		m.Confirmed, m.Done = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.Keys.Cancel):
		m.Done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the question
func (m ConfirmModel) View() string {
	if m.Done {
		return ""
	}
	return RenderConfirmPrompt(m.Question) + "\n"
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
