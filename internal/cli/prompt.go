package cli

import (
	"context"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// promptModel - Single line input
// =============================================================================

// promptModel is the bubbletea model for answering "?" arguments.
// An empty answer selects the default.
type promptModel struct {
	question string
	def      string
	value    []rune
	done     bool
	aborted  bool
}

func newPromptModel(question, def string) promptModel {
	return promptModel{question: question, def: def}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.value) > 0 {
			m.value = m.value[:len(m.value)-1]
		}
	case tea.KeyCtrlU:
		m.value = nil
	case tea.KeySpace:
		m.value = append(m.value, ' ')
	case tea.KeyRunes:
		m.value = append(m.value, key.Runes...)
	}
	return m, nil
}

func (m promptModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.question))
	if m.def != "" {
		b.WriteString(" " + StyleDim.Render("["+m.def+"]"))
	}
	b.WriteString(" " + StyleValue.Render(string(m.value)) + "█\n")
	b.WriteString(StyleDim.Render("⏎ confirm  esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// answer returns the trimmed input, or the default when nothing was typed.
func (m promptModel) answer() string {
	if v := strings.TrimSpace(string(m.value)); v != "" {
		return v
	}
	return m.def
}

// promptTerminal asks question on the terminal. Cancelling the prompt
// returns context.Canceled so the command exits like on SIGINT.
func (c *CLI) promptTerminal(question, def string) (string, error) {
	p := tea.NewProgram(newPromptModel(question, def), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m := final.(promptModel)
	if m.aborted {
		return "", context.Canceled
	}
	return m.answer(), nil
}
