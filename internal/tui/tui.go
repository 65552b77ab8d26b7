package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/edocico/a11y-audit/internal/model"
)

type modelT struct {
	findings []model.Finding
	cursor   int
	detail   bool
}

func initialModel(findings []model.Finding) modelT { return modelT{findings: findings} }

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.findings)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.detail = !m.detail
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contrast findings (%d)   j/k move · enter detail · q quit\n\n", len(m.findings))
	for i, f := range m.findings {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s [%s] %s:%d %s on %s (%s)\n",
			marker, f.CheckID, f.Severity, f.File, f.Line, f.Pair.TextClass, f.Pair.BgClass, f.Mode)
	}
	if m.detail && len(m.findings) > 0 {
		f := m.findings[m.cursor]
		fmt.Fprintf(&b, "\n%s\nratio %.2f:1 (needs %.1f:1), APCA Lc %.0f\n", f.Message, f.Ratio, f.Required, f.APCALc)
		if f.Snippet != "" {
			b.WriteString("\n")
			b.WriteString(f.Snippet)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Run launches the findings browser
func Run(findings []model.Finding) error {
	p := tea.NewProgram(initialModel(findings))
	_, err := p.Run()
	return err
}
