package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/fchat/internal/domain"
)

const chromeLines = 5 // title, blank, input, error/notice, footer

func (m *Model) resize() {
	contentHeight := m.height - chromeLines
	if contentHeight < 3 {
		contentHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = contentHeight
	}
	m.input.Width = m.width - 4
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		m.resize()
	}
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m *Model) transcript() string {
	history := m.session.History()
	if len(history) == 0 {
		return m.styles.notice.Render("No messages yet. Ask something.")
	}

	wrap := lipgloss.NewStyle().Width(max(20, m.width-2))

	var b strings.Builder
	for i, turn := range history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString(m.styles.userLabel.Render("You"))
			b.WriteString("\n")
			b.WriteString(wrap.Inherit(m.styles.userText).Render(turn.Text))
		default:
			b.WriteString(m.styles.userLabel.Render("Agent"))
			b.WriteString("\n")
			b.WriteString(wrap.Inherit(m.styles.agentText).Render(turn.Text))
		}
	}

	return b.String()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Foundry Agent Chat"))
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.transcript())
	}
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(fmt.Sprintf("%s %s", m.spin.View(), m.styles.notice.Render("Thinking...")))
	} else {
		b.WriteString(m.styles.prompt.Render("> "))
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")

	switch {
	case m.errLine != "":
		b.WriteString(m.styles.errText.Render(m.errLine))
	case m.notice != "":
		b.WriteString(m.styles.notice.Render(m.notice))
	}
	b.WriteString("\n")

	b.WriteString(m.styles.footer.Render(fmt.Sprintf(
		"thread: %s • enter send • ctrl+r reset • esc quit",
		m.threadLabel(),
	)))

	return b.String()
}

func (m Model) threadLabel() string {
	if id, ok := m.session.ThreadID(); ok {
		return string(id)
	}
	return "—"
}
