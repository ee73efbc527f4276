// Package chat is the interactive chat screen: a transcript viewport, an
// input box, and a spinner while a run is in flight. The model owns the
// Session; the driver is called through the Asker interface so tests can
// substitute it.
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/fchat/internal/domain"
)

type Asker interface {
	Ask(ctx context.Context, session *domain.Session, userText string) (string, error)
}

type replyMsg struct {
	text string
	err  error
}

type Model struct {
	ctx     context.Context
	asker   Asker
	session *domain.Session

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	styles   styles

	waiting bool
	errLine string
	notice  string
	width   int
	height  int
	ready   bool
}

func NewModel(ctx context.Context, asker Asker, session *domain.Session) Model {
	input := textinput.New()
	input.Placeholder = "Type your question..."
	input.CharLimit = 4000
	input.Focus()

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return Model{
		ctx:     ctx,
		asker:   asker,
		session: session,
		input:   input,
		spin:    spin,
		styles:  newStyles(),
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+r":
			if m.waiting {
				return m, nil
			}
			m.session.Reset()
			m.errLine = ""
			m.notice = "Session reset: next message starts a new thread."
			m.refreshTranscript()
			return m, nil
		case "enter":
			return m.submit()
		}

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.errLine = errorNotice(msg.err)
		} else {
			m.session.AppendTurn(domain.RoleAssistant, msg.text)
		}
		m.refreshTranscript()
		m.input.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts a turn. Ignored while a reply is pending: the UI allows a
// single ask in flight, which is what lets the session go unlocked.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.session.AppendTurn(domain.RoleUser, text)
	m.input.Reset()
	m.errLine = ""
	m.notice = ""
	m.waiting = true
	m.refreshTranscript()

	return m, tea.Batch(m.spin.Tick, m.askCmd(text))
}

func (m Model) askCmd(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.asker.Ask(m.ctx, m.session, text)
		return replyMsg{text: reply, err: err}
	}
}

func errorNotice(err error) string {
	switch domain.Classify(err) {
	case domain.ErrorKindAuth:
		return "Authentication failed. Sign in with `az login` or set AZURE_AGENT_TOKEN. (" + err.Error() + ")"
	case domain.ErrorKindProtocol:
		return "The service returned an error. (" + err.Error() + ")"
	case domain.ErrorKindRun:
		return "The agent did not complete. (" + err.Error() + ")"
	default:
		return "Something went wrong. (" + err.Error() + ")"
	}
}
