package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type askDoneMsg struct {
	err error
}

type askSpinnerModel struct {
	spinner spinner.Model
	label   string
	ask     tea.Cmd
	err     error
	done    bool
}

func (m askSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.ask)
}

func (m askSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case askDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m askSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runAskSpinner shows a spinner on output while ask runs, swallowing the
// animation once the turn finishes so only the reply lands on stdout.
func runAskSpinner(ctx context.Context, output io.Writer, ask func(context.Context) error) error {
	model := askSpinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		label: "Calling Foundry agent...",
		ask: func() tea.Msg {
			return askDoneMsg{err: ask(ctx)}
		},
	}

	p := tea.NewProgram(
		model,
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(askSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
