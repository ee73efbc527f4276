package cmd

import (
	chatui "github.com/bnema/fchat/internal/adapters/render/chat"
	"github.com/bnema/fchat/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive chat session with the agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(*debug)
			if err != nil {
				return err
			}

			app.logger.Debug("starting chat session", "agent_id", app.cfg.AgentID)

			session := domain.NewSession()
			model := chatui.NewModel(cmd.Context(), app.driver, session)

			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)

			_, err = p.Run()
			return err
		},
	}
}
