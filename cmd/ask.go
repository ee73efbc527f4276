package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/fchat/internal/domain"
	"github.com/spf13/cobra"
)

func newAskCmd(debug *bool) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask <text>...",
		Short: "Send one message to the agent and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, *debug, strings.Join(args, " "), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

type askResult struct {
	ThreadID string `json:"thread_id"`
	Reply    string `json:"reply"`
}

func runAsk(cmd *cobra.Command, debug bool, question string, asJSON bool) error {
	app, err := wireApp(debug)
	if err != nil {
		return err
	}

	app.logger.Debug("asking agent", "agent_id", app.cfg.AgentID)

	session := domain.NewSession()
	session.AppendTurn(domain.RoleUser, question)

	var reply string
	askFn := func(ctx context.Context) error {
		var askErr error
		reply, askErr = app.driver.Ask(ctx, session, question)
		return askErr
	}

	if asJSON {
		err = askFn(cmd.Context())
	} else {
		err = runAskSpinner(cmd.Context(), cmd.ErrOrStderr(), askFn)
	}
	if err != nil {
		return err
	}

	session.AppendTurn(domain.RoleAssistant, reply)

	if asJSON {
		threadID, _ := session.ThreadID()
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(askResult{ThreadID: string(threadID), Reply: reply})
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
	return err
}
