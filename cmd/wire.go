package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	restadapter "github.com/bnema/fchat/internal/adapters/agents/rest"
	chainprovider "github.com/bnema/fchat/internal/adapters/auth/chain"
	"github.com/bnema/fchat/internal/application"
	"github.com/bnema/fchat/internal/config"
	"github.com/spf13/viper"
)

type app struct {
	cfg    config.Config
	driver *application.Driver
	logger *slog.Logger
}

// wireApp resolves configuration and builds the driver stack. A config
// error halts the command before any remote interaction.
func wireApp(debug bool) (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	tokens, err := chainprovider.NewEnvFirstWithAzCLIFallback("", "")
	if err != nil {
		return nil, fmt.Errorf("wire credential chain: %w", err)
	}

	client := restadapter.NewClient(cfg.ProjectEndpoint, tokens, http.DefaultClient, logger)
	client.SetAPIVersion(cfg.APIVersion)

	return &app{
		cfg:    cfg,
		driver: application.NewDriver(client, cfg.AgentID, nil),
		logger: logger,
	}, nil
}
