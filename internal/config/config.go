// Package config resolves startup configuration: explicit environment
// variables first, then ~/.fchat/config.toml. PROJECT_ENDPOINT and
// AGENT_ID are required and have no defaults; loading fails fast when
// either is missing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".fchat"

	endpointKey   = "project_endpoint"
	agentIDKey    = "agent_id"
	apiVersionKey = "api_version"

	endpointEnvVar = "PROJECT_ENDPOINT"
	agentIDEnvVar  = "AGENT_ID"
)

type Config struct {
	ProjectEndpoint string
	AgentID         string
	APIVersion      string
}

func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))

	if err := cfg.BindEnv(endpointKey, endpointEnvVar); err != nil {
		return Config{}, fmt.Errorf("bind %s: %w", endpointEnvVar, err)
	}
	if err := cfg.BindEnv(agentIDKey, agentIDEnvVar); err != nil {
		return Config{}, fmt.Errorf("bind %s: %w", agentIDEnvVar, err)
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	loaded := Config{
		ProjectEndpoint: strings.TrimSpace(cfg.GetString(endpointKey)),
		AgentID:         strings.TrimSpace(cfg.GetString(agentIDKey)),
		APIVersion:      strings.TrimSpace(cfg.GetString(apiVersionKey)),
	}

	var missing []string
	if loaded.ProjectEndpoint == "" {
		missing = append(missing, endpointEnvVar)
	}
	if loaded.AgentID == "" {
		missing = append(missing, agentIDEnvVar)
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf(
			"missing required configuration: %s (set the environment variables or run `fchat config init`)",
			strings.Join(missing, ", "),
		)
	}

	return loaded, nil
}

// DefaultPath is where `config init` writes its skeleton.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, configDir, configName+"."+configType), nil
}
