// Package bootstrap holds the start-up steps shared by every CLI command.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/hhgcare/hhg/internal/infrastructure/config"
	"github.com/hhgcare/hhg/internal/infrastructure/database"
	"github.com/hhgcare/hhg/internal/shared/biztime"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

// Options are the persistent flags every command accepts.
type Options struct {
	Env        string
	ConfigPath string
}

// Load reads configuration and initializes the logger and business timezone.
// ENV overrides the --env flag.
func Load(opts Options) (*config.Config, logger.Interface, error) {
	env := opts.Env
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(MapEnvToGinMode(env), opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// LoadWithDatabase is Load followed by database.Init. Callers must defer
// database.Close.
func LoadWithDatabase(opts Options) (*config.Config, logger.Interface, error) {
	cfg, log, err := Load(opts)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}

func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
