package cli

import (
	"github.com/spf13/cobra"

	"github.com/AlibekovAA/task-manager/internal/common/bootstrap"
	"github.com/AlibekovAA/task-manager/internal/common/config"
	"github.com/AlibekovAA/task-manager/internal/common/constants"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
)

// NewRootCommand creates the taskd command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taskd",
		Short:         "Task manager API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())

	return cmd
}

func loadEnvironment() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	log, err := bootstrap.NewLogger(cfg, constants.ApplicationName)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, log, nil
}
