package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AlibekovAA/task-manager/internal/common/bootstrap"
	"github.com/AlibekovAA/task-manager/internal/common/constants"
	srv "github.com/AlibekovAA/task-manager/internal/common/server"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, log, err := loadEnvironment()
			if err != nil {
				return err
			}

			app, err := bootstrap.NewApp(ctx, cfg, log)
			if err != nil {
				log.Errorf("failed to initialize application: %v", err)
				return err
			}

			server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort, cfg.RequestTimeout), app.Handler)
			return srv.Run(ctx, server, log, constants.ApplicationName, app.ShutdownHooks())
		},
	}
}
