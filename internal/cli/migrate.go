package cli

import (
	"github.com/spf13/cobra"

	"github.com/AlibekovAA/task-manager/internal/common/bootstrap"
	"github.com/AlibekovAA/task-manager/internal/common/db"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(newMigrateSubcommand(db.MigrateUp, "Apply all pending migrations"))
	cmd.AddCommand(newMigrateSubcommand(db.MigrateDown, "Roll back the latest migration"))
	cmd.AddCommand(newMigrateSubcommand(db.MigrateStatus, "Print the migration status"))

	return cmd
}

func newMigrateSubcommand(command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnvironment()
			if err != nil {
				return err
			}

			store, err := bootstrap.OpenStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context(), cfg, command, log); err != nil {
				log.Errorf("migrate %s failed: %v", command, err)
				return err
			}
			log.Infof("migrate %s finished", command)
			return nil
		},
	}
}
