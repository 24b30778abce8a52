package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCmd создаёт команду применения миграций.
//
// Пример использования:
//
//	coursesapi migrate
func NewMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции базы данных",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := OpenDB(cmd.Context(), app.Cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := RunMigrations(db, app.Cfg.Migrations.Path, app.Log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
