package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/repository"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/workload"
)

// NewSeedCmd создаёт команду, которая добавляет фейковые курсы случайным
// существующим пользователям. Если пользователей нет, команда завершается ошибкой.
//
// Пример использования:
//
//	coursesapi seed --count 1000
func NewSeedCmd(app *App) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Добавить фейковые курсы",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("--count must be >= 0, got %d", count)
			}

			db, err := OpenDB(cmd.Context(), app.Cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			seeder := service.NewSeeder(
				repository.NewUsersRepository(db),
				repository.NewCoursesRepository(db),
				workload.NewCourseGenerator(0),
			)

			n, err := seeder.SeedCourses(cmd.Context(), count)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d dummy courses inserted successfully!\n", n)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1000, "number of courses to insert")
	return cmd
}
