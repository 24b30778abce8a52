package cli

import (
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/storage"
)

// для тестов
var (
	LoadConfig       = config.Load
	OpenDB           = config.OpenDB
	RunMigrations    = config.Migrate
	NewObjectStorage = storage.NewS3
	ReadPassword     = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return readPassword(cmd, fromStdin)
	}
)
