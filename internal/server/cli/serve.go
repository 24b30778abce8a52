package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/api"
	h "github.com/IvanChernomyrdin/go-courses-api/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/repository"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/workload"

	_ "github.com/IvanChernomyrdin/go-courses-api/swagger/docs"
)

// NewServeCmd создаёт команду запуска HTTP-сервера.
func NewServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP-сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

// runServe поднимает базу, сервисы и HTTP-сервер и ждёт сигнала завершения.
func runServe(parent context.Context, app *App, out io.Writer) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := app.Cfg
	sugar := app.Log.Sugar()
	defer app.Log.Sync()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// подключаем базу данных
	db, err := OpenDB(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Migrations.Enabled {
		if err := RunMigrations(db, cfg.Migrations.Path, app.Log); err != nil {
			return err
		}
	}

	objects, err := NewObjectStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	// создаём репы
	repos := service.Repositories{
		Users:   repository.NewUsersRepository(db),
		Courses: repository.NewCoursesRepository(db),
	}
	pool := workload.NewPool(cfg.Workload.CPUWorkers)
	svc := service.NewServices(repos, objects, pool, cfg)

	handler := api.NewHandler(svc, app.Log, cfg.Errors.GlobalLogging)
	router := h.NewRouter(handler, h.Options{
		CORS:         cfg.CORS,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s (cpu workers: %d)", server.Addr, pool.Size())
		fmt.Fprintf(out, "listening on %s\n", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-gctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	sugar.Info("server gracefully stopped")
	return nil
}
