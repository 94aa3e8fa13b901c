package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"loom_server_go/config"
	"loom_server_go/controllers"
	"loom_server_go/data"
	"loom_server_go/logging"
	"loom_server_go/services"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply migrations and start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "interface to listen on")
	serveCmd.Flags().Int("port", 0, "port to listen on")

	mustBind(v, "server.host", serveCmd.Flags().Lookup("host"))
	mustBind(v, "server.port", serveCmd.Flags().Lookup("port"))
}

// setup загружает конфигурацию, создает логгер и открывает БД.
func setup(ctx context.Context) (*config.Config, logging.Logger, *data.Store, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := data.Open(ctx, cfg.Database.Path, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, store, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, store, err := setup(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	router := controllers.NewRouter(store, services.NewSet(store, log), log)
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "сервер запущен", "addr", srv.Addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: ошибка HTTP сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: ошибка остановки сервера: %w", err)
	}
	return nil
}
