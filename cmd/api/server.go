// cmd/api/server.go
// serve() runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests before returning.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal.
const shutdownTimeout = 20 * time.Second

func (app *applicationDependencies) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server",
		"address", srv.Addr,
		"environment", app.config.environment,
		"db_driver", app.config.db.driver,
		"version", appVersion,
	)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// ListenAndServe returns as soon as Shutdown is called; wait for the
	// drain to finish.
	if err := <-shutdownErr; err != nil {
		return err
	}

	app.logger.Info("server stopped", "address", srv.Addr)
	return nil
}
