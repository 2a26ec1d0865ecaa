// Package main is the entry point for the listings web front end. It serves
// server-rendered pages and talks to the listings API for all data.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/aoideee/estate-listings/internal/apiclient"
	"github.com/aoideee/estate-listings/internal/catalog"
	"github.com/aoideee/estate-listings/internal/render"
)

type config struct {
	port        int
	environment string
	apiURL      string
}

// backend is everything the pages need from the API.
type backend interface {
	catalog.Fetcher
	catalog.ReviewFetcher
}

type application struct {
	config    config
	logger    *slog.Logger
	api       backend
	renderer  render.Renderer
	templates map[string]*template.Template
}

func main() {
	_ = godotenv.Load()

	var cfg config
	flag.IntVar(&cfg.port, "port", envInt("WEB_PORT", 3000), "Web server port")
	flag.StringVar(&cfg.environment, "env", envString("APP_ENV", "development"), "Environment(development|staging|production)")
	flag.StringVar(&cfg.apiURL, "api-url", envString("API_URL", "http://localhost:4000"), "Base URL of the listings API")
	flag.Parse()

	logger := newLogger(cfg.environment)

	templates, err := newTemplateCache()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	app := &application{
		config:    cfg,
		logger:    logger,
		api:       apiclient.New(cfg.apiURL, logger),
		templates: templates,
	}

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newLogger(environment string) *slog.Logger {
	if environment == "development" {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func (app *application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "address", srv.Addr, "environment", app.config.environment, "api_url", app.config.apiURL)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return err
	}
	app.logger.Info("server stopped", "address", srv.Addr)
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
