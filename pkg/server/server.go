package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	authhandlers "github.com/de-tools/carbon-atlas/pkg/handlers/auth"
	emissionhandlers "github.com/de-tools/carbon-atlas/pkg/handlers/emissions"
	carbonmiddleware "github.com/de-tools/carbon-atlas/pkg/server/middleware"
	"github.com/de-tools/carbon-atlas/pkg/services/auth"
	"github.com/de-tools/carbon-atlas/pkg/services/emissions"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router          chi.Router
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Tokens interface {
	authhandlers.TokenIssuer
	carbonmiddleware.TokenParser
}

// Dependencies of the HTTP API. Leaving Verifier or Tokens nil disables
// authentication: the login route is not mounted and every view is open.
type Dependencies struct {
	Emissions emissions.QueryService
	Verifier  auth.Verifier
	Tokens    Tokens
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func (d Dependencies) authEnabled() bool {
	return d.Verifier != nil && d.Tokens != nil
}

func ConfigureRouter(config Config) chi.Router {
	deps := config.Dependencies
	emissionHandler := emissionhandlers.NewHandler(deps.Emissions)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(carbonmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", emissionHandler.Health)
	router.Get("/users", emissionHandler.ListUsers)

	if deps.authEnabled() {
		authHandler := authhandlers.NewHandler(deps.Verifier, deps.Tokens)
		router.Post("/auth/login", authHandler.Login)
	}

	router.Route("/user/{user_id}", func(r chi.Router) {
		r.Get("/summary", emissionHandler.GetSummary)
		r.Get("/monthly", emissionHandler.GetMonthly)

		r.Group(func(r chi.Router) {
			if deps.authEnabled() {
				r.Use(carbonmiddleware.RequireUser(deps.Tokens, emissionhandlers.UserParam))
			}
			r.Get("/activity", emissionHandler.GetActivity)
			r.Get("/export.csv", emissionHandler.ExportCSV)
			r.Get("/top-days", emissionHandler.GetTopDays)
			r.Get("/category-trend", emissionHandler.GetCategoryTrend)
			r.Get("/budget", emissionHandler.GetBudget)
		})
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Start serves until ctx is cancelled, then shuts the server down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
