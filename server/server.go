// Package server assembles the HTTP API and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/tousif31/simple-to-do-list/apperror"
	"github.com/tousif31/simple-to-do-list/auth"
	"github.com/tousif31/simple-to-do-list/config"
	_ "github.com/tousif31/simple-to-do-list/docs" // registers the swagger spec
	"github.com/tousif31/simple-to-do-list/todos"
	"github.com/tousif31/simple-to-do-list/ui"
	"github.com/tousif31/simple-to-do-list/users"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Auth               *auth.Service
	Todos              todos.TodoService
	Users              *users.UserService
	Store              Pinger
	Logger             *slog.Logger
	CORSAllowedOrigins []string
}

// NewRouter builds the chi router with the full middleware stack.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(d.Logger))
	r.Use(Recoverer(d.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		auth.WriteError(w, r, apperror.NewBadRequestError("Method not allowed", nil))
	})

	r.Get("/health", handleHealth(d.Store))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	guard := auth.NewGuard(d.Auth)
	authHandlers := auth.NewHandlers(d.Auth)
	r.Post("/register", authHandlers.HandleRegister())
	r.Post("/login", authHandlers.HandleLogin())
	r.Get("/protected", guard.Protect(authHandlers.HandleProtected()))

	userHandlers := users.NewUserHandlers(d.Users)
	r.Get("/users/me", guard.Protect(userHandlers.HandleGetUserProfile()))

	todos.NewTodoHandler(d.Todos).RegisterRoutes(r, guard)

	ui.RegisterRoutes(r, handleNotFound)

	return r
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	auth.WriteError(w, r, apperror.NewNotFoundError("Not found", nil))
}

// handleHealth godoc
// @Summary Health check
// @Description Pings the store.
// @Tags System
// @Produce json
// @Success 200 {object} auth.StatusResponse
// @Router /health [get]
func handleHealth(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			auth.WriteError(w, r, apperror.NewDatabaseError("Database error", err))
			return
		}
		auth.WriteJSON(w, auth.Success())
	}
}

// Run serves handler until ctx is cancelled, then shuts down gracefully
// within cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}
