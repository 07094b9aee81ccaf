package explorer

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/stree-ui/stree/internal/config"
	"github.com/stree-ui/stree/internal/state"
	"github.com/stree-ui/stree/internal/ui/notifier"
)

// SetupRoutes configures routes for the explorer feature.
func SetupRoutes(
	router chi.Router,
	cfg *config.Config,
	store state.Store,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(cfg, store, sessionStore, notify, logger, isDev)

	router.Get("/", handlers.Page)
	router.Get("/updates", handlers.Updates)
	router.Post("/state", handlers.SaveState)
	router.Delete("/state/{widget}", handlers.ClearState)

	return nil
}
