// Package explorer serves the demo page embedding the tree widget: a live
// view of a directory pushed to the client over SSE, with widget state
// persisted per browser session.
package explorer

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/text/language"

	"github.com/stree-ui/stree/internal/config"
	"github.com/stree-ui/stree/internal/state"
	"github.com/stree-ui/stree/internal/ui/features/common"
	"github.com/stree-ui/stree/internal/ui/notifier"
	"github.com/stree-ui/stree/pkg/tree"
)

// Handlers provides HTTP handlers for the explorer feature.
type Handlers struct {
	cfg          *config.Config
	store        state.Store
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg *config.Config, store state.Store, sessionStore sessions.Store, notify *notifier.Notifier, logger *slog.Logger, isDev bool) *Handlers {
	return &Handlers{
		cfg:          cfg,
		store:        store,
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       logger,
		isDev:        isDev,
	}
}

// Page renders the explorer page with the widget and initial tree data.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	sessionID, err := common.SessionID(h.sessionStore, w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	widget, err := h.buildWidget()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := h.treeData()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	saved, err := h.store.GetWidgetState(sessionID, WidgetID)
	if err != nil {
		h.logger.Error("load widget state", "session", sessionID, "error", err)
		saved = nil
	}

	if err := ExplorerPage(h.isDev, widget, data, saved).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Updates is the long-lived SSE endpoint. It pushes a fresh render call
// whenever the notifier signals that the tree directory changed.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			data, err := h.treeData()
			if err != nil {
				_ = sse.ConsoleError(err)
				continue
			}
			if err := sse.ExecuteScript(RenderScript(WidgetID, data)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// stateSignals is what the client sends when persisting widget state.
type stateSignals struct {
	WidgetID string          `json:"widgetId"`
	State    json.RawMessage `json:"state"`
}

// SaveState persists the widget state signals for the current session.
func (h *Handlers) SaveState(w http.ResponseWriter, r *http.Request) {
	var signals stateSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if signals.WidgetID == "" || len(signals.State) == 0 {
		http.Error(w, "widgetId and state are required", http.StatusBadRequest)
		return
	}

	sessionID, err := common.SessionID(h.sessionStore, w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.store.SaveWidgetState(sessionID, signals.WidgetID, signals.State); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearState removes the saved state for one widget in the current
// session.
func (h *Handlers) ClearState(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widget")

	sessionID, err := common.SessionID(h.sessionStore, w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.store.DeleteWidgetState(sessionID, widgetID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// buildWidget constructs the explorer's widget from configuration.
func (h *Handlers) buildWidget() (*tree.Widget, error) {
	cfg := h.cfg.Widget.ToTreeConfig(WidgetID, h.logger)
	cfg.Types = []byte(DefaultTypes)
	return tree.New(cfg)
}

// treeData builds the current directory tree as engine JSON.
func (h *Handlers) treeData() (json.RawMessage, error) {
	nodes, err := tree.FromFS(os.DirFS(h.cfg.TreeDir), ".")
	if err != nil {
		return nil, err
	}
	if h.cfg.Widget.Sort {
		tree.SortNodes(nodes, language.English)
	}
	return tree.MarshalNodes(nodes)
}
