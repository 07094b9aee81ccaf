// Package state persists client-side widget state server-side, so tree
// selection and open/closed folds survive page reloads when the widget's
// setState option is enabled.
package state

import "encoding/json"

// WidgetState is one persisted state record.
type WidgetState struct {
	ID        string
	SessionID string
	WidgetID  string
	// State is the opaque JSON blob the client engine produced; the
	// server stores and returns it verbatim.
	State json.RawMessage
}

// Store persists widget state per (session, widget).
type Store interface {
	// SaveWidgetState inserts or replaces the state for one widget in one
	// session.
	SaveWidgetState(sessionID, widgetID string, state json.RawMessage) error

	// GetWidgetState returns the saved state, or nil when none exists.
	GetWidgetState(sessionID, widgetID string) (json.RawMessage, error)

	// DeleteWidgetState removes the saved state. Deleting absent state is
	// not an error.
	DeleteWidgetState(sessionID, widgetID string) error

	Close() error
}
