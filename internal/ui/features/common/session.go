package common

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// SessionName is the cookie holding the browser session.
const SessionName = "stree-session"

// sessionIDKey is the session value holding the stable session id widget
// state is keyed by.
const sessionIDKey = "id"

// SessionID returns the stable id for the requesting browser session,
// creating and persisting one on first contact. Save errors are returned
// so handlers can decide whether state persistence is worth failing over.
func SessionID(store sessions.Store, w http.ResponseWriter, r *http.Request) (string, error) {
	// Get never fails hard: a broken cookie yields a fresh session.
	session, _ := store.Get(r, SessionName)

	if id, ok := session.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	session.Values[sessionIDKey] = id
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}
