// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/stree-ui/stree/internal/config"
	"github.com/stree-ui/stree/internal/state"
	"github.com/stree-ui/stree/internal/testutil"
	"github.com/stree-ui/stree/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Config       *config.Config
	Store        *state.SQLiteStore
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	TreeDir      string
}

// SetupTestFixture creates a fixture with an in-memory state store and a
// temp tree directory populated with the given relative file paths.
func SetupTestFixture(t *testing.T, files ...string) *TestFixture {
	t.Helper()

	treeDir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(treeDir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	}

	store := state.NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })

	return &TestFixture{
		Config: &config.Config{
			TreeDir:   treeDir,
			StatePath: ":memory:",
			Server: config.ServerConfig{
				Port:  8310,
				Watch: false,
			},
			Widget: config.WidgetConfig{
				Theme:       "default",
				ThemeIcons:  true,
				ThemeDots:   true,
				AnimationMS: 200,
			},
		},
		Store:        store,
		Notifier:     notifier.New(),
		SessionStore: sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!")),
		TreeDir:      treeDir,
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
