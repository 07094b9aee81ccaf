package explorer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stree-ui/stree/internal/testutil"
	"github.com/stree-ui/stree/internal/ui/features"
	"github.com/stree-ui/stree/internal/ui/features/common"
)

func setupTestHandlers(t *testing.T, files ...string) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t, files...)
	handlers := NewHandlers(
		fixture.Config,
		fixture.Store,
		fixture.SessionStore,
		fixture.Notifier,
		testutil.NewTestLogger(t),
		true, // isDev
	)
	return handlers, fixture
}

// sessionCookie creates a browser session up front so tests know the
// session id state is keyed by.
func sessionCookie(t *testing.T, fixture *features.TestFixture) (string, []*http.Cookie) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id, err := common.SessionID(fixture.SessionStore, rec, req)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id, rec.Result().Cookies()
}

func TestPage(t *testing.T) {
	h, _ := setupTestHandlers(t, "docs/guide.md", "readme.md")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Page(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "<title>Explorer - stree</title>")
	assert.Contains(t, body, `id="explorer-tree"`)
	assert.Contains(t, body, `data-st-theme="default"`)
	assert.Contains(t, body, "data-init", "dev mode wires the reload listener")
	assert.Contains(t, body, "/updates")

	// Initial tree data is server-rendered into the page.
	assert.Contains(t, body, `stree.render("explorer-tree"`)
	assert.Contains(t, body, "guide.md")
	assert.Contains(t, body, "readme.md")

	// The explorer's type payload is published under the normalized id.
	assert.Contains(t, body, "var explorer_tree_sttypes")
}

func TestPageSetsSessionCookie(t *testing.T) {
	h, _ := setupTestHandlers(t, "readme.md")

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, common.SessionName, cookies[0].Name)
}

func TestPageRestoresSavedState(t *testing.T) {
	h, fixture := setupTestHandlers(t, "readme.md")

	sessionID, cookies := sessionCookie(t, fixture)
	saved := json.RawMessage(`{"open":["docs"]}`)
	require.NoError(t, fixture.Store.SaveWidgetState(sessionID, WidgetID, saved))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.Page(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `stree.restoreState("explorer-tree", {"open":["docs"]});`)
}

func TestPageEscapesSavedStateScriptClose(t *testing.T) {
	h, fixture := setupTestHandlers(t, "readme.md")

	sessionID, cookies := sessionCookie(t, fixture)
	saved := json.RawMessage(`{"open":["</script><b>"]}`)
	require.NoError(t, fixture.Store.SaveWidgetState(sessionID, WidgetID, saved))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.Page(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `stree.restoreState("explorer-tree", {"open":["<\/script><b>"]});`)
	assert.NotContains(t, body, `{"open":["</script>`, "saved state must not close the script element")
}

func TestPageWithoutSavedState(t *testing.T) {
	h, _ := setupTestHandlers(t, "readme.md")

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "restoreState")
}

func TestPageMissingTreeDir(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	fixture.Config.TreeDir = fixture.TreeDir + "-missing"

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUpdatesSendsRenderOnBroadcast(t *testing.T) {
	h, fixture := setupTestHandlers(t, "docs/guide.md")

	req := httptest.NewRequest(http.MethodGet, "/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Updates(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	fixture.Notifier.Broadcast()
	<-done

	body := rec.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 1, "broadcast produces an SSE event")
	assert.Contains(t, body, `stree.render(`)
	assert.Contains(t, body, "guide.md")
}

func TestUpdatesNoInitialState(t *testing.T) {
	h, _ := setupTestHandlers(t, "readme.md")

	req := httptest.NewRequest(http.MethodGet, "/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 50*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	h.Updates(rec, req)

	assert.Equal(t, 0, strings.Count(rec.Body.String(), "event:"),
		"no SSE events without a broadcast; content is rendered by Page")
}

func TestSaveState(t *testing.T) {
	h, fixture := setupTestHandlers(t, "readme.md")
	sessionID, cookies := sessionCookie(t, fixture)

	body := strings.NewReader(`{"widgetId":"explorer-tree","state":{"open":["docs"],"selected":[]}}`)
	req := httptest.NewRequest(http.MethodPost, "/state", body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.SaveState(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	saved, err := fixture.Store.GetWidgetState(sessionID, WidgetID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"open":["docs"],"selected":[]}`, string(saved))
}

func TestSaveStateRejectsIncompleteSignals(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing widget id", `{"state":{"open":[]}}`},
		{"missing state", `{"widgetId":"explorer-tree"}`},
		{"not json", `not-json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t, "readme.md")

			req := httptest.NewRequest(http.MethodPost, "/state", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.SaveState(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestClearState(t *testing.T) {
	h, fixture := setupTestHandlers(t, "readme.md")
	sessionID, cookies := sessionCookie(t, fixture)
	require.NoError(t, fixture.Store.SaveWidgetState(sessionID, WidgetID, json.RawMessage(`{}`)))

	req := httptest.NewRequest(http.MethodDelete, "/state/"+WidgetID, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	req = features.RequestWithPathParam(req, "widget", WidgetID)
	rec := httptest.NewRecorder()
	h.ClearState(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	saved, err := fixture.Store.GetWidgetState(sessionID, WidgetID)
	require.NoError(t, err)
	assert.Nil(t, saved)
}
