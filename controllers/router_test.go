package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"loom_server_go/controllers"
	"loom_server_go/data/datatest"
	"loom_server_go/logging"
	"loom_server_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := datatest.OpenStore(t)
	srv := httptest.NewServer(controllers.NewRouter(store, services.NewSet(store, logging.Nop{}), logging.Nop{}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestTripScenario(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodPost, "/travel/api/trips",
		`{"name": "Summer", "destination": "Rome", "start_date": "2025-06-01", "end_date": "2025-06-10"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	trip := decode(t, body)
	assert.EqualValues(t, 1, trip["id"])
	assert.Equal(t, "planning", trip["status"])
	assert.Equal(t, "2025-06-01", trip["start_date"])

	resp, body = do(t, srv, http.MethodPost, "/travel/api/trips/1/packing-list",
		`{"items": [{"item_name": "passport"}, {"item_name": "charger", "quantity": 2}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	list := decode(t, body)
	assert.Equal(t, "Summer Packing List", list["name"])
	assert.Len(t, list["items"], 2)

	resp, body = do(t, srv, http.MethodGet, "/travel/api/trips/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	details := decode(t, body)
	assert.Equal(t, []any{}, details["itineraries"])
	assert.Equal(t, []any{}, details["expenses"])
	lists, ok := details["packing_lists"].([]any)
	require.True(t, ok)
	require.Len(t, lists, 1)
	assert.Len(t, lists[0].(map[string]any)["items"], 2)

	resp, body = do(t, srv, http.MethodDelete, "/travel/api/trips/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp, body = do(t, srv, http.MethodGet, "/travel/api/trips/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "trip 1: not found", decode(t, body)["error"])
}

func TestErrorMapping(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodPost, "/notes/api/notes", `{"content": "no title"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "title: field is required", decode(t, body)["error"])

	resp, _ = do(t, srv, http.MethodPost, "/notes/api/notes", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/notes/api/notes?archived=maybe", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPut, "/todos/api/todos/7", `{"title": "x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/notes/api/notes/abc", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPatch, "/notes/api/notes", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWrongMethodIsRejectedInEverySection(t *testing.T) {
	srv := newServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPatch, "/health"},
		{http.MethodPatch, "/notes/api/notes"},
		{http.MethodPost, "/notes/api/notes/1"},
		{http.MethodPatch, "/travel/api/trips"},
		{http.MethodPut, "/recipes/api/shopping-list"},
		{http.MethodGet, "/todos/api/reminders/1"},
		{http.MethodDelete, "/subscriptions/api/subscriptions/reminders"},
	} {
		resp, body := do(t, srv, tc.method, tc.path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, tc.method+" "+tc.path)
		assert.Equal(t, "method not allowed", decode(t, body)["error"], tc.method+" "+tc.path)
	}
}

func TestUnknownPathReturnsJSONNotFound(t *testing.T) {
	srv := newServer(t)

	for _, path := range []string{"/nope", "/notes/api/unknown", "/travel/api/trips/1/unknown"} {
		resp, body := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "route not found", decode(t, body)["error"], path)
	}
}

func TestHealthAndEmptyLists(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, body = do(t, srv, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ready"}`, string(body))

	for _, path := range []string{
		"/notes/api/notes",
		"/calendar/api/events",
		"/events/api/events/upcoming",
		"/todos/api/todos",
		"/todos/api/todos/weekly",
		"/recipes/api/recipes",
		"/recipes/api/shopping-list",
		"/subscriptions/api/subscriptions",
		"/subscriptions/api/subscriptions/reminders",
		"/travel/api/trips",
		"/travel/api/packing-lists?templates_only=TRUE",
	} {
		resp, body := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.JSONEq(t, "[]", string(body), path)
	}

	resp, body = do(t, srv, http.MethodGet, "/api/overview", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"upcoming_events": [], "pending_todos": [], "recent_notes": []}`, string(body))
}

func TestTodoCompletedAtOverHTTP(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodPost, "/todos/api/todos",
		`{"title": "Write report", "reminders": [{"reminder_time": "2025-06-01T09:00:00Z"}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	todo := decode(t, body)
	assert.Nil(t, todo["completed_at"])
	assert.Len(t, todo["reminders"], 1)

	resp, body = do(t, srv, http.MethodPut, "/todos/api/todos/1", `{"completed_at": "2025-06-02T10:00:00Z"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "2025-06-02T10:00:00Z", decode(t, body)["completed_at"])

	resp, body = do(t, srv, http.MethodPut, "/todos/api/todos/1", `{"status": "completed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2025-06-02T10:00:00Z", decode(t, body)["completed_at"])

	resp, body = do(t, srv, http.MethodPut, "/todos/api/todos/1", `{"completed_at": null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decode(t, body)["completed_at"])
}

func TestShoppingListFromRecipeOverHTTP(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodPost, "/recipes/api/recipes",
		`{"name": "Salad", "ingredients": [{"name": "tomato"}, {"name": "cucumber"}], "tags": ["vegan"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = do(t, srv, http.MethodPost, "/recipes/api/shopping-list/from-recipe/1", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var items []map[string]any
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 2)
	assert.EqualValues(t, 1, items[0]["recipe_id"])

	resp, _ = do(t, srv, http.MethodDelete, "/recipes/api/recipes/1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, srv, http.MethodGet, "/recipes/api/shopping-list", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 2)
	assert.Nil(t, items[0]["recipe_id"])
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("database is locked") }

func TestHealth_LivenessIgnoresDatabase(t *testing.T) {
	store := datatest.OpenStore(t)
	srv := httptest.NewServer(controllers.NewRouter(downPinger{}, services.NewSet(store, logging.Nop{}), logging.Nop{}))
	t.Cleanup(srv.Close)

	resp, body := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, string(body))

	resp, body = do(t, srv, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{"status":"unavailable"}`, string(body))
}
