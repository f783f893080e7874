package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/is"

	"taskdeck/internal/notify"
	"taskdeck/internal/storage/sqlite"
	"taskdeck/internal/workspace"
)

func newTestServerWithHub(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "taskdeck.db"), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	hub := notify.NewHub(logger)
	go hub.Run()
	return New(workspace.New(store, logger), hub, logger, testSecret)
}

func TestSetValueBroadcastsInvalidation(t *testing.T) {
	is := is.New(t)
	srv := newTestServerWithHub(t)
	token := signToken(t, "user-a")

	_, env := doJSON(t, srv, http.MethodPost, "/api/workspaces", token, map[string]string{"name": "Acme"})
	var w struct {
		Workspace struct {
			ID string `json:"id"`
		} `json:"workspace"`
	}
	is.NoErr(json.Unmarshal(env.Data, &w))

	_, env = doJSON(t, srv, http.MethodPost, "/api/spaces", token, map[string]string{
		"workspace_id": w.Workspace.ID,
		"name":         "Engineering",
	})
	var sp struct {
		Space struct {
			ID string `json:"id"`
		} `json:"space"`
	}
	is.NoErr(json.Unmarshal(env.Data, &sp))

	_, env = doJSON(t, srv, http.MethodPost, "/api/lists", token, map[string]string{
		"space_id": sp.Space.ID,
		"name":     "Backlog",
	})
	var l struct {
		List struct {
			ID string `json:"id"`
		} `json:"list"`
	}
	is.NoErr(json.Unmarshal(env.Data, &l))

	_, env = doJSON(t, srv, http.MethodPost, "/api/lists/"+l.List.ID+"/fields", token, map[string]string{
		"name": "Points",
		"type": "NUMBER",
	})
	var f struct {
		Field struct {
			ID string `json:"id"`
		} `json:"field"`
	}
	is.NoErr(json.Unmarshal(env.Data, &f))

	_, env = doJSON(t, srv, http.MethodPost, "/api/lists/"+l.List.ID+"/tasks", token, map[string]string{"name": "Launch"})
	var task struct {
		Task struct {
			ID string `json:"id"`
		} `json:"task"`
	}
	is.NoErr(json.Unmarshal(env.Data, &task))

	ts := httptest.NewServer(srv.Engine())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?workspace_id=" + w.Workspace.ID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	is.NoErr(err)
	defer conn.Close()

	// the subscription registers on the hub goroutine after the handshake
	time.Sleep(50 * time.Millisecond)

	code, _ := doJSON(t, srv, http.MethodPut, "/api/tasks/"+task.Task.ID+"/values/"+f.Field.ID, token, map[string]string{"value": "5"})
	is.Equal(code, http.StatusOK)

	is.NoErr(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, payload, err := conn.ReadMessage()
	is.NoErr(err)

	var ev notify.Invalidation
	is.NoErr(json.Unmarshal(payload, &ev))
	is.Equal(ev.Type, "invalidate")
	is.Equal(ev.WorkspaceID, w.Workspace.ID)
	is.Equal(ev.ScopeID, l.List.ID)
}
