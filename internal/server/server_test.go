package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/matryer/is"

	"taskdeck/internal/storage/sqlite"
	"taskdeck/internal/workspace"
)

var testSecret = []byte("test-secret")

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "taskdeck.db"), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(workspace.New(store, logger), nil, logger, testSecret)
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": userID}).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

type envelope struct {
	OK      bool            `json:"ok"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func TestAccessToken(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing header is rejected", func(t *testing.T) {
		is := is.New(t)
		code, env := doJSON(t, srv, http.MethodPost, "/api/workspaces", "", map[string]string{"name": "Acme"})
		is.Equal(code, http.StatusUnauthorized)
		is.True(!env.OK)
		is.Equal(env.Error, string(workspace.KindNotAuthorized))
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		is := is.New(t)
		code, env := doJSON(t, srv, http.MethodPost, "/api/workspaces", "not.a.token", map[string]string{"name": "Acme"})
		is.Equal(code, http.StatusUnauthorized)
		is.True(!env.OK)
	})

	t.Run("signed token passes through", func(t *testing.T) {
		is := is.New(t)
		code, env := doJSON(t, srv, http.MethodPost, "/api/workspaces", signToken(t, "user-a"), map[string]string{"name": "Acme"})
		is.Equal(code, http.StatusCreated)
		is.True(env.OK)
	})
}

func TestErrorEnvelopeStatusMapping(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, "user-a")

	t.Run("validation maps to 400", func(t *testing.T) {
		is := is.New(t)
		code, env := doJSON(t, srv, http.MethodPost, "/api/workspaces", token, map[string]string{"name": "  "})
		is.Equal(code, http.StatusBadRequest)
		is.Equal(env.Error, string(workspace.KindValidation))
	})

	t.Run("missing node maps to 404", func(t *testing.T) {
		is := is.New(t)
		code, env := doJSON(t, srv, http.MethodDelete, "/api/nodes/space/missing", token, nil)
		is.Equal(code, http.StatusNotFound)
		is.Equal(env.Error, string(workspace.KindNotFound))
	})

	t.Run("non-member maps to 401", func(t *testing.T) {
		is := is.New(t)
		_, env := doJSON(t, srv, http.MethodPost, "/api/workspaces", token, map[string]string{"name": "Acme"})
		var data struct {
			Workspace struct {
				ID string `json:"id"`
			} `json:"workspace"`
		}
		is.NoErr(json.Unmarshal(env.Data, &data))

		code, env := doJSON(t, srv, http.MethodPost, "/api/spaces", signToken(t, "user-b"), map[string]string{
			"workspace_id": data.Workspace.ID,
			"name":         "Theirs",
		})
		is.Equal(code, http.StatusUnauthorized)
		is.Equal(env.Error, string(workspace.KindNotAuthorized))
	})

	t.Run("bad kind parameter maps to 400", func(t *testing.T) {
		is := is.New(t)
		code, env := doJSON(t, srv, http.MethodDelete, "/api/nodes/task/abc", token, nil)
		is.Equal(code, http.StatusBadRequest)
		is.Equal(env.Error, string(workspace.KindValidation))
	})
}

func TestTreeRoundTrip(t *testing.T) {
	is := is.New(t)
	srv := newTestServer(t)
	token := signToken(t, "user-a")

	_, env := doJSON(t, srv, http.MethodPost, "/api/workspaces", token, map[string]string{"name": "Acme"})
	var created struct {
		Workspace struct {
			ID string `json:"id"`
		} `json:"workspace"`
	}
	is.NoErr(json.Unmarshal(env.Data, &created))

	code, env := doJSON(t, srv, http.MethodPost, "/api/spaces", token, map[string]string{
		"workspace_id": created.Workspace.ID,
		"name":         "Engineering",
		"color":        "#3b82f6",
	})
	is.Equal(code, http.StatusCreated)
	is.True(env.OK)

	// the tree query is open and reflects the mutation
	code, env = doJSON(t, srv, http.MethodGet, "/api/workspaces/"+created.Workspace.ID+"/tree", "", nil)
	is.Equal(code, http.StatusOK)
	var treeData struct {
		Tree struct {
			WorkspaceID string `json:"workspace_id"`
			Spaces      []struct {
				Name string `json:"name"`
			} `json:"spaces"`
		} `json:"tree"`
	}
	is.NoErr(json.Unmarshal(env.Data, &treeData))
	is.Equal(treeData.Tree.WorkspaceID, created.Workspace.ID)
	is.Equal(len(treeData.Tree.Spaces), 1)
	is.Equal(treeData.Tree.Spaces[0].Name, "Engineering")
}

func TestStatusTemplateQuery(t *testing.T) {
	is := is.New(t)
	srv := newTestServer(t)

	code, env := doJSON(t, srv, http.MethodGet, "/api/status-templates/Kanban", "", nil)
	is.Equal(code, http.StatusOK)
	var data struct {
		Statuses []struct {
			Name     string `json:"name"`
			Category string `json:"category"`
		} `json:"statuses"`
	}
	is.NoErr(json.Unmarshal(env.Data, &data))
	is.Equal(len(data.Statuses), 5)
	is.Equal(data.Statuses[0].Name, "Backlog")

	code, _ = doJSON(t, srv, http.MethodGet, "/api/status-templates/Waterfall", "", nil)
	is.Equal(code, http.StatusBadRequest)
}
