package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tousif31/simple-to-do-list/apperror"
	"github.com/tousif31/simple-to-do-list/auth"
	"github.com/tousif31/simple-to-do-list/config"
	"github.com/tousif31/simple-to-do-list/logger"
	"github.com/tousif31/simple-to-do-list/store/memory"
	"github.com/tousif31/simple-to-do-list/todos"
	"github.com/tousif31/simple-to-do-list/users"
)

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	handler := NewRouter(Deps{
		Auth:               auth.NewService(st, config.AuthConfig{JWTSecret: "test-secret", Issuer: "test"}),
		Todos:              todos.NewTodoService(st),
		Users:              users.NewUserService(st),
		Store:              st,
		Logger:             logger.Discard(),
		CORSAllowedOrigins: []string{"*"},
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, st
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) call(method, path, body string) map[string]any {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+path, strings.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	require.Equal(c.t, http.StatusOK, resp.StatusCode, "%s %s", method, path)
	var out map[string]any
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestEndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)
	c := &client{t: t, base: srv.URL}

	body := c.call(http.MethodPost, "/register", `{"name":"Alice","email":"a@x.com","password":"pw"}`)
	assert.Equal(t, map[string]any{"Status": "Success"}, body)

	body = c.call(http.MethodPost, "/login", `{"email":"a@x.com","password":"pw"}`)
	require.Equal(t, "Success", body["Status"])
	token, ok := body["Token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	c.token = token

	body = c.call(http.MethodPost, "/todos", `{"title":"Buy milk"}`)
	require.Equal(t, "Success", body["Status"])
	id := int64(body["id"].(float64))
	assert.Positive(t, id)

	body = c.call(http.MethodGet, "/todos", "")
	require.Equal(t, "Success", body["Status"])
	list := body["todos"].([]any)
	require.Len(t, list, 1)
	todo := list[0].(map[string]any)
	assert.Equal(t, "Buy milk", todo["title"])
	assert.Equal(t, "", todo["description"])
	assert.Equal(t, false, todo["completed"])

	body = c.call(http.MethodPut, fmt.Sprintf("/todos/%d", id), `{"title":"Buy milk","description":"","completed":true}`)
	assert.Equal(t, "Success", body["Status"])

	body = c.call(http.MethodGet, "/todos", "")
	list = body["todos"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, true, list[0].(map[string]any)["completed"])

	body = c.call(http.MethodGet, "/protected", "")
	assert.Equal(t, "Success", body["Status"])
	assert.Equal(t, "a@x.com", body["user"].(map[string]any)["email"])

	body = c.call(http.MethodGet, "/users/me", "")
	assert.Equal(t, "Success", body["Status"])
	assert.Equal(t, "Alice", body["user"].(map[string]any)["name"])

	body = c.call(http.MethodDelete, fmt.Sprintf("/todos/%d", id), "")
	assert.Equal(t, "Success", body["Status"])

	body = c.call(http.MethodGet, "/todos", "")
	assert.Equal(t, "Success", body["Status"])
	assert.Empty(t, body["todos"])
}

func TestErrorsAreEnvelopedWith200(t *testing.T) {
	srv, _ := newTestServer(t)
	c := &client{t: t, base: srv.URL}

	c.call(http.MethodPost, "/register", `{"name":"Alice","email":"a@x.com","password":"pw"}`)

	tests := []struct {
		name, method, path, body, want string
	}{
		{"duplicate email", http.MethodPost, "/register", `{"name":"A2","email":"A@x.com","password":"pw2"}`, "Email already exists"},
		{"unknown email", http.MethodPost, "/login", `{"email":"b@x.com","password":"pw"}`, "Email not found"},
		{"wrong password", http.MethodPost, "/login", `{"email":"a@x.com","password":"nope"}`, "Invalid password"},
		{"malformed body", http.MethodPost, "/login", `{"email":`, "Invalid request body"},
		{"no token", http.MethodGet, "/todos", "", "Token not provided"},
		{"unknown route", http.MethodGet, "/nope", "", "Not found"},
		{"wrong method", http.MethodPatch, "/todos", "", "Method not allowed"},
		{"missing asset", http.MethodGet, "/static/missing.js", "", "Not found"},
		{"asset directory", http.MethodGet, "/static/", "", "Not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &client{t: t, base: srv.URL}
			body := c.call(tt.method, tt.path, tt.body)
			assert.Equal(t, apperror.StatusError, body["Status"])
			assert.Equal(t, tt.want, body["Error"])
			assert.NotContains(t, body, "Token")
		})
	}
}

func TestProfileOfDeletedUser(t *testing.T) {
	srv, st := newTestServer(t)
	c := &client{t: t, base: srv.URL}

	c.call(http.MethodPost, "/register", `{"name":"Alice","email":"a@x.com","password":"pw"}`)
	c.token = c.call(http.MethodPost, "/login", `{"email":"a@x.com","password":"pw"}`)["Token"].(string)
	c.call(http.MethodPost, "/todos", `{"title":"Buy milk"}`)

	u, err := st.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NoError(t, st.DeleteUser(context.Background(), u.ID))

	body := c.call(http.MethodGet, "/users/me", "")
	assert.Equal(t, "User not found", body["Error"])

	body = c.call(http.MethodGet, "/todos", "")
	assert.Equal(t, "Success", body["Status"])
	assert.Empty(t, body["todos"])
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	body := (&client{t: t, base: srv.URL}).call(http.MethodGet, "/health", "")
	assert.Equal(t, "Success", body["Status"])

	rec := httptest.NewRecorder()
	handleHealth(downPinger{})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "Database error", out["Error"])
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(logger.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, map[string]any{"Status": "Error", "Error": "Server error"}, out)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/todos", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestUIServed(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/", "/static/app.js", "/static/styles.css"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
