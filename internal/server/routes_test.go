package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/taiwoajasa245/gratitude-api/internal/database"
	"github.com/taiwoajasa245/gratitude-api/pkg/config"
)

type testEnv struct {
	handler http.Handler
	db      database.Service
	logs    *observer.ObservedLogs
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	url := "sqlite:///" + filepath.Join(t.TempDir(), "server.db")
	db, err := database.Open(context.Background(), url, database.Options{}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	core, logs := observer.New(zap.InfoLevel)
	s := NewServer(db, &config.Config{Port: "0"}, zap.New(core))
	return testEnv{handler: s.Handler(), db: db, logs: logs}
}

func (e testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e testEnv) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.DB().QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Close())

	// liveness does not depend on storage
	rec := env.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","message":"API is running!"}`, rec.Body.String())
}

func TestGratitudeFlow(t *testing.T) {
	env := newTestEnv(t)

	var ids []int64
	for _, content := range []string{"first", "second", "third"} {
		rec := env.do(t, http.MethodPost, "/gratitude/", `{"content":"`+content+`","category":"daily"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var note struct {
			ID        int64     `json:"id"`
			CreatedAt time.Time `json:"created_at"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))
		assert.WithinDuration(t, time.Now(), note.CreatedAt, 5*time.Second)
		ids = append(ids, note.ID)
	}

	rec := env.do(t, http.MethodGet, "/gratitude", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []struct {
		ID        int64     `json:"id"`
		Content   string    `json:"content"`
		Category  string    `json:"category"`
		CreatedAt time.Time `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 3)
	for i := 1; i < len(listed); i++ {
		assert.False(t, listed[i].CreatedAt.After(listed[i-1].CreatedAt), "notes must be newest first")
	}
	assert.Equal(t, "third", listed[0].Content)
	assert.Equal(t, "daily", listed[0].Category)

	rec = env.do(t, http.MethodDelete, "/gratitude/12345", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 3, env.count(t, "gratitude"))

	rec = env.do(t, http.MethodDelete, "/gratitude/"+strconv.FormatInt(ids[1], 10), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, 2, env.count(t, "gratitude"))

	rec = env.do(t, http.MethodGet, "/gratitude/", "")
	assert.NotContains(t, rec.Body.String(), `"second"`)
}

func TestScriptureOrdering(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/scriptures/", `{"reference":"2:1","text":"b","category":"B"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/scriptures", `{"reference":"1:1","text":"a","category":"A"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/scriptures/", "")
	var listed []struct {
		Reference string `json:"reference"`
		Category  string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "A", listed[0].Category)
	assert.Equal(t, "1:1", listed[0].Reference)
	assert.Equal(t, "B", listed[1].Category)
	assert.Equal(t, "2:1", listed[1].Reference)
}

func TestResetClearsGratitudeOnly(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/gratitude/", `{"content":"x"}`).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/scriptures/", `{"reference":"r","text":"t"}`).Code)

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodDelete, "/reset/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "message")
	}

	assert.JSONEq(t, `[]`, env.do(t, http.MethodGet, "/gratitude/", "").Body.String())
	assert.Equal(t, 1, env.count(t, "scripture"))
}

func TestValidationLeavesTableUntouched(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/gratitude/", `{"category":"no content"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, env.count(t, "gratitude"))

	rec = env.do(t, http.MethodPost, "/scriptures/", `{"text":"no reference"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, env.count(t, "scripture"))
}

func TestStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Close())

	rec := env.do(t, http.MethodPost, "/scriptures/", `{"reference":"r","text":"t"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), "sql:")

	assert.NotZero(t, env.logs.FilterMessage("scripture request failed").Len())
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/journal", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")

	rec = env.do(t, http.MethodPut, "/gratitude/1", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/gratitude/", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodGet, "/", "")

	entries := env.logs.FilterMessage("request").All()
	require.NotEmpty(t, entries)
	fields := entries[len(entries)-1].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestHTTPServer(t *testing.T) {
	env := newTestEnv(t)
	s := NewServer(env.db, &config.Config{Port: "9091"}, nil)

	srv := s.HTTPServer()
	assert.Equal(t, ":9091", srv.Addr)
	assert.Equal(t, 10*time.Second, srv.ReadTimeout)
	assert.NotNil(t, srv.Handler)
}
