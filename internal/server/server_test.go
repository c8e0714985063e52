package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sandeepkv93/taskpad/internal/client"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/server"
	"github.com/sandeepkv93/taskpad/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv   *httptest.Server
	store *client.HTTPStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	clock := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	h := server.NewHandler(repo, server.Options{
		Logger: zerolog.Nop(),
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	})
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)

	store, err := client.New(srv.URL + "/api")
	require.NoError(t, err)
	return fixture{srv: srv, store: store}
}

func TestCreateThenListIncludesDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := model.Draft{Title: "Pay rent", Description: "before the 5th", Status: model.StatusInProgress, Priority: 3, DueDate: "2026-03-01"}
	created, err := f.store.Create(ctx, d)
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)

	tasks, err := f.store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	got := tasks[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, d, model.DraftFromTask(got))
}

func TestCreateAppliesDefaults(t *testing.T) {
	f := newFixture(t)
	created, err := f.store.Create(context.Background(), model.Draft{Title: "bare"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Equal(t, 1, created.Priority)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.store.Create(ctx, model.Draft{Title: "draft", Status: model.StatusPending, Priority: 1})
	require.NoError(t, err)

	edited := model.ApplyDraft(created, model.Draft{Title: "final", Status: model.StatusCompleted, Priority: 9})
	edited.CreatedAt = "1999-01-01T00:00:00Z"

	updated, err := f.store.Update(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, model.StatusCompleted, updated.Status)
	assert.Equal(t, 9, updated.Priority)
}

func TestDeleteThenListExcludesTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	keep, err := f.store.Create(ctx, model.Draft{Title: "keep", Status: model.StatusPending, Priority: 1})
	require.NoError(t, err)
	drop, err := f.store.Create(ctx, model.Draft{Title: "drop", Status: model.StatusPending, Priority: 1})
	require.NoError(t, err)

	require.NoError(t, f.store.Delete(ctx, drop.ID))

	tasks, err := f.store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)

	err = f.store.Delete(ctx, drop.ID)
	assert.True(t, errors.Is(err, client.ErrNotFound), "got %v", err)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, title := range []string{"Pay RENT", "groceries", "rental car"} {
		_, err := f.store.Create(ctx, model.Draft{Title: title, Status: model.StatusPending, Priority: 1})
		require.NoError(t, err)
	}

	tasks, err := f.store.List(ctx, "rent")
	require.NoError(t, err)
	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	assert.ElementsMatch(t, []string{"Pay RENT", "rental car"}, titles)
}

func TestUpdateMissingTaskIsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Update(context.Background(), model.Task{ID: 77, Title: "ghost", Status: model.StatusPending, Priority: 1})
	var se *client.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Contains(t, se.Error(), "task not found")
}

func TestValidationErrors(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing title", map[string]any{"status": "pending"}, "title is required"},
		{"blank title", map[string]any{"title": "   "}, "title is required"},
		{"bad status", map[string]any{"title": "x", "status": "blocked"}, "status must be one of"},
		{"bad due date", map[string]any{"title": "x", "due_date": "tomorrow"}, "due_date must be a YYYY-MM-DD date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := json.Marshal(tc.body)
			require.NoError(t, err)
			resp, err := http.Post(f.srv.URL+"/api/tasks", "application/json", bytes.NewReader(payload))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Contains(t, body["error"], tc.want)
		})
	}
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	f := newFixture(t)
	req, err := http.NewRequest(http.MethodDelete, f.srv.URL+"/api/tasks/abc", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, d := range []model.Draft{
		{Title: "open one", Status: model.StatusPending},
		{Title: "started", Status: model.StatusInProgress},
		{Title: "done", Status: model.StatusCompleted},
	} {
		_, err := f.store.Create(ctx, d)
		require.NoError(t, err)
	}

	resp, err := http.Get(f.srv.URL + "/api/tasks?status=in+progress")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tasks []model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "started", tasks[0].Title)

	bad, err := http.Get(f.srv.URL + "/api/tasks?status=blocked")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(bad.Body).Decode(&body))
	assert.Contains(t, body["error"], "status must be one of")
}
