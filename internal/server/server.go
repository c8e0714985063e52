// Package server is a small reference implementation of the REST task store
// the client talks to. It is what `taskpad serve` runs.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/storage"
)

type Options struct {
	Logger         zerolog.Logger
	RequestTimeout time.Duration
	Now            func() time.Time
}

type Handler struct {
	repo     storage.Repository
	validate *validator.Validate
	log      zerolog.Logger
	timeout  time.Duration
	now      func() time.Time
}

func NewHandler(repo storage.Repository, opts Options) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	h := &Handler{
		repo:     repo,
		validate: validate,
		log:      opts.Logger,
		timeout:  opts.RequestTimeout,
		now:      opts.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.timeout <= 0 {
		h.timeout = 5 * time.Second
	}
	return h
}

// taskRequest is the body accepted by POST and PUT. id and created_at are
// ignored if present.
type taskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=pending 'in progress' completed"`
	Priority    int    `json:"priority"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// Router mounts the task routes under /api.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.accessLog)
	r.Use(middleware.Timeout(h.timeout))

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/", h.listTasks)
		r.Post("/", h.createTask)
		r.Get("/{id}", h.getTask)
		r.Put("/{id}", h.updateTask)
		r.Delete("/{id}", h.deleteTask)
	})
	return r
}

// listQuery holds the optional GET /tasks filters.
type listQuery struct {
	Search string `json:"search"`
	Status string `json:"status" validate:"omitempty,oneof=pending 'in progress' completed"`
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	q := listQuery{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}
	if err := h.validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	rows, err := h.repo.ListTasks(r.Context(), storage.TaskListFilter{
		Search: q.Search,
		Status: q.Status,
	})
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "failed to load tasks", err)
		return
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, toWire(row))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	created, err := h.repo.CreateTask(r.Context(), storage.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     model.DateOnly(req.DueDate),
		CreatedAt:   h.now().UTC(),
	})
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "failed to save task", err)
		return
	}
	writeJSON(w, http.StatusCreated, toWire(created))
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	row, err := h.repo.GetTask(r.Context(), id)
	if err != nil {
		h.storageFail(w, r, "failed to get task", err)
		return
	}
	writeJSON(w, http.StatusOK, toWire(row))
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	existing, err := h.repo.GetTask(ctx, id)
	if err != nil {
		h.storageFail(w, r, "failed to get task", err)
		return
	}
	existing.Title = strings.TrimSpace(req.Title)
	existing.Description = req.Description
	existing.Status = req.Status
	existing.Priority = req.Priority
	existing.DueDate = model.DateOnly(req.DueDate)
	if err := h.repo.UpdateTask(ctx, existing); err != nil {
		h.storageFail(w, r, "failed to update task", err)
		return
	}
	writeJSON(w, http.StatusOK, toWire(existing))
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteTask(r.Context(), id); err != nil {
		h.storageFail(w, r, "failed to delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (taskRequest, bool) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return taskRequest{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return taskRequest{}, false
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return taskRequest{}, false
	}
	if req.Status == "" {
		req.Status = string(model.StatusPending)
	}
	if req.Priority == 0 {
		req.Priority = model.DefaultPriority
	}
	return req, true
}

func (h *Handler) storageFail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	h.fail(w, r, http.StatusInternalServerError, msg, err)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
		msg = "request timed out"
	}
	h.log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", middleware.GetReqID(r.Context())).Msg(msg)
	writeError(w, status, msg)
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(started)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "datetime":
		return field + " must be a YYYY-MM-DD date"
	default:
		return field + " is invalid"
	}
}

func toWire(t storage.Task) model.Task {
	return model.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      model.Status(t.Status),
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
