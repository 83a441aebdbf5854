package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tareas/internal/models"
	"github.com/desertthunder/tareas/internal/shared"
)

// Response messages, as the client displays them verbatim.
const (
	msgCreated          = "Tarea creada"
	msgUpdated          = "Tarea actualizada"
	msgDeleted          = "Tarea eliminada"
	msgNotFound         = "Tarea no encontrada"
	msgTitleRequired    = "El título es obligatorio"
	msgIDRequired       = "El id es obligatorio"
	msgNothingToUpdate  = "No hay cambios para aplicar"
	msgInvalidJSON      = "JSON inválido"
	msgInternal         = "Error interno del servidor"
	msgMethodNotAllowed = "Método no permitido"
)

// maxBodyBytes caps request bodies; titles are short.
const maxBodyBytes = 1 << 16

// TaskStore is the persistence the handler needs.
type TaskStore interface {
	models.Repository[models.Task]
	Patch(ctx context.Context, id models.ID, title *string, completed *models.Flag) error
	Count(ctx context.Context) (pending, done int, err error)
}

var _ Handler = (*TaskHandler)(nil)

// TaskHandler serves the task collection on a single path.
//
//   - GET: every task as a JSON array
//   - POST {titulo}: create
//   - PUT {id, titulo} or {id, completada}: update
//   - DELETE ?id=: delete
//
// Write responses are always {"mensaje": ...}.
type TaskHandler struct {
	store   TaskStore
	metrics *Metrics
	logger  *log.Logger
}

// NewTaskHandler creates a TaskHandler over store.
func NewTaskHandler(store TaskStore, metrics *Metrics, logger *log.Logger) *TaskHandler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TaskHandler{store: store, metrics: metrics, logger: logger}
}

// Routes returns the exact root path.
func (h *TaskHandler) Routes() []string {
	return []string{"/{$}"}
}

func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, PUT, DELETE")
		writeMessage(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequest
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeMessage(w, http.StatusBadRequest, msgTitleRequired)
		return
	}

	task := &models.Task{Title: req.Title}
	if err := h.store.Create(r.Context(), task); err != nil {
		h.fail(w, "create", err)
		return
	}

	h.logger.Debug("task created", "id", task.ID)
	h.refreshCounts(r.Context())
	writeMessage(w, http.StatusCreated, msgCreated)
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRequest
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	switch {
	case req.ID == "":
		writeMessage(w, http.StatusBadRequest, msgIDRequired)
		return
	case req.Title == nil && req.Completed == nil:
		writeMessage(w, http.StatusBadRequest, msgNothingToUpdate)
		return
	case req.Title != nil && strings.TrimSpace(*req.Title) == "":
		writeMessage(w, http.StatusBadRequest, msgTitleRequired)
		return
	}

	if err := h.store.Patch(r.Context(), req.ID, req.Title, req.Completed); err != nil {
		h.fail(w, "update", err)
		return
	}

	h.refreshCounts(r.Context())
	writeMessage(w, http.StatusOK, msgUpdated)
}

func (h *TaskHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := models.ID(strings.TrimSpace(r.URL.Query().Get("id")))
	if id == "" {
		writeMessage(w, http.StatusBadRequest, msgIDRequired)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete", err)
		return
	}

	h.refreshCounts(r.Context())
	writeMessage(w, http.StatusOK, msgDeleted)
}

// fail maps store errors onto status codes and messages.
func (h *TaskHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrTaskNotFound):
		writeMessage(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, shared.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, msgTitleRequired)
	default:
		h.logger.Error("store failure", "op", op, "error", err)
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

func (h *TaskHandler) refreshCounts(ctx context.Context) {
	if h.metrics == nil {
		return
	}
	pending, done, err := h.store.Count(ctx)
	if err != nil {
		h.logger.Warn("failed to count tasks", "error", err)
		return
	}
	h.metrics.SetTaskCounts(pending, done)
}

// HealthHandler reports liveness and the current task totals.
func HealthHandler(store TaskStore, metrics *Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pending, done, err := store.Count(r.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
			return
		}
		if metrics != nil {
			metrics.SetTaskCounts(pending, done)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"pendientes":  pending,
			"completadas": done,
		})
	})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, text string) {
	writeJSON(w, status, models.Message{Text: text})
}
