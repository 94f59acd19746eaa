package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/middleware"
	"github.com/LuiFig19/TaskChrono-sub001/internal/models"
	"github.com/LuiFig19/TaskChrono-sub001/internal/realtime"
)

// validTaskStatuses are the allowed task workflow states.
var validTaskStatuses = map[string]bool{
	"open":        true,
	"in_progress": true,
	"done":        true,
	"archived":    true,
}

type taskStore interface {
	activityStore
	CreateTask(ctx context.Context, arg db.CreateTaskParams) (db.Task, error)
	GetTaskByID(ctx context.Context, id string) (db.Task, error)
	UpdateTaskStatus(ctx context.Context, arg db.UpdateTaskStatusParams) (db.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListTasksByOrganization(ctx context.Context, organizationID string) ([]db.Task, error)
	IsOrganizationMember(ctx context.Context, arg db.IsOrganizationMemberParams) (int64, error)
}

// TaskHandler manages tasks. Task changes feed the global activity stream.
type TaskHandler struct {
	store    taskStore
	registry *realtime.Registry
}

// NewTaskHandler creates a TaskHandler with the required dependencies.
func NewTaskHandler(store taskStore, registry *realtime.Registry) *TaskHandler {
	return &TaskHandler{store: store, registry: registry}
}

// Create adds a task to the organization.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")
	claims := middleware.GetClaims(r.Context())

	if !memberOf(w, r, h.store, orgID, claims.UserID) {
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	var assigneeID sql.NullString
	if req.AssigneeID != nil {
		assigneeID = sql.NullString{String: *req.AssigneeID, Valid: true}
	}

	task, err := h.store.CreateTask(r.Context(), db.CreateTaskParams{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Title:          req.Title,
		AssigneeID:     assigneeID,
		CreatedBy:      claims.UserID,
	})
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to create task", err)
		return
	}

	recordActivity(r.Context(), h.store, h.registry, claims.UserID, "task_created", task.Title)

	writeJSON(w, http.StatusCreated, taskToResponse(task))
}

// List returns the organization's tasks, newest first.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")
	claims := middleware.GetClaims(r.Context())

	if !memberOf(w, r, h.store, orgID, claims.UserID) {
		return
	}

	tasks, err := h.store.ListTasksByOrganization(r.Context(), orgID)
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to fetch tasks", err)
		return
	}

	response := make([]models.TaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = taskToResponse(task)
	}

	writeJSON(w, http.StatusOK, response)
}

// UpdateStatus moves a task through its workflow.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")
	taskID := chi.URLParam(r, "taskId")
	claims := middleware.GetClaims(r.Context())

	if !memberOf(w, r, h.store, orgID, claims.UserID) {
		return
	}

	var req models.UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !validTaskStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	task, err := h.store.GetTaskByID(r.Context(), taskID)
	if err != nil || task.OrganizationID != orgID {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	task, err = h.store.UpdateTaskStatus(r.Context(), db.UpdateTaskStatusParams{
		Status: req.Status,
		ID:     taskID,
	})
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to update task", err)
		return
	}

	recordActivity(r.Context(), h.store, h.registry, claims.UserID, "task_"+task.Status, task.Title)

	writeJSON(w, http.StatusOK, taskToResponse(task))
}

// Delete removes a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")
	taskID := chi.URLParam(r, "taskId")
	claims := middleware.GetClaims(r.Context())

	if !memberOf(w, r, h.store, orgID, claims.UserID) {
		return
	}

	task, err := h.store.GetTaskByID(r.Context(), taskID)
	if err != nil || task.OrganizationID != orgID {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	if err := h.store.DeleteTask(r.Context(), taskID); err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to delete task", err)
		return
	}

	recordActivity(r.Context(), h.store, h.registry, claims.UserID, "task_deleted", task.Title)

	w.WriteHeader(http.StatusNoContent)
}

func taskToResponse(t db.Task) models.TaskResponse {
	resp := models.TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Status:    t.Status,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.AssigneeID.Valid {
		resp.AssigneeID = &t.AssigneeID.String
	}
	return resp
}
