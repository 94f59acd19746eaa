package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/middleware"
	"github.com/LuiFig19/TaskChrono-sub001/internal/models"
	"github.com/LuiFig19/TaskChrono-sub001/internal/realtime"
)

type timerStore interface {
	CreateTimer(ctx context.Context, arg db.CreateTimerParams) (db.Timer, error)
	GetTimerByID(ctx context.Context, id string) (db.Timer, error)
	StopTimer(ctx context.Context, arg db.StopTimerParams) (db.Timer, error)
	FinalizeTimer(ctx context.Context, id string) error
	ListRunningTimersByUser(ctx context.Context, userID string) ([]db.Timer, error)
}

// TimerHandler manages time-tracking timers. Every state change broadcasts
// to the owner's timer topic, so all of a user's open tabs stay in sync.
type TimerHandler struct {
	store    timerStore
	registry *realtime.Registry
}

// NewTimerHandler creates a TimerHandler with the required dependencies.
func NewTimerHandler(store timerStore, registry *realtime.Registry) *TimerHandler {
	return &TimerHandler{store: store, registry: registry}
}

// Start creates a running timer for the caller.
func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req models.StartTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var taskID sql.NullString
	if req.TaskID != nil {
		taskID = sql.NullString{String: *req.TaskID, Valid: true}
	}

	timer, err := h.store.CreateTimer(r.Context(), db.CreateTimerParams{
		ID:          uuid.New().String(),
		UserID:      claims.UserID,
		TaskID:      taskID,
		Description: req.Description,
	})
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to start timer", err)
		return
	}

	h.registry.Broadcast(realtime.TimerTopic(claims.UserID), timerToEvent(timer))

	writeJSON(w, http.StatusCreated, timerToResponse(timer))
}

// Stop ends a running timer, recording its duration.
func (h *TimerHandler) Stop(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	timerID := chi.URLParam(r, "timerId")

	timer, err := h.store.GetTimerByID(r.Context(), timerID)
	if err != nil || timer.UserID != claims.UserID {
		writeError(w, http.StatusNotFound, "timer not found")
		return
	}

	if timer.StoppedAt.Valid {
		writeError(w, http.StatusConflict, "timer already stopped")
		return
	}

	now := time.Now().UTC()
	timer, err = h.store.StopTimer(r.Context(), db.StopTimerParams{
		StoppedAt:  sql.NullTime{Time: now, Valid: true},
		DurationMs: now.Sub(timer.StartedAt).Milliseconds(),
		ID:         timerID,
	})
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to stop timer", err)
		return
	}

	h.registry.Broadcast(realtime.TimerTopic(claims.UserID), timerToEvent(timer))

	writeJSON(w, http.StatusOK, timerToResponse(timer))
}

// Finalize commits a stopped timer to the task's time log.
func (h *TimerHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	timerID := chi.URLParam(r, "timerId")

	timer, err := h.store.GetTimerByID(r.Context(), timerID)
	if err != nil || timer.UserID != claims.UserID {
		writeError(w, http.StatusNotFound, "timer not found")
		return
	}

	if !timer.StoppedAt.Valid {
		writeError(w, http.StatusConflict, "timer is still running")
		return
	}
	if timer.Finalized {
		writeError(w, http.StatusConflict, "timer already finalized")
		return
	}

	if err := h.store.FinalizeTimer(r.Context(), timerID); err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to finalize timer", err)
		return
	}

	h.registry.Broadcast(realtime.TimerTopic(claims.UserID), realtime.TimerFinalized{
		ID:         timer.ID,
		DurationMS: timer.DurationMs,
	})

	timer.Finalized = true
	writeJSON(w, http.StatusOK, timerToResponse(timer))
}

// ListRunning returns the caller's currently running timers.
func (h *TimerHandler) ListRunning(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	timers, err := h.store.ListRunningTimersByUser(r.Context(), claims.UserID)
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to fetch timers", err)
		return
	}

	response := make([]models.TimerResponse, len(timers))
	for i, t := range timers {
		response[i] = timerToResponse(t)
	}

	writeJSON(w, http.StatusOK, response)
}

func timerToResponse(t db.Timer) models.TimerResponse {
	resp := models.TimerResponse{
		ID:          t.ID,
		Description: t.Description,
		Running:     !t.StoppedAt.Valid,
		StartedAt:   t.StartedAt,
		DurationMS:  t.DurationMs,
		Finalized:   t.Finalized,
	}
	if t.TaskID.Valid {
		resp.TaskID = &t.TaskID.String
	}
	if t.StoppedAt.Valid {
		resp.StoppedAt = &t.StoppedAt.Time
	}
	return resp
}

func timerToEvent(t db.Timer) realtime.TimerChanged {
	event := realtime.TimerChanged{
		ID:          t.ID,
		Description: t.Description,
		Running:     !t.StoppedAt.Valid,
		StartedAt:   t.StartedAt,
		DurationMS:  t.DurationMs,
	}
	if t.TaskID.Valid {
		event.TaskID = &t.TaskID.String
	}
	if t.StoppedAt.Valid {
		event.StoppedAt = &t.StoppedAt.Time
	}
	return event
}
